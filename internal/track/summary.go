package track

import "time"

// Summary condenses a finished read session for display: start/end
// position, elapsed time and speed-over-ground aggregates.
type Summary struct {
	Sentences      uint64
	ChecksumErrors uint64
	DecodeErrors   uint64
	Positions      int

	Start *Report
	End   *Report

	// Duration is end minus start; zero unless both reports carry a
	// full date+time.
	Duration time.Duration

	MaxSpeedKt float64
	AvgSpeedKt float64
	HasSpeed   bool
}

// Summary computes the aggregates over the current ledger snapshot.
func (s *Session) Summary() Summary {
	st := s.Stats()
	sum := Summary{
		Sentences:      st.Sentences,
		ChecksumErrors: st.ChecksumErrors,
		DecodeErrors:   st.DecodeErrors,
		Positions:      st.Positions,
	}

	reports := s.store.All()
	if len(reports) == 0 {
		return sum
	}
	first := reports[0]
	last := reports[len(reports)-1]
	sum.Start = &first
	sum.End = &last
	if first.HasDate && last.HasDate {
		if d := last.Time.Sub(first.Time); d > 0 {
			sum.Duration = d
		}
	}

	var total float64
	var n int
	for _, r := range reports {
		if r.SpeedKt == nil {
			continue
		}
		if *r.SpeedKt > sum.MaxSpeedKt {
			sum.MaxSpeedKt = *r.SpeedKt
		}
		total += *r.SpeedKt
		n++
	}
	if n > 0 {
		sum.AvgSpeedKt = total / float64(n)
		sum.HasSpeed = true
	}
	return sum
}
