// Package track owns the position ledger and the per-session statistics.
//
// A single producer feeds raw lines into a Session; any number of
// readers may take store/stats snapshots concurrently.
package track

import "time"

// Report is one validated position fix. Reports are immutable once
// stored; VTG enrichment replaces the stored value wholesale, keeping
// its slot and reference number (see Store.ReplaceLast).
type Report struct {
	Ref int64   `json:"ref"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Time is UTC. When HasDate is false no date-bearing sentence had
	// been seen yet and only the time of day is meaningful.
	Time    time.Time `json:"time"`
	HasDate bool      `json:"has_date"`

	FixQuality *int     `json:"fix_quality,omitempty"`
	SpeedKt    *float64 `json:"speed_kt,omitempty"`
	CourseDeg  *float64 `json:"course_deg,omitempty"`
}

// Stamp renders the report timestamp as ISO-8601 UTC, falling back to a
// bare time of day when no date is known.
func (r Report) Stamp() string {
	switch {
	case !r.HasDate && r.Time.Nanosecond() != 0:
		return r.Time.Format("15:04:05.000Z")
	case !r.HasDate:
		return r.Time.Format("15:04:05Z")
	case r.Time.Nanosecond() != 0:
		return r.Time.Format("2006-01-02T15:04:05.000Z")
	default:
		return r.Time.Format("2006-01-02T15:04:05Z")
	}
}
