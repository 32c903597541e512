package track

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gpsnmea/internal/nmea"
)

// Stats is a point-in-time snapshot of the session counters.
type Stats struct {
	Sentences      uint64 `json:"sentences"`
	ChecksumErrors uint64 `json:"checksum_errors"`
	Malformed      uint64 `json:"malformed"`
	DecodeErrors   uint64 `json:"decode_errors"`
	NoFix          uint64 `json:"no_fix"`
	Ignored        uint64 `json:"ignored"`
	Positions      int    `json:"positions"`

	Types map[string]uint64 `json:"sentence_types,omitempty"`
	Last  *Report           `json:"last,omitempty"`
}

// Session wires the parse pipeline to a store and keeps the counters.
// Process is called by a single producer; Stats, Store and RawLines may
// be called concurrently by readers.
type Session struct {
	mu sync.Mutex

	store *Store
	raw   *RawLog

	sentences      uint64
	checksumErrors uint64
	malformed      uint64
	decodeErrors   uint64
	noFix          uint64
	ignored        uint64
	types          map[string]uint64

	// Date inheritance: position reports from sentences without a date
	// field borrow the date of the most recent sentence that carried one.
	lastDate time.Time
	hasDate  bool

	// Clock of the last time-bearing sentence, used to decide whether a
	// VTG sentence belongs to the same reporting instant as the last
	// stored report.
	lastClock nmea.Clock
	hasClock  bool

	// live is set while a serial read loop is feeding this session.
	// Full exports are refused while it is set.
	live atomic.Bool
}

// NewSession creates an empty session. rawMax caps the in-memory raw
// sentence buffer; <= 0 means unbounded.
func NewSession(rawMax int) *Session {
	return &Session{
		store: NewStore(),
		raw:   NewRawLog(rawMax),
		types: make(map[string]uint64),
	}
}

func (s *Session) Store() *Store      { return s.store }
func (s *Session) RawLines() []string { return s.raw.Snapshot() }
func (s *Session) SetLive(v bool)     { s.live.Store(v) }
func (s *Session) Live() bool         { return s.live.Load() }

// Process runs one raw line through validate/tokenize/decode and updates
// the store and counters. Per-line failures are counted, never returned;
// nothing a receiver sends can abort the ingest loop.
func (s *Session) Process(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sentences++
	s.raw.Append(line)

	body, err := nmea.Validate(line)
	if err != nil {
		s.checksumErrors++
		return
	}
	sent, err := nmea.Tokenize(body)
	if err != nil {
		s.malformed++
		return
	}
	s.types[sent.Talker+sent.Type]++

	frag, err := nmea.Decode(sent)
	if err != nil {
		if errors.Is(err, nmea.ErrUnsupported) {
			s.ignored++
		} else {
			s.decodeErrors++
		}
		return
	}
	s.applyLocked(frag)
}

func (s *Session) applyLocked(frag nmea.Fragment) {
	if frag.HasDate {
		s.lastDate, s.hasDate = frag.Date, true
	}
	if frag.HasClock {
		s.lastClock, s.hasClock = frag.Clock, true
	}
	if frag.NoFix {
		s.noFix++
		return
	}

	if !frag.HasPosition {
		s.enrichLocked(frag)
		return
	}

	r := Report{
		Lat:        frag.Lat,
		Lon:        frag.Lon,
		FixQuality: frag.FixQuality,
		SpeedKt:    frag.SpeedKt,
		CourseDeg:  frag.CourseDeg,
	}
	if frag.HasClock {
		if s.hasDate {
			r.Time = frag.Clock.At(s.lastDate)
			r.HasDate = true
		} else {
			r.Time = frag.Clock.At(time.Time{})
		}
	}
	s.store.Append(r)
}

// enrichLocked applies a course/speed-only fragment (VTG) to the most
// recent stored report, but only when that report belongs to the same
// reporting instant as the last time-bearing sentence. VTG itself
// carries no time field.
func (s *Session) enrichLocked(frag nmea.Fragment) {
	if frag.SpeedKt == nil && frag.CourseDeg == nil {
		return
	}
	last, ok := s.store.Last()
	if !ok || !s.hasClock {
		return
	}
	c := s.lastClock
	if last.Time.Hour() != c.Hour || last.Time.Minute() != c.Minute ||
		last.Time.Second() != c.Second || last.Time.Nanosecond() != c.Milli*int(time.Millisecond) {
		return
	}
	if frag.SpeedKt != nil {
		last.SpeedKt = frag.SpeedKt
	}
	if frag.CourseDeg != nil {
		last.CourseDeg = frag.CourseDeg
	}
	s.store.ReplaceLast(last)
}

// Stats returns a snapshot of the counters and the last report.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Sentences:      s.sentences,
		ChecksumErrors: s.checksumErrors,
		Malformed:      s.malformed,
		DecodeErrors:   s.decodeErrors,
		NoFix:          s.noFix,
		Ignored:        s.ignored,
		Positions:      s.store.Count(),
	}
	if len(s.types) > 0 {
		st.Types = make(map[string]uint64, len(s.types))
		for k, v := range s.types {
			st.Types[k] = v
		}
	}
	if last, ok := s.store.Last(); ok {
		st.Last = &last
	}
	return st
}

// Reset starts a new read session: counters to zero, ledger and raw log
// cleared, reference numbering restarted at 1.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Reset()
	s.raw.Reset()
	s.sentences = 0
	s.checksumErrors = 0
	s.malformed = 0
	s.decodeErrors = 0
	s.noFix = 0
	s.ignored = 0
	s.types = make(map[string]uint64)
	s.hasDate = false
	s.hasClock = false
}
