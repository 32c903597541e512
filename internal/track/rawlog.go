package track

import "sync"

// RawLog is the append-only buffer of raw sentences kept for the NMEA
// export path. Lines that failed checksum validation are retained too;
// the NMEA export is a verbatim dump, not a re-encoding.
type RawLog struct {
	mu      sync.Mutex
	max     int
	lines   []string
	dropped uint64
}

// NewRawLog caps the buffer at maxLines; maxLines <= 0 means unbounded.
func NewRawLog(maxLines int) *RawLog {
	return &RawLog{max: maxLines}
}

func (l *RawLog) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if l.max > 0 && len(l.lines) > l.max {
		over := len(l.lines) - l.max
		l.lines = l.lines[over:]
		l.dropped += uint64(over)
	}
}

// Snapshot returns a copy of the buffered lines, oldest first.
func (l *RawLog) Snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func (l *RawLog) Dropped() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

func (l *RawLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
	l.dropped = 0
}
