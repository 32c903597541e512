package track

import "sync"

// Store is the append-only ledger of position reports. Reference numbers
// are 1-based, strictly increasing and gap-free; only Reset restarts
// them. Append is atomic with respect to readers: All and Last never
// observe a partially constructed report.
type Store struct {
	mu      sync.RWMutex
	reports []Report
	nextRef int64
}

func NewStore() *Store {
	return &Store{nextRef: 1}
}

// Append stores a report, assigns the next reference number and returns it.
func (s *Store) Append(r Report) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Ref = s.nextRef
	s.nextRef++
	s.reports = append(s.reports, r)
	return r.Ref
}

// ReplaceLast swaps the most recent report for an enriched copy. The
// replacement keeps the slot and reference number of the report it
// replaces. Returns false on an empty store.
func (s *Store) ReplaceLast(r Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reports) == 0 {
		return false
	}
	r.Ref = s.reports[len(s.reports)-1].Ref
	s.reports[len(s.reports)-1] = r
	return true
}

// All returns a snapshot copy of the ledger, oldest first.
func (s *Store) All() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

func (s *Store) Last() (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.reports) == 0 {
		return Report{}, false
	}
	return s.reports[len(s.reports)-1], true
}

func (s *Store) First() (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.reports) == 0 {
		return Report{}, false
	}
	return s.reports[0], true
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// Reset clears the ledger and restarts numbering at 1.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = nil
	s.nextRef = 1
}
