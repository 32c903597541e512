package track

import (
	"testing"
	"time"
)

func TestStore_RefsIncreaseGapFree(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		ref := s.Append(Report{Lat: float64(i), Lon: 0})
		if ref != int64(i+1) {
			t.Fatalf("expected ref %d, got %d", i+1, ref)
		}
	}
	all := s.All()
	if len(all) != 5 {
		t.Fatalf("expected 5 reports, got %d", len(all))
	}
	for i, r := range all {
		if r.Ref != int64(i+1) {
			t.Fatalf("report %d has ref %d", i, r.Ref)
		}
	}
}

func TestStore_AllIsASnapshot(t *testing.T) {
	s := NewStore()
	s.Append(Report{Lat: 1})
	snap := s.All()
	s.Append(Report{Lat: 2})
	if len(snap) != 1 {
		t.Fatalf("snapshot grew after append: %d", len(snap))
	}
	snap[0].Lat = 99
	again := s.All()
	if again[0].Lat != 1 {
		t.Fatalf("snapshot mutation leaked into the store")
	}
}

func TestStore_ReplaceLastKeepsRef(t *testing.T) {
	s := NewStore()
	s.Append(Report{Lat: 1})
	s.Append(Report{Lat: 2})

	speed := 3.5
	last, _ := s.Last()
	last.SpeedKt = &speed
	if !s.ReplaceLast(last) {
		t.Fatalf("expected replace to succeed")
	}
	got, _ := s.Last()
	if got.Ref != 2 {
		t.Fatalf("ref changed on replace: %d", got.Ref)
	}
	if got.SpeedKt == nil || *got.SpeedKt != 3.5 {
		t.Fatalf("speed not applied: %+v", got.SpeedKt)
	}
	if s.Count() != 2 {
		t.Fatalf("replace must not change the count, got %d", s.Count())
	}
}

func TestStore_ReplaceLastEmpty(t *testing.T) {
	s := NewStore()
	if s.ReplaceLast(Report{}) {
		t.Fatalf("replace on empty store must fail")
	}
}

func TestStore_ResetRestartsNumbering(t *testing.T) {
	s := NewStore()
	s.Append(Report{})
	s.Append(Report{})
	s.Reset()
	if s.Count() != 0 {
		t.Fatalf("expected empty store after reset")
	}
	if ref := s.Append(Report{}); ref != 1 {
		t.Fatalf("expected numbering to restart at 1, got %d", ref)
	}
}

func TestStore_FirstLast(t *testing.T) {
	s := NewStore()
	if _, ok := s.Last(); ok {
		t.Fatalf("expected no last report on empty store")
	}
	t0 := time.Date(2021, 2, 10, 13, 57, 34, 0, time.UTC)
	s.Append(Report{Time: t0, HasDate: true})
	s.Append(Report{Time: t0.Add(time.Minute), HasDate: true})
	first, _ := s.First()
	last, _ := s.Last()
	if !first.Time.Equal(t0) || !last.Time.Equal(t0.Add(time.Minute)) {
		t.Fatalf("first/last mismatch: %v %v", first.Time, last.Time)
	}
}
