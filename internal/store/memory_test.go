package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/onecall-weather/internal/weather"
)

func TestMemoryStore_EmptyUntilFirstSave(t *testing.T) {
	s := NewMemoryStore(5)

	if _, err := s.GetLatest(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Hourly) != 5 {
		t.Errorf("expected 5 hourly slots, got %d", len(snap.Hourly))
	}
	if snap.Current.Trend != weather.TrendUnknown {
		t.Errorf("expected initial trend %q, got %q", weather.TrendUnknown, snap.Current.Trend)
	}
}

func TestMemoryStore_SaveAndCopySemantics(t *testing.T) {
	s := NewMemoryStore(3)

	snap := s.Snapshot()
	snap.UpdatedAt = time.Now().UTC()
	snap.Hourly[0].Temperature = 21
	s.SaveSnapshot(snap)

	// mutating the caller's copy must not leak into the store
	snap.Hourly[0].Temperature = -5

	got, err := s.GetLatest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hourly[0].Temperature != 21 {
		t.Errorf("expected 21, got %v", got.Hourly[0].Temperature)
	}

	got.Hourly[0].Temperature = 99
	again, _ := s.GetLatest()
	if again.Hourly[0].Temperature != 21 {
		t.Errorf("reader copy leaked into the store")
	}
}

func TestMemoryStore_Reset(t *testing.T) {
	s := NewMemoryStore(4)
	snap := s.Snapshot()
	snap.UpdatedAt = time.Now()
	snap.Current.Temperature = 10
	s.SaveSnapshot(snap)

	s.Reset()

	if _, err := s.GetLatest(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after reset, got %v", err)
	}
	if got := s.Snapshot(); len(got.Hourly) != 4 || got.Current.Temperature != 0 {
		t.Errorf("unexpected snapshot after reset: %+v", got.Current)
	}
}
