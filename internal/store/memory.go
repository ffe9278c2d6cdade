package store

import (
	"errors"
	"sync"

	"github.com/i474232898/onecall-weather/internal/weather"
)

var (
	// ErrNotFound is returned when no decode cycle has been committed yet.
	ErrNotFound = errors.New("no weather data decoded yet")
)

// MemoryStore is a concurrency-safe owner of the single current record set.
// Readers always get deep copies, so a cycle in progress never shows through.
type MemoryStore struct {
	mu sync.RWMutex

	snapshot    weather.Snapshot
	maxReadings int
}

// NewMemoryStore creates a store whose hourly collection holds maxReadings slots.
func NewMemoryStore(maxReadings int) *MemoryStore {
	return &MemoryStore{
		snapshot:    weather.NewSnapshot(maxReadings),
		maxReadings: maxReadings,
	}
}

// Snapshot returns a copy of the held records, even before the first commit.
func (s *MemoryStore) Snapshot() weather.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// SaveSnapshot replaces the held records wholesale.
func (s *MemoryStore) SaveSnapshot(snapshot weather.Snapshot) {
	snapshot = snapshot.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

// GetLatest returns the most recently committed records.
func (s *MemoryStore) GetLatest() (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot.IsZero() {
		return weather.Snapshot{}, ErrNotFound
	}
	return s.snapshot.Clone(), nil
}

// Reset drops all records back to their zeroed startup state.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = weather.NewSnapshot(s.maxReadings)
}
