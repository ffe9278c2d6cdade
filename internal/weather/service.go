package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Decode variants understood by ModesFor.
const (
	VariantOneCall = "onecall"
	VariantSplit   = "split"
)

var errNoFetcher = errors.New("no weather fetcher configured")

// ModesFor returns the ordered decode steps for one cycle of the given variant.
func ModesFor(variant string) ([]Mode, error) {
	switch variant {
	case "", VariantOneCall:
		return []Mode{ModeOneCall}, nil
	case VariantSplit:
		return []Mode{ModeCurrent, ModeForecast}, nil
	default:
		return nil, fmt.Errorf("unknown decode variant %q", variant)
	}
}

// Service runs decode cycles: fetch, decode, commit.
type Service struct {
	mu      sync.Mutex
	store   Store
	fetcher Fetcher
	decoder *Decoder
	modes   []Mode
	now     func() time.Time
}

// NewService creates a new Service. With no modes it decodes a single One Call document per cycle.
func NewService(store Store, fetcher Fetcher, decoder *Decoder, modes ...Mode) *Service {
	if len(modes) == 0 {
		modes = []Mode{ModeOneCall}
	}
	return &Service{
		store:   store,
		fetcher: fetcher,
		decoder: decoder,
		modes:   modes,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Refresh performs one decode cycle. Cycles never overlap. The store is only updated
// when every fetch and decode step of the cycle succeeds; otherwise the last good
// records stay in place.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetcher == nil {
		log.Printf("ERROR: service: %v", errNoFetcher)
		return errNoFetcher
	}

	cycleID := uuid.NewString()
	log.Printf("DEBUG: service: cycle %s starting with %d step(s) via %s", cycleID, len(s.modes), s.fetcher.Name())

	next := s.store.Snapshot()
	for _, mode := range s.modes {
		mode := mode
		err := s.fetcher.Fetch(ctx, func(body io.Reader) error {
			return s.decoder.Decode(body, mode, &next)
		})
		if err != nil {
			log.Printf("service: cycle %s %s step failed; keeping last good records: %v", cycleID, mode, err)
			return fmt.Errorf("%s step: %w", mode, err)
		}
	}

	next.CycleID = cycleID
	next.UpdatedAt = s.now()
	s.store.SaveSnapshot(next)

	log.Printf("INFO: service: cycle %s committed (trend %s)", cycleID, next.Current.Trend)
	return nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest() (Snapshot, error) {
	return s.store.GetLatest()
}

// Reset clears the records back to their startup state.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
}

// Units returns the unit system the decoder converts to.
func (s *Service) Units() Units {
	return s.decoder.Units
}
