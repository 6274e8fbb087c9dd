// Package autosave coalesces bursts of board edits into a single save.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/models"
)

// SaveFunc persists one snapshot.
type SaveFunc func(ctx context.Context, state models.BoardState) error

type Config struct {
	// QuietWindow is how long the board must stay unchanged before the
	// pending snapshot is written.
	QuietWindow time.Duration
	Save        SaveFunc
	// OnSaved and OnError are optional. They run on the saving goroutine.
	OnSaved func(at time.Time, state models.BoardState)
	OnError func(err error)
}

// Saver holds at most one pending snapshot. Each Request replaces it and
// restarts the quiet window; only the newest snapshot is ever written.
type Saver struct {
	cfg Config

	reqCh     chan struct{}
	readyOnce sync.Once
	ready     chan struct{}

	mu       sync.Mutex
	pending  *models.BoardState
	requests int

	// saveMu serializes Flush calls with timer-driven saves.
	saveMu sync.Mutex
}

func New(cfg Config) (*Saver, error) {
	if cfg.Save == nil {
		return nil, errors.New("save function is required")
	}
	if cfg.QuietWindow <= 0 {
		return nil, errors.New("quiet window must be > 0")
	}
	return &Saver{
		cfg:   cfg,
		reqCh: make(chan struct{}, 1),
		ready: make(chan struct{}),
	}, nil
}

// Ready is closed once Run is accepting requests.
func (s *Saver) Ready() <-chan struct{} {
	return s.ready
}

// Request schedules state for saving. It never blocks.
func (s *Saver) Request(state models.BoardState) {
	s.mu.Lock()
	s.pending = &state
	s.requests++
	s.mu.Unlock()

	select {
	case s.reqCh <- struct{}{}:
	default:
	}
}

// Pending reports whether a snapshot is waiting to be written.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Flush writes the pending snapshot now. It is a no-op when nothing is pending.
func (s *Saver) Flush(ctx context.Context) error {
	return s.save(ctx)
}

// Run drives the quiet-window timer until ctx is cancelled. A snapshot still
// pending at that point is left for Flush.
func (s *Saver) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	s.readyOnce.Do(func() { close(s.ready) })

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-s.reqCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.cfg.QuietWindow)
			timerC = timer.C
		case <-timerC:
			timerC = nil
			_ = s.save(ctx)
		}
	}
}

func (s *Saver) save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	state := s.pending
	count := s.requests
	s.pending = nil
	s.requests = 0
	s.mu.Unlock()

	if state == nil {
		return nil
	}

	if err := s.cfg.Save(ctx, *state); err != nil {
		err = fmt.Errorf("failed to save board: %w", err)
		logger.Warn("Autosave failed", "error", err, "coalesced", count)
		if s.cfg.OnError != nil {
			s.cfg.OnError(err)
		}
		return err
	}

	logger.Debug("Board saved", "rows", len(state.Rows), "coalesced", count)
	if s.cfg.OnSaved != nil {
		s.cfg.OnSaved(time.Now(), *state)
	}
	return nil
}
