package game

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/bike-city/internal/backend"
)

// PositionSyncer pushes the player position to the backend at most once per
// interval, with at most one call in flight. Results are delivered on a
// buffered channel and drained by the owning session through Poll, so the
// session state is only ever touched from the session's goroutine.
type PositionSyncer struct {
	backend  backend.Backend
	playerID string
	interval time.Duration
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	last     time.Time
	inFlight bool
	closed   atomic.Bool
	results  chan error
}

// NewPositionSyncer creates a syncer for one player.
func NewPositionSyncer(b backend.Backend, playerID string, interval, timeout time.Duration) *PositionSyncer {
	ctx, cancel := context.WithCancel(context.Background())
	return &PositionSyncer{
		backend:  b,
		playerID: playerID,
		interval: interval,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
		results:  make(chan error, 1),
	}
}

// MaybeSync starts a sync of (x, y) unless the throttle window is still open,
// a previous sync has not been drained yet, or the syncer is closed. It
// reports whether a sync was started. The first call only opens the window,
// so the first push happens one interval after the session starts.
func (s *PositionSyncer) MaybeSync(now time.Time, x, y float64) bool {
	if s.closed.Load() || s.inFlight {
		return false
	}
	if s.last.IsZero() {
		s.last = now
		return false
	}
	if now.Sub(s.last) < s.interval {
		return false
	}

	s.last = now
	s.inFlight = true

	b, id, results := s.backend, s.playerID, s.results
	ctx, timeout := s.ctx, s.timeout
	go func() {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		results <- b.SetPlayerPosition(ctx, id, x, y)
	}()
	return true
}

// Poll collects the result of a finished sync without blocking. done is false
// while nothing has finished. Results arriving after Close are discarded.
func (s *PositionSyncer) Poll() (done bool, err error) {
	if s.closed.Load() {
		return false, nil
	}
	select {
	case err := <-s.results:
		s.inFlight = false
		return true, err
	default:
		return false, nil
	}
}

// InFlight reports whether a sync has been started and not yet drained.
func (s *PositionSyncer) InFlight() bool {
	return s.inFlight
}

// Close cancels any in-flight call. The syncer starts nothing afterwards.
// It is safe to call from any goroutine.
func (s *PositionSyncer) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.cancel()
}

// isCancellation reports whether err only says the syncer was shut down.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
