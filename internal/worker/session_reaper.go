package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizraft/quizraft-backend/internal/quiz"
)

// sweepInterval is how often the reaper scans for idle sessions.
const sweepInterval = time.Minute

// SessionReaper evicts quiz sessions that have been idle longer than the
// configured TTL. Without it sessions accumulate for the process lifetime.
type SessionReaper struct {
	registry *quiz.Registry
	ttl      time.Duration
	log      zerolog.Logger
}

// NewSessionReaper creates a new SessionReaper. A TTL of zero disables it.
func NewSessionReaper(registry *quiz.Registry, ttl time.Duration, log zerolog.Logger) *SessionReaper {
	return &SessionReaper{
		registry: registry,
		ttl:      ttl,
		log:      log.With().Str("component", "session_reaper").Logger(),
	}
}

// Start begins the reaper loop. Call in a goroutine.
func (w *SessionReaper) Start(ctx context.Context) {
	if w.ttl <= 0 {
		w.log.Info().Msg("Session TTL disabled, reaper not running")
		return
	}

	w.log.Info().Dur("ttl", w.ttl).Msg("Worker started")
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			if evicted := w.registry.Sweep(w.ttl); evicted > 0 {
				w.log.Info().
					Int("evicted", evicted).
					Int("remaining", w.registry.Len()).
					Msg("Evicted idle sessions")
			}
		}
	}
}
