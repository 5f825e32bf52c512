package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizraft/quizraft-backend/internal/model"
)

// ErrSessionNotFound means the registry holds no session with the given id.
var ErrSessionNotFound = errors.New("session not found")

// Registry is the process-wide keyed store of active quiz sessions. It owns
// every Session exclusively; callers look sessions up per request and never
// hold long-lived references.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create builds a new session over the given set and registers it under a
// fresh UUID. UUIDs are treated as practically unique; collisions are not
// re-checked.
func (r *Registry) Create(set model.QuestionSet, cfg model.QuizConfig) *Session {
	s := newSession(uuid.New().String(), set, cfg)

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

// Get looks up a session by id and stamps it as recently used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch()
	return s, nil
}

// Invalidate removes a session from the registry.
func (r *Registry) Invalidate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep evicts every session idle for longer than maxIdle and returns how
// many were removed. A maxIdle of zero or less evicts nothing.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if s.idleFor(now) > maxIdle {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}
