// Package session keeps one screen state machine and one confirmation gate
// per logged-in user.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-ferre-inventory/internal/confirm"
	"go-ferre-inventory/internal/view"
	"go-ferre-inventory/pkg/clock"
)

type Session struct {
	ID        string
	Username  string
	Machine   *view.Machine
	Gate      *confirm.Gate
	CreatedAt time.Time
}

// Wiring builds the renderer and the prompt notifier for a new session.
type Wiring func(sessionID string) (view.Renderer, confirm.Notifier)

type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	wire     Wiring
	clock    clock.Clock
	maxAge   time.Duration
}

// NewRegistry returns an empty registry. Sessions older than maxAge are
// dropped on the next Open; a zero maxAge keeps them until Close.
func NewRegistry(wire Wiring, clk clock.Clock, maxAge time.Duration) *Registry {
	if wire == nil {
		wire = func(string) (view.Renderer, confirm.Notifier) { return nil, nil }
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		wire:     wire,
		clock:    clk,
		maxAge:   maxAge,
	}
}

// Open logs username in on a fresh session. The session is registered only
// if the login transition succeeds.
func (r *Registry) Open(ctx context.Context, username string) (*Session, error) {
	id := uuid.NewString()
	renderer, notifier := r.wire(id)

	s := &Session{
		ID:        id,
		Machine:   view.NewMachine(renderer),
		Gate:      confirm.NewGate(notifier),
		CreatedAt: r.clock.Now(),
	}
	if err := s.Machine.Login(ctx, username); err != nil {
		return nil, err
	}
	s.Username = s.Machine.State().Username

	r.mu.Lock()
	r.prune()
	r.sessions[id] = s
	r.mu.Unlock()
	return s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, view.ErrNotLoggedIn
	}
	return s, nil
}

func (r *Registry) Close(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) prune() {
	if r.maxAge <= 0 {
		return
	}
	cutoff := r.clock.Now().Add(-r.maxAge)
	for id, s := range r.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
