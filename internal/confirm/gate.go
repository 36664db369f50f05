// Package confirm asks the user a yes/no question on behalf of an action and
// hands the answer back to it once the user responds.
package confirm

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrPending        = errors.New("a confirmation is already pending")
	ErrUnknownRequest = errors.New("unknown confirmation request")
)

// Request is the question shown to the user.
type Request struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Notifier is told when a question opens and when it is answered, so the UI
// can show and hide the prompt.
type Notifier interface {
	Prompt(r Request)
	Resolved(r Request, ok bool)
}

type nopNotifier struct{}

func (nopNotifier) Prompt(Request)         {}
func (nopNotifier) Resolved(Request, bool) {}

// Gate holds at most one open question. A second Request while one is open
// fails with ErrPending.
type Gate struct {
	mu      sync.Mutex
	pending *Pending
	notify  Notifier
}

func NewGate(n Notifier) *Gate {
	if n == nil {
		n = nopNotifier{}
	}
	return &Gate{notify: n}
}

// Pending is an open question. Wait blocks until it is answered.
type Pending struct {
	Request
	gate   *Gate
	answer chan bool
}

func (g *Gate) Request(ctx context.Context, message string) (*Pending, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	if g.pending != nil {
		g.mu.Unlock()
		return nil, ErrPending
	}
	p := &Pending{
		Request: Request{ID: uuid.NewString(), Message: message},
		gate:    g,
		answer:  make(chan bool, 1),
	}
	g.pending = p
	g.mu.Unlock()

	g.notify.Prompt(p.Request)
	return p, nil
}

// Current returns the open question, if any.
func (g *Gate) Current() (Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return Request{}, false
	}
	return g.pending.Request, true
}

// Resolve answers the open question with the given id.
func (g *Gate) Resolve(id string, ok bool) error {
	g.mu.Lock()
	p := g.pending
	if p == nil || p.ID != id {
		g.mu.Unlock()
		return ErrUnknownRequest
	}
	g.pending = nil
	g.mu.Unlock()

	p.answer <- ok
	g.notify.Resolved(p.Request, ok)
	return nil
}

// Dismiss closes the question without a choice, which counts as no.
func (g *Gate) Dismiss(id string) error {
	return g.Resolve(id, false)
}

// Wait returns the user's answer. When ctx ends first the question is
// dismissed and Wait returns false. Wait must be called at most once.
func (p *Pending) Wait(ctx context.Context) bool {
	select {
	case ok := <-p.answer:
		return ok
	case <-ctx.Done():
		// a concurrent Resolve may have won; either way one answer is queued
		_ = p.gate.Dismiss(p.ID)
		return <-p.answer
	}
}
