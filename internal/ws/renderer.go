package ws

import (
	"context"

	"go-ferre-inventory/internal/confirm"
	"go-ferre-inventory/internal/repository"
	"go-ferre-inventory/internal/view"
)

// RenderMessage redraws a session: its screen state plus every list.
type RenderMessage struct {
	Type  string     `json:"type"`
	State view.State `json:"state"`
	*repository.Snapshot
}

// ConfirmMessage opens or closes the confirmation prompt of a session.
type ConfirmMessage struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
	OK      *bool  `json:"ok,omitempty"`
}

// ActionFailedMessage tells a session that an action it confirmed could not
// be carried out.
type ActionFailedMessage struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Error string `json:"error"`
}

// ActionFailed reports err to the session that answered confirmation id.
func (h *Hub) ActionFailed(sessionID, confirmationID string, err error) {
	h.SendTo(sessionID, ActionFailedMessage{Type: "action_failed", ID: confirmationID, Error: err.Error()})
}

// Renderer pushes a full redraw to one session after each transition.
type Renderer struct {
	hub       *Hub
	repo      *repository.Repository
	sessionID string
}

func NewRenderer(hub *Hub, repo *repository.Repository, sessionID string) *Renderer {
	return &Renderer{hub: hub, repo: repo, sessionID: sessionID}
}

func (r *Renderer) Render(ctx context.Context, state view.State) error {
	snap, err := r.repo.Snapshot(ctx)
	if err != nil {
		return err
	}
	r.hub.SendTo(r.sessionID, RenderMessage{Type: "render", State: state, Snapshot: snap})
	return nil
}

// Prompter shows and hides confirmation prompts on one session.
type Prompter struct {
	hub       *Hub
	sessionID string
}

func NewPrompter(hub *Hub, sessionID string) *Prompter {
	return &Prompter{hub: hub, sessionID: sessionID}
}

func (p *Prompter) Prompt(r confirm.Request) {
	p.hub.SendTo(p.sessionID, ConfirmMessage{Type: "confirm", ID: r.ID, Message: r.Message})
}

func (p *Prompter) Resolved(r confirm.Request, ok bool) {
	p.hub.SendTo(p.sessionID, ConfirmMessage{Type: "confirm_resolved", ID: r.ID, OK: &ok})
}

// SessionWiring connects new sessions to the hub.
func SessionWiring(hub *Hub, repo *repository.Repository) func(string) (view.Renderer, confirm.Notifier) {
	return func(sessionID string) (view.Renderer, confirm.Notifier) {
		return NewRenderer(hub, repo, sessionID), NewPrompter(hub, sessionID)
	}
}
