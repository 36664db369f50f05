// Package view tracks which screen a session shows and which record, if any,
// the open form is editing.
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Screen string

const (
	ScreenLogin         Screen = "login"
	ScreenDashboard     Screen = "dashboard"
	ScreenInventoryList Screen = "inventoryList"
	ScreenProductForm   Screen = "productForm"
	ScreenSupplierList  Screen = "supplierList"
	ScreenSupplierForm  Screen = "supplierForm"
	ScreenSalesList     Screen = "salesList"
)

var (
	ErrInvalidTransition = errors.New("invalid screen transition")
	ErrEmptyUsername     = errors.New("username is required")
	ErrNotLoggedIn       = errors.New("not logged in")
)

// ParseScreen accepts any screen name defined above.
func ParseScreen(s string) (Screen, bool) {
	switch sc := Screen(s); sc {
	case ScreenLogin, ScreenDashboard, ScreenInventoryList, ScreenProductForm,
		ScreenSupplierList, ScreenSupplierForm, ScreenSalesList:
		return sc, true
	}
	return "", false
}

// EditTarget is either None (a new record) or the ID of the record the form
// is editing.
type EditTarget struct {
	id string
}

// None is the edit target of a form creating a new record.
var None = EditTarget{}

func Editing(id string) EditTarget { return EditTarget{id: id} }

// ID returns the edited record ID and whether there is one.
func (t EditTarget) ID() (string, bool) { return t.id, t.id != "" }

func (t EditTarget) IsNone() bool { return t.id == "" }

func (t EditTarget) String() string {
	if t.IsNone() {
		return "none"
	}
	return "id(" + t.id + ")"
}

func (t EditTarget) MarshalText() ([]byte, error) {
	return []byte(t.id), nil
}

// State is what the renderer needs to draw a session.
type State struct {
	Screen          Screen     `json:"screen"`
	Username        string     `json:"username,omitempty"`
	EditingProduct  EditTarget `json:"editingProduct"`
	EditingSupplier EditTarget `json:"editingSupplier"`
}

// Renderer redraws every list view after a transition. Rendering must not
// change data.
type Renderer interface {
	Render(ctx context.Context, state State) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, state State) error

func (f RendererFunc) Render(ctx context.Context, state State) error { return f(ctx, state) }

// Machine is the screen state of one session. It starts on the login screen.
type Machine struct {
	mu       sync.Mutex
	state    State
	renderer Renderer
}

func NewMachine(r Renderer) *Machine {
	if r == nil {
		r = RendererFunc(func(context.Context, State) error { return nil })
	}
	return &Machine{state: State{Screen: ScreenLogin}, renderer: r}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Login moves from the login screen to the dashboard. Any non-empty
// username is accepted.
func (m *Machine) Login(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	return m.transition(ctx, func(s *State) error {
		if s.Screen != ScreenLogin {
			return m.invalid(s.Screen, ScreenDashboard)
		}
		s.Screen = ScreenDashboard
		s.Username = username
		return nil
	})
}

// Logout returns to the login screen when the user confirmed. An unconfirmed
// logout leaves the state alone and does not re-render.
func (m *Machine) Logout(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return nil
	}
	return m.transition(ctx, func(s *State) error {
		if s.Screen != ScreenDashboard {
			return m.invalid(s.Screen, ScreenLogin)
		}
		*s = State{Screen: ScreenLogin}
		return nil
	})
}

// Open shows one of the list screens from the dashboard menu.
func (m *Machine) Open(ctx context.Context, target Screen) error {
	return m.transition(ctx, func(s *State) error {
		if s.Screen != ScreenDashboard {
			return m.invalid(s.Screen, target)
		}
		switch target {
		case ScreenInventoryList, ScreenSupplierList, ScreenSalesList:
			s.Screen = target
			return nil
		}
		return m.invalid(s.Screen, target)
	})
}

// Back leaves a form for its list, or a list for the dashboard. Leaving a
// form clears its edit target.
func (m *Machine) Back(ctx context.Context) error {
	return m.transition(ctx, func(s *State) error {
		switch s.Screen {
		case ScreenProductForm:
			s.Screen = ScreenInventoryList
			s.EditingProduct = None
		case ScreenSupplierForm:
			s.Screen = ScreenSupplierList
			s.EditingSupplier = None
		case ScreenInventoryList, ScreenSupplierList, ScreenSalesList:
			s.Screen = ScreenDashboard
		default:
			return fmt.Errorf("%w: no way back from %s", ErrInvalidTransition, s.Screen)
		}
		return nil
	})
}

func (m *Machine) NewProduct(ctx context.Context) error {
	return m.openForm(ctx, ScreenInventoryList, ScreenProductForm, func(s *State) { s.EditingProduct = None })
}

func (m *Machine) EditProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty product id", ErrInvalidTransition)
	}
	return m.openForm(ctx, ScreenInventoryList, ScreenProductForm, func(s *State) { s.EditingProduct = Editing(id) })
}

// ProductSaved closes the product form after a successful save.
func (m *Machine) ProductSaved(ctx context.Context) error {
	return m.closeForm(ctx, ScreenProductForm, ScreenInventoryList, func(s *State) { s.EditingProduct = None })
}

func (m *Machine) NewSupplier(ctx context.Context) error {
	return m.openForm(ctx, ScreenSupplierList, ScreenSupplierForm, func(s *State) { s.EditingSupplier = None })
}

func (m *Machine) EditSupplier(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty supplier id", ErrInvalidTransition)
	}
	return m.openForm(ctx, ScreenSupplierList, ScreenSupplierForm, func(s *State) { s.EditingSupplier = Editing(id) })
}

func (m *Machine) SupplierSaved(ctx context.Context) error {
	return m.closeForm(ctx, ScreenSupplierForm, ScreenSupplierList, func(s *State) { s.EditingSupplier = None })
}

// Expect fails with ErrInvalidTransition unless the session is on screen.
func (m *Machine) Expect(screen Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Screen != screen {
		return fmt.Errorf("%w: %s requires %s", ErrInvalidTransition, m.state.Screen, screen)
	}
	return nil
}

// Refresh re-renders the current state without changing it.
func (m *Machine) Refresh(ctx context.Context) error {
	return m.transition(ctx, func(*State) error { return nil })
}

func (m *Machine) openForm(ctx context.Context, from, to Screen, set func(*State)) error {
	return m.transition(ctx, func(s *State) error {
		if s.Screen != from {
			return m.invalid(s.Screen, to)
		}
		s.Screen = to
		set(s)
		return nil
	})
}

func (m *Machine) closeForm(ctx context.Context, from, to Screen, reset func(*State)) error {
	return m.transition(ctx, func(s *State) error {
		if s.Screen != from {
			return m.invalid(s.Screen, to)
		}
		s.Screen = to
		reset(s)
		return nil
	})
}

// transition applies change to a copy of the state, commits it on success and
// triggers a full re-render. The state is committed even if rendering fails.
func (m *Machine) transition(ctx context.Context, change func(*State) error) error {
	m.mu.Lock()
	next := m.state
	if err := change(&next); err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = next
	m.mu.Unlock()

	if err := m.renderer.Render(ctx, next); err != nil {
		return fmt.Errorf("render %s: %w", next.Screen, err)
	}
	return nil
}

func (m *Machine) invalid(from, to Screen) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
