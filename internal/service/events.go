package service

// Event is a change notification pushed to connected screens.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Publisher delivers events to whoever listens. Implementations must not
// block the caller.
type Publisher interface {
	Publish(Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

func orNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
