package events

// Handler is the interface for event handlers.
type Handler interface {
	// Handles returns the event types this handler processes.
	Handles() []string

	// Handle processes the given event. It must tolerate redelivery.
	Handle(event Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc struct {
	eventTypes []string
	fn         func(Event) error
}

// NewHandlerFunc creates a new HandlerFunc.
func NewHandlerFunc(eventTypes []string, fn func(Event) error) *HandlerFunc {
	return &HandlerFunc{
		eventTypes: eventTypes,
		fn:         fn,
	}
}

// Handles returns the event types this handler processes.
func (h *HandlerFunc) Handles() []string {
	return h.eventTypes
}

// Handle processes the given event.
func (h *HandlerFunc) Handle(event Event) error {
	return h.fn(event)
}
