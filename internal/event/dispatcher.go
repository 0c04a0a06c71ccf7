package event

import (
	"context"

	"go.uber.org/zap"
)

// Handler reacts to one kind of domain event. Events are already-committed
// facts, so handlers must tolerate at-least-once semantics across process
// restarts and must not assume exclusive access to shared state.
type Handler interface {
	Handle(ctx context.Context, e Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, e Event) error

func (f HandlerFunc) Handle(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Dispatcher routes events to the handlers registered for their kind. The
// registry is populated at startup and read-only afterwards.
type Dispatcher struct {
	handlers map[Kind][]Handler
	logger   *zap.Logger
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Kind][]Handler),
		logger:   logger,
	}
}

// Register appends a handler for the given kind. Handlers for one kind run in
// registration order.
func (d *Dispatcher) Register(kind Kind, h Handler) {
	d.handlers[kind] = append(d.handlers[kind], h)
}

// Dispatch delivers each event to every handler registered for its kind, in
// raise order. A failing handler is logged and skipped; it never blocks other
// handlers, other events, or the business operation that raised the event.
func (d *Dispatcher) Dispatch(ctx context.Context, events []Event) {
	for _, e := range events {
		for _, h := range d.handlers[e.Kind()] {
			if err := h.Handle(ctx, e); err != nil {
				d.logger.Error("domain event handler failed",
					zap.String("kind", string(e.Kind())),
					zap.Error(err))
			}
		}
	}
}
