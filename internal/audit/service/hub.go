package service

import (
	"sync"

	"go.uber.org/zap"

	"github.com/prasetyowira/credential-core/internal/audit/dto"
)

const subscriberBuffer = 64

// Subscriber is the contract exposed to the real-time transport: events are
// pushed, never acknowledged, and missed events are not replayed.
type Subscriber interface {
	OnSecurityEvent(e dto.SecurityEventOutput)
}

type subscription struct {
	sink Subscriber
	ch   chan dto.SecurityEventOutput
	done chan struct{}
}

// Hub fans persisted security events out to live subscribers. Delivery is
// decoupled from the durable publish path: each subscriber drains its own
// buffered channel on its own goroutine, and a full buffer drops the event
// rather than blocking audit persistence.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscription]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[*subscription]struct{}),
		logger: logger,
	}
}

// Subscribe registers a live observer and returns its cancel function.
func (h *Hub) Subscribe(s Subscriber) (cancel func()) {
	sub := &subscription{
		sink: s,
		ch:   make(chan dto.SecurityEventOutput, subscriberBuffer),
		done: make(chan struct{}),
	}

	go sub.run()

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
		close(sub.done)
	}
}

// Broadcast offers the event to every subscriber without blocking.
func (h *Hub) Broadcast(e dto.SecurityEventOutput) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.ch <- e:
		default:
			h.logger.Warn("dropping security event for slow subscriber",
				zap.String("event_id", e.ID))
		}
	}
}

func (s *subscription) run() {
	for {
		select {
		case e := <-s.ch:
			s.sink.OnSecurityEvent(e)
		case <-s.done:
			return
		}
	}
}
