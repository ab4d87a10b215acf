// Package notify tracks table-level invalidations so live queries know when to
// re-read. A Hub delivers in-process; a RedisBridge extends it to other
// processes that share the same database file.
package notify

import (
	"context"
	"log"
	"sync"
)

// Forwarder receives every locally raised invalidation.
type Forwarder interface {
	Forward(ctx context.Context, table string) error
}

type subscriber struct {
	tables map[string]struct{}
	ch     chan struct{}
}

// Hub fans invalidations out to subscribers. The zero value is not usable;
// call NewHub.
type Hub struct {
	mu         sync.Mutex
	next       uint64
	subs       map[uint64]*subscriber
	forwarders []Forwarder
}

func NewHub() *Hub {
	return &Hub{subs: map[uint64]*subscriber{}}
}

// AddForwarder registers f for every later Invalidate call.
func (h *Hub) AddForwarder(f Forwarder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.forwarders = append(h.forwarders, f)
}

// Subscribe returns a channel signalled whenever one of tables is invalidated,
// and a func that unsubscribes and closes it. Signals coalesce: a subscriber
// that has not drained the previous one sees a single pending signal.
func (h *Hub) Subscribe(tables ...string) (<-chan struct{}, func()) {
	s := &subscriber{tables: make(map[string]struct{}, len(tables)), ch: make(chan struct{}, 1)}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = s
	h.mu.Unlock()

	var once sync.Once
	return s.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(s.ch)
		})
	}
}

// Invalidate marks table as changed for local subscribers and forwards the
// change. Forwarding errors are logged, never returned: the local write has
// already happened.
func (h *Hub) Invalidate(ctx context.Context, table string) {
	h.Deliver(table)

	h.mu.Lock()
	forwarders := append([]Forwarder(nil), h.forwarders...)
	h.mu.Unlock()
	for _, f := range forwarders {
		if err := f.Forward(ctx, table); err != nil {
			log.Printf("notify: forward %s: %v", table, err)
		}
	}
}

// Deliver signals local subscribers of table without forwarding.
func (h *Hub) Deliver(table string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		if _, ok := s.tables[table]; !ok {
			continue
		}
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

// Forwarders reports the number of registered forwarders.
func (h *Hub) Forwarders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.forwarders)
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
