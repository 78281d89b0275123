package store

import "sync"

// Hub connects stores whose records depend on each other. Every successful
// write through a store notifies all live queries of all stores sharing the
// hub, so that e.g. adding a consumption refreshes spending plan observers.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Notify wakes up all subscribers. It never blocks, a subscriber that has
// not yet consumed the previous notification is not notified twice.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	return ch
}

func (h *Hub) unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	delete(h.subscribers, ch)
	h.mu.Unlock()
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subscribers)
}
