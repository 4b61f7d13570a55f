package notify

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// subscriberBuffer bounds how many undelivered events a slow session may
// accumulate before further events are dropped for it.
const subscriberBuffer = 64

// Subscription is one connected session's view of the hub. Events arrive
// serialized on C until Unsubscribe closes it.
type Subscription struct {
	id    uint64
	rooms []string
	ch    chan []byte
}

// C returns the channel events are delivered on.
func (s *Subscription) C() <-chan []byte { return s.ch }

// Hub fans events out to all sessions subscribed to the target rooms.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[uint64]*Subscription
	nextID atomic.Uint64
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[uint64]*Subscription),
		logger: logger,
	}
}

// Subscribe registers a new session in the given rooms.
func (h *Hub) Subscribe(rooms ...string) *Subscription {
	sub := &Subscription{
		id:    h.nextID.Add(1),
		rooms: rooms,
		ch:    make(chan []byte, subscriberBuffer),
	}

	h.mu.Lock()
	for _, room := range rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[uint64]*Subscription)
		}
		h.rooms[room][sub.id] = sub
	}
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes the session from all its rooms and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var found bool
	for _, room := range sub.rooms {
		if subs, ok := h.rooms[room]; ok {
			if _, ok := subs[sub.id]; ok {
				delete(subs, sub.id)
				found = true
			}
			if len(subs) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	if found {
		close(sub.ch)
	}
}

// Publish delivers the event to every subscriber of its rooms, at most once
// per session even when a session is in several target rooms. The send is
// non-blocking: a session whose buffer is full misses the event.
func (h *Hub) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode event", zap.String("event", event.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := make(map[uint64]struct{})
	for _, room := range event.Rooms {
		for id, sub := range h.rooms[room] {
			if _, seen := delivered[id]; seen {
				continue
			}
			delivered[id] = struct{}{}
			select {
			case sub.ch <- data:
			default:
				h.logger.Warn("dropping event for slow subscriber",
					zap.String("event", event.Type), zap.String("room", room))
			}
		}
	}
}

// SubscriberCount reports how many sessions are subscribed to a room.
func (h *Hub) SubscriberCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Close disconnects every session, closing all their channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	closed := make(map[uint64]struct{})
	for room, subs := range h.rooms {
		for id, sub := range subs {
			if _, done := closed[id]; !done {
				close(sub.ch)
				closed[id] = struct{}{}
			}
		}
		delete(h.rooms, room)
	}
}
