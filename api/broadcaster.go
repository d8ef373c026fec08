package api

import "sync"

// EventType identifies the kind of event a Broadcaster fans out to
// WebSocket subscribers.
type EventType string

const (
	// EventTypeDatasetCreated fires once a dataset finishes building.
	EventTypeDatasetCreated EventType = "dataset_created"
	// EventTypeQuery fires after each rank/symbol/prefix_rank query, so a
	// subscriber can watch a benchmark run live instead of polling.
	EventTypeQuery EventType = "query"
)

// BroadcastEvent is sent to every WebSocket subscriber matching its
// DatasetID and Type.
type BroadcastEvent struct {
	Type      EventType              `json:"type"`
	DatasetID string                 `json:"datasetId"`
	Data      map[string]interface{} `json:"data"`
}

// Subscription is one WebSocket client's filter: DatasetID == "" means
// every dataset, and an empty EventTypes set means every event type.
type Subscription struct {
	DatasetID  string
	EventTypes map[EventType]bool
	Channel    chan BroadcastEvent
}

func (s *Subscription) matches(ev BroadcastEvent) bool {
	if s.DatasetID != "" && s.DatasetID != ev.DatasetID {
		return false
	}
	if len(s.EventTypes) > 0 && !s.EventTypes[ev.Type] {
		return false
	}
	return true
}

// Broadcaster fans events out to subscribed WebSocket clients without
// blocking the publisher on a slow or stalled client.
type Broadcaster struct {
	mu            sync.RWMutex
	subscriptions map[*Subscription]bool
	broadcast     chan BroadcastEvent
	register      chan *Subscription
	unregister    chan *Subscription
	done          chan struct{}
}

// NewBroadcaster creates and starts a Broadcaster's dispatch loop.
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		subscriptions: make(map[*Subscription]bool),
		broadcast:     make(chan BroadcastEvent, 256),
		register:      make(chan *Subscription),
		unregister:    make(chan *Subscription),
		done:          make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broadcaster) run() {
	for {
		select {
		case sub := <-b.register:
			b.mu.Lock()
			b.subscriptions[sub] = true
			b.mu.Unlock()
		case sub := <-b.unregister:
			b.mu.Lock()
			delete(b.subscriptions, sub)
			b.mu.Unlock()
			close(sub.Channel)
		case ev := <-b.broadcast:
			b.mu.RLock()
			for sub := range b.subscriptions {
				if !sub.matches(ev) {
					continue
				}
				select {
				case sub.Channel <- ev:
				default: // drop rather than block a slow client
				}
			}
			b.mu.RUnlock()
		case <-b.done:
			return
		}
	}
}

// Subscribe registers sub so it starts receiving matching events.
func (b *Broadcaster) Subscribe(sub *Subscription) { b.register <- sub }

// Unsubscribe stops sub from receiving further events.
func (b *Broadcaster) Unsubscribe(sub *Subscription) { b.unregister <- sub }

// Publish fans ev out to every matching subscriber.
func (b *Broadcaster) Publish(ev BroadcastEvent) {
	select {
	case b.broadcast <- ev:
	case <-b.done:
	}
}

// Close stops the dispatch loop. It does not close subscriber channels or
// their WebSocket connections.
func (b *Broadcaster) Close() { close(b.done) }
