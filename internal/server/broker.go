package server

import (
	"encoding/json"
	"sync"
)

// SSEEvent is the payload published to a device's subscribers. Every
// score or stage mutation emits one so a second tab stays in sync.
type SSEEvent struct {
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
	Score    int    `json:"score"`
	Stage    int    `json:"stage"`
}

// Broker is an in-process pub/sub for SSE events, keyed by device ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded SSE events for the given device.
func (b *Broker) Subscribe(deviceID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[deviceID] == nil {
		b.subs[deviceID] = make(map[chan []byte]struct{})
	}
	b.subs[deviceID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the device's subscribers.
func (b *Broker) Unsubscribe(deviceID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[deviceID], ch)
	if len(b.subs[deviceID]) == 0 {
		delete(b.subs, deviceID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given device.
func (b *Broker) Publish(deviceID string, event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[deviceID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// publishProgress is the common post-mutation notification.
func (b *Broker) publishProgress(d deviceDoc, eventType, category string) {
	b.Publish(d.ID, SSEEvent{
		Type:     eventType,
		Category: category,
		Score:    d.Score,
		Stage:    d.Stage,
	})
}
