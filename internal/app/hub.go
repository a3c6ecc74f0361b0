package app

import (
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/session"
)

// subscriberBuffer is how many updates a subscriber may fall behind before
// it starts missing them.
const subscriberBuffer = 32

// Update is a frame result as broadcast to subscribers.
type Update struct {
	SessionID    string        `json:"session_id"`
	Gesture      gesture.Label `json:"gesture"`
	Short        string        `json:"short"`
	Confidence   float64       `json:"confidence"`
	HandDetected bool          `json:"hand_detected"`
	Timestamp    time.Time     `json:"timestamp"`
}

// NewUpdate builds the broadcast form of a session result.
func NewUpdate(sessionID string, res session.Result) Update {
	return Update{
		SessionID:    sessionID,
		Gesture:      res.Label,
		Short:        gesture.ShortForm(res.Label),
		Confidence:   res.Confidence,
		HandDetected: res.HandDetected,
		Timestamp:    time.Now().UTC(),
	}
}

// Hub fans updates out to any number of subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses the update.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Update]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Update]struct{})}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers u to every subscriber with room in its buffer.
func (h *Hub) Publish(u Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// Subscribers reports the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
