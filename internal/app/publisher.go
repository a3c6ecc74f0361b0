package app

import (
	"log"

	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

// Publisher hands every frame result to the hub and, when recording is on,
// to the detection log.
type Publisher struct {
	hub        *Hub
	detections *store.DetectionRepository
}

// NewPublisher creates a publisher over hub. A nil st disables recording.
func NewPublisher(hub *Hub, st *store.Store) *Publisher {
	p := &Publisher{hub: hub}
	if st != nil {
		p.detections = st.Detections()
	}
	return p
}

// Hub returns the hub results are broadcast on.
func (p *Publisher) Hub() *Hub {
	return p.hub
}

// Recording reports whether results are written to the store.
func (p *Publisher) Recording() bool {
	return p.detections != nil
}

// Publish broadcasts res for sessionID and records it. Store failures are
// logged and not returned.
func (p *Publisher) Publish(sessionID string, res session.Result) Update {
	u := NewUpdate(sessionID, res)
	if p.hub != nil {
		p.hub.Publish(u)
	}

	if p.detections != nil {
		d := &store.Detection{
			SessionID:    sessionID,
			Label:        string(res.Label),
			Confidence:   res.Confidence,
			HandDetected: res.HandDetected,
			CreatedAt:    u.Timestamp,
		}
		if err := p.detections.Record(d); err != nil {
			log.Printf("Failed to record detection for %s: %v", sessionID, err)
		}
	}

	return u
}
