package app

import (
	"testing"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/session"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe()
	defer cancelA()
	b, cancelB := h.Subscribe()
	defer cancelB()

	h.Publish(Update{SessionID: "s1", Gesture: gesture.Five})

	for i, ch := range []<-chan Update{a, b} {
		select {
		case u := <-ch:
			if u.Gesture != gesture.Five {
				t.Errorf("subscriber %d: got %s, want %s", i, u.Gesture, gesture.Five)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer*2; i++ {
		h.Publish(Update{Gesture: gesture.A})
	}

	if len(ch) != subscriberBuffer {
		t.Errorf("expected a full buffer of %d, got %d", subscriberBuffer, len(ch))
	}
}

func TestHub_Cancel(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	if h.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", h.Subscribers())
	}

	cancel()
	cancel()

	if h.Subscribers() != 0 {
		t.Errorf("expected 0 subscribers, got %d", h.Subscribers())
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	h.Publish(Update{Gesture: gesture.B})
}

func TestNewUpdate(t *testing.T) {
	u := NewUpdate("abc", session.Result{Label: gesture.Three, Confidence: 0.95, HandDetected: true})

	if u.SessionID != "abc" || u.Short != "3" || !u.HandDetected {
		t.Errorf("unexpected update: %+v", u)
	}
	if u.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	none := NewUpdate("abc", session.Result{Label: gesture.NoHandDetected})
	if none.Short != "" {
		t.Errorf("no-hand short form should be empty, got %q", none.Short)
	}
}
