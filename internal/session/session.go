// Package session tracks gesture detection for one input stream: the recent
// label history, per-label statistics, and the latest result.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/landmark"
)

// State is the detection state of a session.
type State int

const (
	// NoHand means the last accepted frame carried no hand.
	NoHand State = iota
	// Classifying means the last accepted frame carried a hand.
	Classifying
)

func (s State) String() string {
	switch s {
	case NoHand:
		return "no_hand"
	case Classifying:
		return "classifying"
	default:
		return "unknown"
	}
}

// MarshalText lets State appear as a string in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "no_hand":
		*s = NoHand
	case "classifying":
		*s = Classifying
	default:
		return fmt.Errorf("unknown session state %q", text)
	}
	return nil
}

// Result is the outcome of one processed frame.
type Result struct {
	Label        gesture.Label `json:"gesture"`
	Confidence   float64       `json:"confidence"`
	HandDetected bool          `json:"hand_detected"`

	// Raw is the unsmoothed label for this frame and Vote is the winning
	// label's share of the history window. Both are diagnostics only.
	Raw  gesture.Label `json:"-"`
	Vote float64       `json:"-"`
}

var noHandResult = Result{Label: gesture.NoHandDetected}

// Status is a point-in-time snapshot of a session.
type Status struct {
	ID           string                `json:"id"`
	Label        gesture.Label         `json:"current_gesture"`
	Confidence   float64               `json:"confidence"`
	HandDetected bool                  `json:"hand_detected"`
	Stats        map[gesture.Label]int `json:"stats"`
	State        State                 `json:"state"`
	Frames       int                   `json:"frames"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// Session owns the history, statistics and cached result for one stream.
// All methods are safe for concurrent use.
type Session struct {
	id        string
	createdAt time.Time
	now       func() time.Time

	mu        sync.Mutex
	smoother  *gesture.Smoother
	stats     map[gesture.Label]int
	result    Result
	state     State
	frames    int
	updatedAt time.Time
}

// New creates a session with an empty history of the given capacity.
func New(id string, historySize int) *Session {
	return newSession(id, historySize, time.Now)
}

func newSession(id string, historySize int, now func() time.Time) *Session {
	created := now()
	return &Session{
		id:        id,
		createdAt: created,
		now:       now,
		smoother:  gesture.NewSmoother(historySize),
		stats:     make(map[gesture.Label]int),
		result:    noHandResult,
		state:     NoHand,
		updatedAt: created,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// ProcessFrame runs one frame through classification, smoothing and
// confidence assignment.
//
// A nil hand or a hand with no points is a no-hand frame: the result is
// NoHandDetected and history and statistics are left alone. Any other point
// count besides landmark.NumPoints fails with
// landmark.ErrInvalidCount and changes nothing.
func (s *Session) ProcessFrame(hand *landmark.Hand) (Result, error) {
	if hand.Empty() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.result = noHandResult
		s.state = NoHand
		s.touch()
		return s.result, nil
	}

	raw, err := gesture.Classify(hand)
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	label, vote := s.smoother.Smooth(raw)
	if !label.IsSentinel() {
		s.stats[label]++
	}

	s.result = Result{
		Label:        label,
		Confidence:   gesture.Confidence(label),
		HandDetected: true,
		Raw:          raw,
		Vote:         vote,
	}
	s.state = Classifying
	s.touch()

	return s.result, nil
}

// touch records an accepted frame. Callers hold s.mu.
func (s *Session) touch() {
	s.frames++
	s.updatedAt = s.now()
}

// Current returns the cached result of the last accepted frame.
func (s *Session) Current() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Status returns a snapshot of the session. The stats map is a copy.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[gesture.Label]int, len(s.stats))
	for k, v := range s.stats {
		stats[k] = v
	}

	return Status{
		ID:           s.id,
		Label:        s.result.Label,
		Confidence:   s.result.Confidence,
		HandDetected: s.result.HandDetected,
		Stats:        stats,
		State:        s.state,
		Frames:       s.frames,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
}

// History returns the raw labels currently in the smoothing window, oldest
// first.
func (s *Session) History() []gesture.Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.smoother.Window()
}

// ClearStatistics empties the statistics and the label history. The cached
// result is kept.
func (s *Session) ClearStatistics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = make(map[gesture.Label]int)
	s.smoother.Reset()
}

// UpdatedAt returns when the session last accepted a frame.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
