// Package landmark defines the 21-point hand skeleton shared by the
// detectors, the classifier and the HTTP API.
package landmark

import (
	"errors"
	"fmt"
	"sort"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist     = 0
	ThumbCMC  = 1
	ThumbMCP  = 2
	ThumbIP   = 3
	ThumbTip  = 4
	IndexMCP  = 5
	IndexPIP  = 6
	IndexDIP  = 7
	IndexTip  = 8
	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12
	RingMCP   = 13
	RingPIP   = 14
	RingDIP   = 15
	RingTip   = 16
	PinkyMCP  = 17
	PinkyPIP  = 18
	PinkyDIP  = 19
	PinkyTip  = 20
	NumPoints = 21
)

// ErrInvalidCount is returned when a hand does not carry exactly
// NumPoints points. It is distinct from "no hand detected".
var ErrInvalidCount = errors.New("invalid landmark count")

// Point3D represents a 3D point in space with x, y, z coordinates.
// X and Y are normalized to the image frame; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand: 21 positional landmarks plus the detector's
// metadata.
type Hand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness,omitempty"` // "Left" or "Right"
	Score      float64   `json:"score,omitempty"`
}

// Empty reports whether the hand carries no points at all, which callers
// treat as "no hand" rather than as malformed input.
func (h *Hand) Empty() bool {
	return h == nil || len(h.Points) == 0
}

// Validate checks the positional invariant every classifier relies on.
func (h *Hand) Validate() error {
	if h == nil {
		return fmt.Errorf("%w: nil hand", ErrInvalidCount)
	}
	if len(h.Points) != NumPoints {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidCount, len(h.Points), NumPoints)
	}
	return nil
}

// Point returns the landmark at index i. Callers must Validate first.
func (h *Hand) Point(i int) Point3D {
	return h.Points[i]
}

// Primary returns the highest-scoring hand, or nil when none were found.
// Ties keep the detector's original order.
func Primary(hands []Hand) *Hand {
	if len(hands) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(hands); i++ {
		if hands[i].Score > hands[best].Score {
			best = i
		}
	}
	return &hands[best]
}

// SortByScore orders hands by detection score, highest first.
func SortByScore(hands []Hand) {
	sort.SliceStable(hands, func(i, j int) bool {
		return hands[i].Score > hands[j].Score
	})
}
