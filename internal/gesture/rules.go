package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/geometry"
	"github.com/ayusman/mudra/internal/landmark"
)

// measurements are the pose features the rules look at besides finger state.
// They are computed once per classification.
type measurements struct {
	thumbIndex        float64 // thumb tip to index tip
	thumbMiddle       float64 // thumb tip to middle tip
	thumbPinky        float64 // thumb tip to pinky tip
	indexMiddle       float64 // index tip to middle tip
	indexMiddlePIP    float64 // index PIP to middle PIP
	indexBend         float64 // angle at the index PIP
	thumbWristIndex   float64 // angle at the wrist between thumb and index tips
	indexMiddleSpread float64 // angle at the index MCP between index and middle tips

	thumbTip, thumbIP, indexTip, indexMCP, middleTip, wrist landmark.Point3D
}

func measure(hand *landmark.Hand) measurements {
	p := hand.Points
	return measurements{
		thumbIndex:        geometry.Distance(p[landmark.ThumbTip], p[landmark.IndexTip]),
		thumbMiddle:       geometry.Distance(p[landmark.ThumbTip], p[landmark.MiddleTip]),
		thumbPinky:        geometry.Distance(p[landmark.ThumbTip], p[landmark.PinkyTip]),
		indexMiddle:       geometry.Distance(p[landmark.IndexTip], p[landmark.MiddleTip]),
		indexMiddlePIP:    geometry.Distance(p[landmark.IndexPIP], p[landmark.MiddlePIP]),
		indexBend:         geometry.Angle(p[landmark.IndexTip], p[landmark.IndexPIP], p[landmark.IndexMCP]),
		thumbWristIndex:   geometry.Angle(p[landmark.ThumbTip], p[landmark.Wrist], p[landmark.IndexTip]),
		indexMiddleSpread: geometry.Angle(p[landmark.IndexTip], p[landmark.IndexMCP], p[landmark.MiddleTip]),

		thumbTip:  p[landmark.ThumbTip],
		thumbIP:   p[landmark.ThumbIP],
		indexTip:  p[landmark.IndexTip],
		indexMCP:  p[landmark.IndexMCP],
		middleTip: p[landmark.MiddleTip],
		wrist:     p[landmark.Wrist],
	}
}

type rule struct {
	name  string
	label Label
	match func(f FingerState, m *measurements) bool
}

// Finger patterns shared by several rules, thumb first.
func closedHand(f FingerState) bool { return f.is(false, false, false, false, false) }
func openHand(f FingerState) bool { return f.is(true, true, true, true, true) }
func fourUp(f FingerState) bool { return f.is(false, true, true, true, true) }
func indexUp(f FingerState) bool { return f.is(false, true, false, false, false) }
func thumbIndexUp(f FingerState) bool { return f.is(true, true, false, false, false) }
func indexMiddleUp(f FingerState) bool { return f.is(false, true, true, false, false) }
func thumbPinkyUp(f FingerState) bool { return f.is(true, false, false, false, true) }
func threeUp(f FingerState) bool { return f.is(true, true, true, false, false) }
func lastThreeUp(f FingerState) bool { return f.Middle && f.Ring && f.Pinky }

// rules is evaluated top to bottom and the first match wins. Several later
// entries can never fire because an earlier entry claims the same finger
// pattern unconditionally; they are kept so the precedence stays identical
// to the established gesture set.
var rules = []rule{
	{"fist with thumb level", A, func(f FingerState, m *measurements) bool {
		return closedHand(f) && math.Abs(m.thumbTip.Y-m.indexMCP.Y) < 0.05
	}},
	{"closed hand", Fist, func(f FingerState, m *measurements) bool {
		return closedHand(f)
	}},
	{"flat hand together", B, func(f FingerState, m *measurements) bool {
		return fourUp(f) && m.indexMiddle < 0.05
	}},
	{"four fingers", Four, func(f FingerState, m *measurements) bool {
		return fourUp(f)
	}},
	{"curved open hand", C, func(f FingerState, m *measurements) bool {
		return openHand(f) && m.thumbIndex > 0.1 && m.thumbIndex < 0.25
	}},
	{"open hand", Five, func(f FingerState, m *measurements) bool {
		return openHand(f)
	}},
	{"index with thumb on middle", D, func(f FingerState, m *measurements) bool {
		return indexUp(f) && m.thumbMiddle < 0.06
	}},
	{"index only", One, func(f FingerState, m *measurements) bool {
		return indexUp(f)
	}},
	{"thumb index circle", OK, func(f FingerState, m *measurements) bool {
		return m.thumbIndex < 0.05 && lastThreeUp(f) &&
			math.Abs(m.thumbTip.X-m.indexTip.X) < 0.03 &&
			math.Abs(m.thumbTip.Y-m.indexTip.Y) < 0.03
	}},
	{"thumb index touch", F, func(f FingerState, m *measurements) bool {
		return m.thumbIndex < 0.05 && lastThreeUp(f)
	}},
	{"straight index with thumb", G, func(f FingerState, m *measurements) bool {
		return thumbIndexUp(f) && m.indexBend > 160
	}},
	{"thumb and index", L, func(f FingerState, m *measurements) bool {
		return thumbIndexUp(f)
	}},
	{"index middle apart", V, func(f FingerState, m *measurements) bool {
		return indexMiddleUp(f) && m.indexMiddle > 0.08
	}},
	{"index middle", H, func(f FingerState, m *measurements) bool {
		return indexMiddleUp(f)
	}},
	{"thumb pinky wide", Y, func(f FingerState, m *measurements) bool {
		return thumbPinkyUp(f) && m.thumbPinky > 0.15
	}},
	{"thumb pinky", I, func(f FingerState, m *measurements) bool {
		return thumbPinkyUp(f)
	}},
	{"right angle thumb index", L, func(f FingerState, m *measurements) bool {
		return thumbIndexUp(f) && m.thumbWristIndex > 70 && m.thumbWristIndex < 110
	}},
	{"index middle crossed", R, func(f FingerState, m *measurements) bool {
		return indexMiddleUp(f) && m.indexMiddlePIP < 0.03
	}},
	{"index middle together", U, func(f FingerState, m *measurements) bool {
		return indexMiddleUp(f) && m.indexMiddle < 0.05
	}},
	{"three fingers", W, func(f FingerState, m *measurements) bool {
		return threeUp(f)
	}},
	{"thumb index pinky", ILoveYou, func(f FingerState, m *measurements) bool {
		return f.is(true, true, false, false, true)
	}},
	{"raised open hand", Namaste, func(f FingerState, m *measurements) bool {
		return openHand(f) && m.middleTip.Y < m.wrist.Y-0.2
	}},
	{"number one", One, func(f FingerState, m *measurements) bool {
		return indexUp(f)
	}},
	{"number two", Two, func(f FingerState, m *measurements) bool {
		return indexMiddleUp(f) && m.indexMiddleSpread > 30 && m.indexMiddleSpread < 90
	}},
	{"number three", Three, func(f FingerState, m *measurements) bool {
		return threeUp(f)
	}},
	{"number four", Four, func(f FingerState, m *measurements) bool {
		return fourUp(f)
	}},
	{"number five", Five, func(f FingerState, m *measurements) bool {
		return openHand(f)
	}},
	{"tight thumb index circle", OK, func(f FingerState, m *measurements) bool {
		return m.thumbIndex < 0.06 && lastThreeUp(f) && m.thumbIndex < 0.04
	}},
	{"peace", Peace, func(f FingerState, m *measurements) bool {
		return indexMiddleUp(f)
	}},
	{"index and pinky", RockOn, func(f FingerState, m *measurements) bool {
		return f.is(false, true, false, false, true)
	}},
	{"thumb up", Yes, func(f FingerState, m *measurements) bool {
		return f.is(true, false, false, false, false) && m.thumbTip.Y < m.thumbIP.Y
	}},
	{"thumb down", No, func(f FingerState, m *measurements) bool {
		return m.thumbTip.Y > m.thumbIP.Y && m.thumbTip.X < m.thumbIP.X &&
			!f.Index && !f.Middle && !f.Ring && !f.Pinky
	}},
}

// fallback maps a finger state no rule claimed onto a coarse count-based
// label.
func fallback(f FingerState) Label {
	raised := f.Raised()
	switch {
	case f.Thumb && raised == 0:
		return ThumbsUp
	case indexUp(f):
		return One
	case indexMiddleUp(f):
		return Two
	case threeUp(f):
		return Three
	case fourUp(f):
		return Four
	case openHand(f):
		return Five
	case raised == 0:
		return Fist
	}
	return Unknown
}
