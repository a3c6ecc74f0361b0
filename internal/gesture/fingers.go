package gesture

import "github.com/ayusman/mudra/internal/landmark"

// extendTolerance loosens the extension checks so a finger held nearly
// straight still counts as raised.
const extendTolerance = 0.02

// FingerState records which fingers are raised. Image Y grows downward, so
// "raised" means a smaller Y.
type FingerState struct {
	Thumb  bool `json:"thumb"`
	Index  bool `json:"index"`
	Middle bool `json:"middle"`
	Ring   bool `json:"ring"`
	Pinky  bool `json:"pinky"`
}

// Raised returns how many of the four non-thumb fingers are raised.
func (f FingerState) Raised() int {
	n := 0
	for _, up := range [...]bool{f.Index, f.Middle, f.Ring, f.Pinky} {
		if up {
			n++
		}
	}
	return n
}

// is reports whether the state matches the given thumb..pinky pattern
// exactly.
func (f FingerState) is(thumb, index, middle, ring, pinky bool) bool {
	return f == FingerState{thumb, index, middle, ring, pinky}
}

// IsExtended reports whether a finger is raised: the tip above the PIP and,
// when mcp is given, the PIP above the MCP.
func IsExtended(tip, pip landmark.Point3D, mcp *landmark.Point3D) bool {
	if !(tip.Y < pip.Y+extendTolerance) {
		return false
	}
	if mcp == nil {
		return true
	}
	return pip.Y < mcp.Y+extendTolerance
}

// IsThumbExtended reports whether the thumb points out and up: its tip is not
// left of the IP joint and sits above the index knuckle.
func IsThumbExtended(thumbTip, thumbIP, indexMCP landmark.Point3D) bool {
	return thumbTip.X > thumbIP.X-extendTolerance && thumbTip.Y < indexMCP.Y+extendTolerance
}

// Fingers computes the finger state of a hand. The hand must hold a full set
// of landmarks.
func Fingers(hand *landmark.Hand) FingerState {
	p := hand.Points
	finger := func(tip, pip, mcp int) bool {
		return IsExtended(p[tip], p[pip], &p[mcp])
	}

	return FingerState{
		Thumb:  IsThumbExtended(p[landmark.ThumbTip], p[landmark.ThumbIP], p[landmark.IndexMCP]),
		Index:  finger(landmark.IndexTip, landmark.IndexPIP, landmark.IndexMCP),
		Middle: finger(landmark.MiddleTip, landmark.MiddlePIP, landmark.MiddleMCP),
		Ring:   finger(landmark.RingTip, landmark.RingPIP, landmark.RingMCP),
		Pinky:  finger(landmark.PinkyTip, landmark.PinkyPIP, landmark.PinkyMCP),
	}
}
