package landmark

func newHand() Hand {
	return Hand{
		Points:     make([]Point3D, NumPoints),
		Handedness: "Right",
		Score:      0.95,
	}
}

// curlFingers places the four non-thumb fingers in a curled position:
// every tip sits below its PIP.
func curlFingers(h *Hand) {
	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	h.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	h.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	h.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	h.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	h.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	h.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	h.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	h.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	h.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	h.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}
}

// tuckThumb folds the thumb across the palm, well below the index knuckle.
func tuckThumb(h *Hand) {
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.78, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.76, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.72, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.78, Z: 0.0}
}

// ThumbsUp returns a hand with the thumb pointing up and the other
// fingers curled. The thumb tip is above its IP joint.
func ThumbsUp() Hand {
	h := newHand()
	curlFingers(&h)

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	return h
}

// OpenPalm returns a hand with all five fingers spread; the thumb
// tip is far from the index tip.
func OpenPalm() Hand {
	h := newHand()

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	h.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	h.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	h.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	h.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return h
}

// Fist returns a closed fist with the thumb folded low across the
// fingers.
func Fist() Hand {
	h := newHand()
	curlFingers(&h)
	tuckThumb(&h)
	return h
}

// LetterA returns a closed fist with the thumb resting against the
// side of the index finger, level with the index knuckle.
func LetterA() Hand {
	h := newHand()
	curlFingers(&h)

	h.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.72, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.66, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.57, Y: 0.72, Z: 0.0}

	return h
}

// OKSign returns the OK sign: the index finger curls down so its
// tip touches the thumb tip while middle, ring and pinky stay extended.
func OKSign() Hand {
	h := OpenPalm()

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.64, Y: 0.66, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.61, Y: 0.63, Z: 0.0}

	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.58, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.60, Y: 0.58, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.60, Y: 0.62, Z: 0.0}

	return h
}

// Pointing returns a hand with only the index finger raised and the
// thumb tucked away from the middle finger.
func Pointing() Hand {
	h := newHand()
	curlFingers(&h)
	tuckThumb(&h)

	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.59, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.61, Y: 0.35, Z: 0.0}

	return h
}

// Peace returns index and middle fingers raised and spread apart.
func Peace() Hand {
	h := Pointing()

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.49, Y: 0.52, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.40, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.30, Z: 0.0}

	return h
}
