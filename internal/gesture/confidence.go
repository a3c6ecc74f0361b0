package gesture

// Confidence levels reported for a stabilized label.
const (
	ConfidenceOK      = 0.99
	ConfidenceBasic   = 0.95
	ConfidenceOther   = 0.85
	ConfidenceUnknown = 0.3
)

var basicGestures = map[Label]bool{
	ThumbsUp: true,
	One:      true,
	Two:      true,
	Three:    true,
	Four:     true,
	Five:     true,
	Fist:     true,
}

// Confidence returns the fixed confidence for a stabilized label. It does not
// depend on how strongly the label won the vote.
func Confidence(l Label) float64 {
	switch {
	case l == OK:
		return ConfidenceOK
	case basicGestures[l]:
		return ConfidenceBasic
	case !l.IsSentinel():
		return ConfidenceOther
	}
	return ConfidenceUnknown
}
