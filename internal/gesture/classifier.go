package gesture

import "github.com/ayusman/mudra/internal/landmark"

// FallbackRule names the decision when no rule in the table matched.
const FallbackRule = "fallback"

// Decision is the outcome of classifying one hand, with enough detail to
// see why a label was chosen.
type Decision struct {
	Label   Label       `json:"label"`
	Rule    string      `json:"rule"`
	Fingers FingerState `json:"fingers"`
}

// Evaluate classifies a hand and reports which rule produced the label.
// It has no side effects and always returns the same decision for the same
// points.
func Evaluate(hand *landmark.Hand) (Decision, error) {
	if err := hand.Validate(); err != nil {
		return Decision{Label: Unknown}, err
	}

	fingers := Fingers(hand)
	m := measure(hand)

	for _, r := range rules {
		if r.match(fingers, &m) {
			return Decision{Label: r.label, Rule: r.name, Fingers: fingers}, nil
		}
	}

	return Decision{Label: fallback(fingers), Rule: FallbackRule, Fingers: fingers}, nil
}

// Classify returns the raw gesture label for a single hand pose. Hands that
// do not carry exactly landmark.NumPoints points are rejected with
// landmark.ErrInvalidCount.
func Classify(hand *landmark.Hand) (Label, error) {
	d, err := Evaluate(hand)
	return d.Label, err
}
