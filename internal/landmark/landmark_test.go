package landmark

import (
	"errors"
	"testing"
)

func TestHand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		points  int
		wantErr bool
	}{
		{name: "exactly 21 points", points: NumPoints, wantErr: false},
		{name: "one short", points: NumPoints - 1, wantErr: true},
		{name: "one extra", points: NumPoints + 1, wantErr: true},
		{name: "single point", points: 1, wantErr: true},
		{name: "no points", points: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := Hand{Points: make([]Point3D, tt.points)}

			err := hand.Validate()

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCount) {
					t.Errorf("expected ErrInvalidCount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	t.Run("nil hand is invalid", func(t *testing.T) {
		var hand *Hand
		if err := hand.Validate(); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("expected ErrInvalidCount, got %v", err)
		}
	})
}

func TestHand_Empty(t *testing.T) {
	var nilHand *Hand
	if !nilHand.Empty() {
		t.Error("nil hand should be empty")
	}

	if !(&Hand{}).Empty() {
		t.Error("hand without points should be empty")
	}

	hand := OpenPalm()
	if hand.Empty() {
		t.Error("open palm should not be empty")
	}
}

func TestPrimary(t *testing.T) {
	t.Run("no hands returns nil", func(t *testing.T) {
		if got := Primary(nil); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("picks highest score", func(t *testing.T) {
		low := ThumbsUp()
		low.Score = 0.4
		high := OpenPalm()
		high.Score = 0.9

		got := Primary([]Hand{low, high})

		if got.Score != 0.9 {
			t.Errorf("expected score 0.9, got %f", got.Score)
		}
	})

	t.Run("ties keep first", func(t *testing.T) {
		a := ThumbsUp()
		a.Handedness = "Left"
		b := OpenPalm()

		got := Primary([]Hand{a, b})

		if got.Handedness != "Left" {
			t.Errorf("expected first hand on tie, got %s", got.Handedness)
		}
	})
}

func TestPoses_AreValid(t *testing.T) {
	fixtures := map[string]Hand{
		"thumbs up": ThumbsUp(),
		"open palm": OpenPalm(),
		"fist":      Fist(),
		"letter A":  LetterA(),
		"ok sign":   OKSign(),
		"pointing":  Pointing(),
		"peace":     Peace(),
	}

	for name, hand := range fixtures {
		t.Run(name, func(t *testing.T) {
			if err := hand.Validate(); err != nil {
				t.Errorf("fixture invalid: %v", err)
			}
			if hand.Points[Wrist].Y <= hand.Points[MiddleMCP].Y {
				t.Error("wrist should be below the middle knuckle (higher Y value)")
			}
		})
	}
}

func TestOpenPalm_FingerOrder(t *testing.T) {
	landmarks := OpenPalm()

	// Right hand, palm facing the camera: pinky, ring, middle, index left to right.
	if landmarks.Points[PinkyMCP].X >= landmarks.Points[RingMCP].X {
		t.Error("pinky should be to the left of ring finger")
	}
	if landmarks.Points[RingMCP].X >= landmarks.Points[MiddleMCP].X {
		t.Error("ring should be to the left of middle finger")
	}
	if landmarks.Points[MiddleMCP].X >= landmarks.Points[IndexMCP].X {
		t.Error("middle should be to the left of index finger")
	}
}
