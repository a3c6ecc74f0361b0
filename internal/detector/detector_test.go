package detector

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ayusman/mudra/internal/landmark"
)

func TestFilterHands(t *testing.T) {
	mk := func(score float64) landmark.Hand {
		h := landmark.OpenPalm()
		h.Score = score
		return h
	}

	hands := []landmark.Hand{mk(0.5), mk(0.1), mk(0.9), mk(0.7)}

	got := filterHands(hands, Config{MaxHands: 2, MinConfidence: 0.3})

	if len(got) != 2 {
		t.Fatalf("expected 2 hands, got %d", len(got))
	}
	if got[0].Score != 0.9 || got[1].Score != 0.7 {
		t.Errorf("expected scores [0.9 0.7], got [%f %f]", got[0].Score, got[1].Score)
	}
}

func TestParseResponse(t *testing.T) {
	t.Run("valid hand", func(t *testing.T) {
		line := []byte(`{"hands":[{"points":[` + repeatPoint(landmark.NumPoints) + `],"handedness":"Right","score":0.8}]}` + "\n")

		hands, err := parseResponse(line)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != "Right" {
			t.Errorf("expected handedness Right, got %s", hands[0].Handedness)
		}
	})

	t.Run("no hands", func(t *testing.T) {
		hands, err := parseResponse([]byte(`{"hands":[]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("expected 0 hands, got %d", len(hands))
		}
	})

	t.Run("short hand fails fast", func(t *testing.T) {
		line := []byte(`{"hands":[{"points":[` + repeatPoint(5) + `]}]}`)

		_, err := parseResponse(line)

		if !errors.Is(err, landmark.ErrInvalidCount) {
			t.Errorf("expected ErrInvalidCount, got %v", err)
		}
	})

	t.Run("service error", func(t *testing.T) {
		if _, err := parseResponse([]byte(`{"error":"model not loaded"}`)); err == nil {
			t.Error("expected error for service error response")
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		if _, err := parseResponse([]byte(`not json`)); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0xff, 0xd8, 0xff, 0xd9}

	if err := writeFrame(&buf, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.Bytes()
	if got := binary.BigEndian.Uint32(out[:4]); got != uint32(len(payload)) {
		t.Errorf("expected length prefix %d, got %d", len(payload), got)
	}
	if !bytes.Equal(out[4:], payload) {
		t.Errorf("expected payload %v, got %v", payload, out[4:])
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]landmark.Hand{landmark.ThumbsUp(), landmark.OpenPalm()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
		if mock.Calls() != 1 {
			t.Errorf("expected 1 call, got %d", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close marks closed", func(t *testing.T) {
		mock := NewMockDetector()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
		if !mock.Closed() {
			t.Error("expected mock to be closed")
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func repeatPoint(n int) string {
	var b bytes.Buffer
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"x":0.5,"y":0.5,"z":0}`)
	}
	return b.String()
}
