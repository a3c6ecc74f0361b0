// Package detector finds hands in camera frames and reports their landmarks.
package detector

import (
	"github.com/ayusman/mudra/internal/landmark"
	"gocv.io/x/gocv"
)

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks,
	// ordered by score with the most confident hand first.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]landmark.Hand, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to report (default: 2).
	MaxHands int

	// MinConfidence drops hands scored below this threshold (0.0-1.0).
	MinConfidence float64

	// ScriptPath points at the MediaPipe landmark service. Empty means
	// search the usual install locations.
	ScriptPath string

	// PythonPath is the interpreter used to run ScriptPath. Empty means
	// prefer a local virtualenv, then python3.
	PythonPath string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:      2,
		MinConfidence: 0.3,
	}
}

// filterHands applies the MaxHands and MinConfidence limits to a detector
// response and orders the survivors by score.
func filterHands(hands []landmark.Hand, cfg Config) []landmark.Hand {
	kept := hands[:0]
	for _, h := range hands {
		if h.Score < cfg.MinConfidence {
			continue
		}
		kept = append(kept, h)
	}
	landmark.SortByScore(kept)
	if cfg.MaxHands > 0 && len(kept) > cfg.MaxHands {
		kept = kept[:cfg.MaxHands]
	}
	return kept
}
