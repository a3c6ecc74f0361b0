// Package app runs the live camera pipeline: frames are read from a camera,
// hands are detected, and the primary hand is classified in a dedicated
// session whose results are published to subscribers.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/session"
)

// LiveSessionID is the registry key of the session fed by the camera.
const LiveSessionID = "live"

// ErrNoCamera is returned by Start when the app was built without a camera.
var ErrNoCamera = errors.New("no camera configured")

// Config holds the collaborators of the live pipeline.
type Config struct {
	Registry  *session.Registry
	Publisher *Publisher
	Camera    capture.Camera
	Detector  detector.Detector
	// FPS overrides the camera's frame rate when positive.
	FPS int
	// Pacer, when set, lowers the frame rate while the scene is still.
	Pacer *capture.Pacer
	// SessionID defaults to LiveSessionID.
	SessionID string
}

// App is the live detection pipeline.
type App struct {
	registry  *session.Registry
	publisher *Publisher
	camera    capture.Camera
	pacer     *capture.Pacer
	sessionID string

	mu        sync.RWMutex
	detector  detector.Detector
	enabled   bool
	stopCh    chan struct{}
	done      chan struct{}
	unpin     func()
	lastLabel gesture.Label
}

// New creates an App. A nil Registry or Publisher is replaced with a fresh
// one; a nil Detector falls back to a MockDetector that never sees a hand.
func New(cfg Config) *App {
	if cfg.Registry == nil {
		cfg.Registry = session.NewRegistry(gesture.DefaultHistorySize)
	}
	if cfg.Publisher == nil {
		cfg.Publisher = NewPublisher(NewHub(), nil)
	}
	if cfg.Detector == nil {
		cfg.Detector = detector.NewMockDetector()
	}
	if cfg.SessionID == "" {
		cfg.SessionID = LiveSessionID
	}
	if cfg.Camera != nil && cfg.FPS > 0 {
		cfg.Camera.SetFPS(cfg.FPS)
	}

	return &App{
		registry:  cfg.Registry,
		publisher: cfg.Publisher,
		camera:    cfg.Camera,
		pacer:     cfg.Pacer,
		sessionID: cfg.SessionID,
		detector:  cfg.Detector,
		enabled:   true,
		lastLabel: gesture.NoHandDetected,
	}
}

// NewDetector starts a MediaPipe detector, or falls back to a MockDetector
// when MediaPipe is not installed.
func NewDetector(cfg detector.Config) detector.Detector {
	mp, err := detector.NewMediaPipeDetector(cfg)
	if err != nil {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		return detector.NewMockDetector()
	}
	log.Println("Using MediaPipe hand detection")
	return mp
}

// SetEnabled pauses or resumes frame processing without closing the camera.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Running reports whether the pipeline loop is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}

// SetDetector swaps the hand detector. The previous one is not closed.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

func (a *App) Camera() capture.Camera {
	return a.camera
}

// SessionID returns the registry key of the live session.
func (a *App) SessionID() string {
	return a.sessionID
}

// Start opens the camera and begins the pipeline loop. The live session is
// pinned against idle pruning until Stop. Starting a running app is a no-op.
func (a *App) Start() error {
	if a.camera == nil {
		return ErrNoCamera
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}

	// Paused or failing pipelines keep their session and its statistics.
	a.unpin = a.registry.Pin(a.sessionID)
	a.registry.GetOrCreate(a.sessionID)

	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the loop, waits for it to exit and releases the camera and the
// detector.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, done, unpin := a.stopCh, a.done, a.unpin
	a.stopCh, a.done, a.unpin = nil, nil, nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-done
	}
	if unpin != nil {
		unpin()
	}

	if a.camera != nil {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}

	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.pacer != nil {
		a.pacer.Close()
	}

	log.Println("Detection pipeline stopped")
}

// Step reads one frame from the camera and runs it through the pipeline.
func (a *App) Step() (session.Result, error) {
	if a.camera == nil {
		return session.Result{}, ErrNoCamera
	}

	frame, err := a.camera.ReadFrame()
	if err != nil {
		return session.Result{}, fmt.Errorf("read frame: %w", err)
	}
	defer frame.Close()

	if a.pacer != nil {
		a.camera.SetFPS(a.pacer.Observe(frame))
	}

	hands, err := a.Detector().Detect(frame)
	if err != nil {
		return session.Result{}, fmt.Errorf("detect hands: %w", err)
	}

	return a.ProcessHands(hands)
}

// ProcessHands classifies the highest scoring hand in the live session and
// publishes the result. No hands is a no-hand frame.
func (a *App) ProcessHands(hands []landmark.Hand) (session.Result, error) {
	sess := a.registry.GetOrCreate(a.sessionID)

	res, err := sess.ProcessFrame(landmark.Primary(hands))
	if err != nil {
		return session.Result{}, err
	}

	a.publisher.Publish(sess.ID(), res)
	a.noteLabel(res.Label)
	return res, nil
}

// noteLabel logs transitions of the stabilized label.
func (a *App) noteLabel(label gesture.Label) {
	a.mu.Lock()
	prev := a.lastLabel
	a.lastLabel = label
	a.mu.Unlock()

	if label != prev {
		log.Printf("Gesture changed: %s -> %s", prev, label)
	}
}
