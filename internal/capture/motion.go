package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

const (
	blurKernel    = 21
	diffThreshold = 25

	// DefaultMotionThreshold is the percentage of changed pixels that counts
	// as motion.
	DefaultMotionThreshold = 1.0
	// DefaultIdleFPS is the capture rate while the scene is still.
	DefaultIdleFPS = 5
	// DefaultMotionHold is how long the scene must stay still before the
	// rate drops to idle.
	DefaultMotionHold = 2 * time.Second
)

// Motion is the result of comparing a frame to the previous one.
type Motion struct {
	Moved bool
	// Changed is the percentage of pixels that differ.
	Changed float64
}

// MotionDetector compares consecutive frames by blurred grayscale
// differencing.
type MotionDetector struct {
	mu        sync.Mutex
	threshold float64
	prev      gocv.Mat
	primed    bool
}

// NewMotionDetector creates a detector that reports motion when more than
// threshold percent of the pixels change. A non-positive threshold uses
// DefaultMotionThreshold.
func NewMotionDetector(threshold float64) *MotionDetector {
	if threshold <= 0 {
		threshold = DefaultMotionThreshold
	}
	return &MotionDetector{
		threshold: threshold,
		prev:      gocv.NewMat(),
	}
}

// Detect compares frame to the previous frame. The first frame after
// creation or Reset only primes the detector and never reports motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) Motion {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return Motion{}
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)

	if !m.primed {
		blurred.CopyTo(&m.prev)
		m.primed = true
		return Motion{}
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prev, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, diffThreshold, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(mask)) / float64(mask.Rows()*mask.Cols()) * 100
	blurred.CopyTo(&m.prev)

	return Motion{Moved: changed > m.threshold, Changed: changed}
}

// Reset forgets the previous frame.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release()
}

// Close releases the stored frame. The detector may be used again
// afterwards and re-primes on the next frame.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release()
}

func (m *MotionDetector) release() {
	if !m.prev.Empty() {
		m.prev.Close()
		m.prev = gocv.NewMat()
	}
	m.primed = false
}

// Pacer picks the capture rate from recent motion: the active rate while the
// scene moves, the idle rate once it has been still for the hold period.
// Frames are processed at either rate, so a hand held still keeps being
// classified.
type Pacer struct {
	motion *MotionDetector
	active int
	idle   int
	hold   time.Duration
	now    func() time.Time

	mu         sync.Mutex
	lastMotion time.Time
	moving     bool
}

// NewPacer creates a pacer over motion. It starts at the idle rate.
func NewPacer(motion *MotionDetector, activeFPS, idleFPS int, hold time.Duration) *Pacer {
	if activeFPS <= 0 {
		activeFPS = DefaultFPS
	}
	if idleFPS <= 0 || idleFPS > activeFPS {
		idleFPS = min(DefaultIdleFPS, activeFPS)
	}
	if hold <= 0 {
		hold = DefaultMotionHold
	}
	return &Pacer{
		motion: motion,
		active: activeFPS,
		idle:   idleFPS,
		hold:   hold,
		now:    time.Now,
	}
}

// Observe feeds a frame to the motion detector and returns the frame rate
// to capture at next.
func (p *Pacer) Observe(frame *gocv.Mat) int {
	return p.update(p.motion.Detect(frame).Moved)
}

func (p *Pacer) update(moved bool) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if moved {
		p.lastMotion = now
		p.moving = true
	} else if p.moving && now.Sub(p.lastMotion) > p.hold {
		p.moving = false
	}

	if p.moving {
		return p.active
	}
	return p.idle
}

// Close releases the motion detector.
func (p *Pacer) Close() {
	p.motion.Close()
}
