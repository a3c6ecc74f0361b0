package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/capture"
)

// runPipeline steps the pipeline once per frame interval until stopCh is
// closed. Repeated identical errors are logged once.
func (a *App) runPipeline(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	fps := a.camera.FPS()
	if fps <= 0 {
		fps = capture.DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var lastErr string
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			if _, err := a.Step(); err != nil {
				if msg := err.Error(); msg != lastErr {
					log.Printf("Pipeline error: %v", err)
					lastErr = msg
				}
				continue
			}
			lastErr = ""

			if cur := a.camera.FPS(); cur > 0 && cur != fps {
				fps = cur
				ticker.Reset(time.Second / time.Duration(fps))
			}
		}
	}
}
