package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", "", "listen address (overrides the config file)")
	flag.Parse()

	fmt.Println("Mudra - Hand Sign Detection")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := session.NewRegistry(cfg.HistorySize)
	if idle := cfg.IdleTimeout(); idle > 0 {
		go registry.RunJanitor(ctx, idle/2, idle)
	}

	var recorder *store.Store
	if cfg.RecordDetections {
		recorder = st
	}
	publisher := app.NewPublisher(app.NewHub(), recorder)

	var live *app.App
	if cfg.Live.Enabled {
		live = startLive(cfg, registry, publisher)
		defer live.Stop()
	}

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Registry:  registry,
		Publisher: publisher,
		Store:     st,
		Live:      live,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	fmt.Printf("Starting server on %s\n", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server stopped")
}

// startLive builds and starts the camera pipeline. A camera that cannot be
// opened is logged and leaves the pipeline stopped; the HTTP API still works.
func startLive(cfg *config.Config, registry *session.Registry, publisher *app.Publisher) *app.App {
	det := app.NewDetector(detector.Config{
		MaxHands:      cfg.Live.MaxHands,
		MinConfidence: cfg.Live.MinConfidence,
		ScriptPath:    cfg.Live.DetectorScript,
		PythonPath:    cfg.Live.PythonPath,
	})

	var pacer *capture.Pacer
	if cfg.Live.IdleFPS > 0 {
		motion := capture.NewMotionDetector(cfg.Live.MotionThreshold)
		pacer = capture.NewPacer(motion, cfg.Live.FPS, cfg.Live.IdleFPS, capture.DefaultMotionHold)
	}

	live := app.New(app.Config{
		Registry:  registry,
		Publisher: publisher,
		Camera:    capture.NewCamera(capture.Config{DeviceID: cfg.Live.CameraID, FPS: cfg.Live.FPS}),
		Detector:  det,
		Pacer:     pacer,
	})

	if err := live.Start(); err != nil {
		log.Printf("Live pipeline unavailable: %v", err)
	}
	return live
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
