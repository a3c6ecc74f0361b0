// Package server provides the HTTP server for the mudra hand-sign detection
// service.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Registry  *session.Registry
	Publisher *app.Publisher
	// Store enables the samples API and detection history.
	Store *store.Store
	// Live exposes the camera pipeline controls when set.
	Live *app.App
}

// Server represents the HTTP server for the mudra service.
type Server struct {
	config   Config
	mux      *http.ServeMux
	start    time.Time
	gestures *api.GestureHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.Registry == nil {
		config.Registry = session.NewRegistry(0)
	}
	if config.Publisher == nil {
		config.Publisher = app.NewPublisher(app.NewHub(), nil)
	}

	s := &Server{
		config:   config,
		mux:      http.NewServeMux(),
		start:    time.Now(),
		gestures: api.NewGestureHandler(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	s.mux.Handle("/api/gestures", s.gestures)
	s.mux.Handle("/api/gestures/", s.gestures)

	sessions := api.NewSessionHandler(s.config.Registry, s.config.Publisher, s.config.Store)
	socket := NewSessionSocket(s.config.Registry, s.config.Publisher)

	// Route /api/sessions/{id}/ws to the WebSocket handler
	sessionRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/ws") {
			socket.ServeHTTP(w, r)
			return
		}
		sessions.ServeHTTP(w, r)
	})
	s.mux.Handle("/api/sessions", sessionRouter)
	s.mux.Handle("/api/sessions/", sessionRouter)

	if s.config.Store != nil {
		samples := api.NewSamplesHandler(s.config.Store)
		s.mux.Handle("/api/samples", samples)
		s.mux.Handle("/api/samples/", samples)
	}

	s.mux.Handle("/api/live", NewLiveSocket(s.config.Publisher.Hub()))
	if s.config.Live != nil {
		s.mux.HandleFunc("/api/live/control", s.handleLiveControl)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":          "ok",
		"uptime":          time.Since(s.start).String(),
		"gestures_loaded": s.gestures.Len(),
		"sessions":        s.config.Registry.Len(),
		"recording":       s.config.Publisher.Recording(),
	}

	writeJSON(w, http.StatusOK, response)
}

type liveStatus struct {
	Running   bool   `json:"running"`
	Enabled   bool   `json:"enabled"`
	SessionID string `json:"session_id"`
}

type liveControlRequest struct {
	Enabled *bool `json:"enabled"`
}

// handleLiveControl reports the camera pipeline state on GET and pauses or
// resumes it on POST {"enabled": bool}.
func (s *Server) handleLiveControl(w http.ResponseWriter, r *http.Request) {
	live := s.config.Live

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		var req liveControlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Expected {\"enabled\": bool}"})
			return
		}
		live.SetEnabled(*req.Enabled)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, liveStatus{
		Running:   live.Running(),
		Enabled:   live.IsEnabled(),
		SessionID: live.SessionID(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
