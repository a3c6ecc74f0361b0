// Package api provides HTTP handlers for the mudra REST API.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/gesture"
)

// GestureHandler serves the read-only gesture catalog.
type GestureHandler struct {
	groups []categoryGroup
	total  int
}

// NewGestureHandler creates a GestureHandler over the built-in catalog.
func NewGestureHandler() *GestureHandler {
	h := &GestureHandler{}
	for _, info := range gesture.Catalog() {
		n := len(h.groups)
		if n == 0 || h.groups[n-1].Category != info.Category {
			h.groups = append(h.groups, categoryGroup{Category: info.Category})
			n++
		}
		h.groups[n-1].Gestures = append(h.groups[n-1].Gestures, info)
		h.groups[n-1].Count++
		h.total++
	}
	return h
}

// Len returns the number of catalog entries served.
func (h *GestureHandler) Len() int {
	return h.total
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/gestures and /api/gestures/{label}
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/gestures")
	path = strings.Trim(path, "/")

	if path == "" {
		h.list(w, r)
		return
	}

	// URL.Path is already unescaped, so "Thank%20You" arrives as "Thank You".
	h.get(w, r, gesture.Label(path))
}

// Response types

type errorResponse struct {
	Error string `json:"error"`
}

type categoryGroup struct {
	Category gesture.Category `json:"category"`
	Count    int              `json:"count"`
	Gestures []gesture.Info   `json:"gestures"`
}

type catalogResponse struct {
	Total      int             `json:"total"`
	Categories []categoryGroup `json:"categories"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/gestures.
func (h *GestureHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Total:      h.total,
		Categories: h.groups,
	})
}

// get handles GET /api/gestures/{label}.
func (h *GestureHandler) get(w http.ResponseWriter, r *http.Request, label gesture.Label) {
	info, ok := gesture.Lookup(label)
	if !ok {
		writeError(w, http.StatusNotFound, "Gesture not found")
		return
	}
	writeJSON(w, http.StatusOK, info)
}
