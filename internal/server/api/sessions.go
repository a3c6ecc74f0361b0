package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

// maxFrameBody caps a frame request. Two hands of 21 points fit many times
// over.
const maxFrameBody = 64 << 10

// SessionHandler handles HTTP requests for detection sessions.
type SessionHandler struct {
	registry  *session.Registry
	publisher *app.Publisher
	store     *store.Store
}

// NewSessionHandler creates a SessionHandler. publisher and st may be nil;
// without a store the history endpoint is unavailable.
func NewSessionHandler(registry *session.Registry, publisher *app.Publisher, st *store.Store) *SessionHandler {
	return &SessionHandler{
		registry:  registry,
		publisher: publisher,
		store:     st,
	}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths:
//
//	/api/sessions
//	/api/sessions/{id}
//	/api/sessions/{id}/frames
//	/api/sessions/{id}/clear
//	/api/sessions/{id}/history
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")
	if len(parts) > 2 {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	sess, err := h.registry.Get(parts[0])
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.get(w, r, sess)
	case action == "" && r.Method == http.MethodDelete:
		h.delete(w, r, sess)
	case action == "frames" && r.Method == http.MethodPost:
		h.frame(w, r, sess)
	case action == "clear" && r.Method == http.MethodPost:
		h.clear(w, r, sess)
	case action == "history" && r.Method == http.MethodGet:
		h.history(w, r, sess)
	case action == "" || action == "frames" || action == "clear" || action == "history":
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// Request types

// FrameRequest carries the hands detected in one frame. No hands means no
// hand was detected; only the highest scoring hand is classified.
type FrameRequest struct {
	Hands []landmark.Hand `json:"hands"`
}

// Response types

// FrameResponse is the classification result of one frame.
type FrameResponse struct {
	Gesture      gesture.Label `json:"gesture"`
	Short        string        `json:"short"`
	Confidence   float64       `json:"confidence"`
	HandDetected bool          `json:"hand_detected"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

type sessionSummary struct {
	ID        string        `json:"id"`
	State     session.State `json:"state"`
	Gesture   gesture.Label `json:"current_gesture"`
	Frames    int           `json:"frames"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type listSessionsResponse struct {
	Sessions []sessionSummary `json:"sessions"`
	Count    int              `json:"count"`
}

type clearResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type historyResponse struct {
	SessionID  string            `json:"session_id"`
	Detections []store.Detection `json:"detections"`
	Stats      map[string]int    `json:"stats"`
}

// ProcessFrame runs req through sess and publishes the result. It is shared
// by the REST and WebSocket transports.
func ProcessFrame(sess *session.Session, publisher *app.Publisher, req FrameRequest) (FrameResponse, error) {
	res, err := sess.ProcessFrame(landmark.Primary(req.Hands))
	if err != nil {
		return FrameResponse{}, err
	}

	if publisher != nil {
		publisher.Publish(sess.ID(), res)
	}

	return FrameResponse{
		Gesture:      res.Label,
		Short:        gesture.ShortForm(res.Label),
		Confidence:   roundConfidence(res.Confidence),
		HandDetected: res.HandDetected,
	}, nil
}

func roundConfidence(c float64) float64 {
	return math.Round(c*1000) / 1000
}

// list handles GET /api/sessions.
func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions := h.registry.List()

	response := listSessionsResponse{
		Sessions: make([]sessionSummary, 0, len(sessions)),
		Count:    len(sessions),
	}
	for _, sess := range sessions {
		st := sess.Status()
		response.Sessions = append(response.Sessions, sessionSummary{
			ID:        st.ID,
			State:     st.State,
			Gesture:   st.Label,
			Frames:    st.Frames,
			UpdatedAt: st.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/sessions.
func (h *SessionHandler) create(w http.ResponseWriter, r *http.Request) {
	sess := h.registry.Create()
	writeJSON(w, http.StatusCreated, createSessionResponse{ID: sess.ID()})
}

// get handles GET /api/sessions/{id}.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	st := sess.Status()
	st.Confidence = roundConfidence(st.Confidence)
	writeJSON(w, http.StatusOK, st)
}

// delete handles DELETE /api/sessions/{id}. Recorded detections of the
// session are removed with it.
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := h.registry.Delete(sess.ID()); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	if h.store != nil {
		if _, err := h.store.Detections().DeleteBySession(sess.ID()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to delete session history")
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// frame handles POST /api/sessions/{id}/frames.
func (h *SessionHandler) frame(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req FrameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFrameBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := ProcessFrame(sess, h.publisher, req)
	if err != nil {
		if errors.Is(err, landmark.ErrInvalidCount) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to process frame")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// clear handles POST /api/sessions/{id}/clear.
func (h *SessionHandler) clear(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	sess.ClearStatistics()
	writeJSON(w, http.StatusOK, clearResponse{Success: true, Message: "Statistics cleared"})
}

// history handles GET /api/sessions/{id}/history?limit=N.
func (h *SessionHandler) history(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if h.store == nil {
		writeError(w, http.StatusNotImplemented, "Detections are not recorded")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	detections, err := h.store.Detections().ListBySession(sess.ID(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list detections")
		return
	}
	stats, err := h.store.Detections().Stats(sess.ID())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate detections")
		return
	}

	if detections == nil {
		detections = []store.Detection{}
	}
	writeJSON(w, http.StatusOK, historyResponse{
		SessionID:  sess.ID(),
		Detections: detections,
		Stats:      stats,
	})
}
