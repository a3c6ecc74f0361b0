package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/session"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	maxMessage = 64 << 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SessionSocket classifies frames sent over a WebSocket. Every text message
// is a frame request and gets exactly one reply: the frame result, or an
// error object for frames that could not be processed. The session is pinned
// against idle pruning while the socket is open; once it is deleted the
// socket answers with an error and closes.
type SessionSocket struct {
	registry  *session.Registry
	publisher *app.Publisher
}

// NewSessionSocket creates a SessionSocket over the given registry.
func NewSessionSocket(registry *session.Registry, publisher *app.Publisher) *SessionSocket {
	return &SessionSocket{registry: registry, publisher: publisher}
}

type wsError struct {
	Error string `json:"error"`
}

// ServeHTTP handles /api/sessions/{id}/ws.
func (h *SessionSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	id = strings.TrimSuffix(id, "/ws")

	sess, release, err := h.registry.Attach(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	defer release()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessage)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		// The session may have been deleted while the socket was open.
		if cur, err := h.registry.Get(id); err != nil || cur != sess {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteJSON(wsError{Error: session.ErrSessionNotFound.Error()})
			return
		}

		var reply interface{}
		var req api.FrameRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			reply = wsError{Error: "Invalid JSON"}
		} else if resp, err := api.ProcessFrame(sess, h.publisher, req); err != nil {
			reply = wsError{Error: err.Error()}
		} else {
			reply = resp
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("websocket write error: %v", err)
			return
		}
	}
}

// LiveSocket streams published results to WebSocket clients. The optional
// session query parameter restricts the stream to one session.
type LiveSocket struct {
	hub *app.Hub
}

// NewLiveSocket creates a LiveSocket fed by hub.
func NewLiveSocket(hub *app.Hub) *LiveSocket {
	return &LiveSocket{hub: hub}
}

// ServeHTTP handles /api/live.
func (h *LiveSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("session")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.hub.Subscribe()
	defer cancel()

	// Clients only listen; reading detects when they go away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if filter != "" && u.SessionID != filter {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(u); err != nil {
				return
			}
		}
	}
}
