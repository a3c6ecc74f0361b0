package session

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session ID is not registered.
var ErrSessionNotFound = errors.New("session not found")

// Registry holds the live sessions keyed by ID.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	pins        map[string]int
	historySize int
	now         func() time.Time
}

// NewRegistry creates an empty registry whose sessions keep historySize
// labels of history.
func NewRegistry(historySize int) *Registry {
	return &Registry{
		sessions:    make(map[string]*Session),
		pins:        make(map[string]int),
		historySize: historySize,
		now:         time.Now,
	}
}

// Create registers a new session under a fresh random ID.
func (r *Registry) Create() *Session {
	s := newSession(uuid.NewString(), r.historySize, r.now)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
	return s
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// GetOrCreate returns the session with the given ID, creating it first if
// needed. It is used for well-known sessions such as the camera stream.
func (r *Registry) GetOrCreate(id string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s = newSession(id, r.historySize, r.now)
	r.sessions[id] = s
	return s
}

// Attach returns the session with the given ID and pins it against Prune
// until the returned release func is called. Release is safe to call more
// than once.
func (r *Registry) Attach(id string) (*Session, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	r.pins[id]++
	return s, r.releaser(id), nil
}

// Pin keeps Prune away from id, whether or not the session exists yet,
// until the returned release func is called.
func (r *Registry) Pin(id string) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pins[id]++
	return r.releaser(id)
}

func (r *Registry) releaser(id string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.pins[id]--; r.pins[id] <= 0 {
				delete(r.pins, id)
			}
		})
	}
}

// Delete removes a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// List returns all sessions, oldest first.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].createdAt.Equal(out[j].createdAt) {
			return out[i].id < out[j].id
		}
		return out[i].createdAt.Before(out[j].createdAt)
	})
	return out
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune removes sessions that have not accepted a frame for longer than
// maxIdle and returns their IDs. Pinned sessions are never pruned.
func (r *Registry) Prune(maxIdle time.Duration) []string {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	var pruned []string
	for id, s := range r.sessions {
		if r.pins[id] == 0 && s.UpdatedAt().Before(cutoff) {
			delete(r.sessions, id)
			pruned = append(pruned, id)
		}
	}
	sort.Strings(pruned)
	return pruned
}

// RunJanitor prunes idle sessions every interval until ctx is cancelled.
func (r *Registry) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := r.Prune(maxIdle); len(pruned) > 0 {
				log.Printf("Pruned %d idle sessions", len(pruned))
			}
		}
	}
}
