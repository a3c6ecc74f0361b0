package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mudra-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestGestureHandler_List(t *testing.T) {
	handler := NewGestureHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/gestures", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var response catalogResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	wantCounts := []struct {
		category gesture.Category
		count    int
	}{
		{gesture.CategoryAlphabet, 26},
		{gesture.CategoryCommon, 10},
		{gesture.CategoryNumber, 5},
		{gesture.CategoryGesture, 7},
	}

	if len(response.Categories) != len(wantCounts) {
		t.Fatalf("expected %d categories, got %d", len(wantCounts), len(response.Categories))
	}
	for i, want := range wantCounts {
		got := response.Categories[i]
		if got.Category != want.category || got.Count != want.count || len(got.Gestures) != want.count {
			t.Errorf("category %d: got %s with %d (%d listed), want %s with %d",
				i, got.Category, got.Count, len(got.Gestures), want.category, want.count)
		}
	}
	if response.Total != 48 || handler.Len() != 48 {
		t.Errorf("expected 48 gestures, got total=%d len=%d", response.Total, handler.Len())
	}
}

func TestGestureHandler_Get(t *testing.T) {
	handler := NewGestureHandler()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantSymbol string
	}{
		{name: "letter", path: "/api/gestures/A", wantStatus: http.StatusOK, wantSymbol: "✊"},
		{name: "escaped label", path: "/api/gestures/Thank%20You", wantStatus: http.StatusOK, wantSymbol: "🙏"},
		{name: "trailing slash", path: "/api/gestures/OK/", wantStatus: http.StatusOK, wantSymbol: "👌"},
		{name: "unknown label", path: "/api/gestures/Wave", wantStatus: http.StatusNotFound},
		{name: "sentinel", path: "/api/gestures/Unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus != http.StatusOK {
				var errResp errorResponse
				if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil || errResp.Error == "" {
					t.Errorf("expected JSON error body, got %q", rec.Body.String())
				}
				return
			}

			var info gesture.Info
			if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if info.Symbol != tt.wantSymbol {
				t.Errorf("expected symbol %s, got %s", tt.wantSymbol, info.Symbol)
			}
		})
	}
}

func TestGestureHandler_MethodNotAllowed(t *testing.T) {
	handler := NewGestureHandler()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/gestures", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}
