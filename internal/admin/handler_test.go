package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAdminRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()

	s := store.NewMemoryStore()
	r := gin.New()
	RegisterHandlers(r, NewHandler(s))
	return r, s
}

func TestListCollections(t *testing.T) {
	r, _ := setupAdminRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/collections", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Collections []string `json:"collections"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Collections) != len(store.Collections) {
		t.Fatalf("expected %d collections, got %d", len(store.Collections), len(body.Collections))
	}
}

func TestGetCollection(t *testing.T) {
	r, s := setupAdminRouter(t)

	err := s.SaveVenues(context.Background(), []domain.Venue{
		{ID: "blue-note", Name: "Blue Note", Type: "Jazz Club"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/collections/venues", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var venues []domain.Venue
	if err := json.NewDecoder(w.Body).Decode(&venues); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(venues) != 1 || venues[0].ID != "blue-note" {
		t.Fatalf("wrong venues: %+v", venues)
	}
}

func TestReplaceCollection(t *testing.T) {
	r, s := setupAdminRouter(t)

	payload, _ := json.Marshal([]domain.User{
		{ID: "u1", Name: "Alex", VibeStatus: domain.VibeChilling, Friends: []string{"u2"}},
		{ID: "u2", Name: "Sarah", VibeStatus: domain.VibeExploring, Friends: []string{"u1"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/collections/users", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	users, err := s.LoadUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[1].Name != "Sarah" {
		t.Fatalf("collection not replaced: %+v", users)
	}
}

func TestUnknownCollection(t *testing.T) {
	r, _ := setupAdminRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodPut} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/admin/collections/widgets", bytes.NewReader([]byte("[]")))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", method, w.Code)
		}
	}
}

func TestReplaceCollection_InvalidBody(t *testing.T) {
	r, _ := setupAdminRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/collections/users", bytes.NewReader([]byte(`{"not": "a list"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
