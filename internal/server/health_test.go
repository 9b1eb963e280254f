package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rehletna/trivia/internal/database"
)

func TestHealth(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handleHealth(logger, db)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var checks map[string]struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(w.Body).Decode(&checks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if checks["sqlite"].Status != "ok" {
		t.Errorf("expected sqlite ok, got %q", checks["sqlite"].Status)
	}
}

func TestHealthDown(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handleHealth(logger, db)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with closed db, got %d", w.Code)
	}
}
