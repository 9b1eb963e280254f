package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAPISpec(t *testing.T) {
	h := handleOpenAPI()

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var spec struct {
		OpenAPI string                     `json:"openapi"`
		Info    struct{ Title string }     `json:"info"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&spec); err != nil {
		t.Fatalf("decode spec: %v", err)
	}

	if spec.Info.Title != "Rehletna API" {
		t.Errorf("expected title 'Rehletna API', got %q", spec.Info.Title)
	}

	for _, path := range []string{
		"/healthz",
		"/api/login",
		"/api/state",
		"/api/riddles/answer",
		"/api/verses/{level}/answer",
		"/api/math/current",
		"/api/photos/{id}/done",
		"/api/wheel/spin",
		"/api/admin/content/{category}",
	} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
}
