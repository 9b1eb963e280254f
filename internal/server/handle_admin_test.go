package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rehletna/trivia/internal/trivia"
)

func adminLogin(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(AdminLoginRequest{Password: testAdminPassword})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName {
			return c
		}
	}
	t.Fatal("admin login: expected a session cookie")
	return nil
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login", "", AdminLoginRequest{Password: "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me without cookie: expected 401, got %d", w.Code)
	}
}

func TestAdminContentRequiresAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/admin/content/riddles", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAdminContentUnknownCategory(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := adminLogin(t, r)

	for _, cat := range []string{"bogus", "wheel"} {
		w := doJSON(t, r, http.MethodGet, "/api/admin/content/"+cat, "", nil, cookie)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", cat, w.Code)
		}
	}
}

func TestAdminRiddleCRUD(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := adminLogin(t, r)

	// Defaults are served until the first write.
	w := doJSON(t, r, http.MethodGet, "/api/admin/content/riddles", "", nil, cookie)
	var list ContentListResponse[trivia.Riddle]
	json.NewDecoder(w.Body).Decode(&list)
	if list.Overridden {
		t.Error("fresh category must not be overridden")
	}
	if len(list.Items) != len(trivia.DefaultRiddles) {
		t.Fatalf("expected %d defaults, got %d", len(trivia.DefaultRiddles), len(list.Items))
	}

	// Adding forks the list; the new item gets the next free id.
	payload := RiddlePayload{
		Kind:     "text",
		Question: "سؤال جديد؟",
		Answer:   "جواب",
		Accepted: "جواب اخر, بديل",
		Hint:     "تلميح",
	}
	w = doJSON(t, r, http.MethodPost, "/api/admin/content/riddles", "", payload, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("add: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var added trivia.Riddle
	json.NewDecoder(w.Body).Decode(&added)
	wantID := trivia.NextID(trivia.DefaultRiddles)
	if added.ID != wantID {
		t.Errorf("expected id %d, got %d", wantID, added.ID)
	}
	if len(added.Accepted) != 2 {
		t.Errorf("expected 2 accepted variants, got %v", added.Accepted)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/content/riddles", "", nil, cookie)
	json.NewDecoder(w.Body).Decode(&list)
	if !list.Overridden {
		t.Error("category must be overridden after add")
	}
	if len(list.Items) != len(trivia.DefaultRiddles)+1 {
		t.Errorf("expected %d items, got %d", len(trivia.DefaultRiddles)+1, len(list.Items))
	}

	// Update and delete by id; unknown ids are 404.
	payload.Question = "سؤال معدل؟"
	path := fmt.Sprintf("/api/admin/content/riddles/%d", added.ID)
	w = doJSON(t, r, http.MethodPut, path, "", payload, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated trivia.Riddle
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Question != "سؤال معدل؟" || updated.ID != added.ID {
		t.Errorf("update: got %+v", updated)
	}

	w = doJSON(t, r, http.MethodPut, "/api/admin/content/riddles/999", "", payload, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("update missing: expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, path, "", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, path, "", nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete again: expected 404, got %d", w.Code)
	}
}

func TestAdminValidation(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := adminLogin(t, r)

	// Non-numeric math answer.
	w := doJSON(t, r, http.MethodPost, "/api/admin/content/math", "",
		map[string]any{"question": "1+1", "answer": "two"}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	var verr ValidationError
	json.NewDecoder(w.Body).Decode(&verr)
	if verr.Field != "answer" {
		t.Errorf("expected field 'answer', got %q", verr.Field)
	}

	// Missing riddle question.
	w = doJSON(t, r, http.MethodPost, "/api/admin/content/riddles", "",
		RiddlePayload{Answer: "x"}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}

	// Negative photo points.
	w = doJSON(t, r, http.MethodPost, "/api/admin/content/photos", "",
		map[string]any{"title": "t", "points": -5}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for negative points, got %d", w.Code)
	}

	// Verse level out of range.
	w = doJSON(t, r, http.MethodPost, "/api/admin/content/verses", "",
		map[string]any{"level": 7, "kind": "reference", "text": "x", "options": "a,b", "correct": "a"}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for level 7, got %d", w.Code)
	}
}

func TestAdminReorder(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := adminLogin(t, r)

	last := len(trivia.DefaultQuotes) - 1
	w := doJSON(t, r, http.MethodPost, "/api/admin/content/quotes/reorder", "",
		ReorderRequest{FromIndex: last, ToIndex: 0}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("reorder: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list ContentListResponse[trivia.QuoteChallenge]
	json.NewDecoder(w.Body).Decode(&list)
	if list.Items[0].ID != trivia.DefaultQuotes[last].ID {
		t.Errorf("expected item %d moved to front, got %d", trivia.DefaultQuotes[last].ID, list.Items[0].ID)
	}
	if list.Items[1].ID != trivia.DefaultQuotes[0].ID {
		t.Errorf("expected the rest to shift down, got %d", list.Items[1].ID)
	}
	if len(list.Items) != len(trivia.DefaultQuotes) {
		t.Errorf("move must keep every item, got %d", len(list.Items))
	}

	// Out-of-range indexes are rejected.
	w = doJSON(t, r, http.MethodPost, "/api/admin/content/quotes/reorder", "",
		ReorderRequest{FromIndex: 99, ToIndex: 0}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad fromIndex: expected 422, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/admin/content/quotes/reorder", "",
		ReorderRequest{FromIndex: 0, ToIndex: -1}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad toIndex: expected 422, got %d", w.Code)
	}
}

func TestAdminReplaceOverride(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := adminLogin(t, r)

	items := []map[string]any{
		{"id": 7, "quote": "من قال هذا أولا؟", "answer": "يشوع", "options": "يشوع,إشعياء"},
		{"id": 3, "quote": "ومن قال هذا؟", "answer": "إشعياء", "options": "يشوع,إشعياء"},
	}
	w := doJSON(t, r, http.MethodPut, "/api/admin/content/quotes", "",
		map[string]any{"items": items}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("replace: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list ContentListResponse[trivia.QuoteChallenge]
	json.NewDecoder(w.Body).Decode(&list)
	if !list.Overridden || len(list.Items) != 2 {
		t.Fatalf("expected 2 overridden items, got %+v", list)
	}
	if list.Items[0].ID != 7 || list.Items[1].ID != 3 {
		t.Errorf("replace must keep submitted ids and order, got %+v", list.Items)
	}

	// The list round-trips.
	w = doJSON(t, r, http.MethodGet, "/api/admin/content/quotes", "", nil, cookie)
	json.NewDecoder(w.Body).Decode(&list)
	if len(list.Items) != 2 || list.Items[0].ID != 7 {
		t.Errorf("expected replaced list to persist, got %+v", list.Items)
	}

	// Duplicate ids are rejected.
	w = doJSON(t, r, http.MethodPut, "/api/admin/content/quotes", "",
		map[string]any{"items": []map[string]any{items[0], items[0]}}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("duplicate ids: expected 422, got %d", w.Code)
	}

	// Each item passes the same validation as add.
	w = doJSON(t, r, http.MethodPut, "/api/admin/content/quotes", "",
		map[string]any{"items": []map[string]any{{"id": 1, "quote": "بلا جواب"}}}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid item: expected 422, got %d", w.Code)
	}
	var verr ValidationError
	json.NewDecoder(w.Body).Decode(&verr)
	if verr.Field != "answer" {
		t.Errorf("expected field 'answer', got %q", verr.Field)
	}
}

func TestAdminOverrideServesGame(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := adminLogin(t, r)
	token := loginDevice(t, r, "Ana")

	// Replace the riddle bank with a single custom riddle.
	payload := RiddlePayload{Kind: "text", Question: "كم عدد الأسفار؟", Answer: "66"}
	w := doJSON(t, r, http.MethodPost, "/api/admin/content/riddles", "", payload, cookie)
	var added trivia.Riddle
	json.NewDecoder(w.Body).Decode(&added)
	for _, d := range trivia.DefaultRiddles {
		path := fmt.Sprintf("/api/admin/content/riddles/%d", d.ID)
		if w := doJSON(t, r, http.MethodDelete, path, "", nil, cookie); w.Code != http.StatusOK {
			t.Fatalf("delete default %d: got %d", d.ID, w.Code)
		}
	}

	w = doJSON(t, r, http.MethodGet, "/api/riddles/current", token, nil)
	var view RiddleView
	json.NewDecoder(w.Body).Decode(&view)
	if view.ID != added.ID {
		t.Fatalf("game must serve the override, got riddle %d", view.ID)
	}
	if view.Total != 1 {
		t.Errorf("expected 1 riddle in play, got %d", view.Total)
	}

	// Other categories are untouched.
	var quotes ContentListResponse[trivia.QuoteChallenge]
	w = doJSON(t, r, http.MethodGet, "/api/admin/content/quotes", "", nil, cookie)
	json.NewDecoder(w.Body).Decode(&quotes)
	if quotes.Overridden {
		t.Error("quotes must not be overridden by a riddle edit")
	}

	// Clearing the override restores the defaults.
	w = doJSON(t, r, http.MethodDelete, "/api/admin/content/riddles/override", "", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", w.Code)
	}
	var list ContentListResponse[trivia.Riddle]
	w = doJSON(t, r, http.MethodGet, "/api/admin/content/riddles", "", nil, cookie)
	json.NewDecoder(w.Body).Decode(&list)
	if list.Overridden || len(list.Items) != len(trivia.DefaultRiddles) {
		t.Errorf("reset must restore defaults: overridden=%v items=%d", list.Overridden, len(list.Items))
	}
}

func TestCorruptOverrideFallsBack(t *testing.T) {
	r, store := newTestServer(t)
	cookie := adminLogin(t, r)

	// A row that is not an item array must not break the category.
	if err := store.put(context.Background(), "content_overrides", string(trivia.Riddles),
		map[string]string{"oops": "not a list"}); err != nil {
		t.Fatalf("plant corrupt row: %v", err)
	}

	riddles, overridden, err := store.Riddles(context.Background())
	if err != nil {
		t.Fatalf("Riddles: %v", err)
	}
	if overridden {
		t.Error("corrupt override must not count as overridden")
	}
	if len(riddles) != len(trivia.DefaultRiddles) {
		t.Errorf("expected defaults, got %d items", len(riddles))
	}

	w := doJSON(t, r, http.MethodGet, "/api/admin/content/riddles", "", nil, cookie)
	if w.Code != http.StatusOK {
		t.Errorf("editor list with corrupt row: expected 200, got %d", w.Code)
	}
}

func TestAdminLogoutClearsSession(t *testing.T) {
	r, _ := newTestServer(t)
	cookie := adminLogin(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/admin/me", "", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/logout", "", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/me", "", nil, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout: expected 401, got %d", w.Code)
	}
}
