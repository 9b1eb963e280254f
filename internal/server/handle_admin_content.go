package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rehletna/trivia/internal/trivia"
)

// The editor never touches the compiled-in defaults. The first write to a
// category persists the full effective list as an override row; clearing
// the override restores the defaults.

// ContentListResponse wraps an effective content list for the editor.
type ContentListResponse[T trivia.Item] struct {
	Category   string `json:"category"`
	Overridden bool   `json:"overridden"`
	Items      []T    `json:"items"`
}

func parseCategory(r *http.Request) (trivia.Category, bool) {
	cat := trivia.Category(chi.URLParam(r, "category"))
	return cat, cat.Editable()
}

// buildFunc constructs an item from a raw payload, assigning the given
// id. A non-nil ValidationError rejects the payload with 422.
type buildFunc[T trivia.Item] func(data []byte, id int) (T, *ValidationError)

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

// Editor payloads. List-valued fields arrive as comma-separated strings,
// numeric fields as json.Number so a non-numeric value is caught here
// instead of failing the whole decode.

type RiddlePayload struct {
	Kind     string `json:"kind"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Accepted string `json:"accepted"`
	Hint     string `json:"hint"`
}

func buildRiddle(data []byte, id int) (trivia.Riddle, *ValidationError) {
	var p RiddlePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return trivia.Riddle{}, &ValidationError{Field: "body", Message: "invalid request body"}
	}
	kind := trivia.RiddleKind(p.Kind)
	if kind == "" {
		kind = trivia.RiddleText
	}
	if kind != trivia.RiddleText && kind != trivia.RiddleEmoji {
		return trivia.Riddle{}, &ValidationError{Field: "kind", Message: "must be text or emoji"}
	}
	if strings.TrimSpace(p.Question) == "" {
		return trivia.Riddle{}, &ValidationError{Field: "question", Message: "required"}
	}
	if strings.TrimSpace(p.Answer) == "" {
		return trivia.Riddle{}, &ValidationError{Field: "answer", Message: "required"}
	}
	return trivia.Riddle{
		ID:       id,
		Kind:     kind,
		Question: strings.TrimSpace(p.Question),
		Answer:   strings.TrimSpace(p.Answer),
		Accepted: trivia.SplitList(p.Accepted),
		Hint:     strings.TrimSpace(p.Hint),
	}, nil
}

type VersePayload struct {
	Level   json.Number `json:"level"`
	Kind    string      `json:"kind"`
	Text    string      `json:"text"`
	Words   string      `json:"words"`
	Options string      `json:"options"`
	Correct string      `json:"correct"`
}

func buildVerse(data []byte, id int) (trivia.VerseChallenge, *ValidationError) {
	var p VersePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return trivia.VerseChallenge{}, &ValidationError{Field: "body", Message: "invalid request body"}
	}
	level, err := strconv.Atoi(p.Level.String())
	if err != nil || level < 1 || level > trivia.VerseLevels {
		return trivia.VerseChallenge{}, &ValidationError{Field: "level", Message: "must be a number between 1 and 3"}
	}
	kind := trivia.VerseKind(p.Kind)
	switch kind {
	case trivia.VerseMissingWord, trivia.VerseArrange, trivia.VerseReference:
	default:
		return trivia.VerseChallenge{}, &ValidationError{Field: "kind", Message: "unknown verse kind"}
	}
	if strings.TrimSpace(p.Correct) == "" {
		return trivia.VerseChallenge{}, &ValidationError{Field: "correct", Message: "required"}
	}
	v := trivia.VerseChallenge{
		ID:      id,
		Level:   level,
		Kind:    kind,
		Text:    strings.TrimSpace(p.Text),
		Words:   trivia.SplitList(p.Words),
		Options: trivia.SplitList(p.Options),
		Correct: strings.TrimSpace(p.Correct),
	}
	if kind == trivia.VerseArrange && len(v.Words) == 0 {
		return trivia.VerseChallenge{}, &ValidationError{Field: "words", Message: "required for arrange"}
	}
	if kind != trivia.VerseArrange && len(v.Options) == 0 {
		return trivia.VerseChallenge{}, &ValidationError{Field: "options", Message: "required"}
	}
	return v, nil
}

type LinkPayload struct {
	Items   string `json:"items"`
	Answer  string `json:"answer"`
	Options string `json:"options"`
}

func buildLink(data []byte, id int) (trivia.LinkChallenge, *ValidationError) {
	var p LinkPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return trivia.LinkChallenge{}, &ValidationError{Field: "body", Message: "invalid request body"}
	}
	items := trivia.SplitList(p.Items)
	if len(items) < 2 {
		return trivia.LinkChallenge{}, &ValidationError{Field: "items", Message: "at least two items required"}
	}
	if strings.TrimSpace(p.Answer) == "" {
		return trivia.LinkChallenge{}, &ValidationError{Field: "answer", Message: "required"}
	}
	options := trivia.SplitList(p.Options)
	if len(options) == 0 {
		return trivia.LinkChallenge{}, &ValidationError{Field: "options", Message: "required"}
	}
	return trivia.LinkChallenge{
		ID:      id,
		Items:   items,
		Answer:  strings.TrimSpace(p.Answer),
		Options: options,
	}, nil
}

type QuotePayload struct {
	Quote   string `json:"quote"`
	Answer  string `json:"answer"`
	Options string `json:"options"`
}

func buildQuote(data []byte, id int) (trivia.QuoteChallenge, *ValidationError) {
	var p QuotePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return trivia.QuoteChallenge{}, &ValidationError{Field: "body", Message: "invalid request body"}
	}
	if strings.TrimSpace(p.Quote) == "" {
		return trivia.QuoteChallenge{}, &ValidationError{Field: "quote", Message: "required"}
	}
	if strings.TrimSpace(p.Answer) == "" {
		return trivia.QuoteChallenge{}, &ValidationError{Field: "answer", Message: "required"}
	}
	options := trivia.SplitList(p.Options)
	if len(options) == 0 {
		return trivia.QuoteChallenge{}, &ValidationError{Field: "options", Message: "required"}
	}
	return trivia.QuoteChallenge{
		ID:      id,
		Quote:   strings.TrimSpace(p.Quote),
		Answer:  strings.TrimSpace(p.Answer),
		Options: options,
	}, nil
}

type MathPayload struct {
	Question    string      `json:"question"`
	Answer      json.Number `json:"answer"`
	Explanation string      `json:"explanation"`
}

func buildMath(data []byte, id int) (trivia.MathQuestion, *ValidationError) {
	var p MathPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return trivia.MathQuestion{}, &ValidationError{Field: "body", Message: "invalid request body"}
	}
	if strings.TrimSpace(p.Question) == "" {
		return trivia.MathQuestion{}, &ValidationError{Field: "question", Message: "required"}
	}
	answer, err := strconv.Atoi(p.Answer.String())
	if err != nil {
		return trivia.MathQuestion{}, &ValidationError{Field: "answer", Message: "must be a whole number"}
	}
	return trivia.MathQuestion{
		ID:          id,
		Question:    strings.TrimSpace(p.Question),
		Answer:      answer,
		Explanation: strings.TrimSpace(p.Explanation),
	}, nil
}

type PhotoPayload struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Points      json.Number `json:"points"`
}

func buildPhoto(data []byte, id int) (trivia.PhotoTask, *ValidationError) {
	var p PhotoPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return trivia.PhotoTask{}, &ValidationError{Field: "body", Message: "invalid request body"}
	}
	if strings.TrimSpace(p.Title) == "" {
		return trivia.PhotoTask{}, &ValidationError{Field: "title", Message: "required"}
	}
	points, err := strconv.Atoi(p.Points.String())
	if err != nil || points < 0 {
		return trivia.PhotoTask{}, &ValidationError{Field: "points", Message: "must be a non-negative number"}
	}
	return trivia.PhotoTask{
		ID:          id,
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Points:      points,
	}, nil
}

// Generic editor operations over the effective list.

func contentList[T trivia.Item](w http.ResponseWriter, r *http.Request, s *DocStore, cat trivia.Category, defaults []T) {
	items, overridden, err := effectiveList(r.Context(), s, cat, defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, ContentListResponse[T]{
		Category:   string(cat),
		Overridden: overridden,
		Items:      items,
	})
}

func contentAdd[T trivia.Item](w http.ResponseWriter, r *http.Request, s *DocStore, cat trivia.Category, defaults []T, build buildFunc[T]) {
	items, _, err := effectiveList(r.Context(), s, cat, defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, verr := build(body, trivia.NextID(items))
	if verr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, verr)
		return
	}

	items = append(items, item)
	if err := saveOverride(r.Context(), s, cat, items); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func contentUpdate[T trivia.Item](w http.ResponseWriter, r *http.Request, s *DocStore, cat trivia.Category, defaults []T, build buildFunc[T]) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	items, _, err := effectiveList(r.Context(), s, cat, defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	pos := -1
	for i, it := range items {
		if it.ItemID() == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, verr := build(body, id)
	if verr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, verr)
		return
	}

	items[pos] = item
	if err := saveOverride(r.Context(), s, cat, items); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func contentDelete[T trivia.Item](w http.ResponseWriter, r *http.Request, s *DocStore, cat trivia.Category, defaults []T) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	items, _, err := effectiveList(r.Context(), s, cat, defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	pos := -1
	for i, it := range items {
		if it.ItemID() == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	items = append(items[:pos], items[pos+1:]...)
	if err := saveOverride(r.Context(), s, cat, items); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ReorderRequest moves one item from its current position to another.
type ReorderRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

func contentReorder[T trivia.Item](w http.ResponseWriter, r *http.Request, s *DocStore, cat trivia.Category, defaults []T) {
	var req ReorderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, _, err := effectiveList(r.Context(), s, cat, defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if req.FromIndex < 0 || req.FromIndex >= len(items) {
		writeValidation(w, "fromIndex", "out of range")
		return
	}
	if req.ToIndex < 0 || req.ToIndex >= len(items) {
		writeValidation(w, "toIndex", "out of range")
		return
	}

	item := items[req.FromIndex]
	items = append(items[:req.FromIndex], items[req.FromIndex+1:]...)
	items = append(items, item)
	copy(items[req.ToIndex+1:], items[req.ToIndex:])
	items[req.ToIndex] = item

	if err := saveOverride(r.Context(), s, cat, items); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, ContentListResponse[T]{
		Category:   string(cat),
		Overridden: true,
		Items:      items,
	})
}

// ReplaceRequest carries a wholesale override list. Every item keeps the
// id it arrives with.
type ReplaceRequest struct {
	Items []json.RawMessage `json:"items"`
}

func contentReplace[T trivia.Item](w http.ResponseWriter, r *http.Request, s *DocStore, cat trivia.Category, build buildFunc[T]) {
	var req ReplaceRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]T, 0, len(req.Items))
	seen := make(map[int]bool, len(req.Items))
	for _, raw := range req.Items {
		var head struct {
			ID json.Number `json:"id"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			writeValidation(w, "items", "each item must be an object")
			return
		}
		id, err := strconv.Atoi(head.ID.String())
		if err != nil || id < 1 || seen[id] {
			writeValidation(w, "items", "each item needs a unique positive id")
			return
		}
		seen[id] = true

		item, verr := build(raw, id)
		if verr != nil {
			writeJSON(w, http.StatusUnprocessableEntity, verr)
			return
		}
		items = append(items, item)
	}

	if err := saveOverride(r.Context(), s, cat, items); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, ContentListResponse[T]{
		Category:   string(cat),
		Overridden: true,
		Items:      items,
	})
}

// Dispatch per category. Each handler resolves the category once and fans
// out to the typed operation.

func handleAdminContentList(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := parseCategory(r)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown category")
			return
		}
		switch cat {
		case trivia.Riddles:
			contentList(w, r, store, cat, trivia.DefaultRiddles)
		case trivia.Verses:
			contentList(w, r, store, cat, trivia.DefaultVerses)
		case trivia.Links:
			contentList(w, r, store, cat, trivia.DefaultLinks)
		case trivia.Quotes:
			contentList(w, r, store, cat, trivia.DefaultQuotes)
		case trivia.Math:
			contentList(w, r, store, cat, trivia.DefaultMath)
		case trivia.Photos:
			contentList(w, r, store, cat, trivia.DefaultPhotoTasks)
		}
	}
}

func handleAdminContentAdd(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := parseCategory(r)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown category")
			return
		}
		switch cat {
		case trivia.Riddles:
			contentAdd(w, r, store, cat, trivia.DefaultRiddles, buildRiddle)
		case trivia.Verses:
			contentAdd(w, r, store, cat, trivia.DefaultVerses, buildVerse)
		case trivia.Links:
			contentAdd(w, r, store, cat, trivia.DefaultLinks, buildLink)
		case trivia.Quotes:
			contentAdd(w, r, store, cat, trivia.DefaultQuotes, buildQuote)
		case trivia.Math:
			contentAdd(w, r, store, cat, trivia.DefaultMath, buildMath)
		case trivia.Photos:
			contentAdd(w, r, store, cat, trivia.DefaultPhotoTasks, buildPhoto)
		}
	}
}

func handleAdminContentUpdate(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := parseCategory(r)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown category")
			return
		}
		switch cat {
		case trivia.Riddles:
			contentUpdate(w, r, store, cat, trivia.DefaultRiddles, buildRiddle)
		case trivia.Verses:
			contentUpdate(w, r, store, cat, trivia.DefaultVerses, buildVerse)
		case trivia.Links:
			contentUpdate(w, r, store, cat, trivia.DefaultLinks, buildLink)
		case trivia.Quotes:
			contentUpdate(w, r, store, cat, trivia.DefaultQuotes, buildQuote)
		case trivia.Math:
			contentUpdate(w, r, store, cat, trivia.DefaultMath, buildMath)
		case trivia.Photos:
			contentUpdate(w, r, store, cat, trivia.DefaultPhotoTasks, buildPhoto)
		}
	}
}

func handleAdminContentDelete(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := parseCategory(r)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown category")
			return
		}
		switch cat {
		case trivia.Riddles:
			contentDelete(w, r, store, cat, trivia.DefaultRiddles)
		case trivia.Verses:
			contentDelete(w, r, store, cat, trivia.DefaultVerses)
		case trivia.Links:
			contentDelete(w, r, store, cat, trivia.DefaultLinks)
		case trivia.Quotes:
			contentDelete(w, r, store, cat, trivia.DefaultQuotes)
		case trivia.Math:
			contentDelete(w, r, store, cat, trivia.DefaultMath)
		case trivia.Photos:
			contentDelete(w, r, store, cat, trivia.DefaultPhotoTasks)
		}
	}
}

func handleAdminContentReplace(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := parseCategory(r)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown category")
			return
		}
		switch cat {
		case trivia.Riddles:
			contentReplace(w, r, store, cat, buildRiddle)
		case trivia.Verses:
			contentReplace(w, r, store, cat, buildVerse)
		case trivia.Links:
			contentReplace(w, r, store, cat, buildLink)
		case trivia.Quotes:
			contentReplace(w, r, store, cat, buildQuote)
		case trivia.Math:
			contentReplace(w, r, store, cat, buildMath)
		case trivia.Photos:
			contentReplace(w, r, store, cat, buildPhoto)
		}
	}
}

func handleAdminContentReorder(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := parseCategory(r)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown category")
			return
		}
		switch cat {
		case trivia.Riddles:
			contentReorder(w, r, store, cat, trivia.DefaultRiddles)
		case trivia.Verses:
			contentReorder(w, r, store, cat, trivia.DefaultVerses)
		case trivia.Links:
			contentReorder(w, r, store, cat, trivia.DefaultLinks)
		case trivia.Quotes:
			contentReorder(w, r, store, cat, trivia.DefaultQuotes)
		case trivia.Math:
			contentReorder(w, r, store, cat, trivia.DefaultMath)
		case trivia.Photos:
			contentReorder(w, r, store, cat, trivia.DefaultPhotoTasks)
		}
	}
}

func handleAdminContentReset(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, ok := parseCategory(r)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown category")
			return
		}
		if err := store.ClearOverride(r.Context(), cat); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
