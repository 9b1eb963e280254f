package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/rehletna/trivia/internal/trivia"
)

func TestMathFlow(t *testing.T) {
	r, store := newTestServer(t)
	token := loginDevice(t, r, "Ana")
	setStage(t, r, store, token, trivia.Math.Stage())

	w := doJSON(t, r, http.MethodGet, "/api/math/current", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("current: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var view MathView
	json.NewDecoder(w.Body).Decode(&view)
	if view.ID != trivia.DefaultMath[0].ID || view.Deadline == "" {
		t.Fatalf("expected first question with deadline, got %+v", view)
	}

	// Correct answer scores and advances.
	answer := strconv.Itoa(trivia.DefaultMath[0].Answer)
	w = doJSON(t, r, http.MethodPost, "/api/math/answer", token, AnswerRequest{Answer: answer})
	var result MathAnswerResult
	json.NewDecoder(w.Body).Decode(&result)
	if !result.Correct || result.ScoreDelta != trivia.MathReward {
		t.Errorf("correct: got %+v", result)
	}

	// Wrong answer costs points but also advances, revealing the solution.
	w = doJSON(t, r, http.MethodPost, "/api/math/answer", token, AnswerRequest{Answer: "999999"})
	json.NewDecoder(w.Body).Decode(&result)
	if result.Correct || result.ScoreDelta != trivia.MathPenalty {
		t.Errorf("wrong: got %+v", result)
	}
	if result.Answer != strconv.Itoa(trivia.DefaultMath[1].Answer) {
		t.Errorf("wrong answer must reveal solution, got %q", result.Answer)
	}
	if result.Explanation == "" {
		t.Error("wrong answer must include the explanation")
	}

	w = doJSON(t, r, http.MethodGet, "/api/math/current", token, nil)
	json.NewDecoder(w.Body).Decode(&view)
	if view.Index != 2 {
		t.Errorf("expected cursor at 2, got %d", view.Index)
	}
}

func TestMathTimeoutNoDelta(t *testing.T) {
	r, store := newTestServer(t)
	token := loginDevice(t, r, "Ana")
	id := setStage(t, r, store, token, trivia.Math.Stage())

	doJSON(t, r, http.MethodGet, "/api/math/current", token, nil)
	if _, err := store.modifyDevice(context.Background(), id, func(doc *deviceDoc) error {
		doc.setDeadline(mathDeadlineKey(0), time.Now().Add(-time.Second))
		return nil
	}); err != nil {
		t.Fatalf("rewind deadline: %v", err)
	}

	answer := strconv.Itoa(trivia.DefaultMath[0].Answer)
	w := doJSON(t, r, http.MethodPost, "/api/math/answer", token, AnswerRequest{Answer: answer})
	var result MathAnswerResult
	json.NewDecoder(w.Body).Decode(&result)

	if !result.TimedOut || result.Correct {
		t.Fatalf("expected timeout, got %+v", result)
	}
	if result.ScoreDelta != 0 || result.Score != 0 {
		t.Errorf("timeout must not score: %+v", result)
	}

	var view MathView
	w = doJSON(t, r, http.MethodGet, "/api/math/current", token, nil)
	json.NewDecoder(w.Body).Decode(&view)
	if view.Index != 1 {
		t.Errorf("timeout must advance, cursor at %d", view.Index)
	}
}

func TestMathCompletionAdvancesStage(t *testing.T) {
	r, store := newTestServer(t)
	token := loginDevice(t, r, "Ana")
	setStage(t, r, store, token, trivia.Math.Stage())

	for _, q := range trivia.DefaultMath {
		w := doJSON(t, r, http.MethodPost, "/api/math/answer", token, AnswerRequest{Answer: strconv.Itoa(q.Answer)})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	var d Device
	w := doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	json.NewDecoder(w.Body).Decode(&d)
	if d.Stage != trivia.Math.Stage()+1 {
		t.Errorf("expected stage %d after math, got %d", trivia.Math.Stage()+1, d.Stage)
	}
}
