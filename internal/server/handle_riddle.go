package server

import (
	"net/http"
	"strings"

	"github.com/rehletna/trivia/internal/trivia"
)

// RiddleView is the current riddle without its answer.
type RiddleView struct {
	ID       int    `json:"id"`
	Kind     string `json:"kind"`
	Question string `json:"question"`
	HintUsed bool   `json:"hintUsed"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Done     bool   `json:"done"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

// AnswerResult is the shared response shape for answer submissions.
type AnswerResult struct {
	Correct    bool   `json:"correct"`
	ScoreDelta int    `json:"scoreDelta"`
	Score      int    `json:"score"`
	Stage      int    `json:"stage"`
	Done       bool   `json:"done"`
	Answer     string `json:"answer,omitempty"`
	TimedOut   bool   `json:"timedOut,omitempty"`
}

func handleRiddleCurrent(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Riddles)
		if !ok {
			return
		}

		riddles, _, err := store.Riddles(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		idx := d.cursor(trivia.Riddles)
		if idx >= len(riddles) {
			writeJSON(w, http.StatusOK, RiddleView{Index: idx, Total: len(riddles), Done: true})
			return
		}

		riddle := riddles[idx]
		writeJSON(w, http.StatusOK, RiddleView{
			ID:       riddle.ID,
			Kind:     string(riddle.Kind),
			Question: riddle.Question,
			HintUsed: d.hintUsed(riddle.ID),
			Index:    idx,
			Total:    len(riddles),
		})
	}
}

type HintResponse struct {
	Hint  string `json:"hint"`
	Score int    `json:"score"`
}

func handleRiddleHint(store *DocStore, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Riddles)
		if !ok {
			return
		}

		riddles, _, err := store.Riddles(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		idx := d.cursor(trivia.Riddles)
		if idx >= len(riddles) {
			writeError(w, http.StatusConflict, "all riddles completed")
			return
		}
		riddle := riddles[idx]

		// The cost applies once per riddle; repeat requests just return it.
		if d.hintUsed(riddle.ID) {
			writeJSON(w, http.StatusOK, HintResponse{Hint: riddle.Hint, Score: d.Score})
			return
		}

		updated, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
			if !doc.hintUsed(riddle.ID) {
				doc.HintsUsed = append(doc.HintsUsed, riddle.ID)
				doc.Score += trivia.HintCost
			}
			return nil
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.publishProgress(updated, "hint_used", string(trivia.Riddles))
		writeJSON(w, http.StatusOK, HintResponse{Hint: riddle.Hint, Score: updated.Score})
	}
}

func handleRiddleAnswer(store *DocStore, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Riddles)
		if !ok {
			return
		}

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Answer) == "" {
			writeError(w, http.StatusBadRequest, "answer is required")
			return
		}

		riddles, _, err := store.Riddles(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if d.cursor(trivia.Riddles) >= len(riddles) {
			writeError(w, http.StatusConflict, "all riddles completed")
			return
		}

		var result AnswerResult
		updated, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
			idx := doc.cursor(trivia.Riddles)
			if idx >= len(riddles) {
				return errAlreadyDone
			}
			riddle := riddles[idx]

			if riddle.Check(req.Answer) {
				result.Correct = true
				result.ScoreDelta = trivia.RiddleReward
				doc.Score += trivia.RiddleReward
				doc.setCursor(trivia.Riddles, idx+1)
				if idx+1 >= len(riddles) {
					doc.completeStage(trivia.Riddles.Stage())
					result.Done = true
				}
			} else {
				// Wrong answers cost points but the riddle stays current.
				result.ScoreDelta = trivia.RiddlePenalty
				doc.Score += trivia.RiddlePenalty
			}
			return nil
		})
		if err == errAlreadyDone {
			writeError(w, http.StatusConflict, "all riddles completed")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		result.Score = updated.Score
		result.Stage = updated.Stage
		broker.publishProgress(updated, "answer", string(trivia.Riddles))
		writeJSON(w, http.StatusOK, result)
	}
}
