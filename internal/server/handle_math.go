package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rehletna/trivia/internal/trivia"
)

// MathView is the current math question without its answer.
type MathView struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Deadline string `json:"deadline"`
	Done     bool   `json:"done"`
}

// MathAnswerResult extends the shared result with the worked solution.
type MathAnswerResult struct {
	AnswerResult
	Explanation string `json:"explanation,omitempty"`
}

func mathDeadlineKey(idx int) string {
	return fmt.Sprintf("math:%d", idx)
}

func handleMathCurrent(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Math)
		if !ok {
			return
		}

		questions, _, err := store.MathList(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		idx := d.cursor(trivia.Math)
		if idx >= len(questions) {
			writeJSON(w, http.StatusOK, MathView{Index: idx, Total: len(questions), Done: true})
			return
		}
		q := questions[idx]

		// Arm the countdown on first view; a refresh must not restart it.
		key := mathDeadlineKey(idx)
		deadline, armed := d.deadline(key)
		if !armed {
			deadline = time.Now().Add(trivia.QuestionSeconds * time.Second)
			if _, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
				if _, ok := doc.deadline(key); !ok {
					doc.setDeadline(key, deadline)
				}
				return nil
			}); err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		writeJSON(w, http.StatusOK, MathView{
			ID:       q.ID,
			Question: q.Question,
			Index:    idx,
			Total:    len(questions),
			Deadline: deadline.UTC().Format(time.RFC3339Nano),
		})
	}
}

func handleMathAnswer(store *DocStore, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Math)
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

		questions, _, err := store.MathList(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if d.cursor(trivia.Math) >= len(questions) {
			writeError(w, http.StatusConflict, "all questions completed")
			return
		}

		var result MathAnswerResult
		updated, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
			idx := doc.cursor(trivia.Math)
			if idx >= len(questions) {
				return errAlreadyDone
			}
			q := questions[idx]
			key := mathDeadlineKey(idx)

			if deadline, ok := doc.deadline(key); ok && time.Now().After(deadline) {
				// Out of time: reveal the solution and move on, no delta.
				result.TimedOut = true
				result.Answer = strconv.Itoa(q.Answer)
				result.Explanation = q.Explanation
			} else if q.Check(req.Answer) {
				result.Correct = true
				result.ScoreDelta = trivia.MathReward
				doc.Score += trivia.MathReward
			} else {
				result.ScoreDelta = trivia.MathPenalty
				doc.Score += trivia.MathPenalty
				result.Answer = strconv.Itoa(q.Answer)
				result.Explanation = q.Explanation
			}

			// One attempt per question: advance either way.
			doc.setCursor(trivia.Math, idx+1)
			doc.clearDeadline(key)
			if idx+1 >= len(questions) {
				doc.completeStage(trivia.Math.Stage())
				result.Done = true
			}
			return nil
		})
		if err == errAlreadyDone {
			writeError(w, http.StatusConflict, "all questions completed")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		result.Score = updated.Score
		result.Stage = updated.Stage
		broker.publishProgress(updated, "answer", string(trivia.Math))
		writeJSON(w, http.StatusOK, result)
	}
}
