package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/rehletna/trivia/internal/trivia"
)

// Links and quotes share the same flow: a multiple-choice question that
// advances exactly once per submission, right or wrong.

type choiceSpec[T trivia.Item] struct {
	cat   trivia.Category
	load  func(ctx context.Context) ([]T, bool, error)
	view  func(item T, idx, total int) any
	check func(item T, answer string) bool
	solve func(item T) string
}

// LinkView is a link question without its solution.
type LinkView struct {
	ID      int      `json:"id"`
	Items   []string `json:"items"`
	Options []string `json:"options"`
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Done    bool     `json:"done"`
}

// QuoteView is a quote question without its solution.
type QuoteView struct {
	ID      int      `json:"id"`
	Quote   string   `json:"quote"`
	Options []string `json:"options"`
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Done    bool     `json:"done"`
}

func linkSpec(store *DocStore) choiceSpec[trivia.LinkChallenge] {
	return choiceSpec[trivia.LinkChallenge]{
		cat:  trivia.Links,
		load: store.LinksList,
		view: func(l trivia.LinkChallenge, idx, total int) any {
			return LinkView{ID: l.ID, Items: l.Items, Options: l.Options, Index: idx, Total: total}
		},
		check: func(l trivia.LinkChallenge, answer string) bool { return l.Check(answer) },
		solve: func(l trivia.LinkChallenge) string { return l.Answer },
	}
}

func quoteSpec(store *DocStore) choiceSpec[trivia.QuoteChallenge] {
	return choiceSpec[trivia.QuoteChallenge]{
		cat:  trivia.Quotes,
		load: store.QuotesList,
		view: func(q trivia.QuoteChallenge, idx, total int) any {
			return QuoteView{ID: q.ID, Quote: q.Quote, Options: q.Options, Index: idx, Total: total}
		},
		check: func(q trivia.QuoteChallenge, answer string) bool { return q.Check(answer) },
		solve: func(q trivia.QuoteChallenge) string { return q.Answer },
	}
}

func handleChoiceCurrent[T trivia.Item](store *DocStore, spec choiceSpec[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, spec.cat)
		if !ok {
			return
		}

		items, _, err := spec.load(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		idx := d.cursor(spec.cat)
		if idx >= len(items) {
			switch spec.cat {
			case trivia.Links:
				writeJSON(w, http.StatusOK, LinkView{Index: idx, Total: len(items), Done: true})
			default:
				writeJSON(w, http.StatusOK, QuoteView{Index: idx, Total: len(items), Done: true})
			}
			return
		}

		writeJSON(w, http.StatusOK, spec.view(items[idx], idx, len(items)))
	}
}

func handleChoiceAnswer[T trivia.Item](store *DocStore, broker *Broker, spec choiceSpec[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, spec.cat)
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

		items, _, err := spec.load(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if d.cursor(spec.cat) >= len(items) {
			writeError(w, http.StatusConflict, "all questions completed")
			return
		}

		var result AnswerResult
		updated, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
			idx := doc.cursor(spec.cat)
			if idx >= len(items) {
				return errAlreadyDone
			}
			item := items[idx]

			if spec.check(item, req.Answer) {
				result.Correct = true
				result.ScoreDelta = trivia.ChoiceReward
				doc.Score += trivia.ChoiceReward
			} else {
				result.ScoreDelta = trivia.ChoicePenalty
				doc.Score += trivia.ChoicePenalty
				result.Answer = spec.solve(item)
			}

			// One attempt per question: advance either way.
			doc.setCursor(spec.cat, idx+1)
			if idx+1 >= len(items) {
				doc.completeStage(spec.cat.Stage())
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
		broker.publishProgress(updated, "answer", string(spec.cat))
		writeJSON(w, http.StatusOK, result)
	}
}
