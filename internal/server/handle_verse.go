package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rehletna/trivia/internal/trivia"
)

// VerseLevelState summarizes one difficulty level for the level picker.
type VerseLevelState struct {
	Level     int  `json:"level"`
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
	Total     int  `json:"total"`
	NextIndex int  `json:"nextIndex"`
}

// VerseView is the current verse challenge without its solution.
type VerseView struct {
	ID       int      `json:"id"`
	Level    int      `json:"level"`
	Kind     string   `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Words    []string `json:"words,omitempty"`
	Options  []string `json:"options,omitempty"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Deadline string   `json:"deadline"`
	Done     bool     `json:"done"`
}

func verseDeadlineKey(level, idx int) string {
	return fmt.Sprintf("verse:%d:%d", level, idx)
}

func levelCompleted(d deviceDoc, all []trivia.VerseChallenge, level int) bool {
	total := len(versesForLevel(all, level))
	// An empty level cannot block the chain.
	return total == 0 || d.verseLast(level) >= total-1
}

// levelUnlocked gates on the persisted highest unlocked level, not on
// derived completion, so appending a question to a finished lower level
// cannot re-lock a level the device already reached. Empty levels above
// the gate pass through, they cannot block the chain.
func levelUnlocked(d deviceDoc, all []trivia.VerseChallenge, level int) bool {
	for lvl := d.verseLevelUnlocked(); lvl < level; lvl++ {
		if len(versesForLevel(all, lvl)) > 0 {
			return false
		}
	}
	return true
}

func allLevelsCompleted(d deviceDoc, all []trivia.VerseChallenge) bool {
	for lvl := 1; lvl <= trivia.VerseLevels; lvl++ {
		if !levelCompleted(d, all, lvl) {
			return false
		}
	}
	return true
}

func parseVerseLevel(r *http.Request) (int, error) {
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || level < 1 || level > trivia.VerseLevels {
		return 0, fmt.Errorf("invalid level")
	}
	return level, nil
}

func handleVerseLevels(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Verses)
		if !ok {
			return
		}

		all, _, err := store.Verses(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		levels := make([]VerseLevelState, trivia.VerseLevels)
		for i := range levels {
			lvl := i + 1
			levels[i] = VerseLevelState{
				Level:     lvl,
				Unlocked:  levelUnlocked(d, all, lvl),
				Completed: levelCompleted(d, all, lvl),
				Total:     len(versesForLevel(all, lvl)),
				NextIndex: d.verseLast(lvl) + 1,
			}
		}
		writeJSON(w, http.StatusOK, levels)
	}
}

func handleVerseCurrent(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Verses)
		if !ok {
			return
		}

		level, err := parseVerseLevel(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid level")
			return
		}

		all, _, err := store.Verses(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if !levelUnlocked(d, all, level) {
			writeError(w, http.StatusForbidden, "level locked")
			return
		}

		questions := versesForLevel(all, level)
		idx := d.verseLast(level) + 1
		if idx >= len(questions) {
			writeJSON(w, http.StatusOK, VerseView{Level: level, Index: idx, Total: len(questions), Done: true})
			return
		}
		q := questions[idx]

		// Arm the countdown on first view; a refresh must not restart it.
		key := verseDeadlineKey(level, idx)
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

		writeJSON(w, http.StatusOK, VerseView{
			ID:       q.ID,
			Level:    q.Level,
			Kind:     string(q.Kind),
			Text:     q.Text,
			Words:    q.Words,
			Options:  q.Options,
			Index:    idx,
			Total:    len(questions),
			Deadline: deadline.UTC().Format(time.RFC3339Nano),
		})
	}
}

func handleVerseAnswer(store *DocStore, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Verses)
		if !ok {
			return
		}

		level, err := parseVerseLevel(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid level")
			return
		}

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		all, _, err := store.Verses(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if !levelUnlocked(d, all, level) {
			writeError(w, http.StatusForbidden, "level locked")
			return
		}

		questions := versesForLevel(all, level)
		if d.verseLast(level)+1 >= len(questions) {
			writeError(w, http.StatusConflict, "level completed")
			return
		}

		var result AnswerResult
		updated, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
			idx := doc.verseLast(level) + 1
			if idx >= len(questions) {
				return errAlreadyDone
			}
			q := questions[idx]
			key := verseDeadlineKey(level, idx)

			if deadline, ok := doc.deadline(key); ok && time.Now().After(deadline) {
				// Out of time: reveal the solution and move on, no delta.
				result.TimedOut = true
				result.Answer = q.Correct
				doc.setVerseLast(level, idx)
				doc.clearDeadline(key)
			} else if q.Check(req.Answer) {
				result.Correct = true
				result.ScoreDelta = trivia.VerseReward
				doc.Score += trivia.VerseReward
				doc.setVerseLast(level, idx)
				doc.clearDeadline(key)
			} else {
				result.ScoreDelta = trivia.VersePenalty
				doc.Score += trivia.VersePenalty
				return nil
			}

			if doc.verseLast(level) >= len(questions)-1 {
				result.Done = true
				if level < trivia.VerseLevels {
					doc.unlockVerseLevel(level + 1)
				}
			}
			if allLevelsCompleted(*doc, all) {
				doc.completeStage(trivia.Verses.Stage())
			}
			return nil
		})
		if err == errAlreadyDone {
			writeError(w, http.StatusConflict, "level completed")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		result.Score = updated.Score
		result.Stage = updated.Stage
		broker.publishProgress(updated, "answer", string(trivia.Verses))
		writeJSON(w, http.StatusOK, result)
	}
}
