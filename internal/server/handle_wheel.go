package server

import (
	"net/http"

	"github.com/rehletna/trivia/internal/trivia"
)

// WheelOutcome is the recorded result of the single permitted spin.
type WheelOutcome struct {
	Rotation int    `json:"rotation"`
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Points   int    `json:"points"`
	SpunAt   string `json:"spunAt"`
}

type WheelResponse struct {
	Slices  []trivia.WheelSlice `json:"slices"`
	Outcome *WheelOutcome       `json:"outcome,omitempty"`
	Score   int                 `json:"score"`
}

func wheelOutcome(doc *wheelOutcomeDoc) *WheelOutcome {
	if doc == nil {
		return nil
	}
	return &WheelOutcome{
		Rotation: doc.Rotation,
		Index:    doc.Index,
		Label:    doc.Label,
		Points:   doc.Points,
		SpunAt:   doc.SpunAt,
	}
}

func handleWheel(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Wheel)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, WheelResponse{
			Slices:  trivia.WheelSlices,
			Outcome: wheelOutcome(d.Wheel),
			Score:   d.Score,
		})
	}
}

func handleWheelSpin(store *DocStore, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Wheel)
		if !ok {
			return
		}

		if d.Wheel != nil {
			writeError(w, http.StatusConflict, "wheel already spun")
			return
		}

		updated, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
			if doc.Wheel != nil {
				return errAlreadyDone
			}
			rotation := trivia.SpinRotation()
			idx := trivia.WinningIndex(rotation, len(trivia.WheelSlices))
			slice := trivia.WheelSlices[idx]

			doc.Wheel = &wheelOutcomeDoc{
				Rotation: rotation,
				Index:    idx,
				Label:    slice.Label,
				Points:   slice.Points,
				SpunAt:   nowUTC(),
			}
			doc.Score += slice.Points
			return nil
		})
		if err == errAlreadyDone {
			writeError(w, http.StatusConflict, "wheel already spun")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.publishProgress(updated, "wheel_spun", string(trivia.Wheel))
		writeJSON(w, http.StatusOK, WheelResponse{
			Slices:  trivia.WheelSlices,
			Outcome: wheelOutcome(updated.Wheel),
			Score:   updated.Score,
		})
	}
}
