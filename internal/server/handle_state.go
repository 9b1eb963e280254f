package server

import (
	"net/http"

	"github.com/rehletna/trivia/internal/trivia"
)

// StageState describes one category on the journey map.
type StageState struct {
	Category  string `json:"category"`
	Stage     int    `json:"stage"`
	Unlocked  bool   `json:"unlocked"`
	Completed bool   `json:"completed"`
}

type StateResponse struct {
	Device    Device       `json:"device"`
	Stages    []StageState `json:"stages"`
	WheelSpun bool         `json:"wheelSpun"`
}

func handleState(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := deviceFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		admin := isAdmin(r, store)

		stages := make([]StageState, len(trivia.Categories))
		for i, cat := range trivia.Categories {
			stages[i] = StageState{
				Category:  string(cat),
				Stage:     i,
				Unlocked:  i <= d.Stage || cat == trivia.Wheel || admin,
				Completed: i < d.Stage,
			}
		}

		writeJSON(w, http.StatusOK, StateResponse{
			Device:    publicDevice(d),
			Stages:    stages,
			WheelSpun: d.Wheel != nil,
		})
	}
}
