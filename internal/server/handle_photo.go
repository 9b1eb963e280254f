package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rehletna/trivia/internal/trivia"
)

// PhotoTaskView is one photo mission with its completion flag.
type PhotoTaskView struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Done        bool   `json:"done"`
}

type PhotoListResponse struct {
	Tasks    []PhotoTaskView `json:"tasks"`
	Finished bool            `json:"finished"`
}

func photoViews(d deviceDoc, tasks []trivia.PhotoTask) []PhotoTaskView {
	views := make([]PhotoTaskView, len(tasks))
	for i, t := range tasks {
		views[i] = PhotoTaskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Points:      t.Points,
			Done:        d.photoDone(t.ID),
		}
	}
	return views
}

func handlePhotoList(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Photos)
		if !ok {
			return
		}

		tasks, _, err := store.PhotoList(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, PhotoListResponse{
			Tasks:    photoViews(d, tasks),
			Finished: d.Stage > trivia.Photos.Stage(),
		})
	}
}

type PhotoDoneResponse struct {
	Score int  `json:"score"`
	Done  bool `json:"done"`
}

func handlePhotoDone(store *DocStore, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Photos)
		if !ok {
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid task id")
			return
		}

		tasks, _, err := store.PhotoList(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var task *trivia.PhotoTask
		for i := range tasks {
			if tasks[i].ID == id {
				task = &tasks[i]
				break
			}
		}
		if task == nil {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}

		updated, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
			// Points land once; re-marking a done task changes nothing.
			if !doc.photoDone(id) {
				doc.PhotosDone = append(doc.PhotosDone, id)
				doc.Score += task.Points
			}
			return nil
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.publishProgress(updated, "photo_done", string(trivia.Photos))
		writeJSON(w, http.StatusOK, PhotoDoneResponse{Score: updated.Score, Done: true})
	}
}

func handlePhotoFinish(store *DocStore, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := gameDevice(w, r, store, trivia.Photos)
		if !ok {
			return
		}

		if len(d.PhotosDone) == 0 {
			writeError(w, http.StatusConflict, "complete at least one task first")
			return
		}

		updated, err := store.modifyDevice(r.Context(), d.ID, func(doc *deviceDoc) error {
			doc.completeStage(trivia.Photos.Stage())
			return nil
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.publishProgress(updated, "stage_completed", string(trivia.Photos))
		writeJSON(w, http.StatusOK, publicDevice(updated))
	}
}
