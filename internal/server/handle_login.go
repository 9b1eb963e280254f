package server

import (
	"errors"
	"net/http"
	"strings"
)

// LoginRequest opens a session. When DeviceID names a known device its
// score and progress carry over; otherwise a fresh device is created.
type LoginRequest struct {
	Name     string `json:"name"`
	DeviceID string `json:"deviceId,omitempty"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	Device Device `json:"device"`
}

// Device is the public summary of a device's progress.
type Device struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Stage int    `json:"stage"`
}

func publicDevice(d deviceDoc) Device {
	return Device{ID: d.ID, Name: d.Name, Score: d.Score, Stage: d.Stage}
}

func handleLogin(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		var (
			d     deviceDoc
			token string
			err   error
		)
		if req.DeviceID != "" {
			d, token, err = store.LoginDevice(r.Context(), req.DeviceID, req.Name)
			if errors.Is(err, ErrNotFound) {
				// Stale id, likely from a wiped database. Start over.
				d, token, err = store.CreateDevice(r.Context(), req.Name)
			}
		} else {
			d, token, err = store.CreateDevice(r.Context(), req.Name)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:  token,
			Device: publicDevice(d),
		})
	}
}

func handleMe(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := deviceFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}
		writeJSON(w, http.StatusOK, publicDevice(d))
	}
}

func handleLogout(store *DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token != "" {
			// Best effort: an unknown token still logs out cleanly.
			_ = store.DeleteSession(r.Context(), token)
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
