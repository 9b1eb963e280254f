package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rehletna/trivia/internal/trivia"
)

var errNoSession = errors.New("no valid session")

// deviceFromRequest resolves the Authorization bearer token to its device.
func deviceFromRequest(r *http.Request, store *DocStore) (deviceDoc, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return deviceDoc{}, errNoSession
	}
	d, err := store.DeviceFromToken(r.Context(), token)
	if errors.Is(err, ErrNotFound) {
		return deviceDoc{}, errNoSession
	}
	return d, err
}

// tokenFromRequest returns the raw bearer token, empty when absent.
func tokenFromRequest(r *http.Request) string {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return token
}

// gameDevice authenticates the request and enforces the stage gate for a
// category. The wheel is exempt, and an admin cookie bypasses the gate
// without touching the device's own stage. On failure the error response
// has already been written.
func gameDevice(w http.ResponseWriter, r *http.Request, store *DocStore, cat trivia.Category) (deviceDoc, bool) {
	d, err := deviceFromRequest(r, store)
	if errors.Is(err, errNoSession) {
		writeError(w, http.StatusUnauthorized, "invalid or missing session token")
		return deviceDoc{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return deviceDoc{}, false
	}

	if cat != trivia.Wheel && cat.Stage() > d.Stage && !isAdmin(r, store) {
		writeError(w, http.StatusForbidden, "stage locked")
		return deviceDoc{}, false
	}
	return d, true
}
