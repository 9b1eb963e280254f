package server

import "net/http"

const adminCookieName = "admin_session"

// isAdmin reports whether the request carries a valid admin session cookie.
func isAdmin(r *http.Request, store *DocStore) bool {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	ok, err := store.AdminSessionExists(r.Context(), cookie.Value)
	return err == nil && ok
}

func adminAuthMiddleware(store *DocStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isAdmin(r, store) {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
