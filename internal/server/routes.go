package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, store *DocStore, db *sql.DB, adminPasswordHash []byte, spaDir string) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Rehletna API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	// Device session.
	r.Post("/api/login", handleLogin(store))
	r.Post("/api/logout", handleLogout(store))
	r.Get("/api/me", handleMe(store))
	r.Get("/api/state", handleState(store))
	r.Get("/api/events", handleEvents(store, broker))

	// Mini-games. Each handler enforces the stage gate itself.
	r.Get("/api/riddles/current", handleRiddleCurrent(store))
	r.Post("/api/riddles/hint", handleRiddleHint(store, broker))
	r.Post("/api/riddles/answer", handleRiddleAnswer(store, broker))

	r.Get("/api/verses", handleVerseLevels(store))
	r.Get("/api/verses/{level}/current", handleVerseCurrent(store))
	r.Post("/api/verses/{level}/answer", handleVerseAnswer(store, broker))

	r.Get("/api/links/current", handleChoiceCurrent(store, linkSpec(store)))
	r.Post("/api/links/answer", handleChoiceAnswer(store, broker, linkSpec(store)))
	r.Get("/api/quotes/current", handleChoiceCurrent(store, quoteSpec(store)))
	r.Post("/api/quotes/answer", handleChoiceAnswer(store, broker, quoteSpec(store)))

	r.Get("/api/math/current", handleMathCurrent(store))
	r.Post("/api/math/answer", handleMathAnswer(store, broker))

	r.Get("/api/photos", handlePhotoList(store))
	r.Post("/api/photos/{id}/done", handlePhotoDone(store, broker))
	r.Post("/api/photos/finish", handlePhotoFinish(store, broker))

	r.Get("/api/wheel", handleWheel(store))
	r.Post("/api/wheel/spin", handleWheelSpin(store, broker))

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(store, adminPasswordHash))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))

	// Content editor, requires admin cookie.
	r.Route("/api/admin/content/{category}", func(r chi.Router) {
		r.Use(adminAuthMiddleware(store))
		r.Get("/", handleAdminContentList(store))
		r.Put("/", handleAdminContentReplace(store))
		r.Post("/", handleAdminContentAdd(store))
		r.Post("/reorder", handleAdminContentReorder(store))
		r.Delete("/override", handleAdminContentReset(store))
		r.Put("/{id}", handleAdminContentUpdate(store))
		r.Delete("/{id}", handleAdminContentDelete(store))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
