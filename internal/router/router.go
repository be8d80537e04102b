package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"carebot-backend/internal/handlers"
	"carebot-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	messageHandler *handlers.MessageHandler,
	staticDir string,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.NotFound(handlers.NotFound)

		r.Route("/chats", func(r chi.Router) {
			r.Get("/", chatHandler.List)
			r.Post("/", chatHandler.Create)
			r.Delete("/", chatHandler.DeleteAll)

			r.Route("/{chatID}/messages", func(r chi.Router) {
				r.Get("/", messageHandler.List)
				r.Post("/", messageHandler.Post)
			})
		})
	})

	// Static frontend (index.html and assets)
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	return r
}
