package handler

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zhouzirui/aoc-chat/backend/internal/handler/chat"
	"github.com/zhouzirui/aoc-chat/backend/internal/handler/session"
	"github.com/zhouzirui/aoc-chat/backend/pkg/utils"
)

// Options carries the non-service settings of the router.
type Options struct {
	StaticDir      string
	AllowedOrigins []string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(gw chat.Submitter, sessions session.Directory, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	chatHandler := chat.New(gw)
	sessionHandler := session.New(sessions)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	staticDir := opts.StaticDir
	if staticDir == "" {
		staticDir = "static"
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		sessionHandler.RegisterRoutes(api)
	})

	return r
}
