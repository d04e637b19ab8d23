package http

import (
	"net/http"
	"time"

	"github.com/atinyakov/notekeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Resources groups the per-kind handlers mounted under /api.
// WebSearchExtract is optional.
type Resources struct {
	Notes            func(chi.Router)
	Todos            func(chi.Router)
	WebSearch        func(chi.Router)
	WebSearchExtract http.HandlerFunc
}

// NewRouter constructs and returns an HTTP handler that serves the
// notekeeper API.
//
// Routes:
//
//	POST   /api/auth/register    → authHandler.Register
//	POST   /api/auth/login       → authHandler.Login
//	GET    /api/auth/getuser     → authHandler.GetUser (token required)
//	GET    /api/notes            → list, POST create (token required)
//	PUT    /api/notes/{id}       → update, DELETE delete (token required)
//	...    /api/todos, /api/websearch follow the same shape
//	POST   /api/websearch/extract → resources.WebSearchExtract (token required)
//	GET    /healthz              → liveness check
//
// Middleware chain (applied in order):
//  1. RequestID, RealIP and Recoverer from chi
//  2. WithRequestLogging(logger)
//  3. AllowContentType("application/json") on requests with a body
//  4. TokenAuth on every protected group
func NewRouter(
	authHandler *AuthHandler,
	resources Resources,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	r.Route("/api", func(r chi.Router) {
		// Only allow bodies with Content-Type: application/json
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(middleware.TokenAuth(verifier, logger)).Get("/getuser", authHandler.GetUser)
		})

		// Protected group: requires a valid auth-token
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(verifier, logger))
			r.Route("/notes", resources.Notes)
			r.Route("/todos", resources.Todos)
			r.Route("/websearch", func(r chi.Router) {
				resources.WebSearch(r)
				if resources.WebSearchExtract != nil {
					r.Post("/extract", resources.WebSearchExtract)
				}
			})
		})
	})

	return r
}
