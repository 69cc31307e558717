package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mlenz/tapspace/internal/domain/attendance"
	"github.com/mlenz/tapspace/internal/domain/identity"
	"github.com/mlenz/tapspace/internal/domain/space"
	"github.com/mlenz/tapspace/internal/tagio"
)

// API exposes the presentation-layer calls into the core as JSON endpoints.
type API struct {
	identities *identity.Service
	spaces     *space.Service
	engine     *attendance.Engine
	reports    *attendance.Reporter
	gateway    attendance.Gateway
	tagWriter  tagio.Writer
	tokens     *TokenService
	logger     *slog.Logger
}

// Deps carries the services the API fronts.
type Deps struct {
	Identities *identity.Service
	Spaces     *space.Service
	Engine     *attendance.Engine
	Reports    *attendance.Reporter
	Gateway    attendance.Gateway
	TagWriter  tagio.Writer
	Tokens     *TokenService
	Logger     *slog.Logger
}

// New builds the router.
func New(deps Deps) http.Handler {
	a := &API{
		identities: deps.Identities,
		spaces:     deps.Spaces,
		engine:     deps.Engine,
		reports:    deps.Reports,
		gateway:    deps.Gateway,
		tagWriter:  deps.TagWriter,
		tokens:     deps.Tokens,
		logger:     deps.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(25 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(a.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", a.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(a.RequireAuth)

			r.Post("/logout", a.handleLogout)

			r.Get("/spaces", a.handleListSpaces)
			r.Get("/spaces/current", a.handleCurrentSpace)
			r.Get("/spaces/{id}", a.handleGetSpace)
			r.Post("/tags/resolve", a.handleResolveTag)

			r.Post("/scan", a.handleScan)
			r.Post("/sessions/start", a.handleStartSession)
			r.Post("/sessions/end", a.handleEndSession)
			r.Get("/sessions/blocking", a.handleBlocking)

			r.Get("/reports/day", a.handleDayReport)
			r.Get("/reports/total", a.handleTotalReport)
			r.Get("/reports/days", a.handleDaysWithRecords)

			r.Post("/restriction/authorize", a.handleAuthorize)

			r.Group(func(r chi.Router) {
				r.Use(a.RequireModerator)

				r.Post("/spaces", a.handleAddSpace)
				r.Patch("/spaces/{id}", a.handleUpdateSpace)
				r.Delete("/spaces/{id}", a.handleDeleteSpace)
				r.Put("/spaces/current/{id}", a.handleSetCurrentSpace)
				r.Post("/tags/write", a.handleWriteTag)
				r.Delete("/attendance", a.handleClearHistory)
			})
		})
	})

	return r
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		a.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
