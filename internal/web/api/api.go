// Package api exposes designer sessions over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/logging"
	"github.com/fieldmark/designer/internal/session"
	"github.com/fieldmark/designer/internal/web/auth"
	"github.com/fieldmark/designer/internal/web/events"
	"github.com/fieldmark/designer/internal/web/middleware"
	"github.com/fieldmark/designer/internal/web/response"
)

// DefaultPrefix is where the API is mounted when Options.Prefix is empty
const DefaultPrefix = "/api/v1"

// Options configures the API router
type Options struct {
	Prefix       string
	MaxBodyBytes int64
	// Auth enables bearer token authentication when set
	Auth   *auth.Service
	Logger *zap.Logger
	// Hub serves the session event streams; nil disables them
	Hub *events.Hub
	// Events configures websocket upgrades
	Events events.Config
	// Registry receives the API metrics; nil creates a private one
	Registry *prometheus.Registry
}

// API serves the designer endpoints for the sessions of one manager
type API struct {
	sessions *session.Manager
	hub      *events.Hub
	upgrader *events.Upgrader
	metrics  *metrics
	registry *prometheus.Registry
	logger   *zap.Logger
	opts     Options
}

// New creates the API for sessions
func New(sessions *session.Manager, opts Options) *API {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	a := &API{
		sessions: sessions,
		hub:      opts.Hub,
		registry: registry,
		logger:   logging.Or(opts.Logger),
		opts:     opts,
	}
	a.metrics = newMetrics(registry, sessions)
	if opts.Hub != nil {
		a.upgrader = events.NewUpgrader(opts.Events, opts.Hub)
	}
	return a
}

// Router builds the HTTP handler
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(a.logger),
		middleware.Recovery(a.logger),
		a.metrics.instrument,
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.RenderNotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.RenderStatus(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", a.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	read := middleware.RequirePermission(auth.NotebooksRead, forbidden)
	edit := middleware.RequirePermission(auth.NotebooksEdit, forbidden)
	manage := middleware.RequirePermission(auth.NotebooksManage, forbidden)

	r.Route(a.opts.Prefix, func(r chi.Router) {
		if a.opts.Auth != nil {
			r.Use(middleware.AuthWithConfig(middleware.AuthConfig{
				Service: a.opts.Auth,
				Unauthorized: func(w http.ResponseWriter, _ *http.Request, message string) {
					response.RenderUnauthorized(w, message)
				},
			}))
		}
		r.Use(middleware.BodyLimit(a.opts.MaxBodyBytes))

		r.With(read).Post("/validate", a.validate)
		r.With(read).Post("/migrate", a.migrate)
		r.With(read).Get("/fields", a.fieldTypes)
		r.With(read).Get("/operations", a.operationNames)

		r.With(read).Get("/sessions", a.listSessions)
		r.With(manage).Post("/sessions", a.createSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(a.loadSession)
			r.With(read).Get("/", a.getSession)
			r.With(manage).Delete("/", a.deleteSession)
			r.With(edit).Post("/operations", a.applyOperation)
			r.With(edit).Post("/undo", a.undo)
			r.With(edit).Post("/redo", a.redo)
			r.With(read).Get("/history", a.history)
			r.With(edit).Put("/metadata/{key}", a.setMetadata)
			r.With(edit).Put("/roles", a.setRoles)
			r.With(read).Get("/conditions/translate", a.translateConditions)
			r.With(read).Get("/integrity", a.integrity)
			r.With(read).Get("/export", a.export)
			r.With(read).Get("/events", a.events)
		})
	})

	return r
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": a.sessions.Len(),
	})
}

func forbidden(w http.ResponseWriter, _ *http.Request) {
	response.RenderForbidden(w, "")
}

type contextKey int

const sessionKey contextKey = iota

// loadSession resolves {id} and rejects unknown sessions with 404
func (a *API) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := a.sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			response.RenderError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, s)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(sessionKey).(*session.Session)
}
