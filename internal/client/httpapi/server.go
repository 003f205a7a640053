// Package httpapi exposes the studio services over HTTP for a browser front
// end: JSON endpoints plus a websocket that streams local publish events.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/events"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/services"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type Catalog interface {
	Publish(ctx context.Context, d models.Draft) (string, error)
	ListCatalog(ctx context.Context) ([]models.CatalogEntry, error)
	Blueprint(ctx context.Context, id string) (models.ProjectBlueprint, error)
	Sync(ctx context.Context) (services.SyncReport, error)
	SubscribeToLocalPublish(fn func(events.LocalPublished)) (unsubscribe func())
}

type Calendar interface {
	Day(ctx context.Context, date time.Time) (services.CalendarDay, error)
	Toggle(ctx context.Context, date time.Time, taskID string) (bool, error)
	ToggleBlueprint(ctx context.Context, id string) (bool, error)
}

type Interactions interface {
	Purchase(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (bool, error)
}

type Status interface {
	Mode() client.Mode
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

type Server struct {
	router       *chi.Mux
	catalog      Catalog
	calendar     Calendar
	interactions Interactions
	status       Status
	logger       logging.Logger
	opts         Options
}

func NewServer(catalog Catalog, calendar Calendar, interactions Interactions, status Status, logger logging.Logger, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		catalog:      catalog,
		calendar:     calendar,
		interactions: interactions,
		status:       status,
		logger:       logger.With("module", "httpapi"),
		opts:         opts,
	}
	s.setupRouter()
	return s
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// The event stream outlives the request timeout.
	r.Get("/api/v1/events", s.handleEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.opts.RequestTimeout))

		r.Get("/health", s.handleHealth)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/catalog", s.handleListCatalog)
			r.Post("/sync", s.handleSync)

			r.Route("/blueprints", func(r chi.Router) {
				r.Post("/", s.handlePublish)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetBlueprint)
					r.Post("/purchase", s.handlePurchase)
					r.Post("/like", s.handleLike)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Post("/blueprints/{id}/toggle", s.handleToggleBlueprint)
				r.Get("/{date}", s.handleCalendarDay)
				r.Post("/{date}/tasks/{taskID}/toggle", s.handleToggleTask)
			})
		})
	})

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
