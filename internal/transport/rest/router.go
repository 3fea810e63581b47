package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/transport/wire"
)

// Middleware wraps an http.Handler.
type Middleware = func(http.Handler) http.Handler

// RouterDeps groups everything the router mounts. Global middleware runs on
// every route; API middleware only under /api/v1.
type RouterDeps struct {
	Health  *HealthHandler
	Reviews *ReviewHandler
	Catalog *CatalogHandler
	Points  *PointsHandler

	Global []Middleware
	API    []Middleware
}

// NewRouter builds the HTTP route tree.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(d.Global...)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, wire.ErrorBody{Code: domain.CodeNotFound, Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, wire.ErrorBody{Code: wire.CodeBadRequest, Message: "method not allowed"})
	})

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(d.API...)

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", d.Reviews.Submit)
			r.Post("/batch", d.Reviews.SubmitBatch)
			r.Get("/quota", d.Reviews.Quota)
		})

		r.Get("/codes/{code}", d.Catalog.ResolveCode)

		r.Route("/subjects", func(r chi.Router) {
			r.Post("/", d.Catalog.RegisterSubject)
			r.Post("/{subjectID}/codes", d.Catalog.IssueCode)
			r.Get("/{subjectID}/reviews", d.Reviews.ListBySubject)
		})

		r.Route("/points/{identity}", func(r chi.Router) {
			r.Get("/", d.Points.Balance)
			r.Get("/transactions", d.Points.Transactions)
			r.Post("/spend", d.Points.Spend)
		})
	})

	return r
}
