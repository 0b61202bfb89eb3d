/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:       Request logging
  2. Recoverer:    Panic recovery (500 instead of crash)
  3. RequestID:    Unique ID per request for tracing
  4. CORS:         Cross-origin requests for frontend
  5. authenticate: Bearer token -> acting user (all routes except /auth)

ROUTE GROUPS:
  /api/auth/*         Demo login
  /api/leave-types    Leave type catalogue
  /api/balances       Balance views
  /api/requests/*     Request lifecycle
  /api/holidays/*     Holiday lookup
  /api/workdays       Working-day calculator
  /api/calendar/*     Month view
  /api/conflicts      Team availability check

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public: demo login
		r.Post("/auth/token", h.IssueToken)

		// Everything else needs a bearer token
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Get("/leave-types", h.ListLeaveTypes)
			r.Get("/balances", h.ListBalances)

			r.Route("/requests", func(r chi.Router) {
				r.Get("/", h.ListRequests)
				r.Post("/", h.CreateRequest)
				r.Get("/pending", h.ListPendingRequests)
				r.Post("/{id}/approve", h.ApproveRequest)
				r.Post("/{id}/reject", h.RejectRequest)
				r.Post("/{id}/cancel", h.CancelRequest)
			})

			r.Get("/holidays/{year}", h.ListHolidays)
			r.Get("/workdays", h.CountWorkdays)
			r.Get("/calendar/{year}/{month}", h.MonthCalendar)
			r.Get("/conflicts", h.CheckConflicts)
		})
	})

	return r
}
