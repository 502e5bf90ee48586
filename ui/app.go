package ui

import (
	"fmt"
	"net/http"

	"carviz/app"
	"carviz/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AdminApp serves the profiler and health endpoints on a separate port.
type AdminApp struct {
	router   *chi.Mux
	service  *app.ViewService
	sessions *session.Store
}

// NewAdminApp creates the admin router.
func NewAdminApp(service *app.ViewService, sessions *session.Store) *AdminApp {
	a := &AdminApp{
		router:   chi.NewRouter(),
		service:  service,
		sessions: sessions,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *AdminApp) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the admin routes
func (a *AdminApp) setupRoutes() {
	a.router.Mount("/debug", middleware.Profiler())
	a.router.Get("/healthz", a.handleHealth)
}

// handleHealth reports 200 when the dataset loaded and 503 otherwise.
func (a *AdminApp) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := a.service.Failed(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "dataset unavailable: %v\n", err)
		return
	}
	sessions := 0
	if a.sessions != nil {
		sessions = a.sessions.Len()
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "ok source=%s records=%d sessions=%d\n", a.service.Dataset().Source, a.service.Dataset().Len(), sessions)
}

// Handler returns the admin router.
func (a *AdminApp) Handler() http.Handler {
	return a.router
}
