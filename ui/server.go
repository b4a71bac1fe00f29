package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"polyheat/adapters/excel"
	"polyheat/app"
)

// Server is the HTTP viewer for comparisons: it accepts two fit results
// plus options and responds with the rendered heatmap, a report, or the
// exported tables.
type Server struct {
	router   *chi.Mux
	service  *app.ComparisonService
	exporter *excel.Exporter
	addr     string
}

// Config holds server configuration
type Config struct {
	Addr string
}

// NewServer creates the viewer on top of a comparison service
func NewServer(service *app.ComparisonService, config Config) *Server {
	addr := config.Addr
	if addr == "" {
		addr = ":8080"
	}
	s := &Server{
		router:   chi.NewRouter(),
		service:  service,
		exporter: &excel.Exporter{},
		addr:     addr,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	s.router.Post("/compare", s.handleCompare)
}

// Router exposes the router for tests and embedding
func (s *Server) Router() http.Handler { return s.router }

// Start blocks serving HTTP
func (s *Server) Start() error {
	log.Printf("[ui] listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}
