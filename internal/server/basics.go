package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/web-playground/internal/config"
	"github.com/sakif/web-playground/internal/handler"
	"github.com/sakif/web-playground/internal/middleware"
)

// NewBasics assembles the HTTP-basics playground. No database, no sessions —
// just the router and the echo handlers.
//
// The catch-all GET /{name} coexists with the static routes because chi
// always prefers an exact path segment over a wildcard match.
func NewBasics(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	h := handler.NewBasicsHandler()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", h.HandleIndex)
	r.Get("/home", h.HandleHome)
	r.Get("/home/{name}", h.HandleHome)
	r.Get("/query", h.HandleQuery)
	r.Get("/json", h.HandleJSON)
	r.Get("/theform", h.HandleTheForm)
	r.Post("/process", h.HandleProcess)
	r.Post("/processjson", h.HandleProcessJSON)
	r.Get("/{name}", h.HandleName)

	return &Server{router: r, port: cfg.Port, logger: logger}, nil
}
