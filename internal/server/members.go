package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/web-playground/internal/config"
	"github.com/sakif/web-playground/internal/handler"
	"github.com/sakif/web-playground/internal/middleware"
	sqliteRepo "github.com/sakif/web-playground/internal/repository/sqlite"
	"github.com/sakif/web-playground/internal/service"
)

// NewMembers assembles the member REST API. Every route sits behind HTTP
// Basic auth with the single credential pair from the config — there are no
// member accounts, just one gate for the whole API.
func NewMembers(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.API.Username == "" || cfg.API.Password == "" {
		return nil, errors.New("API_USERNAME and API_PASSWORD must be set")
	}

	db, err := sqliteRepo.NewMembers(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	memberService := service.NewMemberService(db.Members(), logger)
	h := handler.NewMemberHandler(memberService, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestScope(db))
	r.Use(handler.BasicAuth(cfg.API.Username, cfg.API.Password))

	r.Route("/member", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})

	return &Server{router: r, port: cfg.Port, logger: logger, db: db}, nil
}
