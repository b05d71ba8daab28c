package server

import (
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/web-playground/internal/config"
	"github.com/sakif/web-playground/internal/handler"
	"github.com/sakif/web-playground/internal/middleware"
	"github.com/sakif/web-playground/internal/render"
	sqliteRepo "github.com/sakif/web-playground/internal/repository/sqlite"
	"github.com/sakif/web-playground/internal/service"
)

// NewFoodLog assembles the food tracker. Same middleware stack as the Q&A
// site minus the session resolution — the tracker has no accounts.
func NewFoodLog(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.NewFoodLog(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	renderer, err := render.NewTemplates(cfg.TemplateDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	foodlogService := service.NewFoodLogService(db.FoodLog(), logger)
	h := handler.NewFoodLogHandler(foodlogService, renderer, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestScope(db))

	r.Get("/", h.HandleHome)
	r.Post("/", h.HandleAddDay)
	r.Get("/view/{date}", h.HandleDay)
	r.Post("/view/{date}", h.HandleLogFood)
	r.Get("/food", h.HandleFoods)
	r.Post("/food", h.HandleAddFood)

	return &Server{router: r, port: cfg.Port, logger: logger, db: db}, nil
}
