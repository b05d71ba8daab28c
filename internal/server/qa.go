package server

import (
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/web-playground/internal/auth"
	"github.com/sakif/web-playground/internal/config"
	"github.com/sakif/web-playground/internal/handler"
	"github.com/sakif/web-playground/internal/middleware"
	"github.com/sakif/web-playground/internal/render"
	sqliteRepo "github.com/sakif/web-playground/internal/repository/sqlite"
	"github.com/sakif/web-playground/internal/service"
)

// NewQA assembles the Q&A site.
//
// MIDDLEWARE ORDER MATTERS:
//  1. RequestID, RealIP — chi's request tagging
//  2. Logger            — logs every request with timing
//  3. Recoverer         — turns panics into 500s
//  4. RequestScope      — per-request database connection; sits inside
//     Recoverer so its deferred release runs during panic unwind, BEFORE the
//     panic is swallowed. The connection goes back to the pool no matter how
//     the request ends.
//  5. CurrentUser       — resolves the session cookie to a user, fresh from
//     the database each request
func NewQA(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.NewQA(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	renderer, err := render.NewTemplates(cfg.TemplateDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	sessions, err := auth.NewSessions(cfg.Session.Secret, cfg.Session.Lifetime)
	if err != nil {
		db.Close()
		return nil, err
	}

	users := db.Users()
	authService := service.NewAuthService(users, auth.NewPasswordService(), logger)
	questionService := service.NewQuestionService(db.Questions(), users, logger)
	h := handler.NewQAHandler(authService, questionService, sessions, renderer, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestScope(db))
	r.Use(auth.CurrentUser(sessions, users, logger))

	// Public pages.
	r.Get("/", h.HandleHome)
	r.Get("/register", h.HandleRegisterForm)
	r.Post("/register", h.HandleRegister)
	r.Get("/login", h.HandleLoginForm)
	r.Post("/login", h.HandleLogin)
	r.Get("/logout", h.HandleLogout)
	r.Get("/question/{id}", h.HandleQuestion)

	// Any logged-in user can ask.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/ask", h.HandleAskForm)
		r.Post("/ask", h.HandleAsk)
	})

	// Experts see their queue and answer from it.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireExpert)
		r.Get("/unanswered", h.HandleUnanswered)
		r.Get("/answer/{id}", h.HandleAnswerForm)
		r.Post("/answer/{id}", h.HandleAnswer)
	})

	// Admin-only user management.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/users", h.HandleUsers)
		r.Get("/promote/{id}", h.HandlePromote)
	})

	return &Server{router: r, port: cfg.Port, logger: logger, db: db}, nil
}
