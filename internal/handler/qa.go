package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/auth"
	"github.com/sakif/web-playground/internal/render"
	"github.com/sakif/web-playground/internal/service"
)

// QAHandler serves the Q&A site's HTML pages.
//
// Every page receives the resolved current user (possibly nil) in its data
// map under "User", the way the pages expect it for the nav bar. The user
// comes from the request context — the CurrentUser middleware has already
// done the per-request lookup.
type QAHandler struct {
	auth      *service.AuthService
	questions *service.QuestionService
	sessions  *auth.Sessions
	renderer  render.Renderer
	logger    *slog.Logger
}

// NewQAHandler creates a QAHandler.
func NewQAHandler(
	authSvc *service.AuthService,
	questions *service.QuestionService,
	sessions *auth.Sessions,
	renderer render.Renderer,
	logger *slog.Logger,
) *QAHandler {
	return &QAHandler{
		auth:      authSvc,
		questions: questions,
		sessions:  sessions,
		renderer:  renderer,
		logger:    logger,
	}
}

// render executes a template with the current user merged into the data map.
func (h *QAHandler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["User"]; !ok {
		user, _ := auth.UserFromContext(r.Context())
		data["User"] = user
	}

	if err := h.renderer.Render(w, name, data); err != nil {
		h.logger.Error("rendering page",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// fail maps a domain error onto an HTML error response. Infrastructure
// failures become a plain 500; NotFound becomes a plain 404.
func (h *QAHandler) fail(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String("error", err.Error()))
	}
	http.Error(w, http.StatusText(status), status)
}

// HandleHome lists the answered questions.
//
// HTTP: GET /
func (h *QAHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.ListAnswered(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, r, "home.html", map[string]any{"Questions": questions})
}

// HandleRegisterForm shows the registration form.
//
// HTTP: GET /register
func (h *QAHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", nil)
}

// HandleRegister creates an account and starts a session for it.
//
// HTTP: POST /register (form fields: name, password)
//
// A duplicate name or empty field re-renders the form with the message; the
// row count for the name is untouched. Success sets the session cookie and
// redirects home.
func (h *QAHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	password := r.FormValue("password")

	user, err := h.auth.Register(r.Context(), name, password)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) &&
			(errors.Is(err, apperror.ErrConflict) || errors.Is(err, apperror.ErrValidation)) {
			h.render(w, r, "register.html", map[string]any{"Error": appErr.Message})
			return
		}
		h.fail(w, err)
		return
	}

	if err := h.sessions.SetCookie(w, user.Name); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLoginForm shows the login form.
//
// HTTP: GET /login
func (h *QAHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", nil)
}

// HandleLogin authenticates and starts a session.
//
// HTTP: POST /login (form fields: name, password)
//
// "No such user" and "incorrect password" are distinct messages on the
// re-rendered form. On success the session holds exactly one thing: the
// username.
func (h *QAHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	password := r.FormValue("password")

	user, err := h.auth.Login(r.Context(), name, password)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperror.ErrUnauthorized) {
			h.render(w, r, "login.html", map[string]any{"Error": appErr.Message})
			return
		}
		h.fail(w, err)
		return
	}

	if err := h.sessions.SetCookie(w, user.Name); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session. Idempotent — logging out twice is fine.
//
// HTTP: GET /logout
func (h *QAHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleQuestion shows a single question, answered or not.
//
// HTTP: GET /question/{id}
func (h *QAHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	question, err := h.questions.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, r, "question.html", map[string]any{"Question": question})
}

// HandleAnswerForm shows the answer form for one question. Reached from the
// unanswered list, so it is guarded by the expert check at the route.
//
// HTTP: GET /answer/{id}
func (h *QAHandler) HandleAnswerForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	question, err := h.questions.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, r, "answer.html", map[string]any{"Question": question})
}

// HandleAnswer submits an answer, moving the question to its terminal
// answered state.
//
// HTTP: POST /answer/{id} (form field: answer)
func (h *QAHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := h.questions.Answer(r.Context(), id, r.FormValue("answer")); err != nil {
		h.fail(w, err)
		return
	}

	http.Redirect(w, r, "/unanswered", http.StatusSeeOther)
}

// HandleAskForm shows the ask form with the expert selector.
//
// HTTP: GET /ask
func (h *QAHandler) HandleAskForm(w http.ResponseWriter, r *http.Request) {
	experts, err := h.questions.ListExperts(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, r, "ask.html", map[string]any{"Experts": experts})
}

// HandleAsk submits a question from the current user to the chosen expert.
//
// HTTP: POST /ask (form fields: question, expert)
func (h *QAHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context()) // guard guarantees presence

	expertID, err := strconv.ParseInt(r.FormValue("expert"), 10, 64)
	if err != nil {
		h.fail(w, apperror.ValidationFailed("expert", "invalid expert id"))
		return
	}

	if _, err := h.questions.Ask(r.Context(), r.FormValue("question"), user.ID, expertID); err != nil {
		h.fail(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleUnanswered lists the current expert's open questions. A question
// appears here iff it is assigned to this expert and has no answer yet.
//
// HTTP: GET /unanswered
func (h *QAHandler) HandleUnanswered(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	questions, err := h.questions.ListUnanswered(r.Context(), user.ID)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, r, "unanswered.html", map[string]any{"Questions": questions})
}

// HandleUsers lists every account for the admin.
//
// HTTP: GET /users
func (h *QAHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, r, "users.html", map[string]any{"Users": users})
}

// HandlePromote sets a user's expert flag and returns to the user list.
//
// HTTP: GET /promote/{id}
func (h *QAHandler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := h.auth.Promote(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// pathID parses the {id} URL parameter. A malformed id is a validation
// failure (400), not a 404 — only a well-formed id that matches nothing is
// "not found".
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", "invalid id")
	}
	return id, nil
}
