package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/model"
	"github.com/sakif/web-playground/internal/repository"
)

// contextKey is an unexported type used for context keys in this package.
// Only this package can create a key of this type, so only this package can
// read or write the resolved user in a request context.
type contextKey string

const userKey contextKey = "user"

// CurrentUser resolves the session to a full user record on every request.
//
// RESOLUTION RULES:
//   - no cookie / invalid token → anonymous, request continues
//   - valid token but the user row is gone → anonymous, request continues
//     (the session is NOT invalidated; the account may simply have been
//     deleted after login)
//   - valid token and user found → *model.User stored in the context
//   - valid token but the lookup itself fails → 500; a database outage must
//     not silently demote a logged-in user to anonymous
//
// NO CACHING: the lookup runs fresh on each request, so role changes (e.g. a
// promotion to expert) are visible immediately.
func CurrentUser(sessions *Sessions, users repository.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, ok := sessions.Username(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByName(r.Context(), name)
			if err != nil {
				// A missing row means the account is gone — anonymous.
				if errors.Is(err, apperror.ErrNotFound) {
					next.ServeHTTP(w, r)
					return
				}
				// Anything else is an infrastructure failure.
				logger.Error("resolving session user",
					slog.String("name", name),
					slog.String("error", err.Error()),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the resolved user from the request context.
// Returns (nil, false) for anonymous requests.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// RequireUser redirects anonymous requests to the login page. Access-control
// failures on the HTML apps are redirects, not 401/403 pages.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireExpert lets only experts through: anonymous → /login, logged-in
// non-expert → home.
func RequireExpert(next http.Handler) http.Handler {
	return requireRole(next, func(u *model.User) bool { return u.Expert })
}

// RequireAdmin lets only admins through: anonymous → /login, logged-in
// non-admin → home.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(next, func(u *model.User) bool { return u.Admin })
}

func requireRole(next http.Handler, allowed func(*model.User) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !allowed(user) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
