package middleware

import (
	"net/http"

	"github.com/sakif/web-playground/internal/repository/sqlite"
)

// RequestScope binds a lazy, exclusive database connection to each request.
//
// The scope is created before the handler runs and released via defer after
// it returns, so the connection (if one was ever acquired) is closed exactly
// once — including while a panic is unwinding toward the Recoverer. Handlers
// and repositories never see any of this; they just pass r.Context() down.
//
// ORDERING: install this after chi's Recoverer. The deferred release then
// runs before the panic reaches Recoverer, which is what guarantees the
// connection is returned even for a 500-by-panic.
func RequestScope(db *sqlite.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, release := db.RequestScope(r.Context())
			defer release()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
