package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// REQUEST-SCOPED CONNECTIONS:
//
// Each HTTP request gets at most one dedicated database connection, created
// lazily on the request's first query and closed exactly once when the
// request finishes — success, error, or panic. The scope is an explicit
// context value owned by the request, so connections are never shared between
// concurrent requests and never outlive the request that opened them.
//
// MECHANICS:
//   - middleware calls db.RequestScope(ctx) → derived context + release func
//   - repository methods call db.executor(ctx); inside a scope this checks a
//     *sql.Conn out of the pool on first use and returns the same one after
//     that (idempotent acquire)
//   - the middleware's deferred release closes the conn (no-op if the request
//     never touched the database)
//
// Outside a scope (tests, one-off callers) executor falls back to the pool,
// which behaves identically for single statements.

// executor is the subset of sql.DB / sql.Conn the repositories use.
// Both types satisfy it, which is what lets one repository body serve the
// scoped and unscoped paths.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scopeKey is an unexported context key type — only this package can read or
// write the request scope, so other packages cannot shadow or steal it.
type scopeKey struct{}

// requestConn holds the (at most one) dedicated connection for a request.
//
// The mutex guards against helper goroutines a handler might spawn; within
// the normal one-goroutine-per-request flow it is uncontended.
type requestConn struct {
	pool *sql.DB

	mu       sync.Mutex
	conn     *sql.Conn
	released bool
}

// RequestScope returns a derived context carrying a lazy connection holder
// and the release function that ends the scope.
//
// The caller MUST invoke release when the request completes, typically via
// defer in middleware so it also runs while a panic is unwinding:
//
//	ctx, release := db.RequestScope(r.Context())
//	defer release()
//	next.ServeHTTP(w, r.WithContext(ctx))
func (db *DB) RequestScope(ctx context.Context) (context.Context, func()) {
	rc := &requestConn{pool: db.conn}
	return context.WithValue(ctx, scopeKey{}, rc), rc.release
}

// acquire returns the request's dedicated connection, checking one out of the
// pool on first call. Second and later calls return the same connection.
// After release it refuses further use — a query must not resurrect a closed
// scope.
func (rc *requestConn) acquire(ctx context.Context) (*sql.Conn, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.released {
		return nil, fmt.Errorf("sqlite: request scope already released")
	}
	if rc.conn != nil {
		return rc.conn, nil
	}

	conn, err := rc.pool.Conn(ctx)
	if err != nil {
		// No retry: a failed open is fatal for this request.
		return nil, fmt.Errorf("sqlite: acquiring request connection: %w", err)
	}
	rc.conn = conn
	return conn, nil
}

// release returns the connection to the pool. Safe to call more than once;
// a no-op when the request never ran a query.
func (rc *requestConn) release() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.released = true
	if rc.conn != nil {
		rc.conn.Close()
		rc.conn = nil
	}
}

// executor resolves the right query target for ctx: the request's dedicated
// connection inside a scope, the shared pool otherwise.
func (db *DB) executor(ctx context.Context) (executor, error) {
	if rc, ok := ctx.Value(scopeKey{}).(*requestConn); ok {
		return rc.acquire(ctx)
	}
	return db.conn, nil
}
