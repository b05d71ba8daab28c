// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C
// compiler installed and cross-compilation becomes painful. modernc.org/sqlite
// is a pure Go translation of the SQLite C code — no C compiler needed, works
// everywhere Go works.
//
// ONE DATABASE FILE PER APP:
// The Q&A site, the food tracker, and the member API each keep their own
// single-file database (questions.db, food_log.db, members.db). The open and
// pragma logic is shared; only the migrations differ, so each app has its own
// constructor (NewQA, NewFoodLog, NewMembers) that opens the file and creates
// that app's tables.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The sqlite package's init() registers itself with database/sql as a
	// driver named "sqlite". After this import, sql.Open("sqlite", ...) knows
	// how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides repository methods.
//
// sql.DB is a pool, NOT a single connection. Requests that need a dedicated
// connection for their lifetime check one out through RequestScope (see
// requestconn.go); everything else goes straight to the pool.
type DB struct {
	conn *sql.DB
}

// open creates the connection pool and applies the pragmas every app needs.
//
// dbPath examples:
//   - "data/questions.db" → file-based database (persistent)
//   - ":memory:"          → in-memory database (great for tests, lost on close)
func open(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping forces an immediate connection so a bad path or permissions issue
	// surfaces here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is happening. Writers
	// still serialize at the file level — two requests writing at once means
	// one waits (up to busy_timeout) or fails with SQLITE_BUSY. There is no
	// retry above this layer; a busy failure surfaces as a request error.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=10000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy_timeout: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (for backwards compatibility).
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	return &DB{conn: conn}, nil
}

// NewQA opens the Q&A site's database and creates its tables.
//
// NOTE THE MISSING UNIQUE CONSTRAINT ON users.name:
// Name uniqueness is enforced by the registration flow (read, then insert),
// not by the schema. Keep it that way — the constraint's absence is part of
// the documented behaviour (see DESIGN.md).
func NewQA(dbPath string) (*DB, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT NOT NULL,
			password TEXT NOT NULL,
			expert   INTEGER NOT NULL DEFAULT 0,
			admin    INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS questions (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			question_text TEXT NOT NULL,
			answer_text   TEXT,
			asked_by_id   INTEGER NOT NULL REFERENCES users(id),
			expert_id     INTEGER NOT NULL REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_questions_expert_id ON questions(expert_id);
	`)
	if err != nil {
		db.conn.Close()
		return nil, fmt.Errorf("sqlite: creating qa tables: %w", err)
	}

	return db, nil
}

// NewFoodLog opens the food tracker's database and creates its tables.
// entry_date is an integer in YYYYMMDD form, so ORDER BY works numerically.
func NewFoodLog(dbPath string) (*DB, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS log_date (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_date INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS food (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			protein       INTEGER NOT NULL,
			carbohydrates INTEGER NOT NULL,
			fat           INTEGER NOT NULL,
			calories      INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS food_date (
			food_id     INTEGER NOT NULL REFERENCES food(id),
			log_date_id INTEGER NOT NULL REFERENCES log_date(id)
		);
		CREATE INDEX IF NOT EXISTS idx_food_date_log_date_id ON food_date(log_date_id);
	`)
	if err != nil {
		db.conn.Close()
		return nil, fmt.Errorf("sqlite: creating food log tables: %w", err)
	}

	return db, nil
}

// NewMembers opens the member API's database and creates its table.
func NewMembers(dbPath string) (*DB, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS members (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT NOT NULL,
			email TEXT NOT NULL,
			level TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		db.conn.Close()
		return nil, fmt.Errorf("sqlite: creating members table: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Call it (usually via defer) when the
// server shuts down so the WAL is flushed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}
