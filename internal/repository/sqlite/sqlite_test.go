package sqlite

import "testing"

// Test databases are in-memory. One catch with :memory:: every NEW pool
// connection gets its own fresh, empty database, so the helpers pin the pool
// to a single connection. That also keeps the request-scope tests honest —
// the scoped connection and the pool fallback see the same data.

func newTestQADB(t *testing.T) *DB {
	t.Helper()
	db, err := NewQA(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	db.conn.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestFoodLogDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewFoodLog(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	db.conn.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestMembersDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewMembers(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	db.conn.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}
