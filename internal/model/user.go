// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

// User represents a registered account on the Q&A site.
//
// WHY INTEGER IDs?
// Users are keyed by SQLite's rowid (INTEGER PRIMARY KEY), so the database
// assigns IDs on insert and we read them back with LastInsertId. int64 matches
// what database/sql returns.
//
// WHY NO UNIQUE CONSTRAINT ON Name?
// Name uniqueness is enforced by the registration flow (a read before the
// insert), not by the schema. Two registrations racing on the same name can
// therefore both succeed. That check-then-act behaviour is deliberate — see
// DESIGN.md before "fixing" it.
//
// Expert and Admin are stored as INTEGER 0/1 columns; the sqlite driver scans
// those into Go bools directly.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // bcrypt hash, never serialized
	Expert       bool   `json:"expert"`
	Admin        bool   `json:"admin"`
}
