package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/model"
	"github.com/sakif/web-playground/internal/repository"
)

// UserStore implements repository.UserRepository over the Q&A database.
//
// WHY A SUB-STORE INSTEAD OF METHODS ON *DB?
// Several repositories share one DB wrapper, and their interfaces all want a
// method named Create. Go forbids two methods with the same name on one type,
// so each table family gets its own store type; DB hands them out via
// Users(), Questions(), and friends.
type UserStore struct {
	db *DB
}

// Users returns the user repository backed by this database.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// Create inserts a new user and fills in the database-assigned ID.
//
// There is deliberately no uniqueness handling here — the duplicate check
// lives in the service layer as a read before this insert.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx,
		`INSERT INTO users (name, password, expert, admin) VALUES (?, ?, ?, ?)`,
		user.Name,
		user.PasswordHash,
		user.Expert,
		user.Admin,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByName retrieves the first user with the given name.
//
// Because the schema does not enforce name uniqueness, duplicates are
// possible; ORDER BY id keeps the lookup deterministic (oldest row wins).
func (s *UserStore) GetByName(ctx context.Context, name string) (*model.User, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	var u model.User
	err = ex.QueryRowContext(ctx,
		`SELECT id, name, password, expert, admin
		 FROM users WHERE name = ? ORDER BY id LIMIT 1`,
		name,
	).Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Expert, &u.Admin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", name)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", name, err)
	}

	return &u, nil
}

// GetByID retrieves a user by primary key.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	var u model.User
	err = ex.QueryRowContext(ctx,
		`SELECT id, name, password, expert, admin FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Expert, &u.Admin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return &u, nil
}

// List returns every user, oldest first. Used by the admin user list.
func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	return s.list(ctx, `SELECT id, name, password, expert, admin FROM users ORDER BY id`)
}

// ListExperts returns users with the expert flag set, for the ask form's
// expert selector.
func (s *UserStore) ListExperts(ctx context.Context) ([]model.User, error) {
	return s.list(ctx,
		`SELECT id, name, password, expert, admin FROM users WHERE expert = 1 ORDER BY id`)
}

func (s *UserStore) list(ctx context.Context, query string) ([]model.User, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ex.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Expert, &u.Admin); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

// SetExpert promotes a user to expert. RowsAffected distinguishes a missing
// user from a successful promotion.
func (s *UserStore) SetExpert(ctx context.Context, id int64) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx, `UPDATE users SET expert = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: promoting user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user", strconv.FormatInt(id, 10))
	}

	return nil
}

// CountByName reports how many users share a name. The registration flow's
// duplicate check, and the duplicate-registration tests, both use it.
func (s *UserStore) CountByName(ctx context.Context, name string) (int, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return 0, err
	}

	var n int
	err = ex.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE name = ?`, name,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting users named %q: %w", name, err)
	}

	return n, nil
}
