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

// MemberStore implements repository.MemberRepository over the member API's
// database.
type MemberStore struct {
	db *DB
}

// Members returns the member repository backed by this database.
func (db *DB) Members() *MemberStore { return &MemberStore{db: db} }

// compile-time check that *MemberStore implements repository.MemberRepository
var _ repository.MemberRepository = (*MemberStore)(nil)

func (s *MemberStore) Create(ctx context.Context, m *model.Member) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx,
		`INSERT INTO members (name, email, level) VALUES (?, ?, ?)`,
		m.Name, m.Email, m.Level)
	if err != nil {
		return fmt.Errorf("sqlite: inserting member %q: %w", m.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new member id: %w", err)
	}
	m.ID = id

	return nil
}

func (s *MemberStore) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	var m model.Member
	err = ex.QueryRowContext(ctx,
		`SELECT id, name, email, level FROM members WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Level)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("member", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting member %d: %w", id, err)
	}

	return &m, nil
}

func (s *MemberStore) List(ctx context.Context) ([]model.Member, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ex.QueryContext(ctx,
		`SELECT id, name, email, level FROM members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Level); err != nil {
			return nil, fmt.Errorf("sqlite: scanning member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating members: %w", err)
	}

	return members, nil
}

func (s *MemberStore) Update(ctx context.Context, m *model.Member) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx,
		`UPDATE members SET name = ?, email = ?, level = ? WHERE id = ?`,
		m.Name, m.Email, m.Level, m.ID)
	if err != nil {
		return fmt.Errorf("sqlite: updating member %d: %w", m.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("member", strconv.FormatInt(m.ID, 10))
	}

	return nil
}

func (s *MemberStore) Delete(ctx context.Context, id int64) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting member %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("member", strconv.FormatInt(id, 10))
	}

	return nil
}
