// Package service contains the business logic layer of the applications.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services accept primitives and return domain models and apperror values;
// they know nothing about HTTP. Each service receives repository interfaces
// (never the concrete sqlite types), so tests inject in-memory fakes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/auth"
	"github.com/sakif/web-playground/internal/model"
	"github.com/sakif/web-playground/internal/repository"
)

// AuthService handles registration, login, per-request identity resolution,
// and the admin's user management.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account with both role flags off.
//
// CHECK-THEN-ACT, ON PURPOSE:
// Uniqueness is enforced by the read below, not by a schema constraint. Two
// concurrent registrations for the same name can both pass the check and
// both insert. See DESIGN.md before tightening this — the looseness is a
// documented property, not an oversight.
func (s *AuthService) Register(ctx context.Context, name, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	n, err := s.users.CountByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking existing user %q: %w", name, err)
	}
	if n > 0 {
		return nil, apperror.DuplicateUser(name)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password for %q: %w", name, err)
	}

	user := &model.User{
		Name:         name,
		PasswordHash: hash,
		Expert:       false,
		Admin:        false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user %q: %w", name, err)
	}

	s.logger.Info("user registered",
		slog.Int64("id", user.ID),
		slog.String("name", user.Name),
	)

	return user, nil
}

// Login authenticates a name/password pair.
//
// The two failure modes are distinct on purpose — the login page shows
// "no such user" and "incorrect password" as different messages. The
// password comparison itself is constant-time (bcrypt).
func (s *AuthService) Login(ctx context.Context, name, password string) (*model.User, error) {
	name = strings.TrimSpace(name)

	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.UnknownUser(name)
		}
		return nil, fmt.Errorf("looking up user %q: %w", name, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.WrongPassword()
	}

	s.logger.Info("user logged in", slog.String("name", user.Name))

	return user, nil
}

// ListUsers returns every account, for the admin's user list.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Promote sets a user's expert flag. The admin guard lives at the route;
// this method assumes the caller is allowed.
func (s *AuthService) Promote(ctx context.Context, id int64) error {
	if err := s.users.SetExpert(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user promoted to expert", slog.Int64("id", id))
	return nil
}
