package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/model"
	"github.com/sakif/web-playground/internal/repository"
)

// MemberService is plain CRUD over the member API's rows.
type MemberService struct {
	repo   repository.MemberRepository
	logger *slog.Logger
}

// NewMemberService creates a MemberService.
func NewMemberService(repo repository.MemberRepository, logger *slog.Logger) *MemberService {
	return &MemberService{repo: repo, logger: logger}
}

// Create validates and stores a new member.
func (s *MemberService) Create(ctx context.Context, name, email, level string) (*model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "member name is required")
	}

	m := &model.Member{
		Name:  name,
		Email: strings.TrimSpace(email),
		Level: strings.TrimSpace(level),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating member %q: %w", name, err)
	}

	s.logger.Info("member created", slog.Int64("id", m.ID), slog.String("name", m.Name))
	return m, nil
}

// Get returns one member by id.
func (s *MemberService) Get(ctx context.Context, id int64) (*model.Member, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every member.
func (s *MemberService) List(ctx context.Context) ([]model.Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

// Update applies non-empty fields to an existing member. An empty field
// means "leave it alone", so PATCH and PUT share this path.
func (s *MemberService) Update(ctx context.Context, id int64, name, email, level string) (*model.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		m.Name = name
	}
	if email = strings.TrimSpace(email); email != "" {
		m.Email = email
	}
	if level = strings.TrimSpace(level); level != "" {
		m.Level = level
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("updating member %d: %w", id, err)
	}

	s.logger.Info("member updated", slog.Int64("id", m.ID))
	return m, nil
}

// Delete removes a member.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("member deleted", slog.Int64("id", id))
	return nil
}
