package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/model"
)

// fakeMemberRepo is an in-memory repository.MemberRepository.
type fakeMemberRepo struct {
	members map[int64]*model.Member
	nextID  int64
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[int64]*model.Member), nextID: 1}
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *model.Member) error {
	m.ID = f.nextID
	f.nextID++
	copied := *m
	f.members[m.ID] = &copied
	return nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, apperror.NotFound("member", "")
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMemberRepo) List(ctx context.Context) ([]model.Member, error) {
	var out []model.Member
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, m *model.Member) error {
	if _, ok := f.members[m.ID]; !ok {
		return apperror.NotFound("member", "")
	}
	copied := *m
	f.members[m.ID] = &copied
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.members[id]; !ok {
		return apperror.NotFound("member", "")
	}
	delete(f.members, id)
	return nil
}

func TestMemberCreate_RequiresName(t *testing.T) {
	s := NewMemberService(newFakeMemberRepo(), testLogger())

	_, err := s.Create(context.Background(), "  ", "j@example.com", "gold")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Create() error = %v, want ErrValidation", err)
	}
}

func TestMemberUpdate_EmptyFieldsLeftAlone(t *testing.T) {
	repo := newFakeMemberRepo()
	s := NewMemberService(repo, testLogger())

	created, err := s.Create(context.Background(), "john", "john@example.com", "gold")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// PATCH semantics: only the level changes, name and email survive.
	updated, err := s.Update(context.Background(), created.ID, "", "", "platinum")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Name != "john" || updated.Email != "john@example.com" {
		t.Errorf("Update() clobbered untouched fields: %+v", updated)
	}
	if updated.Level != "platinum" {
		t.Errorf("Level = %q, want %q", updated.Level, "platinum")
	}
}

func TestMemberUpdate_NotFound(t *testing.T) {
	s := NewMemberService(newFakeMemberRepo(), testLogger())

	_, err := s.Update(context.Background(), 404, "ghost", "", "")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}
