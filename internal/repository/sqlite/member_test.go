package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/model"
)

func createTestMember(t *testing.T, m *MemberStore, name string) *model.Member {
	t.Helper()
	member := &model.Member{Name: name, Email: name + "@example.com", Level: "gold"}
	if err := m.Create(context.Background(), member); err != nil {
		t.Fatalf("failed to create test member: %v", err)
	}
	return member
}

func TestMemberCreateAndGet(t *testing.T) {
	m := newTestMembersDB(t).Members()

	created := createTestMember(t, m, "john")
	if created.ID == 0 {
		t.Fatal("Create() did not set member.ID")
	}

	got, err := m.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "john" || got.Email != "john@example.com" || got.Level != "gold" {
		t.Errorf("GetByID() = %+v", got)
	}
}

func TestMemberGetByID_NotFound(t *testing.T) {
	m := newTestMembersDB(t).Members()

	_, err := m.GetByID(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestMemberList(t *testing.T) {
	m := newTestMembersDB(t).Members()

	createTestMember(t, m, "john")
	createTestMember(t, m, "jane")

	members, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(members) != 2 {
		t.Errorf("List() returned %d members, want 2", len(members))
	}
}

func TestMemberUpdate(t *testing.T) {
	m := newTestMembersDB(t).Members()
	member := createTestMember(t, m, "john")

	member.Level = "platinum"
	if err := m.Update(context.Background(), member); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := m.GetByID(context.Background(), member.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Level != "platinum" {
		t.Errorf("Level = %q, want %q", got.Level, "platinum")
	}
}

func TestMemberUpdate_NotFound(t *testing.T) {
	m := newTestMembersDB(t).Members()

	err := m.Update(context.Background(), &model.Member{ID: 404, Name: "ghost"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestMemberDelete(t *testing.T) {
	m := newTestMembersDB(t).Members()
	member := createTestMember(t, m, "john")

	if err := m.Delete(context.Background(), member.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := m.GetByID(context.Background(), member.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestMemberDelete_NotFound(t *testing.T) {
	m := newTestMembersDB(t).Members()

	err := m.Delete(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
