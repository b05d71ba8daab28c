package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/model"
)

// createTestUser is a helper that inserts a user and fails the test if it errors.
func createTestUser(t *testing.T, u *UserStore, name string, expert, admin bool) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		PasswordHash: "$2a$04$fakehashfakehashfakehash",
		Expert:       expert,
		Admin:        admin,
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestUserCreate(t *testing.T) {
	u := newTestQADB(t).Users()

	user := &model.User{Name: "alice", PasswordHash: "hash"}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("Create() did not set user.ID")
	}
}

func TestUserCreate_DuplicateNamesBothInsert(t *testing.T) {
	// The schema has no UNIQUE constraint on name — two inserts with the
	// same name must BOTH succeed. Uniqueness is the service layer's job.
	u := newTestQADB(t).Users()

	first := createTestUser(t, u, "alice", false, false)
	second := createTestUser(t, u, "alice", false, false)

	if first.ID == second.ID {
		t.Errorf("duplicate inserts got the same id %d", first.ID)
	}

	n, err := u.CountByName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CountByName() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountByName() = %d, want 2", n)
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestUserGetByName(t *testing.T) {
	u := newTestQADB(t).Users()
	created := createTestUser(t, u, "bob", true, false)

	got, err := u.GetByName(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}

	if got.ID != created.ID {
		t.Errorf("GetByName() id = %d, want %d", got.ID, created.ID)
	}
	if !got.Expert {
		t.Error("GetByName() lost the expert flag")
	}
	if got.Admin {
		t.Error("GetByName() invented an admin flag")
	}
}

func TestUserGetByName_NotFound(t *testing.T) {
	u := newTestQADB(t).Users()

	_, err := u.GetByName(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByName() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByName_DuplicatesOldestWins(t *testing.T) {
	u := newTestQADB(t).Users()

	first := createTestUser(t, u, "carol", false, false)
	createTestUser(t, u, "carol", true, true)

	got, err := u.GetByName(context.Background(), "carol")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("GetByName() returned id %d, want oldest row %d", got.ID, first.ID)
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	u := newTestQADB(t).Users()

	_, err := u.GetByID(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// LIST AND PROMOTE TESTS
// =========================================================================

func TestUserListExperts(t *testing.T) {
	u := newTestQADB(t).Users()

	createTestUser(t, u, "plain", false, false)
	expert := createTestUser(t, u, "guru", true, false)

	experts, err := u.ListExperts(context.Background())
	if err != nil {
		t.Fatalf("ListExperts() error = %v", err)
	}
	if len(experts) != 1 {
		t.Fatalf("ListExperts() returned %d users, want 1", len(experts))
	}
	if experts[0].ID != expert.ID {
		t.Errorf("ListExperts() returned id %d, want %d", experts[0].ID, expert.ID)
	}
}

func TestUserSetExpert(t *testing.T) {
	u := newTestQADB(t).Users()
	user := createTestUser(t, u, "dave", false, false)

	if err := u.SetExpert(context.Background(), user.ID); err != nil {
		t.Fatalf("SetExpert() error = %v", err)
	}

	got, err := u.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.Expert {
		t.Error("SetExpert() did not set the expert flag")
	}
}

func TestUserSetExpert_NotFound(t *testing.T) {
	u := newTestQADB(t).Users()

	err := u.SetExpert(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("SetExpert() error = %v, want ErrNotFound", err)
	}
}
