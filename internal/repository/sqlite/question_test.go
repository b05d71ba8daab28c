package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/model"
)

// qaFixture sets up the usual cast: an asker and an expert.
func qaFixture(t *testing.T) (*DB, *model.User, *model.User) {
	t.Helper()
	db := newTestQADB(t)
	asker := createTestUser(t, db.Users(), "asker", false, false)
	expert := createTestUser(t, db.Users(), "expert", true, false)
	return db, asker, expert
}

func askTestQuestion(t *testing.T, q *QuestionStore, text string, askedByID, expertID int64) *model.Question {
	t.Helper()
	question := &model.Question{Text: text, AskedByID: askedByID, ExpertID: expertID}
	if err := q.Create(context.Background(), question); err != nil {
		t.Fatalf("failed to create test question: %v", err)
	}
	return question
}

func TestQuestionCreateAndGet(t *testing.T) {
	db, asker, expert := qaFixture(t)
	q := db.Questions()

	created := askTestQuestion(t, q, "why is the sky blue?", asker.ID, expert.ID)
	if created.ID == 0 {
		t.Fatal("Create() did not set question.ID")
	}

	got, err := q.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Text != "why is the sky blue?" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Answered {
		t.Error("new question should not be answered")
	}
	if got.Answer != "" {
		t.Errorf("new question has answer %q", got.Answer)
	}
	// Joined display names.
	if got.AskedBy != "asker" {
		t.Errorf("AskedBy = %q, want %q", got.AskedBy, "asker")
	}
	if got.Expert != "expert" {
		t.Errorf("Expert = %q, want %q", got.Expert, "expert")
	}
}

func TestQuestionGetByID_NotFound(t *testing.T) {
	db, _, _ := qaFixture(t)

	_, err := db.Questions().GetByID(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestQuestionAnswer(t *testing.T) {
	db, asker, expert := qaFixture(t)
	q := db.Questions()

	created := askTestQuestion(t, q, "how deep is the ocean?", asker.ID, expert.ID)

	if err := q.Answer(context.Background(), created.ID, "about 11km at the deepest"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	got, err := q.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.Answered {
		t.Error("question should be answered")
	}
	if got.Answer != "about 11km at the deepest" {
		t.Errorf("Answer = %q", got.Answer)
	}
}

func TestQuestionAnswer_NotFound(t *testing.T) {
	db, _, _ := qaFixture(t)

	err := db.Questions().Answer(context.Background(), 404, "shouting into the void")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Answer() error = %v, want ErrNotFound", err)
	}
}

func TestQuestionListAnswered(t *testing.T) {
	db, asker, expert := qaFixture(t)
	q := db.Questions()

	askTestQuestion(t, q, "still open", asker.ID, expert.ID)
	done := askTestQuestion(t, q, "already done", asker.ID, expert.ID)
	if err := q.Answer(context.Background(), done.ID, "yes"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	answered, err := q.ListAnswered(context.Background())
	if err != nil {
		t.Fatalf("ListAnswered() error = %v", err)
	}
	if len(answered) != 1 {
		t.Fatalf("ListAnswered() returned %d questions, want 1", len(answered))
	}
	if answered[0].ID != done.ID {
		t.Errorf("ListAnswered() returned id %d, want %d", answered[0].ID, done.ID)
	}
}

func TestQuestionListUnansweredForExpert(t *testing.T) {
	db, asker, expert := qaFixture(t)
	other := createTestUser(t, db.Users(), "other-expert", true, false)
	q := db.Questions()

	mine := askTestQuestion(t, q, "for me", asker.ID, expert.ID)
	askTestQuestion(t, q, "for someone else", asker.ID, other.ID)
	answeredMine := askTestQuestion(t, q, "for me, done", asker.ID, expert.ID)
	if err := q.Answer(context.Background(), answeredMine.ID, "done"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	// Only this expert's open questions: assigned to them AND unanswered.
	open, err := q.ListUnansweredForExpert(context.Background(), expert.ID)
	if err != nil {
		t.Fatalf("ListUnansweredForExpert() error = %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("ListUnansweredForExpert() returned %d questions, want 1", len(open))
	}
	if open[0].ID != mine.ID {
		t.Errorf("ListUnansweredForExpert() returned id %d, want %d", open[0].ID, mine.ID)
	}
}
