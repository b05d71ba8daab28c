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

// QuestionStore implements repository.QuestionRepository over the Q&A
// database.
type QuestionStore struct {
	db *DB
}

// Questions returns the question repository backed by this database.
func (db *DB) Questions() *QuestionStore { return &QuestionStore{db: db} }

// compile-time check that *QuestionStore implements repository.QuestionRepository
var _ repository.QuestionRepository = (*QuestionStore)(nil)

// Create inserts a new, unanswered question and fills in the assigned ID.
func (s *QuestionStore) Create(ctx context.Context, q *model.Question) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx,
		`INSERT INTO questions (question_text, answer_text, asked_by_id, expert_id)
		 VALUES (?, NULL, ?, ?)`,
		q.Text,
		q.AskedByID,
		q.ExpertID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting question: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new question id: %w", err)
	}
	q.ID = id

	return nil
}

// GetByID retrieves one question with the asker's and expert's names joined
// in for display. Works for answered and unanswered questions alike.
func (s *QuestionStore) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	var q model.Question
	var answer sql.NullString
	err = ex.QueryRowContext(ctx,
		`SELECT q.id, q.question_text, q.answer_text, q.asked_by_id, q.expert_id,
		        askers.name, experts.name
		 FROM questions q
		 JOIN users askers  ON askers.id  = q.asked_by_id
		 JOIN users experts ON experts.id = q.expert_id
		 WHERE q.id = ?`,
		id,
	).Scan(&q.ID, &q.Text, &answer, &q.AskedByID, &q.ExpertID, &q.AskedBy, &q.Expert)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("question", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting question %d: %w", id, err)
	}

	// A question is answered iff answer_text is non-NULL.
	q.Answer = answer.String
	q.Answered = answer.Valid

	return &q, nil
}

// ListAnswered returns every answered question, newest first, with both user
// names joined. This feeds the home page.
func (s *QuestionStore) ListAnswered(ctx context.Context) ([]model.Question, error) {
	return s.list(ctx,
		`SELECT q.id, q.question_text, q.answer_text, q.asked_by_id, q.expert_id,
		        askers.name, experts.name
		 FROM questions q
		 JOIN users askers  ON askers.id  = q.asked_by_id
		 JOIN users experts ON experts.id = q.expert_id
		 WHERE q.answer_text IS NOT NULL
		 ORDER BY q.id DESC`)
}

// ListUnansweredForExpert returns the open questions assigned to one expert,
// oldest first. Membership here is what gates answering in practice — the
// answer submission itself does not re-check ownership.
func (s *QuestionStore) ListUnansweredForExpert(ctx context.Context, expertID int64) ([]model.Question, error) {
	return s.list(ctx,
		`SELECT q.id, q.question_text, q.answer_text, q.asked_by_id, q.expert_id,
		        askers.name, experts.name
		 FROM questions q
		 JOIN users askers  ON askers.id  = q.asked_by_id
		 JOIN users experts ON experts.id = q.expert_id
		 WHERE q.answer_text IS NULL AND q.expert_id = ?
		 ORDER BY q.id`,
		expertID)
}

func (s *QuestionStore) list(ctx context.Context, query string, args ...any) ([]model.Question, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var answer sql.NullString
		if err := rows.Scan(
			&q.ID, &q.Text, &answer, &q.AskedByID, &q.ExpertID, &q.AskedBy, &q.Expert,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning question row: %w", err)
		}
		q.Answer = answer.String
		q.Answered = answer.Valid
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating questions: %w", err)
	}

	return questions, nil
}

// Answer sets the answer text, moving the question from unanswered to
// answered. Answered is terminal; a second submission simply overwrites the
// text, as the update carries no state guard.
func (s *QuestionStore) Answer(ctx context.Context, id int64, text string) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx,
		`UPDATE questions SET answer_text = ? WHERE id = ?`, text, id)
	if err != nil {
		return fmt.Errorf("sqlite: answering question %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("question", strconv.FormatInt(id, 10))
	}

	return nil
}
