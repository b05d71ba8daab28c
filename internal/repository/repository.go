// Package repository declares the storage interfaces the service layer
// depends on. Services receive these interfaces (never the concrete sqlite
// types), so tests can substitute in-memory fakes and the storage backend
// stays swappable.
package repository

import (
	"context"

	"github.com/sakif/web-playground/internal/model"
)

// UserRepository stores Q&A site accounts.
//
// GetByName is the identity-resolution query: it runs once per request for
// every request that carries a session, because the session holds only the
// username and the full record is always re-fetched (never cached).
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByName(ctx context.Context, name string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListExperts(ctx context.Context) ([]model.User, error)
	SetExpert(ctx context.Context, id int64) error
	CountByName(ctx context.Context, name string) (int, error)
}

// QuestionRepository stores questions and their answers.
type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	ListAnswered(ctx context.Context) ([]model.Question, error)
	ListUnansweredForExpert(ctx context.Context, expertID int64) ([]model.Question, error)
	Answer(ctx context.Context, id int64, text string) error
}

// FoodLogRepository stores the food tracker's days, foods, and the
// association between them.
type FoodLogRepository interface {
	CreateDay(ctx context.Context, day *model.Day) error
	GetDay(ctx context.Context, entryDate int) (*model.Day, error)
	ListDays(ctx context.Context) ([]model.Day, error)
	CreateFood(ctx context.Context, food *model.Food) error
	ListFoods(ctx context.Context) ([]model.Food, error)
	LogFood(ctx context.Context, foodID, dayID int64) error
	ListDayFoods(ctx context.Context, entryDate int) ([]model.Food, error)
}

// MemberRepository stores the member API's rows.
type MemberRepository interface {
	Create(ctx context.Context, m *model.Member) error
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	Update(ctx context.Context, m *model.Member) error
	Delete(ctx context.Context, id int64) error
}
