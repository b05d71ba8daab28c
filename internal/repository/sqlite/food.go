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

// FoodLogStore implements repository.FoodLogRepository over the food
// tracker's database.
type FoodLogStore struct {
	db *DB
}

// FoodLog returns the food log repository backed by this database.
func (db *DB) FoodLog() *FoodLogStore { return &FoodLogStore{db: db} }

// compile-time check that *FoodLogStore implements repository.FoodLogRepository
var _ repository.FoodLogRepository = (*FoodLogStore)(nil)

// CreateDay inserts a log day keyed by its YYYYMMDD entry date.
func (s *FoodLogStore) CreateDay(ctx context.Context, day *model.Day) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx,
		`INSERT INTO log_date (entry_date) VALUES (?)`, day.EntryDate)
	if err != nil {
		return fmt.Errorf("sqlite: inserting log date %d: %w", day.EntryDate, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new log date id: %w", err)
	}
	day.ID = id

	return nil
}

// GetDay looks a day up by entry date (not by row id — the URL carries the
// date).
func (s *FoodLogStore) GetDay(ctx context.Context, entryDate int) (*model.Day, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	var d model.Day
	err = ex.QueryRowContext(ctx,
		`SELECT id, entry_date FROM log_date WHERE entry_date = ?`, entryDate,
	).Scan(&d.ID, &d.EntryDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("log date", strconv.Itoa(entryDate))
		}
		return nil, fmt.Errorf("sqlite: getting log date %d: %w", entryDate, err)
	}

	return &d, nil
}

// ListDays returns every log day, newest first.
func (s *FoodLogStore) ListDays(ctx context.Context) ([]model.Day, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ex.QueryContext(ctx,
		`SELECT id, entry_date FROM log_date ORDER BY entry_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing log dates: %w", err)
	}
	defer rows.Close()

	var days []model.Day
	for rows.Next() {
		var d model.Day
		if err := rows.Scan(&d.ID, &d.EntryDate); err != nil {
			return nil, fmt.Errorf("sqlite: scanning log date row: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating log dates: %w", err)
	}

	return days, nil
}

// CreateFood inserts a food with its (already derived) calorie total.
func (s *FoodLogStore) CreateFood(ctx context.Context, food *model.Food) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	res, err := ex.ExecContext(ctx,
		`INSERT INTO food (name, protein, carbohydrates, fat, calories)
		 VALUES (?, ?, ?, ?, ?)`,
		food.Name,
		food.Protein,
		food.Carbohydrates,
		food.Fat,
		food.Calories,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting food %q: %w", food.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new food id: %w", err)
	}
	food.ID = id

	return nil
}

// ListFoods returns every known food, for the day view's select box.
func (s *FoodLogStore) ListFoods(ctx context.Context) ([]model.Food, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ex.QueryContext(ctx,
		`SELECT id, name, protein, carbohydrates, fat, calories FROM food ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing foods: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

// LogFood associates a food with a day. Logging the same food twice on one
// day inserts two rows — eating something twice counts twice.
func (s *FoodLogStore) LogFood(ctx context.Context, foodID, dayID int64) error {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return err
	}

	_, err = ex.ExecContext(ctx,
		`INSERT INTO food_date (food_id, log_date_id) VALUES (?, ?)`, foodID, dayID)
	if err != nil {
		return fmt.Errorf("sqlite: logging food %d on day %d: %w", foodID, dayID, err)
	}

	return nil
}

// ListDayFoods returns each food logged against an entry date, one row per
// logging, via the log_date → food_date → food join.
func (s *FoodLogStore) ListDayFoods(ctx context.Context, entryDate int) ([]model.Food, error) {
	ex, err := s.db.executor(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ex.QueryContext(ctx,
		`SELECT food.id, food.name, food.protein, food.carbohydrates, food.fat, food.calories
		 FROM log_date
		 JOIN food_date ON food_date.log_date_id = log_date.id
		 JOIN food      ON food.id = food_date.food_id
		 WHERE log_date.entry_date = ?`,
		entryDate,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing foods for day %d: %w", entryDate, err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

func scanFoods(rows *sql.Rows) ([]model.Food, error) {
	var foods []model.Food
	for rows.Next() {
		var f model.Food
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Protein, &f.Carbohydrates, &f.Fat, &f.Calories,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning food row: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating foods: %w", err)
	}
	return foods, nil
}
