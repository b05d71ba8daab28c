package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/model"
	"github.com/sakif/web-playground/internal/repository"
)

// Calories per gram of each macronutrient. A food's calorie total is derived
// once at creation and stored.
const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

// entryDateLayout is how YYYYMMDD integers round-trip through time.Time.
const entryDateLayout = "20060102"

// FoodLogService handles the food tracker's days, foods, and daily totals.
type FoodLogService struct {
	repo   repository.FoodLogRepository
	logger *slog.Logger
}

// NewFoodLogService creates a FoodLogService.
func NewFoodLogService(repo repository.FoodLogRepository, logger *slog.Logger) *FoodLogService {
	return &FoodLogService{repo: repo, logger: logger}
}

// DayView bundles everything the day page shows.
type DayView struct {
	Day    model.Day
	Foods  []model.Food
	Totals model.NutritionTotals
	All    []model.Food // every known food, for the "log a food" selector
}

// AddDay records a new log day from an HTML date input value ("2006-01-02").
// The date is stored as a YYYYMMDD integer. Adding the same date twice
// inserts two rows — the log does not deduplicate days.
func (s *FoodLogService) AddDay(ctx context.Context, dateStr string) (*model.Day, error) {
	dt, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return nil, apperror.ValidationFailed("date", fmt.Sprintf("invalid date %q", dateStr))
	}

	entryDate, _ := strconv.Atoi(dt.Format(entryDateLayout))
	day := &model.Day{EntryDate: entryDate}
	if err := s.repo.CreateDay(ctx, day); err != nil {
		return nil, fmt.Errorf("creating log day %d: %w", entryDate, err)
	}

	s.logger.Info("log day added", slog.Int("entryDate", entryDate))

	return day, nil
}

// Days returns every log day, newest first, with Pretty filled in for
// display ("August 30, 2026").
func (s *FoodLogService) Days(ctx context.Context) ([]model.Day, error) {
	days, err := s.repo.ListDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing log days: %w", err)
	}

	for i := range days {
		days[i].Pretty = prettyDate(days[i].EntryDate)
	}
	return days, nil
}

// AddFood records a food. Calories are derived from the macros here, not
// taken from the caller: protein*4 + carbs*4 + fat*9.
func (s *FoodLogService) AddFood(ctx context.Context, name string, protein, carbs, fat int) (*model.Food, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("food-name", "food name is required")
	}
	if protein < 0 || carbs < 0 || fat < 0 {
		return nil, apperror.ValidationFailed("macros", "macronutrients cannot be negative")
	}

	food := &model.Food{
		Name:          name,
		Protein:       protein,
		Carbohydrates: carbs,
		Fat:           fat,
		Calories: protein*caloriesPerGramProtein +
			carbs*caloriesPerGramCarbs +
			fat*caloriesPerGramFat,
	}
	if err := s.repo.CreateFood(ctx, food); err != nil {
		return nil, fmt.Errorf("creating food %q: %w", name, err)
	}

	s.logger.Info("food added",
		slog.Int64("id", food.ID),
		slog.String("name", food.Name),
		slog.Int("calories", food.Calories),
	)

	return food, nil
}

// Foods returns every known food.
func (s *FoodLogService) Foods(ctx context.Context) ([]model.Food, error) {
	foods, err := s.repo.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing foods: %w", err)
	}
	return foods, nil
}

// LogFood records that a food was eaten on the day with the given entry
// date. The day must already exist (it was created from the home page).
func (s *FoodLogService) LogFood(ctx context.Context, foodID int64, entryDate int) error {
	day, err := s.repo.GetDay(ctx, entryDate)
	if err != nil {
		return err
	}

	if err := s.repo.LogFood(ctx, foodID, day.ID); err != nil {
		return err
	}

	s.logger.Info("food logged",
		slog.Int64("foodID", foodID),
		slog.Int("entryDate", entryDate),
	)
	return nil
}

// Day assembles the day page: the day itself, everything logged against it,
// the summed totals, and the full food list for the selector. Totals are
// summed here in the service — the repository returns plain rows.
func (s *FoodLogService) Day(ctx context.Context, entryDate int) (*DayView, error) {
	day, err := s.repo.GetDay(ctx, entryDate)
	if err != nil {
		return nil, err
	}
	day.Pretty = prettyDate(day.EntryDate)

	logged, err := s.repo.ListDayFoods(ctx, entryDate)
	if err != nil {
		return nil, fmt.Errorf("listing foods for day %d: %w", entryDate, err)
	}

	all, err := s.repo.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing foods: %w", err)
	}

	var totals model.NutritionTotals
	for _, f := range logged {
		totals.Protein += f.Protein
		totals.Carbohydrates += f.Carbohydrates
		totals.Fat += f.Fat
		totals.Calories += f.Calories
	}

	return &DayView{
		Day:    *day,
		Foods:  logged,
		Totals: totals,
		All:    all,
	}, nil
}

// prettyDate renders 20260830 as "August 30, 2026". An unparseable entry
// date (shouldn't happen — AddDay validates) falls back to the raw number.
func prettyDate(entryDate int) string {
	d, err := time.Parse(entryDateLayout, strconv.Itoa(entryDate))
	if err != nil {
		return strconv.Itoa(entryDate)
	}
	return d.Format("January 02, 2006")
}
