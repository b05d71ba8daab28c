package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/render"
	"github.com/sakif/web-playground/internal/service"
)

// FoodLogHandler serves the food tracker's HTML pages. No sessions here —
// the tracker is a single-user app.
type FoodLogHandler struct {
	foodlog  *service.FoodLogService
	renderer render.Renderer
	logger   *slog.Logger
}

// NewFoodLogHandler creates a FoodLogHandler.
func NewFoodLogHandler(foodlog *service.FoodLogService, renderer render.Renderer, logger *slog.Logger) *FoodLogHandler {
	return &FoodLogHandler{foodlog: foodlog, renderer: renderer, logger: logger}
}

func (h *FoodLogHandler) render(w http.ResponseWriter, name string, data map[string]any) {
	if err := h.renderer.Render(w, name, data); err != nil {
		h.logger.Error("rendering page",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *FoodLogHandler) fail(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String("error", err.Error()))
	}
	http.Error(w, http.StatusText(status), status)
}

// HandleHome lists the log days, newest first.
//
// HTTP: GET /
func (h *FoodLogHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	days, err := h.foodlog.Days(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, "home.html", map[string]any{"Days": days})
}

// HandleAddDay records a new log day and falls through to the day list.
//
// HTTP: POST / (form field: date, as "2006-01-02" from an HTML date input)
func (h *FoodLogHandler) HandleAddDay(w http.ResponseWriter, r *http.Request) {
	if _, err := h.foodlog.AddDay(r.Context(), r.FormValue("date")); err != nil {
		h.fail(w, err)
		return
	}

	h.HandleHome(w, r)
}

// HandleDay shows one day: its logged foods, the totals, and the selector
// of every known food.
//
// HTTP: GET /view/{date} (date in YYYYMMDD form)
func (h *FoodLogHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	view, err := h.foodlog.Day(r.Context(), date)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, "day.html", map[string]any{
		"Day":    view.Day,
		"Foods":  view.Foods,
		"Totals": view.Totals,
		"All":    view.All,
	})
}

// HandleLogFood logs a food against the day and re-shows the day.
//
// HTTP: POST /view/{date} (form field: food-select, a food id)
func (h *FoodLogHandler) HandleLogFood(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	foodID, err := strconv.ParseInt(r.FormValue("food-select"), 10, 64)
	if err != nil {
		h.fail(w, apperror.ValidationFailed("food-select", "invalid food id"))
		return
	}

	if err := h.foodlog.LogFood(r.Context(), foodID, date); err != nil {
		h.fail(w, err)
		return
	}

	h.HandleDay(w, r)
}

// HandleFoods lists every food.
//
// HTTP: GET /food
func (h *FoodLogHandler) HandleFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.foodlog.Foods(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.render(w, "add_food.html", map[string]any{"Foods": foods})
}

// HandleAddFood records a food (calories derived from the macros) and falls
// through to the food list.
//
// HTTP: POST /food (form fields: food-name, protein, carbohydrates, fat)
func (h *FoodLogHandler) HandleAddFood(w http.ResponseWriter, r *http.Request) {
	protein, err1 := strconv.Atoi(r.FormValue("protein"))
	carbs, err2 := strconv.Atoi(r.FormValue("carbohydrates"))
	fat, err3 := strconv.Atoi(r.FormValue("fat"))
	if err1 != nil || err2 != nil || err3 != nil {
		h.fail(w, apperror.ValidationFailed("macros", "protein, carbohydrates and fat must be whole numbers"))
		return
	}

	if _, err := h.foodlog.AddFood(r.Context(), r.FormValue("food-name"), protein, carbs, fat); err != nil {
		h.fail(w, err)
		return
	}

	h.HandleFoods(w, r)
}

// pathDate parses the {date} URL parameter (YYYYMMDD integer).
func pathDate(r *http.Request) (int, error) {
	date, err := strconv.Atoi(chi.URLParam(r, "date"))
	if err != nil {
		return 0, apperror.ValidationFailed("date", "invalid date")
	}
	return date, nil
}
