package model

// Day is one dated entry in the food log.
//
// EntryDate is stored as an integer in YYYYMMDD form (e.g. 20260830), which
// sorts correctly as a number. Pretty holds the human-readable rendering
// ("August 30, 2026") filled in by the service layer for display.
type Day struct {
	ID        int64  `json:"id"`
	EntryDate int    `json:"entry_date"`
	Pretty    string `json:"pretty_date,omitempty"`
}

// Food is a food item with its macronutrients, in grams, and total calories.
// Calories are derived at creation time (protein*4 + carbs*4 + fat*9) and
// stored, so listing a day never recomputes them.
type Food struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Protein       int    `json:"protein"`
	Carbohydrates int    `json:"carbohydrates"`
	Fat           int    `json:"fat"`
	Calories      int    `json:"calories"`
}

// NutritionTotals is the per-day sum over every food logged against a date.
type NutritionTotals struct {
	Protein       int `json:"protein"`
	Carbohydrates int `json:"carbohydrates"`
	Fat           int `json:"fat"`
	Calories      int `json:"calories"`
}
