package models

import "time"

// Plan domains.
const (
	DomainDiet    = "diet"
	DomainWorkout = "workout"
)

// Daily aggregate targets. Grams are derived from the calorie total via the
// goal ratio tables; the kcal sum of the gram values stays within ±2% of
// Calories after rounding (4/4/9 kcal per gram).
type NutritionTargets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// One meal slot of a daily allocation. Sub-targets are round(total*ratio);
// rounding error is not redistributed.
type MealSlot struct {
	Type     string  `json:"type"`
	Timing   string  `json:"timing"`
	Ratio    float64 `json:"ratio"`
	Calories int     `json:"calories"`
	ProteinG int     `json:"protein_g"`
	CarbsG   int     `json:"carbs_g"`
	FatG     int     `json:"fat_g"`
}

// One training day of a weekly split.
type SessionSlot struct {
	Day   int    `json:"day"`
	Focus string `json:"focus"`
}

// Totals recomputed by summing children, never copied from model output.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type FoodItem struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Meal struct {
	Type   string      `json:"type"`
	Time   string      `json:"time"`
	Items  []FoodItem  `json:"items"`
	Totals MacroTotals `json:"totals"`
}

type DietDay struct {
	Day    int         `json:"day"`
	Meals  []Meal      `json:"meals"`
	Totals MacroTotals `json:"totals"`
}

type DietPlan struct {
	Days []DietDay `json:"days"`
}

type Exercise struct {
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   string `json:"reps"`
	Rest   string `json:"rest"`
	Notes  string `json:"notes"`
	Easier string `json:"easier"`
	Harder string `json:"harder"`
}

type WorkoutDay struct {
	Day       int        `json:"day"`
	Focus     string     `json:"focus"`
	Warmup    []string   `json:"warmup"`
	Cooldown  []string   `json:"cooldown"`
	Exercises []Exercise `json:"exercises"`
}

type WorkoutPlan struct {
	Days []WorkoutDay `json:"days"`
}

// Stable shape produced by the normalizer. Exactly one of Diet/Workout is set,
// matching Domain.
type NormalizedPlan struct {
	Domain  string       `json:"domain"`
	Diet    *DietPlan    `json:"diet,omitempty"`
	Workout *WorkoutPlan `json:"workout,omitempty"`
}

// Inputs the plan was generated from, stored next to it for display and
// regeneration.
type PlanSnapshot struct {
	Profile  Profile          `json:"profile"`
	Targets  NutritionTargets `json:"targets,omitempty"`
	Meals    []MealSlot       `json:"meals,omitempty"`
	Sessions []SessionSlot    `json:"sessions,omitempty"`
}

// Persisted plan. A new generation supersedes the previous active record for
// the same (owner, domain); superseded rows are kept as history.
type PlanRecord struct {
	ID        string         `json:"id"`
	OwnerID   int            `json:"owner_id"`
	Domain    string         `json:"domain"`
	Plan      NormalizedPlan `json:"plan"`
	Snapshot  PlanSnapshot   `json:"snapshot"`
	CreatedAt time.Time      `json:"created_at"`
	Active    bool           `json:"active"`
}
