package metrics

import (
	"log"
	"math"

	"WellnessPlanner_HealthProject/internal/models"
)

// Unavailable is returned when a required input is missing or out of range.
// All real metric values are positive, so -1 is unambiguous. Callers must
// propagate it instead of computing with it.
const Unavailable = -1.0

// Calorie fractions of a macro split. Protein+Carbs+Fat must sum to 1.0.
type MacroSplit struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// Tables holds every lookup the calculator uses. Injected so the calculator
// stays pure and tables can be swapped in tests.
type Tables struct {
	Activity        map[string]float64
	DefaultActivity float64
	GoalCalorie     map[string]float64
	DefaultCalorie  float64
	GoalMacros      map[string]MacroSplit
	DefaultMacros   MacroSplit
	WaterMLPerKg    float64
	LossRateKgWeek  float64
	GainRateKgWeek  float64
}

// DefaultTables returns the production tables. Prompt text embeds these
// figures verbatim, so changing a value here changes the generated plans.
func DefaultTables() Tables {
	return Tables{
		Activity: map[string]float64{
			models.ActivitySedentary:  1.2,
			models.ActivityLight:      1.375,
			models.ActivityModerate:   1.55,
			models.ActivityActive:     1.725,
			models.ActivityVeryActive: 1.9,
		},
		DefaultActivity: 1.55,
		GoalCalorie: map[string]float64{
			models.GoalFatLoss:         0.8,
			models.GoalEndurance:       0.95,
			models.GoalMuscleGain:      1.1,
			models.GoalMaintenance:     1.0,
			models.GoalGeneralWellness: 1.0,
		},
		DefaultCalorie: 1.0,
		GoalMacros: map[string]MacroSplit{
			models.GoalFatLoss:         {Protein: 0.40, Carbs: 0.35, Fat: 0.25},
			models.GoalMuscleGain:      {Protein: 0.30, Carbs: 0.45, Fat: 0.25},
			models.GoalMaintenance:     {Protein: 0.30, Carbs: 0.40, Fat: 0.30},
			models.GoalEndurance:       {Protein: 0.25, Carbs: 0.50, Fat: 0.25},
			models.GoalGeneralWellness: {Protein: 0.30, Carbs: 0.40, Fat: 0.30},
		},
		DefaultMacros:  MacroSplit{Protein: 0.30, Carbs: 0.40, Fat: 0.30},
		WaterMLPerKg:   35,
		LossRateKgWeek: 0.5,
		GainRateKgWeek: 0.25,
	}
}

type Calculator struct {
	t Tables
}

func NewCalculator(t Tables) Calculator {
	return Calculator{t: t}
}

func Default() Calculator {
	return NewCalculator(DefaultTables())
}

// BMI converts both measures to metric and returns weight_kg / height_m^2
// rounded to one decimal.
func (c Calculator) BMI(height, weight float64, heightUnit, weightUnit string) float64 {
	cm := toCm(height, heightUnit)
	kg := toKg(weight, weightUnit)
	if cm <= 0 || kg <= 0 {
		return Unavailable
	}
	m := cm / 100
	return round1(kg / (m * m))
}

// BMICategory labels a BMI value per the standard WHO cutoffs.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return "Unavailable"
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Healthy Weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// BMR uses Mifflin-St Jeor: 10*kg + 6.25*cm - 5*age, +5 male / -161 female.
func (c Calculator) BMR(height, weight float64, heightUnit, weightUnit, sex string, age int) float64 {
	cm := toCm(height, heightUnit)
	kg := toKg(weight, weightUnit)
	if cm <= 0 || kg <= 0 || age <= 0 {
		return Unavailable
	}
	base := 10*kg + 6.25*cm - 5*float64(age)
	switch sex {
	case "male":
		return base + 5
	case "female":
		return base - 161
	default:
		return Unavailable
	}
}

// TDEE multiplies BMR by the activity multiplier. An unrecognized level falls
// back to the default multiplier and is logged, so bad questionnaire data
// stays visible.
func (c Calculator) TDEE(bmr float64, activityLevel string) float64 {
	if bmr <= 0 {
		return Unavailable
	}
	mult, ok := c.t.Activity[activityLevel]
	if !ok {
		log.Printf("TDEE(): unrecognized activity level %q, using default multiplier %.2f", activityLevel, c.t.DefaultActivity)
		mult = c.t.DefaultActivity
	}
	return math.Round(bmr * mult)
}

// CalorieTarget applies the per-goal multiplier to TDEE.
func (c Calculator) CalorieTarget(tdee float64, goal string) int {
	if tdee <= 0 {
		return int(Unavailable)
	}
	mult, ok := c.t.GoalCalorie[goal]
	if !ok {
		log.Printf("CalorieTarget(): unrecognized goal %q, using multiplier %.2f", goal, c.t.DefaultCalorie)
		mult = c.t.DefaultCalorie
	}
	return int(math.Round(tdee * mult))
}

// Macros converts a calorie total into gram targets via the goal split,
// at 4 kcal/g protein, 4 kcal/g carbs, 9 kcal/g fat.
func (c Calculator) Macros(calories int, goal string) models.NutritionTargets {
	if calories <= 0 {
		return models.NutritionTargets{
			Calories: int(Unavailable),
			ProteinG: int(Unavailable),
			CarbsG:   int(Unavailable),
			FatG:     int(Unavailable),
		}
	}
	split, ok := c.t.GoalMacros[goal]
	if !ok {
		log.Printf("Macros(): unrecognized goal %q, using default split", goal)
		split = c.t.DefaultMacros
	}
	cal := float64(calories)
	return models.NutritionTargets{
		Calories: calories,
		ProteinG: int(math.Round(cal * split.Protein / 4)),
		CarbsG:   int(math.Round(cal * split.Carbs / 4)),
		FatG:     int(math.Round(cal * split.Fat / 9)),
	}
}

// WaterIntakeML returns the daily water target in milliliters.
func (c Calculator) WaterIntakeML(weight float64, weightUnit string) float64 {
	kg := toKg(weight, weightUnit)
	if kg <= 0 {
		return Unavailable
	}
	return math.Round(kg * c.t.WaterMLPerKg)
}

// WeightProjection returns a weekly weight series from current toward target,
// in the caller's weight unit, at the table's safe rate. The series includes
// both endpoints and is capped at 52 weeks. Nil when no target is set.
func (c Calculator) WeightProjection(current, target float64, weightUnit string) []float64 {
	curKg := toKg(current, weightUnit)
	tgtKg := toKg(target, weightUnit)
	if curKg <= 0 || tgtKg <= 0 || curKg == tgtKg {
		return nil
	}
	rate := c.t.LossRateKgWeek
	if tgtKg > curKg {
		rate = c.t.GainRateKgWeek
	}
	const maxWeeks = 52
	series := []float64{round1(fromKg(curKg, weightUnit))}
	w := curKg
	for i := 0; i < maxWeeks; i++ {
		if tgtKg < curKg {
			w -= rate
			if w <= tgtKg {
				w = tgtKg
			}
		} else {
			w += rate
			if w >= tgtKg {
				w = tgtKg
			}
		}
		series = append(series, round1(fromKg(w, weightUnit)))
		if w == tgtKg {
			break
		}
	}
	return series
}

const (
	cmPerInch = 2.54
	kgPerLb   = 0.45359237
)

func toCm(v float64, unit string) float64 {
	switch unit {
	case "cm":
		return v
	case "in":
		return v * cmPerInch
	default:
		return 0
	}
}

func toKg(v float64, unit string) float64 {
	switch unit {
	case "kg":
		return v
	case "lb":
		return v * kgPerLb
	default:
		return 0
	}
}

func fromKg(v float64, unit string) float64 {
	if unit == "lb" {
		return v / kgPerLb
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
