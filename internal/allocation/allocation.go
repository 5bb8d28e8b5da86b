// Turns daily aggregate targets into per-meal sub-targets and a weekly
// training split. Ratio tables front- or back-load calories for specific
// goals; any combination outside the curated tables gets an even split.
package allocation

import (
	"math"

	"WellnessPlanner_HealthProject/internal/models"
)

const (
	MinMealsPerDay = 2
	MaxMealsPerDay = 6
	MinDaysPerWeek = 1
	MaxDaysPerWeek = 7
)

// Curated goal- and count-specific meal ratios. Fat loss front-loads the day,
// muscle gain weights the midday meal. Anything not listed splits evenly.
var mealRatios = map[string]map[int][]float64{
	models.GoalFatLoss: {
		3: {0.35, 0.35, 0.30},
		4: {0.30, 0.30, 0.25, 0.15},
	},
	models.GoalMuscleGain: {
		3: {0.33, 0.37, 0.30},
		4: {0.25, 0.30, 0.25, 0.20},
	},
}

var mealLabels = map[int][]string{
	2: {"Breakfast", "Dinner"},
	3: {"Breakfast", "Lunch", "Dinner"},
	4: {"Breakfast", "Lunch", "Snack", "Dinner"},
	5: {"Breakfast", "Morning Snack", "Lunch", "Afternoon Snack", "Dinner"},
	6: {"Breakfast", "Morning Snack", "Lunch", "Afternoon Snack", "Dinner", "Evening Snack"},
}

var mealTimings = map[int][]string{
	2: {"9:00 AM", "6:00 PM"},
	3: {"8:00 AM", "1:00 PM", "7:00 PM"},
	4: {"8:00 AM", "12:00 PM", "3:30 PM", "7:00 PM"},
	5: {"7:30 AM", "10:30 AM", "1:00 PM", "4:00 PM", "7:00 PM"},
	6: {"7:30 AM", "10:00 AM", "12:30 PM", "3:30 PM", "6:30 PM", "9:00 PM"},
}

// Fixed weekly splits by training days. Unlisted counts repeat "Full Body".
var weeklySplits = map[int][]string{
	1: {"Full Body"},
	2: {"Upper Body", "Lower Body"},
	3: {"Push", "Pull", "Legs"},
	4: {"Upper Body", "Lower Body", "Upper Body", "Lower Body"},
	5: {"Push", "Pull", "Legs", "Upper Body", "Lower Body"},
	6: {"Push", "Pull", "Legs", "Push", "Pull", "Legs"},
	7: {"Push", "Pull", "Legs", "Upper Body", "Lower Body", "Full Body", "Active Recovery"},
}

// Meals allocates daily targets across count meal slots. Counts are clamped
// into [MinMealsPerDay, MaxMealsPerDay]. Each slot carries
// round(total*ratio); the aggregate is never assumed to survive rounding, so
// downstream totals are recomputed from slot values.
func Meals(targets models.NutritionTargets, count int, goal string) []models.MealSlot {
	if count < MinMealsPerDay {
		count = MinMealsPerDay
	}
	if count > MaxMealsPerDay {
		count = MaxMealsPerDay
	}

	ratios := ratiosFor(goal, count)
	labels := mealLabels[count]
	timings := mealTimings[count]

	slots := make([]models.MealSlot, count)
	for i := 0; i < count; i++ {
		r := ratios[i]
		slots[i] = models.MealSlot{
			Type:     labels[i],
			Timing:   timings[i],
			Ratio:    r,
			Calories: int(math.Round(float64(targets.Calories) * r)),
			ProteinG: int(math.Round(float64(targets.ProteinG) * r)),
			CarbsG:   int(math.Round(float64(targets.CarbsG) * r)),
			FatG:     int(math.Round(float64(targets.FatG) * r)),
		}
	}
	return slots
}

func ratiosFor(goal string, count int) []float64 {
	if byCount, ok := mealRatios[goal]; ok {
		if ratios, ok := byCount[count]; ok {
			return ratios
		}
	}
	even := make([]float64, count)
	for i := range even {
		even[i] = 1.0 / float64(count)
	}
	return even
}

// Sessions returns the named weekly split for the requested training days.
// Counts are clamped into [MinDaysPerWeek, MaxDaysPerWeek]; a count missing
// from the table falls back to repeated full-body days.
func Sessions(daysPerWeek int) []models.SessionSlot {
	if daysPerWeek < MinDaysPerWeek {
		daysPerWeek = MinDaysPerWeek
	}
	if daysPerWeek > MaxDaysPerWeek {
		daysPerWeek = MaxDaysPerWeek
	}

	focuses, ok := weeklySplits[daysPerWeek]
	if !ok {
		focuses = make([]string, daysPerWeek)
		for i := range focuses {
			focuses[i] = "Full Body"
		}
	}

	slots := make([]models.SessionSlot, daysPerWeek)
	for i, focus := range focuses {
		slots[i] = models.SessionSlot{Day: i + 1, Focus: focus}
	}
	return slots
}
