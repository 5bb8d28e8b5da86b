package prompt

import (
	"strings"
	"testing"

	"WellnessPlanner_HealthProject/internal/models"
)

var testProfile = models.Profile{
	Age: 30, Sex: "male",
	Height: 180, HeightUnit: "cm",
	Weight: 80, WeightUnit: "kg",
	ActivityLevel: models.ActivityModerate,
	Goal:          models.GoalFatLoss,
}

var testTargets = models.NutritionTargets{Calories: 2200, ProteinG: 220, CarbsG: 193, FatG: 61}

var testMeals = []models.MealSlot{
	{Type: "Breakfast", Timing: "8:00 AM", Ratio: 0.35, Calories: 770, ProteinG: 77, CarbsG: 68, FatG: 21},
	{Type: "Lunch", Timing: "1:00 PM", Ratio: 0.35, Calories: 770, ProteinG: 77, CarbsG: 68, FatG: 21},
	{Type: "Dinner", Timing: "7:00 PM", Ratio: 0.30, Calories: 660, ProteinG: 66, CarbsG: 58, FatG: 18},
}

func TestDiet_ContainsTargetsAndSchema(t *testing.T) {
	got := Diet(testProfile, testTargets, testMeals)

	for _, want := range []string{
		"Calories: 2200 kcal",
		"Protein: 220g, Carbs: 193g, Fat: 61g",
		"Breakfast (8:00 AM): 770 kcal, 77g protein, 68g carbs, 21g fat",
		`"foods"`,
		`"Chicken Breast, 150g cooked, 248 cal, 46g protein, 0g carbs, 5g fats"`,
		"name, quantity, Ncal, Ng protein, Ng carbs, Ng fats",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("diet prompt missing %q", want)
		}
	}
}

func TestDiet_EmptyConstraintsRenderedAsNoneReported(t *testing.T) {
	got := Diet(testProfile, testTargets, testMeals)
	for _, want := range []string{
		"HEALTH CONDITIONS: none reported",
		"RESTRICTIONS: none reported",
		"ALLERGIES: none reported",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("diet prompt missing %q", want)
		}
	}
}

func TestDiet_ConstraintsListed(t *testing.T) {
	p := testProfile
	p.Allergies = []string{"peanuts", "shellfish"}
	p.HealthConditions = []string{"type 2 diabetes"}

	got := Diet(p, testTargets, testMeals)
	if !strings.Contains(got, "ALLERGIES: peanuts, shellfish") {
		t.Errorf("diet prompt missing allergy list")
	}
	if !strings.Contains(got, "HEALTH CONDITIONS: type 2 diabetes") {
		t.Errorf("diet prompt missing health conditions")
	}
}

func TestDiet_Deterministic(t *testing.T) {
	if Diet(testProfile, testTargets, testMeals) != Diet(testProfile, testTargets, testMeals) {
		t.Error("diet prompt is not deterministic for identical input")
	}
}

func TestWorkout_ContainsSplitAndSchema(t *testing.T) {
	sessions := []models.SessionSlot{
		{Day: 1, Focus: "Push"}, {Day: 2, Focus: "Pull"}, {Day: 3, Focus: "Legs"},
	}
	got := Workout(testProfile, sessions)

	for _, want := range []string{
		"3-day weekly workout plan",
		"- Day 1: Push",
		"- Day 3: Legs",
		`"exercises"`,
		`"progression"`,
		`"easier"`,
		"RESTRICTIONS: none reported",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("workout prompt missing %q", want)
		}
	}
}
