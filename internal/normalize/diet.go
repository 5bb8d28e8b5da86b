package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"WellnessPlanner_HealthProject/internal/models"
)

// Food strings follow the prompt contract
// "name, quantity, Ncal, Ng protein, Ng carbs, Ng fats". Extraction captures
// the first number before each unit token; a missing number degrades to zero
// for that field only. This best-effort extraction is confined to this file
// so a structured-output mode can replace it without touching the pipeline.
var (
	calRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*cal`)
	proteinRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*g\s*protein`)
	carbsRe   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*g\s*carbs`)
	fatRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*g\s*fats?`)
)

// Diet normalizes a raw tree into a diet plan. Expects a top-level array of
// day objects; anything else is a terminal structural mismatch.
func Diet(raw interface{}) (*models.DietPlan, error) {
	days, ok := raw.([]interface{})
	if !ok {
		// Some completions wrap the array in {"days": [...]} despite the
		// contract; accept that one wrapper before giving up.
		if m, isMap := raw.(map[string]interface{}); isMap {
			days, ok = m["days"].([]interface{})
		}
		if !ok {
			return nil, &Error{Domain: models.DomainDiet, Detail: "no day list at top level", Raw: raw}
		}
	}
	if len(days) == 0 {
		return nil, &Error{Domain: models.DomainDiet, Detail: "day list is empty", Raw: raw}
	}

	plan := &models.DietPlan{Days: make([]models.DietDay, 0, len(days))}
	for i, rawDay := range days {
		dayMap, ok := rawDay.(map[string]interface{})
		if !ok {
			return nil, &Error{Domain: models.DomainDiet, Detail: "day entry is not an object", Raw: rawDay}
		}
		day := models.DietDay{Day: asInt(dayMap["day"])}
		if day.Day == 0 {
			day.Day = i + 1
		}

		rawMeals, _ := dayMap["meals"].([]interface{})
		for _, rawMeal := range rawMeals {
			mealMap, ok := rawMeal.(map[string]interface{})
			if !ok {
				continue
			}
			meal := models.Meal{
				Type: asString(mealMap["type"]),
				Time: asString(mealMap["time"]),
			}
			for _, rawFood := range asStringSlice(mealMap["foods"]) {
				meal.Items = append(meal.Items, parseFoodLine(rawFood))
			}
			meal.Totals = sumItems(meal.Items)
			day.Meals = append(day.Meals, meal)
		}

		day.Totals = sumMeals(day.Meals)
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

func parseFoodLine(line string) models.FoodItem {
	item := models.FoodItem{
		Calories: extractNumber(calRe, line),
		Protein:  extractNumber(proteinRe, line),
		Carbs:    extractNumber(carbsRe, line),
		Fat:      extractNumber(fatRe, line),
	}
	parts := strings.SplitN(line, ",", 3)
	item.Name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		item.Quantity = strings.TrimSpace(parts[1])
	}
	return item
}

func extractNumber(re *regexp.Regexp, s string) float64 {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return n
}

func sumItems(items []models.FoodItem) models.MacroTotals {
	var t models.MacroTotals
	for _, it := range items {
		t.Calories += it.Calories
		t.Protein += it.Protein
		t.Carbs += it.Carbs
		t.Fat += it.Fat
	}
	return t
}

func sumMeals(meals []models.Meal) models.MacroTotals {
	var t models.MacroTotals
	for _, m := range meals {
		t.Calories += m.Totals.Calories
		t.Protein += m.Totals.Protein
		t.Carbs += m.Totals.Carbs
		t.Fat += m.Totals.Fat
	}
	return t
}
