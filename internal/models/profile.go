package models

import "strings"

// Canonical goal keys. Prompt text and calculator tables key off these.
const (
	GoalFatLoss         = "fat_loss"
	GoalMuscleGain      = "muscle_gain"
	GoalMaintenance     = "maintenance"
	GoalEndurance       = "endurance"
	GoalGeneralWellness = "general_wellness"
)

// Canonical activity level keys.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Questionnaire profile with explicit units. Height/weight without a unit are
// rejected at the ingestion boundary, not guessed downstream.
type Profile struct {
	Age              int      `json:"age"`
	Sex              string   `json:"sex"` // "male" | "female"
	Height           float64  `json:"height"`
	HeightUnit       string   `json:"height_unit"` // "cm" | "in"
	Weight           float64  `json:"weight"`
	WeightUnit       string   `json:"weight_unit"` // "kg" | "lb"
	ActivityLevel    string   `json:"activity_level"`
	Goal             string   `json:"goal"`
	TargetWeight     float64  `json:"target_weight,omitempty"` // same unit as Weight, 0 = unset
	HealthConditions []string `json:"health_conditions"`
	Restrictions     []string `json:"restrictions"`
	Allergies        []string `json:"allergies"`
	MealsPerDay      int      `json:"meals_per_day"`
	DaysPerWeek      int      `json:"days_per_week"`
}

// Field aliases seen across questionnaire versions. All alias handling lives
// here; downstream code only ever sees the canonical Profile fields.
var (
	heightAliases   = []string{"height", "height_cm", "heightCm", "user_height"}
	weightAliases   = []string{"weight", "weight_kg", "weightKg", "user_weight"}
	sexAliases      = []string{"sex", "gender", "biological_sex"}
	goalAliases     = []string{"goal", "primary_goal", "fitness_goal", "fitnessGoal"}
	activityAliases = []string{"activity_level", "activityLevel", "activity", "exercise_level"}
	ageAliases      = []string{"age", "user_age"}

	goalSynonyms = map[string]string{
		"fat_loss":    GoalFatLoss,
		"lose_weight": GoalFatLoss,
		"weight_loss": GoalFatLoss,
		"cutting":     GoalFatLoss,
		"muscle_gain": GoalMuscleGain,
		"gain_muscle": GoalMuscleGain,
		"bulking":     GoalMuscleGain,
		"maintenance": GoalMaintenance,
		"maintain":    GoalMaintenance,
		"endurance":   GoalEndurance,
		"cardio":      GoalEndurance,
		"general":     GoalGeneralWellness,
		"wellness":    GoalGeneralWellness,
	}
)

// FromQuestionnaire maps a raw questionnaire document onto the canonical
// Profile. Unknown fields are ignored; list fields accept both []string and
// comma-separated strings.
func FromQuestionnaire(raw map[string]interface{}) Profile {
	p := Profile{
		Age:              pickInt(raw, ageAliases),
		Sex:              strings.ToLower(pickString(raw, sexAliases)),
		Height:           pickFloat(raw, heightAliases),
		HeightUnit:       strings.ToLower(pickString(raw, []string{"height_unit", "heightUnit"})),
		Weight:           pickFloat(raw, weightAliases),
		WeightUnit:       strings.ToLower(pickString(raw, []string{"weight_unit", "weightUnit"})),
		ActivityLevel:    canonicalKey(pickString(raw, activityAliases)),
		Goal:             canonicalGoal(pickString(raw, goalAliases)),
		TargetWeight:     pickFloat(raw, []string{"target_weight", "targetWeight", "goal_weight"}),
		HealthConditions: pickList(raw, []string{"health_conditions", "healthConditions", "conditions"}),
		Restrictions:     pickList(raw, []string{"restrictions", "dietary_restrictions", "movement_restrictions"}),
		Allergies:        pickList(raw, []string{"allergies", "food_allergies", "foodAllergies"}),
		MealsPerDay:      pickInt(raw, []string{"meals_per_day", "mealsPerDay"}),
		DaysPerWeek:      pickInt(raw, []string{"days_per_week", "daysPerWeek", "workout_days"}),
	}

	// The _cm/_kg alias variants carry their unit in the name.
	if p.HeightUnit == "" && hasAny(raw, "height_cm", "heightCm") {
		p.HeightUnit = "cm"
	}
	if p.WeightUnit == "" && hasAny(raw, "weight_kg", "weightKg") {
		p.WeightUnit = "kg"
	}
	return p
}

func canonicalGoal(s string) string {
	key := canonicalKey(s)
	if g, ok := goalSynonyms[key]; ok {
		return g
	}
	return key
}

func canonicalKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func hasAny(raw map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if _, ok := raw[k]; ok {
			return true
		}
	}
	return false
}

func pickString(raw map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func pickFloat(raw map[string]interface{}, keys []string) float64 {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}

func pickInt(raw map[string]interface{}, keys []string) int {
	return int(pickFloat(raw, keys))
}

func pickList(raw map[string]interface{}, keys []string) []string {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case []string:
			return v
		case []interface{}:
			var out []string
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			return out
		case string:
			if v == "" {
				continue
			}
			var out []string
			for _, part := range strings.Split(v, ",") {
				if s := strings.TrimSpace(part); s != "" {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}
