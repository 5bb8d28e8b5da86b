package normalize

import "WellnessPlanner_HealthProject/internal/models"

// Workout normalizes a raw tree into a workout plan. Expects a top-level
// object with a "days" list; each day carries warmup/cooldown string lists
// and an exercise list. An exercise list serialized as an object keyed by
// index is tolerated and re-ordered (see orderedValues).
func Workout(raw interface{}) (*models.WorkoutPlan, error) {
	top, ok := raw.(map[string]interface{})
	if !ok {
		return nil, &Error{Domain: models.DomainWorkout, Detail: "top level is not an object", Raw: raw}
	}
	days, ok := top["days"].([]interface{})
	if !ok || len(days) == 0 {
		return nil, &Error{Domain: models.DomainWorkout, Detail: "no day list at top level", Raw: raw}
	}

	plan := &models.WorkoutPlan{Days: make([]models.WorkoutDay, 0, len(days))}
	for i, rawDay := range days {
		dayMap, ok := rawDay.(map[string]interface{})
		if !ok {
			return nil, &Error{Domain: models.DomainWorkout, Detail: "day entry is not an object", Raw: rawDay}
		}
		day := models.WorkoutDay{
			Day:      asInt(dayMap["day"]),
			Focus:    asString(dayMap["focus"]),
			Warmup:   asStringSlice(dayMap["warmup"]),
			Cooldown: asStringSlice(dayMap["cooldown"]),
		}
		if day.Day == 0 {
			day.Day = i + 1
		}

		if rawExercises, ok := orderedValues(dayMap["exercises"]); ok {
			for _, rawEx := range rawExercises {
				exMap, ok := rawEx.(map[string]interface{})
				if !ok {
					continue
				}
				day.Exercises = append(day.Exercises, parseExercise(exMap))
			}
		}
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

func parseExercise(m map[string]interface{}) models.Exercise {
	ex := models.Exercise{
		Name:  asString(m["name"]),
		Sets:  asInt(m["sets"]),
		Reps:  asString(m["reps"]),
		Rest:  asString(m["rest"]),
		Notes: asString(m["notes"]),
	}
	if prog, ok := m["progression"].(map[string]interface{}); ok {
		ex.Easier = asString(prog["easier"])
		ex.Harder = asString(prog["harder"])
	}
	return ex
}
