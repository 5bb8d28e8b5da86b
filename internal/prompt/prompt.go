// Renders the deterministic natural-language specification sent to the
// completion service. The JSON contracts embedded here are the schema the
// normalizer decodes; the two must change together.
package prompt

import (
	"fmt"
	"strings"

	"WellnessPlanner_HealthProject/internal/models"
)

// SystemInstruction is sent with every completion request. The recovery
// parser still assumes the model may ignore it.
const SystemInstruction = "You are a certified nutrition and fitness coach. " +
	"Return raw JSON only. No prose, no markdown, no code fences."

// Diet renders the full diet-plan prompt for one user.
func Diet(p models.Profile, targets models.NutritionTargets, meals []models.MealSlot) string {
	var sb strings.Builder

	sb.WriteString("Create a 7-day diet plan for the following person.\n\n")
	writeProfile(&sb, p)

	sb.WriteString("DAILY TARGETS:\n")
	fmt.Fprintf(&sb, "- Calories: %d kcal\n", targets.Calories)
	fmt.Fprintf(&sb, "- Protein: %dg, Carbs: %dg, Fat: %dg\n\n", targets.ProteinG, targets.CarbsG, targets.FatG)

	fmt.Fprintf(&sb, "MEALS PER DAY: %d. Per-meal targets:\n", len(meals))
	for _, m := range meals {
		fmt.Fprintf(&sb, "- %s (%s): %d kcal, %dg protein, %dg carbs, %dg fat\n",
			m.Type, m.Timing, m.Calories, m.ProteinG, m.CarbsG, m.FatG)
	}
	sb.WriteString("\n")

	writeConstraints(&sb, p)

	sb.WriteString("OUTPUT FORMAT:\n")
	sb.WriteString("Return a JSON array of 7 day objects. Each day object has:\n")
	sb.WriteString("- \"day\": day number (1-7)\n")
	sb.WriteString("- \"meals\": array of meal objects with \"type\", \"time\" and \"foods\"\n")
	sb.WriteString("Each entry in \"foods\" is one string in exactly this format:\n")
	sb.WriteString("\"name, quantity, Ncal, Ng protein, Ng carbs, Ng fats\"\n\n")

	sb.WriteString("EXAMPLE OF THE EXACT STRUCTURE (values are illustrative):\n")
	sb.WriteString(`[
  {
    "day": 1,
    "meals": [
      {
        "type": "Breakfast",
        "time": "8:00 AM",
        "foods": [
          "Oatmeal, 80g dry, 300 cal, 11g protein, 54g carbs, 5g fats",
          "Greek Yogurt, 170g, 100 cal, 17g protein, 6g carbs, 1g fats"
        ]
      },
      {
        "type": "Lunch",
        "time": "1:00 PM",
        "foods": [
          "Chicken Breast, 150g cooked, 248 cal, 46g protein, 0g carbs, 5g fats",
          "Brown Rice, 185g cooked, 216 cal, 5g protein, 45g carbs, 2g fats"
        ]
      }
    ]
  }
]
`)
	sb.WriteString("\nReturn the full 7-day plan as raw JSON in that structure. No other text.\n")
	return sb.String()
}

// Workout renders the full workout-plan prompt for one user.
func Workout(p models.Profile, sessions []models.SessionSlot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Create a %d-day weekly workout plan for the following person.\n\n", len(sessions))
	writeProfile(&sb, p)

	sb.WriteString("WEEKLY SPLIT (use these focus labels in order):\n")
	for _, s := range sessions {
		fmt.Fprintf(&sb, "- Day %d: %s\n", s.Day, s.Focus)
	}
	sb.WriteString("\n")

	writeConstraints(&sb, p)

	sb.WriteString("OUTPUT FORMAT:\n")
	sb.WriteString("Return a JSON object with a \"days\" array. Each day object has:\n")
	sb.WriteString("- \"day\": day number, \"focus\": the split label for that day\n")
	sb.WriteString("- \"warmup\" and \"cooldown\": arrays of short instruction strings\n")
	sb.WriteString("- \"exercises\": array of objects with \"name\", \"sets\" (number),\n")
	sb.WriteString("  \"reps\", \"rest\", \"notes\" and \"progression\" {\"easier\", \"harder\"}\n\n")

	sb.WriteString("EXAMPLE OF THE EXACT STRUCTURE (values are illustrative):\n")
	sb.WriteString(`{
  "days": [
    {
      "day": 1,
      "focus": "Push",
      "warmup": ["5 min incline walk", "Arm circles x 20"],
      "cooldown": ["Chest stretch 30s per side"],
      "exercises": [
        {
          "name": "Barbell Bench Press",
          "sets": 4,
          "reps": "8-10",
          "rest": "90s",
          "notes": "Keep shoulder blades retracted",
          "progression": {
            "easier": "Dumbbell press on flat bench",
            "harder": "Pause each rep on the chest"
          }
        }
      ]
    }
  ]
}
`)
	sb.WriteString("\nReturn the full plan as raw JSON in that structure. No other text.\n")
	return sb.String()
}

func writeProfile(sb *strings.Builder, p models.Profile) {
	sb.WriteString("PROFILE:\n")
	fmt.Fprintf(sb, "- Age: %d, Sex: %s\n", p.Age, p.Sex)
	fmt.Fprintf(sb, "- Height: %.1f %s, Weight: %.1f %s\n", p.Height, p.HeightUnit, p.Weight, p.WeightUnit)
	fmt.Fprintf(sb, "- Activity level: %s\n", p.ActivityLevel)
	fmt.Fprintf(sb, "- Goal: %s\n\n", p.Goal)
}

// Constraint lists are always rendered, as "none reported" when empty, so the
// model never fills the gap with assumptions.
func writeConstraints(sb *strings.Builder, p models.Profile) {
	fmt.Fprintf(sb, "HEALTH CONDITIONS: %s\n", orNone(p.HealthConditions))
	fmt.Fprintf(sb, "RESTRICTIONS: %s\n", orNone(p.Restrictions))
	fmt.Fprintf(sb, "ALLERGIES: %s\n\n", orNone(p.Allergies))
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none reported"
	}
	return strings.Join(items, ", ")
}
