package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"WellnessPlanner_HealthProject/internal/metrics"
	"WellnessPlanner_HealthProject/internal/storage"
)

var calc metrics.Calculator

// SetCalculator injects the metrics calculator at startup; the handlers and
// the generation pipeline share one table set.
func SetCalculator(c metrics.Calculator) {
	calc = c
}

// GetMetrics computes the full metric preview from the saved profile. Values
// that cannot be computed from the saved inputs come back as -1 so the client
// can prompt for the missing questionnaire fields.
func GetMetrics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := storage.GetProfile(userID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No profile saved yet"})
			return
		}
		log.Printf("GetMetrics(): Failed to load profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	bmi := calc.BMI(profile.Height, profile.Weight, profile.HeightUnit, profile.WeightUnit)
	bmr := calc.BMR(profile.Height, profile.Weight, profile.HeightUnit, profile.WeightUnit, profile.Sex, profile.Age)
	tdee := calc.TDEE(bmr, profile.ActivityLevel)
	calories := calc.CalorieTarget(tdee, profile.Goal)

	c.JSON(http.StatusOK, gin.H{
		"bmi":               bmi,
		"bmi_category":      metrics.BMICategory(bmi),
		"bmr":               bmr,
		"tdee":              tdee,
		"calorie_target":    calories,
		"macros":            calc.Macros(calories, profile.Goal),
		"water_intake_ml":   calc.WaterIntakeML(profile.Weight, profile.WeightUnit),
		"weight_projection": calc.WeightProjection(profile.Weight, profile.TargetWeight, profile.WeightUnit),
	})
}
