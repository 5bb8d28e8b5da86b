package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"WellnessPlanner_HealthProject/internal/llm"
	"WellnessPlanner_HealthProject/internal/models"
	"WellnessPlanner_HealthProject/internal/normalize"
	"WellnessPlanner_HealthProject/internal/pipeline"
	"WellnessPlanner_HealthProject/internal/planparse"
	"WellnessPlanner_HealthProject/internal/storage"
)

var (
	generator *pipeline.Generator
	planStore storage.PlanStore
)

// SetGenerator injects the plan generator at startup.
func SetGenerator(g *pipeline.Generator) {
	generator = g
}

func planDomain(c *gin.Context) (string, bool) {
	domain := c.Param("domain")
	if domain != models.DomainDiet && domain != models.DomainWorkout {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan domain"})
		return "", false
	}
	return domain, true
}

// GeneratePlan godoc
// @Summary      Generate a plan
// @Description  Runs the full generation pipeline for the authenticated user's saved profile.
// @Tags         Plans
// @Param        domain path string true "Plan domain (diet or workout)"
// @Success      200 {object} models.PlanRecord
// @Failure      409 {object} handler.ErrorResponse "A generation for this domain is already running"
// @Failure      422 {object} handler.ErrorResponse "Profile is missing required inputs"
// @Failure      502 {object} handler.ErrorResponse "The completion backend failed or returned an unusable plan"
// @Router       /api/plans/{domain}/generate [post]
func GeneratePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	domain, ok := planDomain(c)
	if !ok {
		return
	}

	profile, err := storage.GetProfile(userID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Save a profile before generating a plan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	record, err := generator.Generate(c.Request.Context(), userID, domain, profile, nil)
	if err != nil {
		writeGenerationError(c, userID, domain, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// writeGenerationError maps pipeline failures onto HTTP statuses. Model-side
// failures are 502 with a retryable hint; everything else keeps its usual
// code.
func writeGenerationError(c *gin.Context, userID int, domain string, err error) {
	var reqErr *llm.RequestError
	var recErr *planparse.RecoveryError
	var normErr *normalize.Error

	switch {
	case errors.Is(err, pipeline.ErrInputIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Profile is missing inputs required for this plan"})
	case errors.Is(err, pipeline.ErrGenerationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A generation for this plan is already running"})
	case errors.Is(err, llm.ErrEmptyCompletion):
		c.JSON(http.StatusBadGateway, gin.H{"error": "The plan service returned nothing, try again", "retryable": true})
	case errors.As(err, &reqErr):
		log.Printf("GeneratePlan(): completion request failed for user %d/%s: %v", userID, domain, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "The plan service is unavailable, try again", "retryable": true})
	case errors.As(err, &recErr):
		log.Printf("GeneratePlan(): unrecoverable completion for user %d/%s: %s", userID, domain, recErr.Reason)
		c.JSON(http.StatusBadGateway, gin.H{"error": "The generated plan could not be read, try again", "retryable": true})
	case errors.As(err, &normErr):
		log.Printf("GeneratePlan(): normalization failed for user %d/%s: %v", userID, domain, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "The generated plan had an unexpected shape, try again", "retryable": true})
	default:
		log.Printf("GeneratePlan(): failed for user %d/%s: %v", userID, domain, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan generation failed"})
	}
}

func GetPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	domain, ok := planDomain(c)
	if !ok {
		return
	}

	record, err := planStore.GetActivePlan(userID, domain)
	if err != nil {
		if errors.Is(err, storage.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No plan generated yet"})
			return
		}
		log.Printf("GetPlan(): Failed to load plan for user %d/%s: %v", userID, domain, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func GetPlanHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	domain, ok := planDomain(c)
	if !ok {
		return
	}

	records, err := planStore.GetPlanHistory(userID, domain)
	if err != nil {
		log.Printf("GetPlanHistory(): Failed for user %d/%s: %v", userID, domain, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan history"})
		return
	}
	if records == nil {
		records = []models.PlanRecord{}
	}
	c.JSON(http.StatusOK, records)
}
