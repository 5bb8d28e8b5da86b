package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"WellnessPlanner_HealthProject/internal/models"
	"WellnessPlanner_HealthProject/internal/storage"
)

// currentUserID resolves the authenticated user set by the auth middleware to
// a database id. False means the response has already been written.
func currentUserID(c *gin.Context) (int, bool) {
	username, exists := c.Get("username")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}
	id, err := storage.GetUserIDByUsername(username.(string))
	if err != nil {
		log.Printf("currentUserID(): Failed to resolve user %v: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return 0, false
	}
	return id, true
}

// UpdateProfile accepts the raw questionnaire document. Field aliases and
// synonyms are resolved by the model layer, so older questionnaire versions
// keep working without handler changes.
func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profile := models.FromQuestionnaire(raw)
	if err := storage.SaveProfile(userID, profile); err != nil {
		log.Printf("UpdateProfile(): Failed to save profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile saved", "profile": profile})
}

func GetProfile(c *gin.Context) {
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
		log.Printf("GetProfile(): Failed to load profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
