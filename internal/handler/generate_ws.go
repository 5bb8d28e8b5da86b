package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"WellnessPlanner_HealthProject/internal/auth"
	"WellnessPlanner_HealthProject/internal/models"
	"WellnessPlanner_HealthProject/internal/pipeline"
	"WellnessPlanner_HealthProject/internal/storage"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsMessage struct {
	Type   string             `json:"type"` // "stage" | "plan" | "error"
	Stage  string             `json:"stage,omitempty"`
	Error  string             `json:"error,omitempty"`
	Record *models.PlanRecord `json:"record,omitempty"`
}

// HandleGenerateConnection godoc
// @Summary      Plan generation over WebSocket
// @Description  Runs the generation pipeline and streams a stage event as each stage begins,
// @Description  then the finished plan record (or an error) as the final message.
// @Description  <br>
// @Description  **Note: this is not a standard HTTP API.**
// @Description  Clients must connect with the `ws://` or `wss://` scheme.
// @Description  Authentication is via the **query parameter ('token')**, not an HTTP header.
// @Tags         WebSocket (Plans)
// @Param        token  query  string  true  "JWT token issued at login"
// @Param        domain query  string  true  "Plan domain (diet or workout)"
// @Success      101    {string}  string  "101 Switching Protocols"
// @Failure      400    {object}  handler.ErrorResponse "Invalid domain"
// @Failure      401    {object}  handler.ErrorResponse "Missing or invalid token"
// @Router       /ws/generate [get]
func HandleGenerateConnection(c *gin.Context) {
	tokenString := c.Query("token")
	domain := c.Query("domain")

	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	username := claims.Username

	if domain != models.DomainDiet && domain != models.DomainWorkout {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan domain"})
		return
	}

	userID, err := storage.GetUserIDByUsername(username)
	if err != nil {
		log.Printf("HandleGenerateConnection(): Failed to get user info for websocket: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error: Failed to upgrade to WebSocket : User %s with %v", username, err)
		return
	}
	defer conn.Close()
	log.Printf("WebSocket connection established for user: %s, domain: %s", username, domain)

	profile, err := storage.GetProfile(userID)
	if err != nil {
		writeWS(conn, username, wsMessage{Type: "error", Error: "Save a profile before generating a plan"})
		return
	}

	record, err := generator.Generate(c.Request.Context(), userID, domain, profile, func(e pipeline.Event) {
		writeWS(conn, username, wsMessage{Type: "stage", Stage: e.Stage})
	})
	if err != nil {
		log.Printf("HandleGenerateConnection(): generation failed for user %s/%s: %v", username, domain, err)
		writeWS(conn, username, wsMessage{Type: "error", Error: "Plan generation failed, try again"})
		return
	}

	writeWS(conn, username, wsMessage{Type: "plan", Record: &record})
}

func writeWS(conn *websocket.Conn, username string, msg wsMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error sending message to user %s: %v", username, err)
	}
}
