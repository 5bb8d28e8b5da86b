package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron"

	"WellnessPlanner_HealthProject/internal/config"
	"WellnessPlanner_HealthProject/internal/handler"
	"WellnessPlanner_HealthProject/internal/llm"
	"WellnessPlanner_HealthProject/internal/metrics"
	"WellnessPlanner_HealthProject/internal/middleware"
	"WellnessPlanner_HealthProject/internal/pipeline"
	"WellnessPlanner_HealthProject/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("main(): Failed to load config: ", err)
	}

	storage.InitDB(cfg.DatabasePath)

	client := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	store := storage.PlanStore{}
	calc := metrics.Default()
	handler.SetCalculator(calc)
	handler.SetGenerator(pipeline.NewGenerator(calc, client, store))

	// Superseded plans are kept for 90 days, then pruned daily.
	sweeper := cron.New()
	if err := sweeper.AddFunc("@daily", func() {
		if err := store.PrunePlanHistory(time.Now().AddDate(0, 0, -90)); err != nil {
			log.Printf("main(): plan history prune failed: %v", err)
		}
	}); err != nil {
		log.Fatal("main(): Failed to schedule history prune: ", err)
	}
	sweeper.Start()

	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.POST("/signup", handler.Signup)
	router.POST("/login", handler.Login)

	protected := router.Group("/api").Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", handler.GetProfile)
		protected.PUT("/profile", handler.UpdateProfile)
		protected.GET("/metrics", handler.GetMetrics)
		protected.GET("/plans/:domain", handler.GetPlan)
		protected.GET("/plans/:domain/history", handler.GetPlanHistory)
	}

	generate := router.Group("/api").Use(middleware.AuthMiddleware(), middleware.GenerateRateLimiter())
	{
		generate.POST("/plans/:domain/generate", handler.GeneratePlan)
	}

	router.GET("/ws/generate", handler.HandleGenerateConnection)
	log.Fatal(router.Run(":" + cfg.Port))
}
