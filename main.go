package main

import (
	"log"
	"time"

	"github.com/LevaniIlashvili/Bankist/config"
	"github.com/LevaniIlashvili/Bankist/handlers"
	"github.com/LevaniIlashvili/Bankist/middleware"
	"github.com/LevaniIlashvili/Bankist/routes"
	"github.com/LevaniIlashvili/Bankist/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	store := services.NewAccountStore(services.DemoAccounts())
	log.Printf("✅ Seeded %d demo accounts", store.Len())

	wsHandler := handlers.NewWSHandler()

	sessions := services.NewSessionManager(store, wsHandler, cfg.SessionTTLSeconds, cfg.TickInterval)
	ledger := services.NewLedgerService(store)
	loans := services.NewLoanScheduler(store, wsHandler, cfg.LoanApprovalDelay)

	// A session that ends for any reason drops its pending loan approvals.
	sessions.SetOnSessionEnd(loans.CancelFor)

	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		log.Printf("📨 %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
		duration := time.Since(start)
		log.Printf("✅ %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.RateLimiter())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, store, ledger, sessions)
		v1.GET("/ws/session", wsHandler.HandleWS)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.SetupAccountRoutes(protected, store, ledger, loans, sessions)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
