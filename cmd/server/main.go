package main

import (
	"os"

	"rereddit/internal/db"
	"rereddit/internal/middleware"
	"rereddit/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Structured logging; the sugared logger is registered globally so the
	// rest of the app can use zap.S().
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		zap.S().Info("No .env file found, reading env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("rereddit_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	zap.S().Infof("reReddit server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		zap.S().Fatal(err)
	}
}
