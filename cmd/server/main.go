package main

import (
	"forskull/internal/config"
	"forskull/internal/db"
	"forskull/internal/middleware"
	"forskull/internal/router"
	"forskull/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, reading env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Initialize Database
	db.Init(cfg.DatabaseURL)

	// Mail and async counter services
	services.InitMailService(cfg)
	if _, err := services.GetCounterService().StartReconciler(cfg.ReconcileSpec); err != nil {
		logrus.WithError(err).Fatal("failed to start counter reconciler")
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("forskull_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r, cfg)

	logrus.Infof("ForSkull server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}
