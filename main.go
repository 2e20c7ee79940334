package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bingolive/backend/config"
	"github.com/bingolive/backend/game"
	"github.com/bingolive/backend/routes"
	"github.com/bingolive/backend/services"
	"github.com/bingolive/backend/utils/logger"
)

func main() {
	cfg := config.Load()

	// Optional Postgres connection for round history
	db := config.SetupDatabase(cfg)

	// One hub, one session: the hub is the event gateway, the session is the
	// single authority over game state.
	hub := services.NewHub()
	session := game.NewSession(hub, cfg.DrawInterval)

	var rec *services.RoundRecorder
	if db != nil {
		rec = services.NewRoundRecorder(db)
		session.SetRoundHook(rec.RoundEnded)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, session, rec)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	r.GET("/ws", services.HandleWebSocket(hub, session))

	logger.Infof("bingo live server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("failed to start server: %v", err)
	}
}
