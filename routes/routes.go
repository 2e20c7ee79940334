package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bingolive/backend/controllers"
	"github.com/bingolive/backend/game"
	"github.com/bingolive/backend/services"
)

func SetupRoutes(r *gin.Engine, session *game.Session, rec *services.RoundRecorder) {
	api := r.Group("/api")

	api.GET("/status", controllers.GameStatus(session))   // session snapshot
	api.GET("/players", controllers.ListPlayers(session)) // current roster
	api.GET("/rounds", controllers.ListRounds(rec))       // round history
}
