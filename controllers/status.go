package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bingolive/backend/game"
	"github.com/bingolive/backend/services"
)

// GameStatus returns the current session snapshot.
func GameStatus(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// ListPlayers returns the current roster.
func ListPlayers(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, session.Players())
	}
}

// ListRounds returns recent round history. 503 when no database is wired.
func ListRounds(rec *services.RoundRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rec == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "round history disabled"})
			return
		}
		rounds, err := rec.Recent(50)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, rounds)
	}
}
