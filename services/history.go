package services

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bingolive/backend/game"
	"github.com/bingolive/backend/models"
	"github.com/bingolive/backend/utils/logger"
)

// RoundRecorder writes finished rounds to the database. It runs off the
// session's round hook, always on its own goroutine, so a slow database
// never touches the event path.
type RoundRecorder struct {
	db *gorm.DB
}

func NewRoundRecorder(db *gorm.DB) *RoundRecorder {
	return &RoundRecorder{db: db}
}

// RoundEnded persists one round summary.
func (r *RoundRecorder) RoundEnded(sum game.RoundSummary) {
	numbers, _ := json.Marshal(sum.Numbers)
	winners, _ := json.Marshal(sum.Winners)

	round := models.Round{
		PlayerCount: sum.PlayerCount,
		NumbersJSON: datatypes.JSON(numbers),
		WinnersJSON: datatypes.JSON(winners),
		StartedAt:   sum.StartedAt,
		EndedAt:     sum.EndedAt,
	}
	if err := r.db.Create(&round).Error; err != nil {
		logger.Errorf("failed to save round: %v", err)
		return
	}
	logger.Infof("round %d saved: %d numbers, %d winners", round.ID, len(sum.Numbers), len(sum.Winners))
}

// Recent returns the latest rounds, newest first.
func (r *RoundRecorder) Recent(limit int) ([]models.Round, error) {
	var rounds []models.Round
	err := r.db.Order("id DESC").Limit(limit).Find(&rounds).Error
	return rounds, err
}
