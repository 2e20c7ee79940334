package models

import (
	"time"

	"gorm.io/datatypes"
)

// Round is the audit record of one finished bingo round. It is written after
// the fact and never read back into live session state.
type Round struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PlayerCount int            `json:"player_count"`
	NumbersJSON datatypes.JSON `json:"numbers"` // drawn numbers, call order
	WinnersJSON datatypes.JSON `json:"winners"` // nicknames, win order
	StartedAt   time.Time      `json:"started_at"`
	EndedAt     time.Time      `json:"ended_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
