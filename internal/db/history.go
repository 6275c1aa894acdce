package db

import (
	"time"

	"gorm.io/datatypes"
)

// History is the terminal snapshot of a finished game, written once per
// terminal transition. Record is the versioned replay payload: cards with
// true types, narration log, reasoning log, and final score.
type History struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    string         `gorm:"size:16;uniqueIndex;not null"`
	Winner    string         `gorm:"size:8;not null;default:''"`
	Version   int            `gorm:"not null;default:1"`
	Record    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}
