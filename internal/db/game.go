package db

import "time"

type Game struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    string    `gorm:"size:16;uniqueIndex;not null"`
	Phase     string    `gorm:"size:32;not null"`
	BoardSize int       `gorm:"not null;default:25"`
	Model     string    `gorm:"size:64;not null;default:''"`
	Winner    string    `gorm:"size:8;not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Events    []Event
}
