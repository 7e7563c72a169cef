package models

import (
	"time"

	"github.com/google/uuid"
)

// Tile представляет информационную плитку на главной странице
type Tile struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
