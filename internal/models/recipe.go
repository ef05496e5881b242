package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Recipe is a user-authored recipe. Only its owner may change it.
type Recipe struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Username    string `gorm:"size:50;not null;index" json:"username"`
	Name        string `gorm:"size:255;not null" json:"name"`
	PrepTime    string `gorm:"size:5;not null;default:'00:00'" json:"prep_time"`
	ServingSize int    `json:"serving_size"`
	Steps       string `gorm:"type:text" json:"steps"`
	Ingredients string `gorm:"type:text" json:"ingredients"`
	// AverageRating is not persisted; computed at query time
	AverageRating float64 `gorm:"->;-:migration" json:"average_rating"`
	// RatingCount is not persisted; computed at query time
	RatingCount int       `gorm:"->;-:migration" json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FormatPrepTime normalizes an "H:M" duration to zero-padded "HH:MM".
// Anything unparseable becomes "00:00".
func FormatPrepTime(raw string) string {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 {
		return "00:00"
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return "00:00"
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
