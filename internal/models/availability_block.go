package models

import "time"

type AvailabilityBlock struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"index" json:"coach_id"`

	DayOfWeek int `json:"day_of_week"`

	StartTime       string `gorm:"size:5" json:"start_time"`
	EndTime         string `gorm:"size:5" json:"end_time"`
	DurationMinutes int    `gorm:"default:60" json:"duration_minutes"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
