package models

import "time"

type WorkoutVideo struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"index" json:"coach_id"`

	// nil = library video visible to all of the coach's students
	StudentID *uint `json:"student_id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`

	ObjectKey    string `gorm:"size:255" json:"object_key"`
	ThumbnailKey string `gorm:"size:255" json:"thumbnail_key"`
	DurationMin  int    `json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
