package models

import "time"

type WorkoutPDF struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"index" json:"coach_id"`

	StudentID *uint `json:"student_id"`

	Title     string `gorm:"size:100;not null" json:"title"`
	ObjectKey string `gorm:"size:255" json:"object_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
