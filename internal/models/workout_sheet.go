package models

import "time"

type WorkoutSheet struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"index" json:"coach_id"`

	StudentID uint `json:"student_id"`

	Title string `gorm:"size:100;not null" json:"title"`
	Notes string `gorm:"size:255" json:"notes"`

	Exercises []SheetExercise `gorm:"constraint:OnDelete:CASCADE;" json:"exercises"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SheetExercise struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	WorkoutSheetID uint `gorm:"index" json:"workout_sheet_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `gorm:"size:20" json:"reps"`
	Load        string `gorm:"size:20" json:"load"`
	RestSeconds int    `json:"rest_seconds"`
	Position    int    `json:"position"`

	// optional demo video reference
	WorkoutVideoID *uint `json:"workout_video_id"`
}
