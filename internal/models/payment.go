package models

import "time"

type Payment struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"index" json:"coach_id"`

	StudentID uint     `json:"student_id"`
	Student   *Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"student,omitempty"`

	Amount      float64 `json:"amount"`
	Description string  `gorm:"size:255" json:"description"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// gateway references
	PreferenceID string `gorm:"size:100" json:"preference_id"`
	ExternalID   string `gorm:"size:100;index" json:"external_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
