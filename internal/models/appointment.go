package models

import "time"

type Appointment struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"index" json:"coach_id"`

	StudentID uint     `json:"student_id"`
	Student   *Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"student,omitempty"`

	AvailabilityBlockID *uint              `gorm:"uniqueIndex:idx_block_date" json:"availability_block_id"`
	AvailabilityBlock   *AvailabilityBlock `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"availability_block,omitempty"`

	// Snapshot of the booked slot; block edits must not rewrite it
	Date      string `gorm:"size:10;index;uniqueIndex:idx_block_date" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`
	Kind   string `gorm:"size:20;default:'in_person'" json:"kind"`

	Notes string `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
