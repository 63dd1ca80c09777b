package dto

import (
	"time"

	"github.com/fitcoachbr/coach-api/internal/models"
)

// API shapes are camelCase; storage rows stay snake_case.

type StudentRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TimeBlock is a display object assembled from the appointment's own
// date/time snapshot, not from the referenced availability block row.
type TimeBlock struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type AppointmentDTO struct {
	ID                  uint       `json:"id"`
	StudentID           uint       `json:"studentId"`
	AvailabilityBlockID *uint      `json:"availabilityBlockId"`
	Date                string     `json:"date"`
	StartTime           string     `json:"startTime"`
	EndTime             string     `json:"endTime"`
	Status              string     `json:"status"`
	Kind                string     `json:"kind"`
	Notes               string     `json:"notes"`
	Student             StudentRef `json:"student"`
	TimeBlock           TimeBlock  `json:"timeBlock"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	student := StudentRef{
		ID:    ap.StudentID,
		Name:  "N/A",
		Email: "N/A",
	}

	if ap.Student != nil && ap.Student.ID != 0 {
		student.Name = ap.Student.Name
		if ap.Student.Email != "" {
			student.Email = ap.Student.Email
		}
	}

	return AppointmentDTO{
		ID:                  ap.ID,
		StudentID:           ap.StudentID,
		AvailabilityBlockID: ap.AvailabilityBlockID,
		Date:                ap.Date,
		StartTime:           ap.StartTime,
		EndTime:             ap.EndTime,
		Status:              ap.Status,
		Kind:                ap.Kind,
		Notes:               ap.Notes,
		Student:             student,
		TimeBlock: TimeBlock{
			Date:      ap.Date,
			StartTime: ap.StartTime,
			EndTime:   ap.EndTime,
		},
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}
