package appointment

import (
	"context"

	"github.com/fitcoachbr/coach-api/internal/audit"
	domain "github.com/fitcoachbr/coach-api/internal/domain/appointment"
	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CoachID   uint
	StudentID uint

	AvailabilityBlockID *uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:mm
	EndTime   string // HH:mm

	Kind  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	student, err := uc.repo.GetStudent(ctx, in.CoachID, in.StudentID)
	if err != nil {
		return nil, httperr.ErrBusiness("student_not_found")
	}

	// the block reference is optional; when present it must belong
	// to the coach, and the (block, date) slot must be free
	if in.AvailabilityBlockID != nil {
		if _, err := uc.repo.GetBlock(ctx, in.CoachID, *in.AvailabilityBlockID); err != nil {
			return nil, httperr.ErrBusiness("block_not_found")
		}
	}

	kind := in.Kind
	if kind == "" {
		kind = "in_person"
	}

	ap := &models.Appointment{
		CoachID:             in.CoachID,
		StudentID:           student.ID,
		AvailabilityBlockID: in.AvailabilityBlockID,
		Date:                in.Date,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		Status:              string(domain.InitialStatus()),
		Kind:                kind,
		Notes:               in.Notes,
	}

	if err := uc.repo.CreateInSlot(ctx, ap); err != nil {
		return nil, err
	}

	ap.Student = student

	uc.audit.Dispatch(audit.Event{
		CoachID:  in.CoachID,
		UserID:   &in.CoachID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
