package appointment

import (
	"context"

	"github.com/fitcoachbr/coach-api/internal/audit"
	domain "github.com/fitcoachbr/coach-api/internal/domain/appointment"
	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/models"
)

type UpdateAppointmentInput struct {
	Status *string
	Notes  *string
}

// UpdateAppointment writes only the supplied fields. The status value
// must be a known one, but transition legality is intentionally not
// checked here; the confirm/cancel/complete actions enforce it.
type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	coachID uint,
	appointmentID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetForCoach(ctx, appointmentID, coachID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if in.Status != nil {
		if !domain.IsKnown(domain.Status(*in.Status)) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		ap.Status = *in.Status
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  coachID,
		UserID:   &coachID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
