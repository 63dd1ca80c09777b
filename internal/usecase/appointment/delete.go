package appointment

import (
	"context"

	"github.com/fitcoachbr/coach-api/internal/audit"
	domain "github.com/fitcoachbr/coach-api/internal/domain/appointment"
	"github.com/fitcoachbr/coach-api/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	coachID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetForCoach(ctx, appointmentID, coachID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.repo.Delete(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  coachID,
		UserID:   &coachID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
