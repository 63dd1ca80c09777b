package appointment

import (
	"context"

	domain "github.com/fitcoachbr/coach-api/internal/domain/appointment"
	"github.com/fitcoachbr/coach-api/internal/dto"
)

type ListAppointmentsInRange struct {
	repo domain.Repository
}

func NewListAppointmentsInRange(
	repo domain.Repository,
) *ListAppointmentsInRange {
	return &ListAppointmentsInRange{
		repo: repo,
	}
}

// Execute returns every appointment whose date falls in the inclusive
// range, ordered by date then start time. Either bound may be empty.
func (uc *ListAppointmentsInRange) Execute(
	ctx context.Context,
	coachID uint,
	dateFrom string,
	dateTo string,
) ([]dto.AppointmentDTO, error) {

	appointments, err := uc.repo.ListInRange(ctx, coachID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments), nil
}
