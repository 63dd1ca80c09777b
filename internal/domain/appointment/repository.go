package appointment

import (
	"context"

	"github.com/fitcoachbr/coach-api/internal/models"
)

type Repository interface {
	// -------- Student --------
	GetStudent(
		ctx context.Context,
		coachID uint,
		studentID uint,
	) (*models.Student, error)

	// -------- Availability blocks --------
	GetBlock(
		ctx context.Context,
		coachID uint,
		blockID uint,
	) (*models.AvailabilityBlock, error)

	// -------- Appointment (create / conflict) --------

	// CreateInSlot inserts the appointment, failing with the
	// slot_taken business error when another appointment already
	// occupies the same (availability_block_id, date) pair. The
	// check and the insert run in one transaction with the
	// conflicting rows locked.
	CreateInSlot(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------
	GetForCoach(
		ctx context.Context,
		appointmentID uint,
		coachID uint,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Delete(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------

	// ListInRange returns the coach's appointments inside the
	// inclusive date range (either bound may be empty), ordered by
	// date ascending, ties broken by start time ascending.
	ListInRange(
		ctx context.Context,
		coachID uint,
		dateFrom string,
		dateTo string,
	) ([]models.Appointment, error)

	ListOnDate(
		ctx context.Context,
		coachID uint,
		date string,
	) ([]models.Appointment, error)
}
