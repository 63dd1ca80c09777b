package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/fitcoachbr/coach-api/internal/domain/appointment"
	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Student
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStudent(
	ctx context.Context,
	coachID uint,
	studentID uint,
) (*models.Student, error) {

	var student models.Student
	if err := r.db.WithContext(ctx).
		Where("id = ? AND coach_id = ?", studentID, coachID).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// --------------------------------------------------
// Availability block
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBlock(
	ctx context.Context,
	coachID uint,
	blockID uint,
) (*models.AvailabilityBlock, error) {

	var block models.AvailabilityBlock
	if err := r.db.WithContext(ctx).
		Where("id = ? AND coach_id = ?", blockID, coachID).
		First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateInSlot(
	ctx context.Context,
	ap *models.Appointment,
) error {

	// appointments without a block skip the slot check entirely
	if ap.AvailabilityBlockID == nil {
		return r.db.WithContext(ctx).Create(ap).Error
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var occupied []models.Appointment
		if err := slotConflictScope(tx, *ap.AvailabilityBlockID, ap.Date).
			Find(&occupied).Error; err != nil {
			return err
		}

		if len(occupied) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		if err := tx.Create(ap).Error; err != nil {
			// concurrent creates that slip past the row lock hit the
			// unique (availability_block_id, date) index instead
			if isUniqueViolation(err) {
				return httperr.ErrBusiness("slot_taken")
			}
			return err
		}

		return nil
	})
}

// slotConflictScope selects and row-locks the appointments occupying
// the (block, date) slot. Postgres rejects FOR UPDATE on aggregates,
// so the check reads rows instead of counting them.
func slotConflictScope(tx *gorm.DB, blockID uint, date string) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("availability_block_id = ? AND date = ?", blockID, date).
		Limit(1)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetForCoach(
	ctx context.Context,
	appointmentID uint,
	coachID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("id = ? AND coach_id = ?", appointmentID, coachID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListInRange(
	ctx context.Context,
	coachID uint,
	dateFrom string,
	dateTo string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Student").
		Where("coach_id = ?", coachID)

	if dateFrom != "" {
		q = q.Where("date >= ?", dateFrom)
	}
	if dateTo != "" {
		q = q.Where("date <= ?", dateTo)
	}

	var aps []models.Appointment
	if err := q.
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListOnDate(
	ctx context.Context,
	coachID uint,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "availability_block_id", "date", "start_time", "end_time", "status").
		Where("coach_id = ? AND date = ?", coachID, date).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
