package appointment

import (
	"context"
	"fmt"
	"sort"

	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/models"
)

// fakeRepository keeps everything in maps so the use cases can be
// exercised without a database.
type fakeRepository struct {
	students     map[uint]*models.Student
	blocks       map[uint]*models.AvailabilityBlock
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		students:     make(map[uint]*models.Student),
		blocks:       make(map[uint]*models.AvailabilityBlock),
		appointments: make(map[uint]*models.Appointment),
	}
}

func (r *fakeRepository) addStudent(s models.Student) *models.Student {
	r.students[s.ID] = &s
	return &s
}

func (r *fakeRepository) addBlock(b models.AvailabilityBlock) *models.AvailabilityBlock {
	r.blocks[b.ID] = &b
	return &b
}

func (r *fakeRepository) addAppointment(ap models.Appointment) *models.Appointment {
	if ap.ID == 0 {
		r.nextID++
		ap.ID = r.nextID
	}
	r.appointments[ap.ID] = &ap
	return r.appointments[ap.ID]
}

func (r *fakeRepository) GetStudent(_ context.Context, coachID, studentID uint) (*models.Student, error) {
	s, ok := r.students[studentID]
	if !ok || s.CoachID != coachID {
		return nil, fmt.Errorf("student %d not found", studentID)
	}
	return s, nil
}

func (r *fakeRepository) GetBlock(_ context.Context, coachID, blockID uint) (*models.AvailabilityBlock, error) {
	b, ok := r.blocks[blockID]
	if !ok || b.CoachID != coachID {
		return nil, fmt.Errorf("block %d not found", blockID)
	}
	return b, nil
}

func (r *fakeRepository) CreateInSlot(_ context.Context, ap *models.Appointment) error {
	if ap.AvailabilityBlockID != nil {
		for _, existing := range r.appointments {
			if existing.AvailabilityBlockID != nil &&
				*existing.AvailabilityBlockID == *ap.AvailabilityBlockID &&
				existing.Date == ap.Date {
				return httperr.ErrBusiness("slot_taken")
			}
		}
	}

	r.nextID++
	ap.ID = r.nextID
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepository) GetForCoach(_ context.Context, appointmentID, coachID uint) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.CoachID != coachID {
		return nil, fmt.Errorf("appointment %d not found", appointmentID)
	}
	copied := *ap
	return &copied, nil
}

func (r *fakeRepository) Update(_ context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return fmt.Errorf("appointment %d not found", ap.ID)
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return fmt.Errorf("appointment %d not found", ap.ID)
	}
	delete(r.appointments, ap.ID)
	return nil
}

func (r *fakeRepository) ListInRange(_ context.Context, coachID uint, dateFrom, dateTo string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.CoachID != coachID {
			continue
		}
		if dateFrom != "" && ap.Date < dateFrom {
			continue
		}
		if dateTo != "" && ap.Date > dateTo {
			continue
		}
		out = append(out, *ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})

	return out, nil
}

func (r *fakeRepository) ListOnDate(_ context.Context, coachID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.CoachID == coachID && ap.Date == date {
			out = append(out, *ap)
		}
	}
	return out, nil
}
