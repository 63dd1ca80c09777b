package appointment

import (
	"context"
	"testing"

	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/models"
)

func TestFreeSlots(t *testing.T) {
	ctx := context.Background()

	// 2026-09-07 is a Monday
	const monday = "2026-09-07"

	newRepoWithBlock := func() (*fakeRepository, *models.AvailabilityBlock) {
		repo := newFakeRepository()
		block := repo.addBlock(models.AvailabilityBlock{
			ID:              3,
			CoachID:         1,
			DayOfWeek:       1,
			StartTime:       "09:00",
			EndTime:         "12:00",
			DurationMinutes: 60,
			Active:          true,
		})
		return repo, block
	}

	t.Run("splits the window into duration-sized slots", func(t *testing.T) {
		repo, block := newRepoWithBlock()
		uc := NewFreeSlots(repo)

		slots, err := uc.Execute(ctx, 1, block.ID, monday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []TimeSlot{
			{Start: "09:00", End: "10:00"},
			{Start: "10:00", End: "11:00"},
			{Start: "11:00", End: "12:00"},
		}
		if len(slots) != len(want) {
			t.Fatalf("got %d slots, want %d: %v", len(slots), len(want), slots)
		}
		for i := range want {
			if slots[i] != want[i] {
				t.Errorf("slot[%d] = %v, want %v", i, slots[i], want[i])
			}
		}
	})

	t.Run("drops slots overlapping booked appointments", func(t *testing.T) {
		repo, block := newRepoWithBlock()
		repo.addAppointment(models.Appointment{
			CoachID:   1,
			Date:      monday,
			StartTime: "09:30",
			EndTime:   "10:30",
			Status:    "scheduled",
		})

		slots, err := NewFreeSlots(repo).Execute(ctx, 1, block.ID, monday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// the 09:00 and 10:00 slots both overlap the booking
		if len(slots) != 1 || slots[0].Start != "11:00" {
			t.Errorf("slots = %v, want only 11:00-12:00", slots)
		}
	})

	t.Run("cancelled appointments still occupy their slot", func(t *testing.T) {
		repo, block := newRepoWithBlock()
		repo.addAppointment(models.Appointment{
			CoachID:   1,
			Date:      monday,
			StartTime: "09:00",
			EndTime:   "10:00",
			Status:    "cancelled",
		})

		slots, err := NewFreeSlots(repo).Execute(ctx, 1, block.ID, monday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// the create path refuses this slot too, so the grid must
		// not offer it
		if len(slots) != 2 || slots[0].Start != "10:00" {
			t.Errorf("slots = %v, want 10:00 and 11:00 only", slots)
		}
	})

	t.Run("returns empty for another weekday", func(t *testing.T) {
		repo, block := newRepoWithBlock()

		slots, err := NewFreeSlots(repo).Execute(ctx, 1, block.ID, "2026-09-08")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 0 {
			t.Errorf("slots = %v, want none on a Tuesday", slots)
		}
	})

	t.Run("returns empty for an inactive block", func(t *testing.T) {
		repo := newFakeRepository()
		block := repo.addBlock(models.AvailabilityBlock{
			ID:              4,
			CoachID:         1,
			DayOfWeek:       1,
			StartTime:       "09:00",
			EndTime:         "12:00",
			DurationMinutes: 60,
			Active:          false,
		})

		slots, err := NewFreeSlots(repo).Execute(ctx, 1, block.ID, monday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 0 {
			t.Errorf("slots = %v, want none", slots)
		}
	})

	t.Run("rejects an unknown block", func(t *testing.T) {
		repo := newFakeRepository()

		_, err := NewFreeSlots(repo).Execute(ctx, 1, 99, monday)
		if !httperr.IsBusiness(err, "block_not_found") {
			t.Errorf("err = %v, want block_not_found", err)
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		repo, block := newRepoWithBlock()

		_, err := NewFreeSlots(repo).Execute(ctx, 1, block.ID, "07/09/2026")
		if !httperr.IsBusiness(err, "invalid_date") {
			t.Errorf("err = %v, want invalid_date", err)
		}
	})
}
