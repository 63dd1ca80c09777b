package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/fitcoachbr/coach-api/internal/domain/appointment"
	"github.com/fitcoachbr/coach-api/internal/httperr"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type FreeSlots struct {
	repo domain.Repository
}

func NewFreeSlots(repo domain.Repository) *FreeSlots {
	return &FreeSlots{repo: repo}
}

// Execute walks the block's window in duration-sized steps and drops
// every slot overlapping an appointment on that date.
func (uc *FreeSlots) Execute(
	ctx context.Context,
	coachID uint,
	blockID uint,
	date string,
) ([]TimeSlot, error) {

	block, err := uc.repo.GetBlock(ctx, coachID, blockID)
	if err != nil {
		return nil, httperr.ErrBusiness("block_not_found")
	}

	if !block.Active {
		return []TimeSlot{}, nil
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	if int(day.Weekday()) != block.DayOfWeek {
		return []TimeSlot{}, nil
	}

	blockStart, err := minutesOfDay(block.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_block_times")
	}
	blockEnd, err := minutesOfDay(block.EndTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_block_times")
	}

	duration := block.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	booked, err := uc.repo.ListOnDate(ctx, coachID, date)
	if err != nil {
		return nil, err
	}

	// cancelled appointments keep their window: a cancelled booking
	// still occupies its (block, date) slot on the create path, so
	// the grid must not offer a slot the insert would refuse
	type window struct{ start, end int }
	taken := make([]window, 0, len(booked))
	for _, ap := range booked {
		s, err1 := minutesOfDay(ap.StartTime)
		e, err2 := minutesOfDay(ap.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		taken = append(taken, window{start: s, end: e})
	}

	var slots []TimeSlot
	for cur := blockStart; cur+duration <= blockEnd; cur += duration {
		slotStart := cur
		slotEnd := cur + duration

		conflict := false
		for _, w := range taken {
			if slotStart < w.end && slotEnd > w.start {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: formatMinutes(slotStart),
				End:   formatMinutes(slotEnd),
			})
		}
	}

	if slots == nil {
		slots = []TimeSlot{}
	}

	return slots, nil
}

func minutesOfDay(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
