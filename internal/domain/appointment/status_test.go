package appointment

import (
	"testing"
	"time"

	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/models"
)

func TestIsKnown(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled} {
		if !IsKnown(s) {
			t.Errorf("IsKnown(%q) = false, want true", s)
		}
	}

	for _, s := range []Status{"", "pending", "SCHEDULED"} {
		if IsKnown(s) {
			t.Errorf("IsKnown(%q) = true, want false", s)
		}
	}
}

func TestTransitionRules(t *testing.T) {
	cases := []struct {
		name    string
		check   func(Status) error
		allowed []Status
	}{
		{"confirm", CanConfirm, []Status{StatusScheduled}},
		{"cancel", CanCancel, []Status{StatusScheduled, StatusConfirmed}},
		{"complete", CanComplete, []Status{StatusScheduled, StatusConfirmed}},
	}

	all := []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, current := range all {
				allowed := false
				for _, a := range tc.allowed {
					if current == a {
						allowed = true
					}
				}

				err := tc.check(current)
				if allowed && err != nil {
					t.Errorf("%s from %q: unexpected error %v", tc.name, current, err)
				}
				if !allowed && !httperr.IsBusiness(err, "invalid_state") {
					t.Errorf("%s from %q: err = %v, want invalid_state", tc.name, current, err)
				}
			}
		})
	}
}

func TestDomainActions(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	t.Run("confirm", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusScheduled)}
		if err := Confirm(ap); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ap.Status != string(StatusConfirmed) {
			t.Errorf("status = %q, want confirmed", ap.Status)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		if err := Cancel(ap, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ap.Status != string(StatusCancelled) {
			t.Errorf("status = %q, want cancelled", ap.Status)
		}
		if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
			t.Errorf("cancelledAt = %v, want %v", ap.CancelledAt, now)
		}
	})

	t.Run("complete", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusScheduled)}
		if err := Complete(ap, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ap.Status != string(StatusCompleted) {
			t.Errorf("status = %q, want completed", ap.Status)
		}
		if ap.CompletedAt == nil {
			t.Error("expected completedAt to be set")
		}
	})

	t.Run("cancel of a completed appointment fails", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCompleted)}
		if err := Cancel(ap, now); !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("err = %v, want invalid_state", err)
		}
		if ap.CancelledAt != nil {
			t.Error("cancelledAt must stay nil on a rejected cancel")
		}
	})
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus() != StatusScheduled {
		t.Errorf("InitialStatus() = %q, want scheduled", InitialStatus())
	}
}
