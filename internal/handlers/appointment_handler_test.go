package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
	ucAppointment "github.com/fitcoachbr/coach-api/internal/usecase/appointment"
)

// stubRepository backs the appointment use cases in handler tests.
type stubRepository struct {
	students     map[uint]*models.Student
	blocks       map[uint]*models.AvailabilityBlock
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		students:     make(map[uint]*models.Student),
		blocks:       make(map[uint]*models.AvailabilityBlock),
		appointments: make(map[uint]*models.Appointment),
	}
}

func (r *stubRepository) GetStudent(_ context.Context, coachID, studentID uint) (*models.Student, error) {
	s, ok := r.students[studentID]
	if !ok || s.CoachID != coachID {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (r *stubRepository) GetBlock(_ context.Context, coachID, blockID uint) (*models.AvailabilityBlock, error) {
	b, ok := r.blocks[blockID]
	if !ok || b.CoachID != coachID {
		return nil, fmt.Errorf("not found")
	}
	return b, nil
}

func (r *stubRepository) CreateInSlot(_ context.Context, ap *models.Appointment) error {
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

func (r *stubRepository) GetForCoach(_ context.Context, appointmentID, coachID uint) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.CoachID != coachID {
		return nil, fmt.Errorf("not found")
	}
	copied := *ap
	return &copied, nil
}

func (r *stubRepository) Update(_ context.Context, ap *models.Appointment) error {
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *stubRepository) Delete(_ context.Context, ap *models.Appointment) error {
	delete(r.appointments, ap.ID)
	return nil
}

func (r *stubRepository) ListInRange(_ context.Context, coachID uint, dateFrom, dateTo string) ([]models.Appointment, error) {
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

func (r *stubRepository) ListOnDate(_ context.Context, coachID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.CoachID == coachID && ap.Date == date {
			out = append(out, *ap)
		}
	}
	return out, nil
}

const testCoachID = uint(1)

func newAppointmentRouter(repo *stubRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(repo, nil),
		ucAppointment.NewUpdateAppointment(repo, nil),
		ucAppointment.NewDeleteAppointment(repo, nil),
		ucAppointment.NewConfirmAppointment(repo, nil),
		ucAppointment.NewCancelAppointment(repo, nil),
		ucAppointment.NewCompleteAppointment(repo, nil),
		ucAppointment.NewListAppointmentsInRange(repo),
		ucAppointment.NewFreeSlots(repo),
	)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextCoachID, testCoachID)
	})

	r.GET("/appointments", h.List)
	r.GET("/appointments/free-slots", h.FreeSlots)
	r.POST("/appointments", h.Create)
	r.PUT("/appointments/:id", h.Update)
	r.DELETE("/appointments/:id", h.Delete)
	r.PATCH("/appointments/:id/confirm", h.Confirm)
	r.PATCH("/appointments/:id/cancel", h.Cancel)
	r.PATCH("/appointments/:id/complete", h.Complete)

	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAppointmentCreate(t *testing.T) {
	t.Run("creates and returns the camelCase shape", func(t *testing.T) {
		repo := newStubRepository()
		repo.students[7] = &models.Student{ID: 7, CoachID: testCoachID, Name: "Ana", Email: "ana@example.com"}
		r := newAppointmentRouter(repo)

		w := doJSON(r, http.MethodPost, "/appointments", gin.H{
			"studentId": 7,
			"date":      "2026-09-07",
			"startTime": "09:00",
			"endTime":   "10:00",
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var out map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if out["status"] != "scheduled" {
			t.Errorf("status = %v, want scheduled", out["status"])
		}
		if out["kind"] != "in_person" {
			t.Errorf("kind = %v, want in_person", out["kind"])
		}
		student, _ := out["student"].(map[string]any)
		if student["name"] != "Ana" {
			t.Errorf("student.name = %v, want Ana", student["name"])
		}
	})

	t.Run("returns 409 when the slot is taken", func(t *testing.T) {
		repo := newStubRepository()
		repo.students[7] = &models.Student{ID: 7, CoachID: testCoachID, Name: "Ana"}
		repo.blocks[3] = &models.AvailabilityBlock{ID: 3, CoachID: testCoachID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", Active: true}
		r := newAppointmentRouter(repo)

		body := gin.H{
			"studentId":           7,
			"availabilityBlockId": 3,
			"date":                "2026-09-07",
			"startTime":           "09:00",
			"endTime":             "10:00",
		}

		if w := doJSON(r, http.MethodPost, "/appointments", body); w.Code != http.StatusCreated {
			t.Fatalf("first booking: status = %d, body = %s", w.Code, w.Body.String())
		}

		w := doJSON(r, http.MethodPost, "/appointments", body)
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409 (body %s)", w.Code, w.Body.String())
		}

		var out httperr.HTTPError
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out.Code != "slot_taken" {
			t.Errorf("error_code = %q, want slot_taken", out.Code)
		}
	})

	t.Run("returns 400 for an unknown student", func(t *testing.T) {
		r := newAppointmentRouter(newStubRepository())

		w := doJSON(r, http.MethodPost, "/appointments", gin.H{
			"studentId": 99,
			"date":      "2026-09-07",
			"startTime": "09:00",
			"endTime":   "10:00",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("returns 400 for a malformed date", func(t *testing.T) {
		repo := newStubRepository()
		repo.students[7] = &models.Student{ID: 7, CoachID: testCoachID, Name: "Ana"}
		r := newAppointmentRouter(repo)

		w := doJSON(r, http.MethodPost, "/appointments", gin.H{
			"studentId": 7,
			"date":      "07/09/2026",
			"startTime": "09:00",
			"endTime":   "10:00",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestAppointmentList(t *testing.T) {
	repo := newStubRepository()
	repo.appointments[1] = &models.Appointment{ID: 1, CoachID: testCoachID, Date: "2026-09-07", Status: "scheduled"}
	repo.appointments[2] = &models.Appointment{ID: 2, CoachID: testCoachID, Date: "2026-09-20", Status: "scheduled"}
	repo.appointments[3] = &models.Appointment{ID: 3, CoachID: 9, Date: "2026-09-07", Status: "scheduled"}
	r := newAppointmentRouter(repo)

	w := doJSON(r, http.MethodGet, "/appointments?dateFrom=2026-09-01&dateTo=2026-09-10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("got %d appointments, want 1 (other coach and out-of-range excluded)", len(out))
	}

	w = doJSON(r, http.MethodGet, "/appointments?dateFrom=setembro", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a malformed dateFrom", w.Code)
	}
}

func TestAppointmentStateEndpoints(t *testing.T) {
	repo := newStubRepository()
	repo.appointments[1] = &models.Appointment{ID: 1, CoachID: testCoachID, Status: "scheduled"}
	r := newAppointmentRouter(repo)

	w := doJSON(r, http.MethodPatch, "/appointments/1/confirm", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: status = %d, body = %s", w.Code, w.Body.String())
	}

	// already confirmed, confirming again is an invalid transition
	w = doJSON(r, http.MethodPatch, "/appointments/1/confirm", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("second confirm: status = %d, want 400", w.Code)
	}

	w = doJSON(r, http.MethodPatch, "/appointments/1/cancel", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPatch, "/appointments/1/complete", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("complete after cancel: status = %d, want 400", w.Code)
	}

	w = doJSON(r, http.MethodPatch, "/appointments/99/confirm", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", w.Code)
	}
}

func TestAppointmentFreeSlotsEndpoint(t *testing.T) {
	repo := newStubRepository()
	repo.blocks[3] = &models.AvailabilityBlock{
		ID: 3, CoachID: testCoachID, DayOfWeek: 1,
		StartTime: "09:00", EndTime: "11:00", DurationMinutes: 60, Active: true,
	}
	r := newAppointmentRouter(repo)

	w := doJSON(r, http.MethodGet, "/appointments/free-slots?date=2026-09-07&blockId=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var out struct {
		Date  string                   `json:"date"`
		Slots []ucAppointment.TimeSlot `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out.Slots) != 2 {
		t.Errorf("got %d slots, want 2: %v", len(out.Slots), out.Slots)
	}

	w = doJSON(r, http.MethodGet, "/appointments/free-slots?date=2026-09-07", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing blockId: status = %d, want 400", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/appointments/free-slots?date=2026-09-07&blockId=99", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown block: status = %d, want 404", w.Code)
	}
}
