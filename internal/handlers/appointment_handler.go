package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fitcoachbr/coach-api/internal/dto"
	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	ucAppointment "github.com/fitcoachbr/coach-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	updateUC   *ucAppointment.UpdateAppointment
	deleteUC   *ucAppointment.DeleteAppointment
	confirmUC  *ucAppointment.ConfirmAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	listUC     *ucAppointment.ListAppointmentsInRange
	slotsUC    *ucAppointment.FreeSlots
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listUC *ucAppointment.ListAppointmentsInRange,
	slotsUC *ucAppointment.FreeSlots,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		updateUC:   updateUC,
		deleteUC:   deleteUC,
		confirmUC:  confirmUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		listUC:     listUC,
		slotsUC:    slotsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StudentID           uint   `json:"studentId" binding:"required"`
	AvailabilityBlockID *uint  `json:"availabilityBlockId"`
	Date                string `json:"date" binding:"required"`
	StartTime           string `json:"startTime" binding:"required"`
	EndTime             string `json:"endTime" binding:"required"`
	Kind                string `json:"kind"`
	Notes               string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")

	if dateFrom != "" && !validDate(dateFrom) {
		httperr.BadRequest(c, "invalid_date_from", "Data inicial inválida.")
		return
	}
	if dateTo != "" && !validDate(dateTo) {
		httperr.BadRequest(c, "invalid_date_to", "Data final inválida.")
		return
	}

	appointments, err := h.listUC.Execute(c.Request.Context(), coachID, dateFrom, dateTo)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, appointments)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validDate(req.Date) {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	if !validTimeHM(req.StartTime) || !validTimeHM(req.EndTime) {
		httperr.BadRequest(c, "invalid_time", "Hora inválida.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CoachID:             coachID,
		StudentID:           req.StudentID,
		AvailabilityBlockID: req.AvailabilityBlockID,
		Date:                req.Date,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		Kind:                req.Kind,
		Notes:               req.Notes,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "slot_taken"):
			httperr.Conflict(c, "slot_taken", "Já existe um agendamento para este horário.")
		case httperr.IsBusiness(err, "student_not_found"):
			httperr.BadRequest(c, "student_not_found", "Aluno não encontrado.")
		case httperr.IsBusiness(err, "block_not_found"):
			httperr.BadRequest(c, "block_not_found", "Bloco de horário não encontrado.")
		default:
			httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		}
		return
	}

	c.JSON(201, dto.FromAppointment(ap))
}

// ======================================================
// UPDATE (PARTIAL)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), coachID, id, ucAppointment.UpdateAppointmentInput{
		Status: req.Status,
		Notes:  req.Notes,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Status desconhecido.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		}
		return
	}

	c.JSON(200, dto.FromAppointment(ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), coachID, id); err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_delete_appointment", "Erro ao excluir agendamento.")
		return
	}

	c.JSON(200, gin.H{"message": "Agendamento excluído."})
}

// ======================================================
// STATE ACTIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.stateAction(c, func(coachID, id uint) (any, error) {
		ap, err := h.confirmUC.Execute(c.Request.Context(), coachID, id)
		if err != nil {
			return nil, err
		}
		return dto.FromAppointment(ap), nil
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.stateAction(c, func(coachID, id uint) (any, error) {
		ap, err := h.cancelUC.Execute(c.Request.Context(), coachID, id)
		if err != nil {
			return nil, err
		}
		return dto.FromAppointment(ap), nil
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.stateAction(c, func(coachID, id uint) (any, error) {
		ap, err := h.completeUC.Execute(c.Request.Context(), coachID, id)
		if err != nil {
			return nil, err
		}
		return dto.FromAppointment(ap), nil
	})
}

func (h *AppointmentHandler) stateAction(
	c *gin.Context,
	action func(coachID, id uint) (any, error),
) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	out, err := action(coachID, id)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		}
		return
	}

	c.JSON(200, out)
}

// ======================================================
// FREE SLOTS
// ======================================================

func (h *AppointmentHandler) FreeSlots(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	dateStr := c.Query("date")
	blockIDStr := c.Query("blockId")

	if dateStr == "" || blockIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e bloco obrigatórios.")
		return
	}

	blockID, err := strconv.ParseUint(blockIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_block_id", "Bloco inválido.")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), coachID, uint(blockID), dateStr)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "block_not_found"):
			httperr.NotFound(c, "block_not_found", "Bloco de horário não encontrado.")
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
		default:
			httperr.Internal(c, "free_slots_failed", "Erro ao calcular horários.")
		}
		return
	}

	c.JSON(200, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
