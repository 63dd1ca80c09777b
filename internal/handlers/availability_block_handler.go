package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
)

type AvailabilityBlockHandler struct {
	db *gorm.DB
}

func NewAvailabilityBlockHandler(db *gorm.DB) *AvailabilityBlockHandler {
	return &AvailabilityBlockHandler{db: db}
}

// --------- Requests ---------

type CreateBlockRequest struct {
	DayOfWeek       *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime       string `json:"startTime" binding:"required"`
	EndTime         string `json:"endTime" binding:"required"`
	DurationMinutes int    `json:"durationMinutes"`
	Active          *bool  `json:"active"`
}

type UpdateBlockRequest struct {
	DayOfWeek       *int    `json:"dayOfWeek,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *AvailabilityBlockHandler) List(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var blocks []models.AvailabilityBlock
	if err := h.db.
		Where("coach_id = ?", coachID).
		Order("day_of_week ASC, start_time ASC").
		Find(&blocks).Error; err != nil {

		httperr.Internal(c, "failed_to_list_blocks", "Erro ao listar blocos de horário.")
		return
	}

	c.JSON(200, blocks)
}

func (h *AvailabilityBlockHandler) Get(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	block, ok := h.findBlock(c, coachID)
	if !ok {
		return
	}

	c.JSON(200, block)
}

func (h *AvailabilityBlockHandler) Create(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validTimeHM(req.StartTime) || !validTimeHM(req.EndTime) {
		httperr.BadRequest(c, "invalid_time", "Hora inválida.")
		return
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	block := models.AvailabilityBlock{
		CoachID:         coachID,
		DayOfWeek:       *req.DayOfWeek,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: duration,
		Active:          active,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloco de horário.")
		return
	}

	c.JSON(201, block)
}

func (h *AvailabilityBlockHandler) Update(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	block, ok := h.findBlock(c, coachID)
	if !ok {
		return
	}

	var req UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.DayOfWeek != nil {
		if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			httperr.BadRequest(c, "invalid_day_of_week", "Dia da semana inválido.")
			return
		}
		block.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		if !validTimeHM(*req.StartTime) {
			httperr.BadRequest(c, "invalid_time", "Hora inválida.")
			return
		}
		block.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if !validTimeHM(*req.EndTime) {
			httperr.BadRequest(c, "invalid_time", "Hora inválida.")
			return
		}
		block.EndTime = *req.EndTime
	}
	if req.DurationMinutes != nil {
		block.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		block.Active = *req.Active
	}

	if err := h.db.Save(block).Error; err != nil {
		httperr.Internal(c, "failed_to_update_block", "Erro ao atualizar bloco de horário.")
		return
	}

	c.JSON(200, block)
}

// Delete nullifies availability_block_id on dependent appointments
// (they keep their own date/time snapshot) before removing the block.
func (h *AvailabilityBlockHandler) Delete(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	block, ok := h.findBlock(c, coachID)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Appointment{}).
			Where("availability_block_id = ?", block.ID).
			Update("availability_block_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(block).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_delete_block", "Erro ao excluir bloco de horário.")
		return
	}

	c.Status(204)
}

func (h *AvailabilityBlockHandler) findBlock(c *gin.Context, coachID uint) (*models.AvailabilityBlock, bool) {
	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var block models.AvailabilityBlock
	if err := h.db.
		Where("id = ? AND coach_id = ?", id, coachID).
		First(&block).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "block_not_found", "Bloco de horário não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_block", "Erro ao buscar bloco de horário.")
		return nil, false
	}

	return &block, true
}
