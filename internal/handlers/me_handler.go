package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
	"github.com/fitcoachbr/coach-api/internal/timezone"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	coachIDVal, exists := c.Get(middleware.ContextCoachID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	coachID, ok := coachIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var coach models.Coach
	if err := h.db.First(&coach, coachID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coach_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coach": gin.H{
			"id":       coach.ID,
			"name":     coach.Name,
			"email":    coach.Email,
			"phone":    coach.Phone,
			"timezone": coach.Timezone,
		},
	})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var coach models.Coach
	if err := h.db.First(&coach, coachID).Error; err != nil {
		httperr.Internal(c, "coach_not_found", "Perfil não encontrado.")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		coach.Name = *req.Name
	}
	if req.Phone != nil {
		coach.Phone = *req.Phone
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		coach.Timezone = *req.Timezone
	}

	if err := h.db.Save(&coach).Error; err != nil {
		httperr.Internal(c, "failed_to_update_coach", "Erro ao salvar perfil.")
		return
	}

	c.JSON(http.StatusOK, coach)
}
