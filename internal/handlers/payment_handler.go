package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/audit"
	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
	"github.com/fitcoachbr/coach-api/internal/payments"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db             *gorm.DB
	gateway        *payments.Gateway
	audit          *audit.Dispatcher
	webhookBaseURL string
}

func NewPaymentHandler(
	db *gorm.DB,
	gateway *payments.Gateway,
	auditDispatcher *audit.Dispatcher,
	webhookBaseURL string,
) *PaymentHandler {
	return &PaymentHandler{
		db:             db,
		gateway:        gateway,
		audit:          auditDispatcher,
		webhookBaseURL: webhookBaseURL,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePaymentRequest struct {
	StudentID   uint    `json:"studentId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
}

// ======================================================
// CREATE (CHECKOUT)
// ======================================================

func (h *PaymentHandler) Create(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	if h.gateway == nil {
		httperr.Internal(c, "payments_disabled", "Pagamentos não configurados.")
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var student models.Student
	if err := h.db.
		Where("id = ? AND coach_id = ?", req.StudentID, coachID).
		First(&student).Error; err != nil {
		httperr.BadRequest(c, "student_not_found", "Aluno não encontrado.")
		return
	}

	payment := models.Payment{
		CoachID:     coachID,
		StudentID:   student.ID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      "pending",
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_payment", "Erro ao criar cobrança.")
		return
	}

	var notificationURL string
	if h.webhookBaseURL != "" {
		notificationURL = h.webhookBaseURL + "/api/payments/webhook"
	}

	checkout, err := h.gateway.CreateCheckout(
		c.Request.Context(),
		req.Description,
		req.Amount,
		fmt.Sprintf("%d", payment.ID),
		notificationURL,
	)
	if err != nil {
		// local row stays pending without a preference; retried by
		// recreating the charge
		httperr.Internal(c, "gateway_error", "Erro ao criar checkout no gateway.")
		return
	}

	payment.PreferenceID = checkout.PreferenceID
	if err := h.db.Save(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_update_payment", "Erro ao salvar cobrança.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CoachID:  coachID,
		UserID:   &coachID,
		Action:   "payment_created",
		Entity:   "payment",
		EntityID: &payment.ID,
	})

	c.JSON(201, gin.H{
		"payment":   payment,
		"initPoint": checkout.InitPoint,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	q := h.db.
		Preload("Student").
		Where("coach_id = ?", coachID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Payment
	if err := q.
		Order("created_at DESC").
		Find(&list).Error; err != nil {

		httperr.Internal(c, "failed_to_list_payments", "Erro ao listar cobranças.")
		return
	}

	c.JSON(200, list)
}

// ======================================================
// WEBHOOK (PUBLIC)
// ======================================================

// Webhook receives gateway notifications, looks the payment up at the
// gateway and syncs the local status. Always acknowledges with 200 so
// the gateway stops retrying malformed notifications.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	if h.gateway == nil {
		c.Status(200)
		return
	}

	idStr := c.Query("data.id")
	if idStr == "" {
		idStr = c.Query("id")
	}

	paymentID, err := strconv.Atoi(idStr)
	if err != nil {
		c.Status(200)
		return
	}

	info, err := h.gateway.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		c.Status(200)
		return
	}

	localID, err := strconv.ParseUint(info.ExternalReference, 10, 64)
	if err != nil {
		c.Status(200)
		return
	}

	var payment models.Payment
	if err := h.db.First(&payment, uint(localID)).Error; err != nil {
		c.Status(200)
		return
	}

	payment.Status = info.Status
	payment.ExternalID = idStr

	if err := h.db.Save(&payment).Error; err != nil {
		c.Status(200)
		return
	}

	h.audit.Dispatch(audit.Event{
		CoachID:  payment.CoachID,
		Action:   "payment_status_updated",
		Entity:   "payment",
		EntityID: &payment.ID,
		Metadata: map[string]any{"status": info.Status},
	})

	c.Status(200)
}
