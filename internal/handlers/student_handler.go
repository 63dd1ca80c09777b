package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/httpresp"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
)

type StudentHandler struct {
	db *gorm.DB
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{db: db}
}

// --------- Requests ---------

type CreateStudentRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Goal  string `json:"goal"`
}

type UpdateStudentRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Goal   *string `json:"goal,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *StudentHandler) List(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("coach_id = ?", coachID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var students []models.Student
	if err := q.
		Order("created_at DESC").
		Find(&students).Error; err != nil {

		httperr.Internal(c, "failed_to_list_students", "Erro ao listar alunos.")
		return
	}

	httpresp.List(c, students)
}

func (h *StudentHandler) Create(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	student := models.Student{
		CoachID: coachID,
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Goal:    req.Goal,
		Active:  true,
	}

	if err := h.db.Create(&student).Error; err != nil {
		httperr.Internal(c, "failed_to_create_student", "Erro ao criar aluno.")
		return
	}

	c.JSON(201, student)
}

func (h *StudentHandler) Update(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	student, ok := h.findStudent(c, coachID)
	if !ok {
		return
	}

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Goal != nil {
		student.Goal = *req.Goal
	}
	if req.Active != nil {
		student.Active = *req.Active
	}

	if err := h.db.Save(student).Error; err != nil {
		httperr.Internal(c, "failed_to_update_student", "Erro ao atualizar aluno.")
		return
	}

	c.JSON(200, student)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	student, ok := h.findStudent(c, coachID)
	if !ok {
		return
	}

	if err := h.db.Delete(student).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_student", "Erro ao excluir aluno.")
		return
	}

	c.JSON(200, gin.H{"message": "Aluno excluído."})
}

func (h *StudentHandler) findStudent(c *gin.Context, coachID uint) (*models.Student, bool) {
	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var student models.Student
	if err := h.db.
		Where("id = ? AND coach_id = ?", id, coachID).
		First(&student).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "student_not_found", "Aluno não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_student", "Erro ao buscar aluno.")
		return nil, false
	}

	return &student, true
}
