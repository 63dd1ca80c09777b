package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/httpresp"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
)

type WorkoutSheetHandler struct {
	db *gorm.DB
}

func NewWorkoutSheetHandler(db *gorm.DB) *WorkoutSheetHandler {
	return &WorkoutSheetHandler{db: db}
}

// --------- Requests ---------

type SheetExerciseInput struct {
	Name           string `json:"name" binding:"required"`
	Sets           int    `json:"sets"`
	Reps           string `json:"reps"`
	Load           string `json:"load"`
	RestSeconds    int    `json:"restSeconds"`
	WorkoutVideoID *uint  `json:"workoutVideoId"`
}

type CreateWorkoutSheetRequest struct {
	StudentID uint                 `json:"studentId" binding:"required"`
	Title     string               `json:"title" binding:"required"`
	Notes     string               `json:"notes"`
	Exercises []SheetExerciseInput `json:"exercises"`
}

type UpdateWorkoutSheetRequest struct {
	Title *string `json:"title,omitempty"`
	Notes *string `json:"notes,omitempty"`
	// when present, replaces the full exercise list
	Exercises *[]SheetExerciseInput `json:"exercises,omitempty"`
}

// --------- Handlers ---------

func (h *WorkoutSheetHandler) List(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	q := h.db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("coach_id = ?", coachID)

	if studentIDStr := c.Query("studentId"); studentIDStr != "" {
		q = q.Where("student_id = ?", studentIDStr)
	}

	var sheets []models.WorkoutSheet
	if err := q.
		Order("id ASC").
		Find(&sheets).Error; err != nil {

		httperr.Internal(c, "failed_to_list_sheets", "Erro ao listar fichas de treino.")
		return
	}

	httpresp.List(c, sheets)
}

func (h *WorkoutSheetHandler) Get(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	sheet, ok := h.findSheet(c, coachID)
	if !ok {
		return
	}

	c.JSON(200, sheet)
}

// Create writes the sheet and its exercises in one transaction.
func (h *WorkoutSheetHandler) Create(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var req CreateWorkoutSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sheet := models.WorkoutSheet{
		CoachID:   coachID,
		StudentID: req.StudentID,
		Title:     req.Title,
		Notes:     req.Notes,
		Exercises: exercisesFromInput(req.Exercises),
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&sheet).Error
	}); err != nil {
		httperr.Internal(c, "failed_to_create_sheet", "Erro ao criar ficha de treino.")
		return
	}

	c.JSON(201, sheet)
}

// Update replaces the exercise list wholesale when one is supplied.
func (h *WorkoutSheetHandler) Update(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	sheet, ok := h.findSheet(c, coachID)
	if !ok {
		return
	}

	var req UpdateWorkoutSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Title != nil {
		sheet.Title = *req.Title
	}
	if req.Notes != nil {
		sheet.Notes = *req.Notes
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {

		if req.Exercises != nil {
			if err := tx.Where("workout_sheet_id = ?", sheet.ID).
				Delete(&models.SheetExercise{}).Error; err != nil {
				return err
			}
			sheet.Exercises = exercisesFromInput(*req.Exercises)
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(sheet).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_update_sheet", "Erro ao atualizar ficha de treino.")
		return
	}

	c.JSON(200, sheet)
}

func (h *WorkoutSheetHandler) Delete(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	sheet, ok := h.findSheet(c, coachID)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_sheet_id = ?", sheet.ID).
			Delete(&models.SheetExercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(sheet).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_delete_sheet", "Erro ao excluir ficha de treino.")
		return
	}

	c.JSON(200, gin.H{"message": "Ficha de treino excluída."})
}

// --------- Helpers ---------

func exercisesFromInput(inputs []SheetExerciseInput) []models.SheetExercise {
	exercises := make([]models.SheetExercise, 0, len(inputs))
	for i, e := range inputs {
		exercises = append(exercises, models.SheetExercise{
			Name:           e.Name,
			Sets:           e.Sets,
			Reps:           e.Reps,
			Load:           e.Load,
			RestSeconds:    e.RestSeconds,
			Position:       i,
			WorkoutVideoID: e.WorkoutVideoID,
		})
	}
	return exercises
}

func (h *WorkoutSheetHandler) findSheet(c *gin.Context, coachID uint) (*models.WorkoutSheet, bool) {
	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var sheet models.WorkoutSheet
	if err := h.db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND coach_id = ?", id, coachID).
		First(&sheet).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "sheet_not_found", "Ficha de treino não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_sheet", "Erro ao buscar ficha de treino.")
		return nil, false
	}

	return &sheet, true
}
