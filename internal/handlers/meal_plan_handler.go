package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/dto"
	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/httpresp"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
)

type MealPlanHandler struct {
	db *gorm.DB
}

func NewMealPlanHandler(db *gorm.DB) *MealPlanHandler {
	return &MealPlanHandler{db: db}
}

// --------- Requests ---------

type MealFoodInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type MealInput struct {
	Name  string          `json:"name" binding:"required"`
	Time  string          `json:"time"`
	Foods []MealFoodInput `json:"foods"`
}

type CreateMealPlanRequest struct {
	StudentID uint        `json:"studentId" binding:"required"`
	Title     string      `json:"title" binding:"required"`
	Notes     string      `json:"notes"`
	Meals     []MealInput `json:"meals"`
}

type UpdateMealPlanRequest struct {
	Title *string `json:"title,omitempty"`
	Notes *string `json:"notes,omitempty"`
	// when present, replaces the full meal list
	Meals *[]MealInput `json:"meals,omitempty"`
}

// --------- Handlers ---------

func (h *MealPlanHandler) List(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	q := h.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Meals.Foods").
		Where("coach_id = ?", coachID)

	if studentIDStr := c.Query("studentId"); studentIDStr != "" {
		q = q.Where("student_id = ?", studentIDStr)
	}

	var plans []models.MealPlan
	if err := q.
		Order("id ASC").
		Find(&plans).Error; err != nil {

		httperr.Internal(c, "failed_to_list_meal_plans", "Erro ao listar planos alimentares.")
		return
	}

	out := make([]dto.MealPlanDTO, 0, len(plans))
	for i := range plans {
		out = append(out, dto.FromMealPlan(&plans[i]))
	}

	httpresp.List(c, out)
}

func (h *MealPlanHandler) Get(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	plan, ok := h.findPlan(c, coachID)
	if !ok {
		return
	}

	c.JSON(200, dto.FromMealPlan(plan))
}

// Create writes the plan and every meal/food in one transaction; a
// child failure never leaves an orphaned parent row.
func (h *MealPlanHandler) Create(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var req CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan := models.MealPlan{
		CoachID:   coachID,
		StudentID: req.StudentID,
		Title:     req.Title,
		Notes:     req.Notes,
		Meals:     mealsFromInput(req.Meals),
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&plan).Error
	}); err != nil {
		httperr.Internal(c, "failed_to_create_meal_plan", "Erro ao criar plano alimentar.")
		return
	}

	c.JSON(201, dto.FromMealPlan(&plan))
}

// Update replaces the meal list wholesale when one is supplied.
func (h *MealPlanHandler) Update(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	plan, ok := h.findPlan(c, coachID)
	if !ok {
		return
	}

	var req UpdateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Title != nil {
		plan.Title = *req.Title
	}
	if req.Notes != nil {
		plan.Notes = *req.Notes
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {

		if req.Meals != nil {
			var mealIDs []uint
			if err := tx.Model(&models.Meal{}).
				Where("meal_plan_id = ?", plan.ID).
				Pluck("id", &mealIDs).Error; err != nil {
				return err
			}

			if len(mealIDs) > 0 {
				if err := tx.Where("meal_id IN ?", mealIDs).
					Delete(&models.MealFood{}).Error; err != nil {
					return err
				}
				if err := tx.Where("meal_plan_id = ?", plan.ID).
					Delete(&models.Meal{}).Error; err != nil {
					return err
				}
			}

			plan.Meals = mealsFromInput(*req.Meals)
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(plan).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_update_meal_plan", "Erro ao atualizar plano alimentar.")
		return
	}

	c.JSON(200, dto.FromMealPlan(plan))
}

func (h *MealPlanHandler) Delete(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	plan, ok := h.findPlan(c, coachID)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var mealIDs []uint
		if err := tx.Model(&models.Meal{}).
			Where("meal_plan_id = ?", plan.ID).
			Pluck("id", &mealIDs).Error; err != nil {
			return err
		}

		if len(mealIDs) > 0 {
			if err := tx.Where("meal_id IN ?", mealIDs).
				Delete(&models.MealFood{}).Error; err != nil {
				return err
			}
			if err := tx.Where("meal_plan_id = ?", plan.ID).
				Delete(&models.Meal{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(plan).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_delete_meal_plan", "Erro ao excluir plano alimentar.")
		return
	}

	c.JSON(200, gin.H{"message": "Plano alimentar excluído."})
}

// --------- Helpers ---------

func mealsFromInput(inputs []MealInput) []models.Meal {
	meals := make([]models.Meal, 0, len(inputs))
	for i, m := range inputs {
		meal := models.Meal{
			Name:     m.Name,
			Time:     m.Time,
			Position: i,
			Foods:    make([]models.MealFood, 0, len(m.Foods)),
		}
		for _, f := range m.Foods {
			meal.Foods = append(meal.Foods, models.MealFood{
				Name:     f.Name,
				Quantity: f.Quantity,
				Calories: f.Calories,
				Protein:  f.Protein,
				Carbs:    f.Carbs,
				Fat:      f.Fat,
			})
		}
		meals = append(meals, meal)
	}
	return meals
}

func (h *MealPlanHandler) findPlan(c *gin.Context, coachID uint) (*models.MealPlan, bool) {
	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var plan models.MealPlan
	if err := h.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Meals.Foods").
		Where("id = ? AND coach_id = ?", id, coachID).
		First(&plan).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "meal_plan_not_found", "Plano alimentar não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_meal_plan", "Erro ao buscar plano alimentar.")
		return nil, false
	}

	return &plan, true
}
