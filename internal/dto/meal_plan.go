package dto

import "github.com/fitcoachbr/coach-api/internal/models"

type MealFoodDTO struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type MealDTO struct {
	ID    uint          `json:"id"`
	Name  string        `json:"name"`
	Time  string        `json:"time"`
	Foods []MealFoodDTO `json:"foods"`
}

type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type MealPlanDTO struct {
	ID        uint        `json:"id"`
	StudentID uint        `json:"studentId"`
	Title     string      `json:"title"`
	Notes     string      `json:"notes"`
	Meals     []MealDTO   `json:"meals"`
	Totals    MacroTotals `json:"totals"`
}

func FromMealPlan(plan *models.MealPlan) MealPlanDTO {
	out := MealPlanDTO{
		ID:        plan.ID,
		StudentID: plan.StudentID,
		Title:     plan.Title,
		Notes:     plan.Notes,
		Meals:     make([]MealDTO, 0, len(plan.Meals)),
	}

	for _, meal := range plan.Meals {
		m := MealDTO{
			ID:    meal.ID,
			Name:  meal.Name,
			Time:  meal.Time,
			Foods: make([]MealFoodDTO, 0, len(meal.Foods)),
		}
		for _, f := range meal.Foods {
			m.Foods = append(m.Foods, MealFoodDTO{
				ID:       f.ID,
				Name:     f.Name,
				Quantity: f.Quantity,
				Calories: f.Calories,
				Protein:  f.Protein,
				Carbs:    f.Carbs,
				Fat:      f.Fat,
			})
			out.Totals.Calories += f.Calories
			out.Totals.Protein += f.Protein
			out.Totals.Carbs += f.Carbs
			out.Totals.Fat += f.Fat
		}
		out.Meals = append(out.Meals, m)
	}

	return out
}
