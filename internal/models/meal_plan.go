package models

import "time"

type MealPlan struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"index" json:"coach_id"`

	StudentID uint `json:"student_id"`

	Title string `gorm:"size:100;not null" json:"title"`
	Notes string `gorm:"size:255" json:"notes"`

	Meals []Meal `gorm:"constraint:OnDelete:CASCADE;" json:"meals"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Meal struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MealPlanID uint `gorm:"index" json:"meal_plan_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Time     string `gorm:"size:5" json:"time"`
	Position int    `json:"position"`

	Foods []MealFood `gorm:"constraint:OnDelete:CASCADE;" json:"foods"`
}

type MealFood struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	MealID uint `gorm:"index" json:"meal_id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Quantity string  `gorm:"size:50" json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
