package models

import "time"

// HealthGoal tracks a target value the user works toward.
type HealthGoal struct {
	GoalID       string    `json:"goal_id"`
	UserID       string    `json:"user_id"`
	GoalType     string    `json:"goal_type"` // weight, calories, ...
	TargetValue  float64   `json:"target_value"`
	CurrentValue float64   `json:"current_value"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FoodLogEntry is one logged food item for a calendar day.
type FoodLogEntry struct {
	FoodID    string    `json:"food_id"`
	UserID    string    `json:"user_id"`
	MealType  string    `json:"meal_type"` // breakfast, lunch, dinner, snack
	FoodItem  string    `json:"food_item"`
	Calories  int       `json:"calories,omitempty"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}
