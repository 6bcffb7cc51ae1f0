package plan

import "time"

// Meal is a single entry in a day's schedule.
type Meal struct {
	Type        string `json:"type"` // breakfast | lunch | dinner | snack
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Calories    int    `json:"calories,omitempty"`
}

// DayPlan is one day of a meal plan.
type DayPlan struct {
	Day   int    `json:"day"` // 1-based
	Meals []Meal `json:"meals"`
}

// MealPlan is a persisted multi-day plan. IDs are UUIDs minted at save time.
type MealPlan struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Title     string    `json:"title"`
	Dietary   string    `json:"dietary,omitempty"`
	Days      []DayPlan `json:"days"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroceryItem is one shopping line.
type GroceryItem struct {
	Name          string  `json:"name"`
	Quantity      string  `json:"quantity,omitempty"`
	EstimatedCost float64 `json:"estimated_cost,omitempty"`
}

// GroceryCategory groups items by store section.
type GroceryCategory struct {
	Name  string        `json:"name"`
	Items []GroceryItem `json:"items"`
}

// GroceryList is a persisted shopping list derived from a meal plan.
type GroceryList struct {
	ID             string            `json:"id"`
	MealPlanID     string            `json:"meal_plan_id"`
	UserID         string            `json:"user_id,omitempty"`
	Currency       string            `json:"currency,omitempty"`
	Categories     []GroceryCategory `json:"categories"`
	EstimatedTotal float64           `json:"estimated_total,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
