package models

type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snacks    string `json:"snacks"`
}

type MealPlanDay struct {
	Day   int   `json:"day"`
	Meals Meals `json:"meals"`
}

// MealPlan is a seven day plan generated by the server.
type MealPlan struct {
	CalorieTarget float64       `json:"calorie_target"`
	Days          []MealPlanDay `json:"days"`
}

type Exercise struct {
	Name string `json:"name"`
	Sets string `json:"sets"`
	Rest string `json:"rest"`
}

type WorkoutDay struct {
	Day       int        `json:"day"`
	Warmup    string     `json:"warmup"`
	Exercises []Exercise `json:"exercises"`
	Cooldown  string     `json:"cooldown"`
}

// WorkoutPlan is a sequence of training days.
type WorkoutPlan []WorkoutDay

type WorkoutPlanRequest struct {
	Goal string `json:"goal"`
}

type WorkoutPlanResponse struct {
	WorkoutPlan WorkoutPlan `json:"workout_plan"`
}
