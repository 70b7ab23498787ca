package apitest

import "github.com/dmitrijs2005/healthplanner/internal/client/models"

// DefaultMealPlan is a small deterministic plan.
func DefaultMealPlan() models.MealPlan {
	days := make([]models.MealPlanDay, 0, 7)
	for d := 1; d <= 7; d++ {
		days = append(days, models.MealPlanDay{
			Day: d,
			Meals: models.Meals{
				Breakfast: "Oatmeal with berries",
				Lunch:     "Quinoa salad",
				Dinner:    "Grilled tofu with vegetables",
				Snacks:    "Almonds",
			},
		})
	}
	return models.MealPlan{CalorieTarget: 2100, Days: days}
}

// DefaultWorkoutPlan is a two day plan.
func DefaultWorkoutPlan() models.WorkoutPlan {
	return models.WorkoutPlan{
		{
			Day:    1,
			Warmup: "5 min brisk walk",
			Exercises: []models.Exercise{
				{Name: "Squats", Sets: "3x12", Rest: "60s"},
				{Name: "Push-ups", Sets: "3x10", Rest: "60s"},
			},
			Cooldown: "Hamstring stretch",
		},
		{
			Day:       2,
			Warmup:    "Jumping jacks",
			Exercises: []models.Exercise{{Name: "Plank", Sets: "3x30s", Rest: "45s"}},
			Cooldown:  "Child's pose",
		},
	}
}
