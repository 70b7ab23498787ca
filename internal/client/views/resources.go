package views

import (
	"context"

	"github.com/dmitrijs2005/healthplanner/internal/client/client"
	"github.com/dmitrijs2005/healthplanner/internal/client/models"
	"golang.org/x/sync/errgroup"
)

const (
	ProfileFallback     = "Failed to load profile"
	MealPlanFallback    = "Failed to load meal plan"
	WorkoutPlanFallback = "Failed to load workout plan"
)

func NewProfileView(c client.Client) *Resource[models.Profile] {
	return NewResource[models.Profile]("profile", ProfileFallback, c.GetProfile)
}

func NewMealPlanView(c client.Client) *Resource[models.MealPlan] {
	return NewResource[models.MealPlan]("meal plan", MealPlanFallback, c.MealPlan)
}

// NewWorkoutPlanView asks for a plan with no explicit goal; the server
// derives one from the profile.
func NewWorkoutPlanView(c client.Client) *Resource[models.WorkoutPlan] {
	return NewResource[models.WorkoutPlan]("workout plan", WorkoutPlanFallback, func(ctx context.Context) (models.WorkoutPlan, error) {
		return c.WorkoutPlan(ctx, "")
	})
}

// PlanPage shows the meal plan and the workout plan side by side. The two
// fetches run concurrently and fail independently.
type PlanPage struct {
	Meal    *Resource[models.MealPlan]
	Workout *Resource[models.WorkoutPlan]
}

func NewPlanPage(c client.Client) *PlanPage {
	return &PlanPage{Meal: NewMealPlanView(c), Workout: NewWorkoutPlanView(c)}
}

// Load mounts both views and waits for both to settle. Only context errors
// are returned; fetch failures live in each view's snapshot.
func (p *PlanPage) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := p.Meal.Load(gctx)
		return err
	})
	g.Go(func() error {
		_, err := p.Workout.Load(gctx)
		return err
	})
	return g.Wait()
}

func (p *PlanPage) Unmount() {
	p.Meal.Unmount()
	p.Workout.Unmount()
}
