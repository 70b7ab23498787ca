package client

import (
	"context"

	"github.com/dmitrijs2005/healthplanner/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, username, password string) (models.Token, error)
	Me(ctx context.Context) (models.User, error)
	Register(ctx context.Context, username, email, password string) error
	GetProfile(ctx context.Context) (models.Profile, error)
	SaveProfile(ctx context.Context, p models.Profile) (models.Profile, error)
	WorkoutPlan(ctx context.Context, goal string) (models.WorkoutPlan, error)
	MealPlan(ctx context.Context) (models.MealPlan, error)
}
