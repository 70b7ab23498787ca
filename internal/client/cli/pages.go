package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthplanner/internal/client/guard"
	"github.com/dmitrijs2005/healthplanner/internal/client/models"
	"github.com/dmitrijs2005/healthplanner/internal/client/session"
	"github.com/dmitrijs2005/healthplanner/internal/client/views"
)

var (
	routeProfile     = guard.Route{Name: "profile", Kind: guard.Protected}
	routeEditProfile = guard.Route{Name: "editprofile", Kind: guard.Protected}
	routePlan        = guard.Route{Name: "plan", Kind: guard.Protected}
	routeWhoAmI      = guard.Route{Name: "whoami", Kind: guard.Protected}
)

// errRedirected reports that a protected page was not shown.
var errRedirected = fmt.Errorf("redirected to %s", guard.LoginRoute)

// enter runs the route guard. While the session is being restored it waits;
// an anonymous user is sent to the login prompt and the page is not shown,
// even if that login succeeds.
func (a *App) enter(ctx context.Context, r guard.Route) error {
	if a.session.Current().Status == session.StatusRestoring {
		printlnFn(views.RenderLoading("session"))
	}

	d, err := a.guard.Enter(ctx, r)
	if err != nil {
		return err
	}

	switch d.Action {
	case guard.Render:
		return nil
	case guard.Redirect:
		printlnFn(views.RenderError(fmt.Sprintf("Please log in to open %s.", d.From)))
		if err := a.Login(ctx); err == nil {
			printlnFn(fmt.Sprintf("Type %s to continue.", d.From))
		}
		return errRedirected
	}
	return fmt.Errorf("unexpected guard decision %v", d.Action)
}

func (a *App) Home(context.Context) error {
	printlnFn(views.RenderHome())
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.enter(ctx, routeWhoAmI); err != nil {
		return err
	}
	u := a.session.Current().User
	printlnFn(fmt.Sprintf("%s <%s>", u.Username, u.Email))
	return nil
}

// Profile shows the stored health profile.
func (a *App) Profile(ctx context.Context) error {
	if err := a.enter(ctx, routeProfile); err != nil {
		return err
	}

	view := views.NewProfileView(a.api)
	printlnFn(views.RenderLoading(view.Name()))
	snap, err := view.Load(ctx)
	if err != nil {
		return err
	}
	printlnFn(views.Render(view.Name(), snap, views.RenderProfile))
	return nil
}

// Plan shows the meal plan and the workout plan. Both are fetched at once
// and each shows its own error.
func (a *App) Plan(ctx context.Context) error {
	if err := a.enter(ctx, routePlan); err != nil {
		return err
	}

	page := views.NewPlanPage(a.api)
	printlnFn(views.RenderLoading(page.Meal.Name()))
	printlnFn(views.RenderLoading(page.Workout.Name()))
	if err := page.Load(ctx); err != nil {
		page.Unmount()
		return err
	}

	printlnFn(views.Render(page.Meal.Name(), page.Meal.Snapshot(), views.RenderMealPlan))
	printlnFn(views.Render(page.Workout.Name(), page.Workout.Snapshot(), views.RenderWorkoutPlan))
	return nil
}

// EditProfile prefills the form from the stored profile (a missing profile
// just means an empty form), asks for each field and saves. Pressing Enter
// keeps the shown value.
//
// A form that failed to save is kept unsent and resumed by the next call, so
// the user can correct it and retry without retyping.
func (a *App) EditProfile(ctx context.Context) error {
	if err := a.enter(ctx, routeEditProfile); err != nil {
		return err
	}

	form, err := a.profileForm(ctx)
	if err != nil {
		return err
	}

	printlnFn("My Health Profile")

	fields := []struct {
		prompt string
		value  *string
	}{
		{"Age", &form.Age},
		{fmt.Sprintf("Gender (%s)", genderChoices()), &form.Gender},
		{"Weight (kg)", &form.Weight},
		{"Height (cm)", &form.Height},
		{"Dietary preferences (comma-separated, e.g. vegetarian, low-carb)", &form.DietaryPreferences},
		{"Existing conditions (comma-separated, e.g. knee pain, asthma)", &form.ExistingConditions},
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.prompt, *f.value, a.out)
		if err != nil {
			return err
		}
		*f.value = v
	}

	err = form.Submit(ctx, a.api)
	if err != nil {
		a.draft, a.draftUser = form, a.session.Current().Username()
	} else {
		a.draft = nil
	}
	printlnFn(views.RenderForm(form))
	return err
}

func (a *App) profileForm(ctx context.Context) (*views.ProfileForm, error) {
	if a.draft != nil && a.draftUser == a.session.Current().Username() {
		printlnFn("Resuming your unsaved changes.")
		return a.draft, nil
	}
	a.draft = nil

	form := views.NewProfileForm()
	snap, err := views.NewProfileView(a.api).Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap.State == views.Loaded {
		form.Seed(snap.Data)
	}
	return form, nil
}

func genderChoices() string {
	s := ""
	for i, g := range models.Genders {
		if i > 0 {
			s += "/"
		}
		s += string(g)
	}
	return s
}
