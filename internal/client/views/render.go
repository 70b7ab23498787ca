package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/healthplanner/internal/client/models"
)

// Render draws a resource in whatever state it is in.
func Render[T any](name string, s Snapshot[T], draw func(T) string) string {
	switch s.State {
	case Loaded:
		return draw(s.Data)
	case Failed:
		return RenderError(s.Message)
	default:
		return RenderLoading(name)
	}
}

func RenderLoading(name string) string {
	return mutedStyle.Render("Loading " + name + "…")
}

func RenderError(msg string) string {
	return errorStyle.Render(msg)
}

func RenderSuccess(msg string) string {
	return successStyle.Render(msg)
}

func RenderHome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Welcome to HealthPlanner"),
		"Create your profile and generate AI-powered meal & workout plans.",
	)
}

func RenderNotFound(name string) string {
	return RenderError(fmt.Sprintf("404 – %q not found", name)) + "\n" +
		mutedStyle.Render("Type help to see available commands")
}

func RenderProfile(p models.Profile) string {
	lines := []string{
		titleStyle.Render("My Health Profile"),
		field("Age", strconv.Itoa(p.Age)),
		field("Gender", string(p.Gender)),
		field("Weight (kg)", formatFloat(p.Weight)),
		field("Height (cm)", formatFloat(p.Height)),
		field("Dietary preferences", orNone(JoinList(p.DietaryPreferences))),
		field("Existing conditions", orNone(JoinList(p.ExistingConditions))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func RenderMealPlan(p models.MealPlan) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("7-Day Meal Plan (~%.0f kcal/day)", p.CalorieTarget)),
	}
	for _, d := range p.Days {
		lines = append(lines,
			dayStyle.Render(fmt.Sprintf("Day %d", d.Day)),
			"  "+field("Breakfast", d.Meals.Breakfast),
			"  "+field("Lunch", d.Meals.Lunch),
			"  "+field("Dinner", d.Meals.Dinner),
			"  "+field("Snacks", d.Meals.Snacks),
			"",
		)
	}
	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, lines...), "\n ")
}

func RenderWorkoutPlan(p models.WorkoutPlan) string {
	lines := []string{titleStyle.Render("Personalized Workout Plan")}
	for _, d := range p {
		lines = append(lines,
			dayStyle.Render(fmt.Sprintf("Day %d", d.Day)),
			"  "+field("Warm-up", d.Warmup),
			"  "+labelStyle.Render("Exercises:"),
		)
		for _, ex := range d.Exercises {
			lines = append(lines, fmt.Sprintf("    • %s — %s (rest %s)", ex.Name, ex.Sets, ex.Rest))
		}
		lines = append(lines, "  "+field("Cool-down", d.Cooldown), "")
	}
	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, lines...), "\n ")
}

// RenderForm shows the form's current values and its inline message.
func RenderForm(f *ProfileForm) string {
	lines := []string{
		field("Age", f.Age),
		field("Gender", f.Gender),
		field("Weight (kg)", f.Weight),
		field("Height (cm)", f.Height),
		field("Dietary preferences", f.DietaryPreferences),
		field("Existing conditions", f.ExistingConditions),
	}
	switch {
	case f.Saved:
		lines = append(lines, RenderSuccess(f.Message))
	case f.Message != "":
		lines = append(lines, RenderError(f.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func orNone(s string) string {
	if s == "" {
		return mutedStyle.Render("none")
	}
	return s
}
