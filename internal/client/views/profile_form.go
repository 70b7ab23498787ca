package views

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/healthplanner/internal/client/client"
	"github.com/dmitrijs2005/healthplanner/internal/client/models"
	"github.com/dmitrijs2005/healthplanner/internal/common"
)

const (
	SaveFallback = "Save failed"
	SavedMessage = "Profile saved!"
)

// ProfileSaver is the part of the API client the form submits to.
type ProfileSaver interface {
	SaveProfile(ctx context.Context, p models.Profile) (models.Profile, error)
}

// ProfileForm holds the editable text of a profile. List fields are edited
// as one comma separated string each.
type ProfileForm struct {
	Age                string
	Gender             string
	Weight             string
	Height             string
	DietaryPreferences string
	ExistingConditions string

	// Message is the inline text shown under the form: a local parse
	// error, the server's detail, or SavedMessage.
	Message string
	Saved   bool
}

func NewProfileForm() *ProfileForm {
	return &ProfileForm{Gender: string(models.GenderMale)}
}

// Seed fills the form from a loaded profile.
func (f *ProfileForm) Seed(p models.Profile) {
	f.Age = strconv.Itoa(p.Age)
	f.Gender = string(p.Gender)
	f.Weight = formatFloat(p.Weight)
	f.Height = formatFloat(p.Height)
	f.DietaryPreferences = JoinList(p.DietaryPreferences)
	f.ExistingConditions = JoinList(p.ExistingConditions)
}

// Parse converts the form text into a profile. Errors wrap
// common.ErrInvalidInput and name the offending field.
func (f *ProfileForm) Parse() (models.Profile, error) {
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil || age < 1 {
		return models.Profile{}, fmt.Errorf("%w: age must be a whole number of at least 1", common.ErrInvalidInput)
	}

	gender := models.Gender(strings.ToLower(strings.TrimSpace(f.Gender)))
	if !gender.Valid() {
		return models.Profile{}, fmt.Errorf("%w: gender must be male, female or other", common.ErrInvalidInput)
	}

	weight, err := parsePositive(f.Weight)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: weight must be a positive number", common.ErrInvalidInput)
	}
	height, err := parsePositive(f.Height)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: height must be a positive number", common.ErrInvalidInput)
	}

	return models.Profile{
		Age:                age,
		Gender:             gender,
		Weight:             weight,
		Height:             height,
		DietaryPreferences: SplitList(f.DietaryPreferences),
		ExistingConditions: SplitList(f.ExistingConditions),
	}, nil
}

// Submit parses and saves the form. A parse failure sends nothing. On
// success the form is marked Saved and no refetch happens.
func (f *ProfileForm) Submit(ctx context.Context, s ProfileSaver) error {
	f.Message, f.Saved = "", false

	p, err := f.Parse()
	if err != nil {
		f.Message = strings.TrimPrefix(err.Error(), common.ErrInvalidInput.Error()+": ")
		return err
	}

	if _, err := s.SaveProfile(ctx, p); err != nil {
		f.Message = client.DetailOf(err, SaveFallback)
		return err
	}

	f.Saved, f.Message = true, SavedMessage
	return nil
}

// SplitList turns "a, b,, c " into ["a" "b" "c"]. The result is never nil so
// it encodes as an empty JSON list.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinList is the display form of a list field.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not positive: %v", v)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
