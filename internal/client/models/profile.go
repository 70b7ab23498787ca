package models

// Gender is one of the values the profile endpoint accepts.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the accepted values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Profile is the user's health profile. Weight is in kilograms, height in
// centimetres. The list fields keep the order the user typed them in.
type Profile struct {
	Age                int      `json:"age"`
	Gender             Gender   `json:"gender"`
	Weight             float64  `json:"weight"`
	Height             float64  `json:"height"`
	DietaryPreferences []string `json:"dietary_preferences"`
	ExistingConditions []string `json:"existing_conditions"`
}
