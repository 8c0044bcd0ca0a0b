package profile

import (
	"math"
)

// Profile holds the user's personal details. Height and weight are in
// centimeters and kilograms when UseMetric is set, inches and pounds
// otherwise.
type Profile struct {
	Username   string  `json:"username"`
	Age        int     `json:"age,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Weight     float64 `json:"weight,omitempty"`
	GoalWeight float64 `json:"goalWeight,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	UseMetric  bool    `json:"useMetric"`
}

const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// BMI computes the body mass index from the profile measurements,
// rounded to one decimal. The second return value is false when height
// or weight is missing.
func (p Profile) BMI() (float64, bool) {
	if p.Height <= 0 || p.Weight <= 0 {
		return 0, false
	}
	var bmi float64
	if p.UseMetric {
		heightMeters := p.Height / 100
		bmi = p.Weight / (heightMeters * heightMeters)
	} else {
		bmi = 703 * p.Weight / (p.Height * p.Height)
	}
	return math.Round(bmi*10) / 10, true
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}
