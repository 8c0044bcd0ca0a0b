package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_BMI_Metric(t *testing.T) {
	p := Profile{Height: 170, Weight: 65, UseMetric: true}
	bmi, ok := p.BMI()
	require.True(t, ok)
	assert.InDelta(t, 22.5, bmi, 0.001)
	assert.Equal(t, CategoryNormal, BMICategory(bmi))
}

func TestProfile_BMI_Imperial(t *testing.T) {
	p := Profile{Height: 67, Weight: 143, UseMetric: false}
	bmi, ok := p.BMI()
	require.True(t, ok)
	assert.InDelta(t, 22.4, bmi, 0.001)
	assert.Equal(t, CategoryNormal, BMICategory(bmi))
}

func TestProfile_BMI_MissingMeasurements(t *testing.T) {
	testCases := []Profile{
		{},
		{Height: 180, UseMetric: true},
		{Weight: 80, UseMetric: true},
		{Height: -170, Weight: 65, UseMetric: true},
	}
	for _, p := range testCases {
		_, ok := p.BMI()
		assert.False(t, ok)
	}
}

func TestBMICategory(t *testing.T) {
	testCases := []struct {
		bmi      float64
		expected string
	}{
		{bmi: 16, expected: CategoryUnderweight},
		{bmi: 18.4, expected: CategoryUnderweight},
		{bmi: 18.5, expected: CategoryNormal},
		{bmi: 24.9, expected: CategoryNormal},
		{bmi: 25, expected: CategoryOverweight},
		{bmi: 29.9, expected: CategoryOverweight},
		{bmi: 30, expected: CategoryObese},
		{bmi: 42, expected: CategoryObese},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, BMICategory(tc.bmi), "bmi %v", tc.bmi)
	}
}
