package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name  string
		items []GradedItem
		want  float64
	}{
		{
			name: "single item full marks",
			items: []GradedItem{
				{Score: 100, MaxPoints: 100, Weight: 1},
			},
			want: 100,
		},
		{
			name: "equal weights",
			items: []GradedItem{
				{Score: 80, MaxPoints: 100, Weight: 1},
				{Score: 60, MaxPoints: 100, Weight: 1},
			},
			want: 70,
		},
		{
			name: "heavier item dominates",
			items: []GradedItem{
				{Score: 100, MaxPoints: 100, Weight: 3},
				{Score: 50, MaxPoints: 100, Weight: 1},
			},
			want: 87.5,
		},
		{
			name: "different max points are normalized",
			items: []GradedItem{
				{Score: 5, MaxPoints: 10, Weight: 1},
				{Score: 90, MaxPoints: 100, Weight: 1},
			},
			want: 70,
		},
		{
			name:  "no items",
			items: nil,
			want:  0,
		},
		{
			name: "invalid items skipped",
			items: []GradedItem{
				{Score: 10, MaxPoints: 0, Weight: 1},
				{Score: 80, MaxPoints: 100, Weight: 1},
			},
			want: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WeightedAverage(tt.items), 0.001)
		})
	}
}

func TestPercentToGradePoints(t *testing.T) {
	tests := []struct {
		percent float64
		want    float64
	}{
		{100, 4.0},
		{93, 4.0},
		{92.9, 3.7},
		{90, 3.7},
		{85, 3.0},
		{70, 1.7},
		{60, 0.7},
		{59.9, 0.0},
		{0, 0.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PercentToGradePoints(tt.percent), "percent %.1f", tt.percent)
	}
}

func TestGPA(t *testing.T) {
	// Two 3-credit A courses and one 1-credit C course
	gpa := GPA([]float64{95, 94, 75}, []float64{3, 3, 1})
	assert.InDelta(t, (4.0*3+4.0*3+2.0*1)/7, gpa, 0.001)

	assert.Equal(t, 0.0, GPA(nil, nil))

	// Zero-credit courses are ignored
	assert.Equal(t, 4.0, GPA([]float64{95, 50}, []float64{3, 0}))
}
