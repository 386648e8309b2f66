package utils

// GradedItem is one graded assignment feeding a course average
type GradedItem struct {
	Score     float64
	MaxPoints float64
	Weight    float64
}

// WeightedAverage returns the weighted percentage (0-100) over graded items.
// Items with non-positive MaxPoints or Weight are skipped. Returns 0 when
// nothing is gradable.
func WeightedAverage(items []GradedItem) float64 {
	var weightedSum, totalWeight float64
	for _, item := range items {
		if item.MaxPoints <= 0 || item.Weight <= 0 {
			continue
		}
		weightedSum += (item.Score / item.MaxPoints) * 100 * item.Weight
		totalWeight += item.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// PercentToGradePoints maps a percentage to 4.0-scale grade points
func PercentToGradePoints(percent float64) float64 {
	switch {
	case percent >= 93:
		return 4.0
	case percent >= 90:
		return 3.7
	case percent >= 87:
		return 3.3
	case percent >= 83:
		return 3.0
	case percent >= 80:
		return 2.7
	case percent >= 77:
		return 2.3
	case percent >= 73:
		return 2.0
	case percent >= 70:
		return 1.7
	case percent >= 67:
		return 1.3
	case percent >= 63:
		return 1.0
	case percent >= 60:
		return 0.7
	default:
		return 0.0
	}
}

// GPA computes the credit-weighted grade point average over course results.
// percents and credits must be the same length.
func GPA(percents, credits []float64) float64 {
	var pointSum, creditSum float64
	for i := range percents {
		if i >= len(credits) || credits[i] <= 0 {
			continue
		}
		pointSum += PercentToGradePoints(percents[i]) * credits[i]
		creditSum += credits[i]
	}
	if creditSum == 0 {
		return 0
	}
	return pointSum / creditSum
}
