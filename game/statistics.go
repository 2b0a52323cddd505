package game

import (
	"slices"

	"github.com/chewxy/math32"
)

// Sum ...
func Sum(data []float32) (result float32) {
	for _, v := range data {
		result += v
	}
	return result
}

// Mean ...
func Mean(data []float32) float32 {
	count := float32(len(data))
	if count == 0 {
		return 0
	}
	return Sum(data) / count
}

// Median ...
func Median(data []float32) float32 {
	count := len(data)
	if count == 0 {
		return 0
	}

	sorted := slices.Clone(data)
	slices.Sort(sorted)
	if count%2 != 0 {
		return sorted[count/2]
	}
	return (sorted[count/2-1] + sorted[count/2]) * 0.5
}

// Variance ...
func Variance(data []float32) (variance float32) {
	count := float32(len(data))
	if count == 0 {
		return 0
	}
	mean := Sum(data) / count

	for _, number := range data {
		variance += (number - mean) * (number - mean)
	}
	return variance / count
}

// StandardDeviation ...
func StandardDeviation(data []float32) float32 {
	return math32.Sqrt(Variance(data))
}
