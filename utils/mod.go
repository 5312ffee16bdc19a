package utils

// FindIndex returns the index of the first element equal to item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the element with the highest score, or -1 for
// an empty slice. The earliest element wins ties.
func ArgMax[T any](slice []T, score func(T) float64) int {
	maxIndex := -1
	maxScore := 0.0
	for i, v := range slice {
		if s := score(v); maxIndex < 0 || s > maxScore {
			maxIndex = i
			maxScore = s
		}
	}
	return maxIndex
}
