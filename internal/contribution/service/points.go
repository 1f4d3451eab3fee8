package service

// Classify returns the points of a merged contribution from its line counts.
// Rules are checked in order and the first match wins.
func Classify(additions, deletions int) int {
	switch {
	case deletions > 2*additions && deletions > 1000:
		return 100
	case additions > 500:
		return 50
	case deletions > 2*additions && deletions > 100:
		return 30
	case additions > 100:
		return 15
	case additions < 10:
		return 5
	default:
		return 10
	}
}
