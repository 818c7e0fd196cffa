package domain

import "fmt"

// Random is the source of randomness for image sampling and mode assignment.
// *math/rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// SampleImages returns k images drawn without replacement: a uniformly shuffled prefix
// of the pool. The pool itself is left untouched.
func SampleImages(pool []ImageItem, k int, rng Random) ([]ImageItem, error) {
	if k < 0 || k > len(pool) {
		return nil, fmt.Errorf("%w: requested %d, pool has %d", ErrNotEnoughImages, k, len(pool))
	}
	shuffled := make([]ImageItem, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:k:k], nil
}

// AssignModeOrder flips the coin that decides whether the first half runs with feedback.
func AssignModeOrder(rng Random) bool {
	return rng.Intn(2) == 0
}

// ModeForIndex returns the feedback mode of question index for a session's mode order.
func ModeForIndex(modeOneFirst bool, index int) Mode {
	firstHalf := index < HalfSize
	if firstHalf == modeOneFirst {
		return ModeWithFeedback
	}
	return ModeNoFeedback
}
