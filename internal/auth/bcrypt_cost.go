//go:build !race

package auth

func passwordHashCost() int {
	// Deliberately slow: the work factor is the defense against offline
	// brute-forcing of a leaked hash.
	return 12
}
