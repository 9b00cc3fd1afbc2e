package thread

import "github.com/google/uuid"

const directKeySeparator = ":"

// DirectKey returns the canonical key of the unordered pair (a, b).
// The lexicographically smaller identifier comes first, so DirectKey(a, b) == DirectKey(b, a).
func DirectKey(a, b uuid.UUID) string {
	first, second := a.String(), b.String()
	if first > second {
		first, second = second, first
	}
	return first + directKeySeparator + second
}
