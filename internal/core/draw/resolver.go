package draw

import (
	"strconv"

	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
)

// Resolve deterministically maps a seed onto a winner index in
// [0, rosterSize). For a fixed (seed, rosterSize) pair the result never
// changes, which is what lets every client reconstruct the same winner
// from the seed alone without re-running any randomness.
func Resolve(seed string, rosterSize int) (int, error) {
	if rosterSize <= 0 {
		return 0, apperrors.ErrInvalidRoster
	}

	n, err := strconv.ParseInt(seed, 10, 64)
	if err != nil || n < 0 {
		return 0, apperrors.ErrInvalidSeed
	}

	return int(n % int64(rosterSize)), nil
}
