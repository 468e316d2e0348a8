// Package draw holds the pure synchronized-draw primitives: seed generation
// and the deterministic winner resolution every client replays.
package draw

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// NewSeed returns a fresh draw seed: the current unix-millisecond timestamp
// concatenated with a random 0-9999 suffix, as a decimal string. The value
// always fits in an int64, which is what Resolve relies on. Uniqueness is
// best effort; two draws issued within the same millisecond collide only if
// the random suffixes also match.
func NewSeed() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + strconv.Itoa(rand.IntN(10000))
}
