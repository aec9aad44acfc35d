package utils

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

// RandomSource produces uniform random numbers. Implementations used by
// concurrent callers must be safe for concurrent use.
type RandomSource interface {
	// Float64 returns a uniform value in [0,1)
	Float64() float64
	// IntN returns a uniform value in [0,n). n must be > 0.
	IntN(n int) int
}

// LockedSource is a mutex-guarded PCG source
type LockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a seeded source. A zero seed draws a random seed.
func NewRandomSource(seed uint64) *LockedSource {
	if seed == 0 {
		seed = rand.Uint64() //nolint:gosec // Game logic randomness, not security critical
	}
	return &LockedSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // Game logic randomness, not security critical
	}
}

func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

func (s *LockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(src RandomSource, min, max int) int {
	if min >= max {
		return min
	}
	return src.IntN(max-min+1) + min
}

// RandomFloat returns a random float in [min, max]. The upper bound is only
// reachable through rounding, which is enough for closed-range attributes.
func RandomFloat(src RandomSource, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + src.Float64()*(max-min)
}

// TruncateDecimal cuts the shortest decimal representation of v after the
// given number of fractional digits. Digits are dropped, never rounded.
func TruncateDecimal(v float64, digits int) float64 {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= digits {
		return v
	}
	cut := s[:dot]
	if digits > 0 {
		cut = s[:dot+1+digits]
	}
	out, err := strconv.ParseFloat(cut, 64)
	if err != nil {
		return v
	}
	return out
}

// SequenceSource replays fixed values. It is meant for deterministic tests
// and simulations: Floats feed Float64, Ints feed IntN (reduced modulo n).
// Exhausted sequences return zero.
type SequenceSource struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
}

func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

func (s *SequenceSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return ((v % n) + n) % n
}
