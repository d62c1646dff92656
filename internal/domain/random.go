package domain

import (
	"math/rand/v2"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// RandomSource supplies uniform draws in [lo, hi).
type RandomSource interface {
	Uniform(lo, hi float64) float64
}

type globalSource struct{}

func (globalSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*rand.Float64()
}

// DefaultSource draws from the process-seeded global generator, which is safe
// for concurrent use.
var DefaultSource RandomSource = globalSource{}

// SeededSource is a reproducible source. Draws are serialized so one source
// can be shared between goroutines, although the resulting order of draws is
// then scheduling-dependent.
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a source whose sequence is fully determined by seed.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewKeyedSource returns a seeded source whose sequence is determined by seed
// and key together.
func NewKeyedSource(seed uint64, key string) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewPCG(seed, xxhash.Sum64String(key)))}
}

func (s *SeededSource) Uniform(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + (hi-lo)*s.rng.Float64()
}

// FixedSource returns the same position within every requested range:
// 0 always yields lo, values approaching 1 yield the top of the range.
type FixedSource float64

func (f FixedSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*float64(f)
}

// SourceFunc returns the random source for one request identified by key.
type SourceFunc func(key string) RandomSource

// SharedSource serves src to every request. A nil src selects DefaultSource.
func SharedSource(src RandomSource) SourceFunc {
	src = sourceOrDefault(src)
	return func(string) RandomSource { return src }
}

// KeyedSources gives every key its own stream derived from seed, so repeating
// a request reproduces its draws whatever ran before it.
func KeyedSources(seed uint64) SourceFunc {
	return func(key string) RandomSource { return NewKeyedSource(seed, key) }
}

func sourceOrDefault(src RandomSource) RandomSource {
	if src == nil {
		return DefaultSource
	}
	return src
}
