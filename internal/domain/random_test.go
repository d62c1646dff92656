package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSource(t *testing.T) {
	a, b := NewSeededSource(11), NewSeededSource(11)
	for range 100 {
		v := a.Uniform(0, 20)
		assert.Equal(t, v, b.Uniform(0, 20))
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 20.0)
	}
}

func TestSeededSource_Concurrent(t *testing.T) {
	src := NewSeededSource(1)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				v := src.Uniform(5, 10)
				assert.GreaterOrEqual(t, v, 5.0)
				assert.Less(t, v, 10.0)
			}
		}()
	}
	wg.Wait()
}

func TestKeyedSources(t *testing.T) {
	sources := KeyedSources(42)

	first := sources("series/gilgit/2024-01-01/90")
	_ = sources("series/hunza/2024-01-01/90").Uniform(0, 1)
	again := sources("series/gilgit/2024-01-01/90")
	for range 50 {
		assert.Equal(t, first.Uniform(0, 20), again.Uniform(0, 20))
	}

	a := NewKeyedSource(42, "series/gilgit/2024-01-01/90").Uniform(0, 1)
	assert.NotEqual(t, a, NewKeyedSource(42, "series/gilgit/2024-01-01/30").Uniform(0, 1))
	assert.NotEqual(t, a, NewKeyedSource(43, "series/gilgit/2024-01-01/90").Uniform(0, 1))
}

func TestSharedSource(t *testing.T) {
	fixed := SharedSource(FixedSource(0.5))
	assert.Equal(t, 10.0, fixed("a").Uniform(0, 20))
	assert.Equal(t, 10.0, fixed("b").Uniform(0, 20))
	assert.Equal(t, DefaultSource, SharedSource(nil)("any"))
}

func TestFixedSource(t *testing.T) {
	assert.Equal(t, 0.0, FixedSource(0).Uniform(0, 20))
	assert.Equal(t, 10.0, FixedSource(0.5).Uniform(0, 20))
	assert.Equal(t, 7.5, FixedSource(0.5).Uniform(5, 10))
}

func TestDefaultSource(t *testing.T) {
	for range 100 {
		v := DefaultSource.Uniform(0, 15)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 15.0)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.25, 0.3},
		{-0.25, -0.3},
		{52.96, 53.0},
		{1.04, 1.0},
		{100, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, round1(tt.in), "round1(%v)", tt.in)
	}
}
