package trkhits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelford(t *testing.T) {
	var w Welford
	assert.Zero(t, w.Mean())
	assert.Zero(t, w.Variance())

	w.Add(3)
	assert.Equal(t, 3., w.Mean())
	assert.Zero(t, w.Variance())

	w = Welford{}
	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		w.Add(x)
	}
	assert.EqualValues(t, 8, w.N)
	assert.InDelta(t, 5., w.Mean(), 1e-12)
	assert.InDelta(t, 32./7., w.Variance(), 1e-12)
}

func TestWelfordMerge(t *testing.T) {
	xs := []float64{1, 8, 2, 9, 4, 4, 11, 0.5}

	var all, a, b Welford
	for i, x := range xs {
		all.Add(x)
		if i < 3 {
			a.Add(x)
		} else {
			b.Add(x)
		}
	}

	a.Merge(b)
	assert.Equal(t, all.N, a.N)
	assert.InDelta(t, all.Mean(), a.Mean(), 1e-12)
	assert.InDelta(t, all.Variance(), a.Variance(), 1e-12)

	var empty Welford
	empty.Merge(all)
	assert.Equal(t, all, empty)

	all.Merge(Welford{})
	assert.Equal(t, empty, all)
}
