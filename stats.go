package trkhits

import "math"

// Welford accumulates the mean and variance of a stream of values in a
// single pass.
type Welford struct {
	N    int64
	mean float64
	m2   float64
}

func (w *Welford) Add(x float64) {
	w.N++
	delta := x - w.mean
	w.mean += delta / float64(w.N)
	w.m2 += delta * (x - w.mean)
}

// Merge folds the samples of other into w.
func (w *Welford) Merge(other Welford) {
	if other.N == 0 {
		return
	}
	if w.N == 0 {
		*w = other
		return
	}
	n := w.N + other.N
	delta := other.mean - w.mean
	w.mean += delta * float64(other.N) / float64(n)
	w.m2 += other.m2 + delta*delta*float64(w.N)*float64(other.N)/float64(n)
	w.N = n
}

func (w Welford) Mean() float64 {
	return w.mean
}

// Variance is the sample (n-1) variance, zero with fewer than two samples.
func (w Welford) Variance() float64 {
	if w.N < 2 {
		return 0
	}
	return w.m2 / float64(w.N-1)
}

func (w Welford) StdDev() float64 {
	return math.Sqrt(w.Variance())
}
