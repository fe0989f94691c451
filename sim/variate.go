package sim

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// Variates derives random variates from a uniform Source by inverse transform.
// Every method consumes exactly one draw and returns it next to the variate,
// so event records can show the number that produced each value.
type Variates struct {
	src Source
}

// NewVariates wraps src. Panics on a nil source.
func NewVariates(src Source) *Variates {
	if src == nil {
		panic("NewVariates: src must not be nil")
	}
	return &Variates{src: src}
}

// Uniform returns the next raw draw in [0,1).
func (v *Variates) Uniform() float64 {
	return v.src.Float64()
}

// Exponential returns -mean*ln(1-r) and the draw r. Panics if mean <= 0.
func (v *Variates) Exponential(mean float64) (float64, float64) {
	if mean <= 0 {
		panic(fmt.Sprintf("Exponential: mean must be > 0, got %v", mean))
	}
	r := v.src.Float64()
	return ExponentialQuantile(mean, r), r
}

// UniformRange returns a+(b-a)*r and the draw r. Panics if a >= b.
func (v *Variates) UniformRange(a, b float64) (float64, float64) {
	if a >= b {
		panic(fmt.Sprintf("UniformRange: need a < b, got a=%v b=%v", a, b))
	}
	r := v.src.Float64()
	return UniformQuantile(a, b, r), r
}

// ExponentialQuantile maps r in [0,1) onto an exponential with the given mean.
// The result is bit-identical to -mean*ln(1-r).
func ExponentialQuantile(mean, r float64) float64 {
	return mean * distuv.Exponential{Rate: 1}.Quantile(r)
}

// UniformQuantile maps r in [0,1) onto [a,b).
func UniformQuantile(a, b, r float64) float64 {
	return distuv.Uniform{Min: a, Max: b}.Quantile(r)
}
