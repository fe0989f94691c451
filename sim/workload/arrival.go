package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

// Arrival process names accepted in configuration.
const (
	ProcessFixed       = "fixed"
	ProcessExponential = "exponential"
)

// validProcesses maps accepted arrival process strings.
var validProcesses = map[string]bool{
	ProcessFixed:       true,
	ProcessExponential: true,
	"":                 true, // empty defaults to fixed
}

// IsValidProcess returns true if name is a recognized arrival process.
func IsValidProcess(name string) bool {
	return validProcesses[name]
}

// Source supplies uniform draws in [0,1).
type Source interface {
	Float64() float64
}

// ArrivalSpec configures the inter-arrival time process.
// Interval is the fixed gap for "fixed" and the mean gap for "exponential".
type ArrivalSpec struct {
	Process  string  `yaml:"process" json:"process"`
	Interval float64 `yaml:"interval" json:"interval"`
}

// Interval is one sampled inter-arrival gap. Drawn is false when the
// process consumed no random number.
type Interval struct {
	Value float64
	Draw  float64
	Drawn bool
}

// ArrivalSampler generates inter-arrival gaps.
type ArrivalSampler interface {
	// SampleInterval returns the next gap. Always positive.
	SampleInterval(src Source) Interval
}

// FixedSampler returns the same gap every time and consumes no draws.
type FixedSampler struct {
	interval float64
}

func (s *FixedSampler) SampleInterval(_ Source) Interval {
	return Interval{Value: s.interval}
}

// ExponentialSampler generates exponentially-distributed gaps (Poisson arrivals).
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) SampleInterval(src Source) Interval {
	r := src.Float64()
	gap := s.mean * distuv.Exponential{Rate: 1}.Quantile(r)
	if gap <= 0 {
		// r == 0 yields a zero gap; keep arrivals strictly ordered in time.
		logrus.Debugf("exponential arrival draw %v produced gap %v; using smallest positive gap", r, gap)
		gap = minGap
	}
	return Interval{Value: gap, Draw: r, Drawn: true}
}

// minGap is the smallest inter-arrival gap handed to the engine.
const minGap = 1e-9

// NewArrivalSampler creates an ArrivalSampler from a spec.
func NewArrivalSampler(spec ArrivalSpec) (ArrivalSampler, error) {
	if spec.Interval <= 0 {
		return nil, fmt.Errorf("arrival interval must be > 0, got %v", spec.Interval)
	}
	switch spec.Process {
	case "", ProcessFixed:
		return &FixedSampler{interval: spec.Interval}, nil
	case ProcessExponential:
		return &ExponentialSampler{mean: spec.Interval}, nil
	default:
		return nil, fmt.Errorf("unknown arrival process %q", spec.Process)
	}
}
