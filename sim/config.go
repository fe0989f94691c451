package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/library-sim/library-sim/sim/workload"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")

// probabilityTolerance absorbs float noise when checking that a mix sums to 1.
const probabilityTolerance = 1e-9

// ReadingConfig groups what happens after a client borrows an item.
type ReadingConfig struct {
	RetireHomeProbability float64 `yaml:"retire_home_probability" json:"retire_home_probability"` // takes the item home and leaves
	Duration              float64 `yaml:"duration" json:"duration"`                               // fixed on-site reading time
}

// Config is the full engine configuration, passed once at construction.
type Config struct {
	Arrivals           workload.ArrivalSpec `yaml:"arrivals" json:"arrivals"`
	Transactions       TransactionMix       `yaml:"transactions" json:"transactions"`
	Consult            UniformBounds        `yaml:"consult" json:"consult"`                           // consult service bounds
	RequestServiceMean float64              `yaml:"request_service_mean" json:"request_service_mean"` // mean of exponential request service
	Reading            ReadingConfig        `yaml:"reading" json:"reading"`
	TimeLimit          float64              `yaml:"time_limit" json:"time_limit"`           // absolute clock value; events after it never run
	IterationLimit     int                  `yaml:"iteration_limit" json:"iteration_limit"` // max events processed
	CapacityMax        int                  `yaml:"capacity_max" json:"capacity_max"`       // people inside, clerks included
	StartTime          float64              `yaml:"start_time" json:"start_time"`           // clock origin
}

// DefaultConfig returns the counter's standard operating parameters.
func DefaultConfig() Config {
	return Config{
		Arrivals:           workload.ArrivalSpec{Process: workload.ProcessFixed, Interval: 4},
		Transactions:       TransactionMix{Request: 0.45, Return: 0.45, Consult: 0.10},
		Consult:            UniformBounds{A: 2, B: 5},
		RequestServiceMean: 6,
		Reading:            ReadingConfig{RetireHomeProbability: 0.60, Duration: 30},
		TimeLimit:          60,
		IterationLimit:     100000,
		CapacityMax:        20,
		StartTime:          0,
	}
}

// Validate checks value ranges and cross-field constraints.
func (c Config) Validate() error {
	if !workload.IsValidProcess(c.Arrivals.Process) {
		return invalid("unknown arrival process %q", c.Arrivals.Process)
	}
	if c.Arrivals.Interval <= 0 {
		return invalid("arrivals.interval must be > 0, got %v", c.Arrivals.Interval)
	}
	probabilities := []struct {
		name  string
		value float64
	}{
		{"transactions.request", c.Transactions.Request},
		{"transactions.return", c.Transactions.Return},
		{"transactions.consult", c.Transactions.Consult},
		{"reading.retire_home_probability", c.Reading.RetireHomeProbability},
	}
	for _, p := range probabilities {
		if p.value < 0 || p.value > 1 || math.IsNaN(p.value) {
			return invalid("%s must be within [0,1], got %v", p.name, p.value)
		}
	}
	sum := c.Transactions.Request + c.Transactions.Return + c.Transactions.Consult
	if math.Abs(sum-1) > probabilityTolerance {
		return invalid("transaction probabilities must sum to 1, got %v", sum)
	}
	if !(c.Consult.A < c.Consult.B) {
		return invalid("consult bounds need a < b, got a=%v b=%v", c.Consult.A, c.Consult.B)
	}
	if c.Consult.A < 0 {
		return invalid("consult.a must be >= 0, got %v", c.Consult.A)
	}
	if c.RequestServiceMean <= 0 {
		return invalid("request_service_mean must be > 0, got %v", c.RequestServiceMean)
	}
	if c.Reading.Duration <= 0 {
		return invalid("reading.duration must be > 0, got %v", c.Reading.Duration)
	}
	if c.TimeLimit <= 0 {
		return invalid("time_limit must be > 0, got %v", c.TimeLimit)
	}
	if c.IterationLimit <= 0 {
		return invalid("iteration_limit must be > 0, got %d", c.IterationLimit)
	}
	if c.CapacityMax < NumServers {
		return invalid("capacity_max must be >= %d, got %d", NumServers, c.CapacityMax)
	}
	if c.StartTime < 0 {
		return invalid("start_time must be >= 0, got %v", c.StartTime)
	}
	if c.StartTime >= c.TimeLimit {
		return invalid("start_time must be < time_limit, got start_time=%v time_limit=%v", c.StartTime, c.TimeLimit)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
