// Tracks simulation-wide statistics: clerk idle time and client permanence.

package sim

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about the simulation
// for event records and final reporting.
type Metrics struct {
	lastTime float64 // time up to which idle time has been integrated

	IdleThisIteration [NumServers]float64 // idle time added by the current event only
	IdleTotal         [NumServers]float64 // cumulative idle time per clerk

	PermanenceTotal float64   // sum of permanence over departed clients
	Departed        int       // departed clients, rejected included
	Rejected        int       // clients turned away at the door
	Permanence      []float64 // one sample per departed client, rejected included
}

// NewMetrics creates Metrics integrating from start.
func NewMetrics(start float64) *Metrics {
	return &Metrics{
		lastTime:   start,
		Permanence: make([]float64, 0),
	}
}

// integrate advances the idle integral to now. A clerk earns idle time for
// the interval only if it was free for the whole of it, which holds because
// server state only changes at event times.
func (m *Metrics) integrate(now float64, servers [NumServers]*Server) {
	m.IdleThisIteration = [NumServers]float64{}
	dt := now - m.lastTime
	if dt > 0 {
		for i, srv := range servers {
			if srv.Idle() {
				m.IdleThisIteration[i] = dt
				m.IdleTotal[i] += dt
			}
		}
	}
	if now > m.lastTime {
		m.lastTime = now
	}
}

// recordDeparture accumulates permanence for a departing client.
func (m *Metrics) recordDeparture(permanence float64, rejected bool) {
	m.PermanenceTotal += permanence
	m.Departed++
	if rejected {
		m.Rejected++
	}
	m.Permanence = append(m.Permanence, permanence)
}

// IdleSum returns the cumulative idle time of both clerks.
func (m *Metrics) IdleSum() float64 {
	total := 0.0
	for _, v := range m.IdleTotal {
		total += v
	}
	return total
}

// Summary is a point-in-time view of the accumulated statistics.
type Summary struct {
	Departed          int     `json:"departed"`
	Rejected          int     `json:"rejected"`
	AveragePermanence float64 `json:"average_permanence"`
	PermanenceStdDev  float64 `json:"permanence_stddev"`
	MaxPermanence     float64 `json:"max_permanence"`
	IdleServer1       float64 `json:"idle_server_1"`
	IdleServer2       float64 `json:"idle_server_2"`
	IdleTotal         float64 `json:"idle_total"`
	Clock             float64 `json:"clock"`
	Iterations        int     `json:"iterations"`
}

// summary computes a Summary at the given clock and iteration count.
func (m *Metrics) summary(clock float64, iterations int) Summary {
	s := Summary{
		Departed:    m.Departed,
		Rejected:    m.Rejected,
		IdleServer1: m.IdleTotal[0],
		IdleServer2: m.IdleTotal[1],
		IdleTotal:   m.IdleSum(),
		Clock:       clock,
		Iterations:  iterations,
	}
	if n := len(m.Permanence); n > 0 {
		s.AveragePermanence = stat.Mean(m.Permanence, nil)
		if n > 1 {
			s.PermanenceStdDev = stat.StdDev(m.Permanence, nil)
		}
		for _, p := range m.Permanence {
			if p > s.MaxPermanence {
				s.MaxPermanence = p
			}
		}
	}
	return s
}

// Print displays aggregated metrics at the end of the simulation.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Clock                : %.2f min\n", s.Clock)
	fmt.Fprintf(w, "Iterations           : %d\n", s.Iterations)
	fmt.Fprintf(w, "Departed Clients     : %d\n", s.Departed)
	fmt.Fprintf(w, "Rejected Clients     : %d\n", s.Rejected)
	if s.Departed > 0 {
		fmt.Fprintf(w, "Average Permanence   : %.2f min\n", s.AveragePermanence)
		fmt.Fprintf(w, "Permanence StdDev    : %.2f min\n", s.PermanenceStdDev)
		fmt.Fprintf(w, "Max Permanence       : %.2f min\n", s.MaxPermanence)
	}
	fmt.Fprintf(w, "Idle Clerk 1         : %.2f min\n", s.IdleServer1)
	fmt.Fprintf(w, "Idle Clerk 2         : %.2f min\n", s.IdleServer2)
	fmt.Fprintf(w, "Idle Total           : %.2f min\n", s.IdleTotal)
}
