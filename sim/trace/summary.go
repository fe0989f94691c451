package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions    int
	AdmittedCount     int
	RejectedCount     int
	PeakOccupancy     int            // highest occupancy seen by an arrival
	MeanPermanence    float64        // over non-rejected departures
	MaxPermanence     float64        // over non-rejected departures
	DeparturesByCause map[string]int // cause -> count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DeparturesByCause: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	for _, a := range st.Admissions {
		if a.Admitted {
			summary.AdmittedCount++
		} else {
			summary.RejectedCount++
		}
		if a.Occupancy > summary.PeakOccupancy {
			summary.PeakOccupancy = a.Occupancy
		}
	}

	served := 0
	total := 0.0
	for _, d := range st.Departures {
		summary.DeparturesByCause[d.Cause]++
		if d.Cause == CauseRejected {
			continue
		}
		served++
		total += d.Permanence
		if d.Permanence > summary.MaxPermanence {
			summary.MaxPermanence = d.Permanence
		}
	}
	if served > 0 {
		summary.MeanPermanence = total / float64(served)
	}

	return summary
}
