// Package trace provides decision-trace recording for library simulation runs.
// This package has no dependencies on sim/. It stores pure data types.
package trace

// Departure causes.
const (
	CauseRejected    = "rejected"     // turned away at the door
	CauseServed      = "served"       // left after returning an item or consulting
	CauseRetiredHome = "retired_home" // borrowed an item and took it home
)

// AdmissionRecord captures a single admission decision at the door.
type AdmissionRecord struct {
	ClientID  int     `json:"client_id"`
	Clock     float64 `json:"clock"`
	Admitted  bool    `json:"admitted"`
	Occupancy int     `json:"occupancy"` // people inside before the decision, clerks included
	Reason    string  `json:"reason,omitempty"`
}

// DepartureRecord captures a client leaving the system.
type DepartureRecord struct {
	ClientID   int     `json:"client_id"`
	Clock      float64 `json:"clock"`
	Permanence float64 `json:"permanence"`
	Cause      string  `json:"cause"`
}
