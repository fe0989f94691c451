package sim

import "fmt"

// Occupancy counts the people physically inside the library.
type Occupancy struct {
	Queued    int `json:"queued"`
	InService int `json:"in_service"`
	Reading   int `json:"reading"`
}

// Total includes the two clerks, who are always present.
func (o Occupancy) Total() int {
	return NumServers + o.Queued + o.InService + o.Reading
}

// AdmissionPolicy decides whether an arriving client may enter.
type AdmissionPolicy interface {
	Admit(occ Occupancy) (admitted bool, reason string)
}

// CapacityAdmission turns away arrivals once the building is full.
// There is no backpressure or retry: a rejected client simply leaves.
type CapacityAdmission struct {
	Max int
}

// NewCapacityAdmission creates a CapacityAdmission. Panics if max <= 0.
// A max at or below NumServers is legal and rejects every arrival.
func NewCapacityAdmission(max int) *CapacityAdmission {
	if max <= 0 {
		panic(fmt.Sprintf("NewCapacityAdmission: max must be > 0, got %d", max))
	}
	return &CapacityAdmission{Max: max}
}

// Admit rejects when current occupancy already meets or exceeds the maximum.
func (c *CapacityAdmission) Admit(occ Occupancy) (bool, string) {
	if total := occ.Total(); total >= c.Max {
		return false, fmt.Sprintf("capacity reached (%d/%d)", total, c.Max)
	}
	return true, ""
}
