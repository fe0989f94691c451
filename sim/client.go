// Defines the Client struct that models one library visitor in the simulation.
// Tracks arrival time, memoized transaction kind and the reading schedule.

package sim

import (
	"fmt"
)

// ClientState represents the lifecycle state of a client.
// A client is in exactly one state at a time.
type ClientState string

const (
	StateQueued    ClientState = "queued"
	StateInService ClientState = "in_service"
	StateReading   ClientState = "reading"
	StateDeparted  ClientState = "departed"
)

// Client models a single visitor's lifecycle:
// arrive -> queue/serve -> maybe read -> queue/serve -> depart.
type Client struct {
	ID int // Monotonically increasing, assigned at arrival

	State  ClientState // queued, in_service, reading, departed
	Server int         // Server id (1|2) while in service, 0 otherwise

	ArrivalTime float64         // Absolute simulation time of arrival
	Kind        TransactionKind // Current transaction; KindNone until first service
	QueuedAt    float64         // Time of the last (re-)entry into the queue
	ReadingEnd  float64         // Scheduled end of reading; meaningful only while reading
	DepartedAt  float64         // Time of departure; meaningful only once departed
	Rejected    bool            // Turned away at the door for capacity
}

// classified reports whether the client already drew its first transaction kind.
func (c *Client) classified() bool {
	return c.Kind != KindNone
}

// Permanence is the time spent in the system. Only defined once departed.
func (c *Client) Permanence() float64 {
	return c.DepartedAt - c.ArrivalTime
}

// String returns a human-readable representation of a Client.
func (c Client) String() string {
	return fmt.Sprintf("Client: (ID: %d, State: %s, Kind: %s, ArrivalTime: %.2f)", c.ID, c.State, c.Kind, c.ArrivalTime)
}
