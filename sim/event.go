package sim

// EventKind names what happened in an event record.
type EventKind string

const (
	EventInit       EventKind = "init"
	EventArrival    EventKind = "arrival"
	EventServiceEnd EventKind = "service_end"
	EventReadingEnd EventKind = "reading_end"
)

// Tie-break priorities for simultaneous events. Service completions use the
// server id (1 or 2) as their priority.
const (
	priorityReadingEnd = 3
	priorityArrival    = 4
)

// Event defines the interface for all simulation events.
// Each event has a Timestamp, a fixed Priority and a TieBreak id that
// together give a strict total order, and an Execute method that applies
// the state transition when invoked.
type Event interface {
	Timestamp() float64
	Priority() int
	TieBreak() int
	Kind() EventKind
	Execute(*Engine)
}

// ArrivalEvent represents the arrival of the next client.
// Arrivals lose every tie.
type ArrivalEvent struct {
	time float64
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 { return e.time }
func (e *ArrivalEvent) Priority() int      { return priorityArrival }
func (e *ArrivalEvent) TieBreak() int      { return 0 }
func (e *ArrivalEvent) Kind() EventKind    { return EventArrival }

// Execute admits or rejects the client and schedules the next arrival.
func (e *ArrivalEvent) Execute(eng *Engine) {
	eng.handleArrival()
}

// ServiceEndEvent represents a clerk finishing with its client.
type ServiceEndEvent struct {
	time   float64
	Server int // 1 or 2
}

// Timestamp returns the scheduled completion time.
func (e *ServiceEndEvent) Timestamp() float64 { return e.time }
func (e *ServiceEndEvent) Priority() int      { return e.Server }
func (e *ServiceEndEvent) TieBreak() int      { return 0 }
func (e *ServiceEndEvent) Kind() EventKind    { return EventServiceEnd }

// Execute releases the clerk, routes the client and pulls the queue head.
func (e *ServiceEndEvent) Execute(eng *Engine) {
	eng.handleServiceEnd(e.Server)
}

// ReadingEndEvent represents a client finishing an on-site reading session.
// Simultaneous reading ends are ordered by client id.
type ReadingEndEvent struct {
	time     float64
	ClientID int
}

// Timestamp returns the scheduled end of reading.
func (e *ReadingEndEvent) Timestamp() float64 { return e.time }
func (e *ReadingEndEvent) Priority() int      { return priorityReadingEnd }
func (e *ReadingEndEvent) TieBreak() int      { return e.ClientID }
func (e *ReadingEndEvent) Kind() EventKind    { return EventReadingEnd }

// Execute sends the client back to a clerk to return the item.
func (e *ReadingEndEvent) Execute(eng *Engine) {
	eng.handleReadingEnd(e.ClientID)
}
