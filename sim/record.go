package sim

import "sort"

// ReadingPlace is where a client who borrowed an item chose to read it.
type ReadingPlace string

const (
	PlaceHome    ReadingPlace = "home"
	PlaceLibrary ReadingPlace = "library"
)

// ReadDecision is the retire-or-read outcome after a RequestItem service.
type ReadDecision struct {
	Draw     float64      `json:"draw"`
	Place    ReadingPlace `json:"place"`
	Duration float64      `json:"duration,omitempty"` // only when reading on site
	End      float64      `json:"end,omitempty"`      // only when reading on site
}

// ServerRecord is one clerk's state after an event.
type ServerRecord struct {
	ID                int         `json:"id"`
	State             ServerState `json:"state"`
	ClientID          int         `json:"client_id,omitempty"`
	CompletionTime    float64     `json:"completion_time,omitempty"`
	ServiceDraw       *float64    `json:"service_draw,omitempty"`     // set when a service started this event
	ServiceDuration   *float64    `json:"service_duration,omitempty"` // set when a service started this event
	IdleThisIteration float64     `json:"idle_this_iteration"`
	IdleTotal         float64     `json:"idle_total"`
}

// ClientSnapshot is one live client's state after an event.
type ClientSnapshot struct {
	ID          int             `json:"id"`
	State       ClientState     `json:"state"`
	Server      int             `json:"server,omitempty"`
	ArrivalTime float64         `json:"arrival_time"`
	Kind        TransactionKind `json:"kind,omitempty"`
	ReadingEnd  float64         `json:"reading_end,omitempty"`
}

// EventRecord is the full state vector emitted after each processed event.
// Records carry no wall-clock time or random ids, so two runs with the same
// seed and configuration produce identical records.
type EventRecord struct {
	Iteration int       `json:"iteration"`
	Kind      EventKind `json:"kind"`
	ClientID  int       `json:"client_id,omitempty"`
	Clock     float64   `json:"clock"`

	// Set only when an inter-arrival gap was sampled during this event.
	ArrivalInterval *float64 `json:"arrival_interval,omitempty"`
	ArrivalDraw     *float64 `json:"arrival_draw,omitempty"`
	NextArrival     float64  `json:"next_arrival"`

	// Set only when a client entered service during this event.
	TransactionDraw *float64        `json:"transaction_draw,omitempty"`
	TransactionKind TransactionKind `json:"transaction_kind,omitempty"`

	ReadDecision *ReadDecision `json:"read_decision,omitempty"`

	Servers     [NumServers]ServerRecord `json:"servers"`
	QueueLength int                      `json:"queue_length"`
	Queue       []int                    `json:"queue"` // waiting client ids, head first
	Occupancy   int                      `json:"occupancy"`
	LibraryOpen bool                     `json:"library_open"`

	IdleThisIteration [NumServers]float64 `json:"idle_this_iteration"`
	IdleTotal         float64             `json:"idle_total"`
	PermanenceTotal   float64             `json:"permanence_total"`
	Departed          int                 `json:"departed"`

	Clients []ClientSnapshot `json:"clients"`
}

// stepInfo collects what happened during the event being processed.
type stepInfo struct {
	kind            EventKind
	clientID        int
	arrivalInterval *float64
	arrivalDraw     *float64
	transactionDraw *float64
	transactionKind TransactionKind
	readDecision    *ReadDecision
}

// record builds the EventRecord for the event just processed.
func (eng *Engine) record() *EventRecord {
	occ := eng.Occupancy()
	rec := &EventRecord{
		Iteration:         eng.iteration,
		Kind:              eng.step.kind,
		ClientID:          eng.step.clientID,
		Clock:             eng.clock,
		ArrivalInterval:   eng.step.arrivalInterval,
		ArrivalDraw:       eng.step.arrivalDraw,
		NextArrival:       eng.nextArrival,
		TransactionDraw:   eng.step.transactionDraw,
		TransactionKind:   eng.step.transactionKind,
		ReadDecision:      eng.step.readDecision,
		QueueLength:       eng.queue.Len(),
		Queue:             append(make([]int, 0, eng.queue.Len()), eng.queue.Items()...),
		Occupancy:         occ.Total(),
		LibraryOpen:       occ.Total() < eng.cfg.CapacityMax,
		IdleThisIteration: eng.metrics.IdleThisIteration,
		IdleTotal:         eng.metrics.IdleSum(),
		PermanenceTotal:   eng.metrics.PermanenceTotal,
		Departed:          eng.metrics.Departed,
	}
	for i, srv := range eng.servers {
		sr := ServerRecord{
			ID:                srv.ID,
			State:             srv.State,
			ClientID:          srv.ClientID,
			CompletionTime:    srv.CompletionTime,
			IdleThisIteration: eng.metrics.IdleThisIteration[i],
			IdleTotal:         eng.metrics.IdleTotal[i],
		}
		if srv.Assigned {
			draw, duration := srv.LastDraw, srv.LastDuration
			sr.ServiceDraw = &draw
			sr.ServiceDuration = &duration
		}
		rec.Servers[i] = sr
	}
	rec.Clients = eng.clientSnapshots()
	return rec
}

// clientSnapshots lists every client still in the system, including those
// departed during the current event, ordered by id.
func (eng *Engine) clientSnapshots() []ClientSnapshot {
	out := make([]ClientSnapshot, 0, len(eng.clients))
	for _, c := range eng.clients {
		snap := ClientSnapshot{
			ID:          c.ID,
			State:       c.State,
			Server:      c.Server,
			ArrivalTime: c.ArrivalTime,
			Kind:        c.Kind,
		}
		if c.State == StateReading {
			snap.ReadingEnd = c.ReadingEnd
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
