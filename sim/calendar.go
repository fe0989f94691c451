package sim

import "container/heap"

// Calendar implements a priority queue with deterministic ordering.
// Ordering: timestamp -> priority -> tie-break id.
//
// The engine never keeps a Calendar between events: pending events are
// derived from entity state each time one is needed (see Engine.calendar).
type Calendar struct {
	events []Event
}

// NewCalendar creates an empty calendar.
func NewCalendar() *Calendar {
	h := &Calendar{
		events: make([]Event, 0, NumServers+1),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *Calendar) Len() int {
	return len(h.events)
}

// Less implements heap.Interface with deterministic ordering
func (h *Calendar) Less(i, j int) bool {
	return eventBefore(h.events[i], h.events[j])
}

// eventBefore reports whether a runs before b.
// Order by: timestamp -> priority -> tie-break id.
func eventBefore(a, b Event) bool {
	// Primary: timestamp (lower first)
	if a.Timestamp() != b.Timestamp() {
		return a.Timestamp() < b.Timestamp()
	}

	// Secondary: priority (service 1, service 2, reading, arrival)
	if a.Priority() != b.Priority() {
		return a.Priority() < b.Priority()
	}

	// Tertiary: lower client id first among readers
	return a.TieBreak() < b.TieBreak()
}

// Swap implements heap.Interface
func (h *Calendar) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
}

// Push implements heap.Interface
func (h *Calendar) Push(x any) {
	h.events = append(h.events, x.(Event))
}

// Pop implements heap.Interface
func (h *Calendar) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[0 : n-1]
	return item
}

// Schedule adds an event to the calendar
func (h *Calendar) Schedule(e Event) {
	heap.Push(h, e)
}

// Peek returns the next event without removing it
func (h *Calendar) Peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0]
}

// calendar enumerates every pending event from current entity state:
// busy clerks, clients reading on site, and the next arrival.
func (eng *Engine) calendar() *Calendar {
	cal := NewCalendar()
	for _, srv := range eng.servers {
		if !srv.Idle() {
			cal.Schedule(&ServiceEndEvent{time: srv.CompletionTime, Server: srv.ID})
		}
	}
	for _, c := range eng.clients {
		if c.State == StateReading {
			cal.Schedule(&ReadingEndEvent{time: c.ReadingEnd, ClientID: c.ID})
		}
	}
	cal.Schedule(&ArrivalEvent{time: eng.nextArrival})
	return cal
}
