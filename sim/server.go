package sim

import "fmt"

// NumServers is the number of clerks at the counter.
const NumServers = 2

// ServerState is the occupancy of a clerk.
type ServerState string

const (
	ServerIdle ServerState = "idle"
	ServerBusy ServerState = "busy"
)

// Server is one clerk. CompletionTime is defined iff State is ServerBusy.
type Server struct {
	ID             int // 1 or 2
	State          ServerState
	ClientID       int
	CompletionTime float64

	// Draw and duration of a service assigned during the current event.
	// Cleared at the start of every event; presentation only.
	Assigned     bool
	LastDraw     float64
	LastDuration float64
}

func newServer(id int) *Server {
	return &Server{ID: id, State: ServerIdle}
}

// Idle reports whether the clerk has no client.
func (s *Server) Idle() bool {
	return s.State == ServerIdle
}

// assign starts serving client until now+duration and records the draw.
func (s *Server) assign(clientID int, now, duration, draw float64) {
	if !s.Idle() {
		panic(fmt.Sprintf("server %d: assign while busy with client %d", s.ID, s.ClientID))
	}
	s.State = ServerBusy
	s.ClientID = clientID
	s.CompletionTime = now + duration
	s.Assigned = true
	s.LastDraw = draw
	s.LastDuration = duration
}

// release frees the clerk and returns the client it was serving.
func (s *Server) release() int {
	if s.Idle() {
		panic(fmt.Sprintf("server %d: release while idle", s.ID))
	}
	id := s.ClientID
	s.State = ServerIdle
	s.ClientID = 0
	s.CompletionTime = 0
	return id
}

// resetEventFields clears the per-event presentation fields.
func (s *Server) resetEventFields() {
	s.Assigned = false
	s.LastDraw = 0
	s.LastDuration = 0
}
