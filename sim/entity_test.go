package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServer_AssignRelease(t *testing.T) {
	// GIVEN an idle clerk
	s := newServer(1)
	assert.True(t, s.Idle())

	// WHEN a client is assigned at t=4 for 3 minutes
	s.assign(7, 4, 3, 0.2)

	// THEN the clerk is busy until 7 and remembers the draw
	assert.Equal(t, ServerBusy, s.State)
	assert.Equal(t, 7, s.ClientID)
	assert.Equal(t, 7.0, s.CompletionTime)
	assert.True(t, s.Assigned)
	assert.Equal(t, 0.2, s.LastDraw)

	// WHEN released
	id := s.release()

	// THEN the client id comes back and the clerk is idle
	assert.Equal(t, 7, id)
	assert.True(t, s.Idle())
	assert.Equal(t, 0, s.ClientID)

	s.resetEventFields()
	assert.False(t, s.Assigned)
}

func TestServer_Misuse_Panics(t *testing.T) {
	s := newServer(2)
	assert.Panics(t, func() { s.release() })
	s.assign(1, 0, 1, 0.5)
	assert.Panics(t, func() { s.assign(2, 0, 1, 0.5) })
}

func TestClient_Permanence(t *testing.T) {
	c := Client{ID: 1, ArrivalTime: 4, DepartedAt: 39}
	assert.Equal(t, 35.0, c.Permanence())
	assert.False(t, c.classified())
	c.Kind = Consult
	assert.True(t, c.classified())
	assert.Contains(t, c.String(), "ID: 1")
}
