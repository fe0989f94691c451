package sim

import (
	"fmt"

	"github.com/library-sim/library-sim/sim/trace"
	"github.com/sirupsen/logrus"
)

// handleArrival creates the next client, applies admission control and
// either starts its service, queues it or turns it away. The following
// arrival is always scheduled.
func (eng *Engine) handleArrival() {
	c := &Client{
		ID:          eng.nextClientID,
		ArrivalTime: eng.clock,
		QueuedAt:    eng.clock,
	}
	eng.nextClientID++
	eng.clients[c.ID] = c
	eng.step.clientID = c.ID

	occ := eng.Occupancy()
	admitted, reason := eng.admission.Admit(occ)
	if eng.trace.Enabled() {
		eng.trace.RecordAdmission(trace.AdmissionRecord{
			ClientID:  c.ID,
			Clock:     eng.clock,
			Admitted:  admitted,
			Occupancy: occ.Total(),
			Reason:    reason,
		})
	}

	switch {
	case !admitted:
		c.Rejected = true
		eng.depart(c, trace.CauseRejected)
	case eng.queue.Len() == 0 && eng.freeServer() != nil:
		eng.startService(c, eng.freeServer())
	default:
		c.State = StateQueued
		eng.queue.Enqueue(c.ID)
	}

	eng.scheduleNextArrival()
}

// handleServiceEnd frees clerk id, routes its client and pulls the queue head.
func (eng *Engine) handleServiceEnd(id int) {
	srv := eng.servers[id-1]
	c, ok := eng.clients[srv.ClientID]
	if !ok {
		panic(fmt.Sprintf("server %d finished serving unknown client %d", id, srv.ClientID))
	}
	srv.release()
	c.Server = 0
	eng.step.clientID = c.ID

	if c.Kind == RequestItem {
		eng.decideReading(c)
	} else {
		eng.depart(c, trace.CauseServed)
	}

	if next := eng.queue.Dequeue(); next != 0 {
		waiting, ok := eng.clients[next]
		if !ok {
			panic(fmt.Sprintf("queued client %d not found", next))
		}
		eng.startService(waiting, srv)
	}
}

// decideReading draws whether a borrower leaves with the item or reads on site.
func (eng *Engine) decideReading(c *Client) {
	r := eng.variates.Uniform()
	if r < eng.cfg.Reading.RetireHomeProbability {
		eng.step.readDecision = &ReadDecision{Draw: r, Place: PlaceHome}
		eng.depart(c, trace.CauseRetiredHome)
		return
	}
	end := eng.clock + eng.cfg.Reading.Duration
	c.State = StateReading
	c.ReadingEnd = end
	eng.readers++
	eng.step.readDecision = &ReadDecision{
		Draw:     r,
		Place:    PlaceLibrary,
		Duration: eng.cfg.Reading.Duration,
		End:      end,
	}
}

// handleReadingEnd sends a reader back to a clerk to return the item.
func (eng *Engine) handleReadingEnd(id int) {
	c, ok := eng.clients[id]
	if !ok || c.State != StateReading {
		panic(fmt.Sprintf("reading end for client %d which is not reading", id))
	}
	eng.readers--
	c.Kind = ReturnItem
	c.ReadingEnd = 0
	eng.step.clientID = id

	if srv := eng.freeServer(); srv != nil {
		eng.startService(c, srv)
		return
	}
	c.State = StateQueued
	c.QueuedAt = eng.clock
	eng.queue.Enqueue(id)
}

// startService classifies the client on first contact and assigns it to srv.
func (eng *Engine) startService(c *Client, srv *Server) {
	if !c.classified() {
		r := eng.variates.Uniform()
		c.Kind = eng.cfg.Transactions.Classify(r)
		eng.step.transactionDraw = &r
	}
	eng.step.transactionKind = c.Kind

	duration, draw := eng.service.Sample(c.Kind, eng.variates)
	srv.assign(c.ID, eng.clock, duration, draw)
	c.State = StateInService
	c.Server = srv.ID
}

// depart marks the client gone and accumulates its permanence. The client
// stays visible in this event's record and is purged before the next one.
func (eng *Engine) depart(c *Client, cause string) {
	c.State = StateDeparted
	c.Server = 0
	c.DepartedAt = eng.clock
	eng.metrics.recordDeparture(c.Permanence(), c.Rejected)
	eng.purge = append(eng.purge, c.ID)
	logrus.Debugf("[t=%9.4f] departed (%s) %s", eng.clock, cause, c)
	if eng.trace.Enabled() {
		eng.trace.RecordDeparture(trace.DepartureRecord{
			ClientID:   c.ID,
			Clock:      eng.clock,
			Permanence: c.Permanence(),
			Cause:      cause,
		})
	}
}

// freeServer returns the lowest-numbered idle clerk, or nil.
func (eng *Engine) freeServer() *Server {
	for _, srv := range eng.servers {
		if srv.Idle() {
			return srv
		}
	}
	return nil
}

// scheduleNextArrival samples the next inter-arrival gap from the arrivals stream.
func (eng *Engine) scheduleNextArrival() {
	iv := eng.arrivals.SampleInterval(eng.arrivalSrc)
	eng.nextArrival = eng.clock + iv.Value
	gap := iv.Value
	eng.step.arrivalInterval = &gap
	if iv.Drawn {
		draw := iv.Draw
		eng.step.arrivalDraw = &draw
	}
}
