// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/library-sim/library-sim/sim/trace"
	"github.com/library-sim/library-sim/sim/workload"
	"github.com/sirupsen/logrus"
)

// ErrExhausted is returned by Advance when no further event can run: the
// iteration limit was reached or the next event lies beyond the time limit.
var ErrExhausted = errors.New("simulation exhausted")

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithSource overrides the stream feeding transaction, service and reading draws.
func WithSource(src Source) Option {
	return func(eng *Engine) { eng.src = src }
}

// WithArrivalSource overrides the stream feeding stochastic inter-arrival gaps.
func WithArrivalSource(src Source) Option {
	return func(eng *Engine) { eng.arrivalSrc = src }
}

// WithTrace records admission decisions and departures into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(eng *Engine) { eng.trace = st }
}

// Engine is the core object that holds simulation time, entity state and the
// event loop. It is driven one event at a time by Advance and is not safe for
// concurrent use.
type Engine struct {
	cfg Config

	src        Source
	arrivalSrc Source
	variates   *Variates
	arrivals   workload.ArrivalSampler
	service    ServiceModel
	admission  AdmissionPolicy
	trace      *trace.SimulationTrace

	clock        float64
	nextArrival  float64
	nextClientID int
	iteration    int

	queue   *WaitQueue
	clients map[int]*Client
	servers [NumServers]*Server
	readers int
	purge   []int // clients departed during the previous event

	metrics *Metrics
	step    stepInfo
	initial *EventRecord

	exhausted bool
	finalized bool
}

// NewEngine validates cfg and builds an engine positioned at the clock
// origin with the first arrival scheduled. Draws come from rng's engine and
// arrivals subsystems unless overridden with WithSource or WithArrivalSource.
func NewEngine(cfg Config, rng *PartitionedRNG, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	arrivals, err := workload.NewArrivalSampler(cfg.Arrivals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	eng := &Engine{
		cfg:      cfg,
		arrivals: arrivals,
		service: ServiceModel{
			ConsultBounds: cfg.Consult,
			RequestMean:   cfg.RequestServiceMean,
		},
		admission:    NewCapacityAdmission(cfg.CapacityMax),
		clock:        cfg.StartTime,
		nextClientID: 1,
		queue:        &WaitQueue{},
		clients:      make(map[int]*Client),
		metrics:      NewMetrics(cfg.StartTime),
	}
	for i := range eng.servers {
		eng.servers[i] = newServer(i + 1)
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.src == nil || eng.arrivalSrc == nil {
		if rng == nil {
			return nil, errors.New("NewEngine: rng is nil and no source override was given")
		}
		logrus.Debugf("engine seeded with key %d", rng.Key())
		if eng.src == nil {
			eng.src = rng.ForSubsystem(SubsystemEngine)
		}
		if eng.arrivalSrc == nil {
			eng.arrivalSrc = rng.ForSubsystem(SubsystemArrivals)
		}
	}
	eng.variates = NewVariates(eng.src)

	eng.step = stepInfo{kind: EventInit}
	eng.scheduleNextArrival()
	eng.initial = eng.record()
	return eng, nil
}

// Initial returns the record of the initial state: clock at the origin,
// first arrival scheduled, both clerks idle.
func (eng *Engine) Initial() *EventRecord {
	return eng.initial
}

// Clock returns the current simulation time.
func (eng *Engine) Clock() float64 {
	return eng.clock
}

// Iteration returns the number of events processed so far.
func (eng *Engine) Iteration() int {
	return eng.iteration
}

// Occupancy counts the clients physically inside the library.
func (eng *Engine) Occupancy() Occupancy {
	occ := Occupancy{Queued: eng.queue.Len(), Reading: eng.readers}
	for _, srv := range eng.servers {
		if !srv.Idle() {
			occ.InService++
		}
	}
	return occ
}

// HasMore reports whether Advance would process another event.
func (eng *Engine) HasMore() bool {
	if eng.exhausted {
		return false
	}
	return eng.nextEvent() != nil
}

// Advance processes exactly one event and returns the resulting record.
// It returns ErrExhausted once no event can run; calling Advance again after
// that is a programming error and panics.
func (eng *Engine) Advance() (*EventRecord, error) {
	if eng.exhausted {
		panic("Engine.Advance: called after the simulation was exhausted")
	}
	eng.purgeDeparted()

	ev := eng.nextEvent()
	if ev == nil {
		eng.exhausted = true
		logrus.Debugf("[t=%9.4f] simulation exhausted after %d events", eng.clock, eng.iteration)
		return nil, ErrExhausted
	}

	eng.begin(ev)
	ev.Execute(eng)
	rec := eng.record()
	logrus.Debugf("[t=%9.4f] #%d %s client=%d queue=%s occupancy=%d",
		rec.Clock, rec.Iteration, rec.Kind, rec.ClientID, eng.queue, rec.Occupancy)
	return rec, nil
}

// Snapshot returns the accumulated statistics without advancing.
func (eng *Engine) Snapshot() Summary {
	return eng.metrics.summary(eng.clock, eng.iteration)
}

// Finalize integrates idle time up to the time limit and ends the run.
// Calling it more than once has no further effect. Advance must not be
// called afterwards.
func (eng *Engine) Finalize() Summary {
	if !eng.finalized {
		eng.finalized = true
		eng.exhausted = true
		eng.metrics.integrate(eng.cfg.TimeLimit, eng.servers)
	}
	return eng.Snapshot()
}

// nextEvent returns the earliest pending event, or nil when the run is over.
func (eng *Engine) nextEvent() Event {
	if eng.iteration >= eng.cfg.IterationLimit {
		return nil
	}
	ev := eng.calendar().Peek()
	if ev == nil || ev.Timestamp() > eng.cfg.TimeLimit {
		return nil
	}
	return ev
}

// begin integrates statistics up to the event time and moves the clock.
func (eng *Engine) begin(ev Event) {
	now := ev.Timestamp()
	eng.metrics.integrate(now, eng.servers)
	eng.clock = now
	eng.iteration++
	for _, srv := range eng.servers {
		srv.resetEventFields()
	}
	eng.step = stepInfo{kind: ev.Kind()}
}

// purgeDeparted drops clients that departed during the previous event.
func (eng *Engine) purgeDeparted() {
	for _, id := range eng.purge {
		delete(eng.clients, id)
	}
	eng.purge = eng.purge[:0]
}
