// Package sim provides the discrete-event simulation engine for a library
// lending counter with two clerks.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - client.go: Client lifecycle (queued → in service → reading → departed)
//   - event.go: Event types that drive the simulation (arrival, service end, reading end)
//   - simulator.go: The Engine, its Advance loop and termination rules
//
// handlers.go holds the per-event state transitions and calendar.go derives
// the pending events from entity state, ordered by time, then priority, then
// client id.
//
// # Architecture
//
// The sim package owns the engine and its data types; supporting pieces live
// in sub-packages:
//   - sim/workload/: Inter-arrival processes (fixed, exponential)
//   - sim/trace/: Admission and departure trace recording
//   - sim/report/: Record writers (JSONL, table, display window)
//
// # Determinism
//
// All randomness flows through PartitionedRNG. The engine stream feeds
// transaction, service and reading draws in a fixed order; the arrivals stream
// feeds stochastic inter-arrival gaps. Same seed and configuration give the
// same EventRecord sequence.
package sim
