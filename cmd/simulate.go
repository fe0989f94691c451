package cmd

import (
	"errors"
	"fmt"
	"io"

	sim "github.com/library-sim/library-sim/sim"
	"github.com/library-sim/library-sim/sim/report"
	"github.com/library-sim/library-sim/sim/trace"
)

const (
	formatJSONL = "jsonl"
	formatTable = "table"
)

// runOptions controls one simulation run from the command line.
type runOptions struct {
	Seed       int64
	Format     string
	From       float64
	Rows       int
	TraceLevel trace.TraceLevel
	RunID      string

	Records    io.Writer // optional; receives every record as JSONL
	SummaryOut io.Writer // optional; receives the metrics block
}

// newRecordWriter returns the display writer for format.
func newRecordWriter(format string, out io.Writer) (report.RecordWriter, error) {
	switch format {
	case formatJSONL:
		return report.NewJSONLWriter(out), nil
	case formatTable:
		return report.NewTableWriter(out), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// runSimulation drives an engine to exhaustion, streaming records to out.
func runSimulation(cfg sim.Config, opts runOptions, out io.Writer) (sim.Summary, error) {
	display, err := newRecordWriter(opts.Format, out)
	if err != nil {
		return sim.Summary{}, err
	}

	var st *trace.SimulationTrace
	if opts.TraceLevel == trace.TraceLevelDecisions {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})
	}
	eng, err := sim.NewEngine(cfg, sim.NewPartitionedRNG(sim.NewSimulationKey(opts.Seed)), sim.WithTrace(st))
	if err != nil {
		return sim.Summary{}, err
	}

	var w report.RecordWriter = report.NewWindowWriter(display, opts.From, opts.Rows)
	if opts.Records != nil {
		w = report.NewMultiWriter(w, report.NewJSONLWriter(opts.Records))
	}

	if err := w.Write(eng.Initial()); err != nil {
		return sim.Summary{}, fmt.Errorf("writing record: %w", err)
	}
	for eng.HasMore() {
		rec, err := eng.Advance()
		if errors.Is(err, sim.ErrExhausted) {
			break
		}
		if err != nil {
			return sim.Summary{}, err
		}
		if err := w.Write(rec); err != nil {
			return sim.Summary{}, fmt.Errorf("writing record: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return sim.Summary{}, fmt.Errorf("closing output: %w", err)
	}

	summary := eng.Finalize()
	if opts.SummaryOut != nil {
		summary.Print(opts.SummaryOut)
		if opts.RunID != "" {
			fmt.Fprintf(opts.SummaryOut, "Run ID               : %s\n", opts.RunID)
		}
		if st != nil {
			printTraceSummary(opts.SummaryOut, trace.Summarize(st))
		}
	}
	return summary, nil
}

// printTraceSummary renders the admission and departure breakdown.
func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Admission Decisions  : %d\n", ts.TotalDecisions)
	fmt.Fprintf(w, "Admitted             : %d\n", ts.AdmittedCount)
	fmt.Fprintf(w, "Rejected             : %d\n", ts.RejectedCount)
	fmt.Fprintf(w, "Peak Occupancy       : %d\n", ts.PeakOccupancy)
	fmt.Fprintf(w, "Mean Permanence      : %.2f min (admitted)\n", ts.MeanPermanence)
	fmt.Fprintf(w, "Max Permanence       : %.2f min (admitted)\n", ts.MaxPermanence)
	for _, cause := range []string{trace.CauseServed, trace.CauseRetiredHome, trace.CauseRejected} {
		fmt.Fprintf(w, "%-21s: %d\n", "Departed ("+cause+")", ts.DeparturesByCause[cause])
	}
}
