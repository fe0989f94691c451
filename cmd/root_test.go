package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/library-sim/library-sim/sim"
	"github.com/library-sim/library-sim/sim/trace"
)

func TestRunSimulation_JSONL_EveryLineIsARecord(t *testing.T) {
	// GIVEN the default configuration
	var out, summary bytes.Buffer
	opts := runOptions{Seed: 42, Format: formatJSONL, SummaryOut: &summary, RunID: "test-run"}

	// WHEN the simulation runs
	s, err := runSimulation(sim.DefaultConfig(), opts, &out)
	require.NoError(t, err)

	// THEN each line decodes and iterations count up from the initial record
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, s.Iterations+1, len(lines), "initial record plus one per event")
	for i, line := range lines {
		var rec sim.EventRecord
		require.NoError(t, jsoniter.Unmarshal([]byte(line), &rec), "line %d", i)
		assert.Equal(t, i, rec.Iteration)
	}

	// THEN the summary carries the metrics block and the run id
	assert.Contains(t, summary.String(), "=== Simulation Metrics ===")
	assert.Contains(t, summary.String(), "Run ID               : test-run")
	assert.NotContains(t, out.String(), "Simulation Metrics")
}

func TestRunSimulation_SameSeed_ByteIdenticalOutput(t *testing.T) {
	// GIVEN two runs with the same seed and an exponential arrival process
	cfg := sim.DefaultConfig()
	cfg.Arrivals.Process = "exponential"
	cfg.TimeLimit = 240
	run := func(seed int64) string {
		var out bytes.Buffer
		_, err := runSimulation(cfg, runOptions{Seed: seed, Format: formatJSONL}, &out)
		require.NoError(t, err)
		return out.String()
	}

	// WHEN both complete
	a, b := run(7), run(7)

	// THEN their records match byte for byte
	assert.Equal(t, a, b)

	// THEN a different seed gives a different run
	assert.NotEqual(t, a, run(8))
}

func TestRunSimulation_TableWindow(t *testing.T) {
	// GIVEN a table display of 2 rows from minute 20
	var out bytes.Buffer
	opts := runOptions{Seed: 1, Format: formatTable, From: 20, Rows: 2}

	// WHEN the simulation runs
	_, err := runSimulation(sim.DefaultConfig(), opts, &out)
	require.NoError(t, err)

	// THEN the header, two windowed rows and the final row are printed
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "clients")
}

func TestRunSimulation_RecordsFileGetsEveryRecord(t *testing.T) {
	// GIVEN a one-row display and a records sink
	var out, records bytes.Buffer
	opts := runOptions{Seed: 3, Format: formatJSONL, Rows: 1, Records: &records}

	// WHEN the simulation runs
	s, err := runSimulation(sim.DefaultConfig(), opts, &out)
	require.NoError(t, err)

	// THEN the display is windowed but the sink holds the full run
	assert.Equal(t, 2, strings.Count(out.String(), "\n"), "first row plus last row")
	assert.Equal(t, s.Iterations+1, strings.Count(records.String(), "\n"))
}

func TestRunSimulation_TraceSummary(t *testing.T) {
	// GIVEN a crowded run with decision tracing
	cfg := sim.DefaultConfig()
	cfg.Arrivals.Interval = 0.5
	cfg.CapacityMax = 6
	var out, summary bytes.Buffer
	opts := runOptions{Seed: 5, Format: formatJSONL, TraceLevel: trace.TraceLevelDecisions, SummaryOut: &summary}

	// WHEN the simulation runs
	s, err := runSimulation(cfg, opts, &out)
	require.NoError(t, err)

	// THEN the trace breakdown is printed and rejections occurred
	assert.Contains(t, summary.String(), "=== Decision Trace ===")
	assert.Contains(t, summary.String(), "Departed (rejected)")
	assert.Greater(t, s.Rejected, 0)
}

func TestRunSimulation_UnknownFormat(t *testing.T) {
	_, err := runSimulation(sim.DefaultConfig(), runOptions{Format: "csv"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestApplyOverrides_OnlyChangedFlags(t *testing.T) {
	// GIVEN a config with a non-default capacity
	cfg := sim.DefaultConfig()
	cfg.CapacityMax = 30
	cfg.TimeLimit = 90

	// WHEN only --time-limit is set on the command line
	require.NoError(t, runCmd.Flags().Set("time-limit", "120"))
	t.Cleanup(func() {
		f := runCmd.Flags().Lookup("time-limit")
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	applyOverrides(&cfg, runCmd)

	// THEN the time limit is overridden and the capacity is untouched
	assert.Equal(t, 120.0, cfg.TimeLimit)
	assert.Equal(t, 30, cfg.CapacityMax)
}

// failingFile rejects every write and records whether it was closed.
type failingFile struct {
	closed bool
}

func (f *failingFile) Write(p []byte) (int, error) { return 0, errors.New("disk full") }
func (f *failingFile) Close() error                { f.closed = true; return nil }

func TestFlushAndClose_ReportsWriteFailure(t *testing.T) {
	// GIVEN buffered records over a file that rejects writes
	f := &failingFile{}
	w := bufio.NewWriter(f)
	_, err := w.WriteString("{\"iteration\":0}\n")
	require.NoError(t, err, "the buffer absorbs the write")

	// WHEN flushed and closed
	err = flushAndClose(w, f)

	// THEN the write failure surfaces and the file is still closed
	assert.EqualError(t, err, "disk full")
	assert.True(t, f.closed)
}

func TestFlushAndClose_Success(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	_, _ = w.WriteString("line\n")
	assert.NoError(t, flushAndClose(w, io.NopCloser(nil)))
	assert.Equal(t, "line\n", buf.String())
}

func TestPrintTraceSummary_IncludesPermanence(t *testing.T) {
	// GIVEN a summary with two served departures and one rejection
	ts := &trace.TraceSummary{
		TotalDecisions:    3,
		AdmittedCount:     2,
		RejectedCount:     1,
		PeakOccupancy:     4,
		MeanPermanence:    6,
		MaxPermanence:     9,
		DeparturesByCause: map[string]int{trace.CauseServed: 2, trace.CauseRejected: 1},
	}
	var buf bytes.Buffer

	// WHEN printed
	printTraceSummary(&buf, ts)

	// THEN the permanence figures of admitted clients appear
	assert.Contains(t, buf.String(), "Mean Permanence      : 6.00 min (admitted)")
	assert.Contains(t, buf.String(), "Max Permanence       : 9.00 min (admitted)")
	assert.Contains(t, buf.String(), "Departed (served)    : 2")
}
