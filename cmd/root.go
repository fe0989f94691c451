package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/library-sim/library-sim/sim"
	"github.com/library-sim/library-sim/sim/trace"
	"github.com/library-sim/library-sim/sim/workload"
)

var (
	// CLI flags for the run command
	seed           int64   // Seed for the engine and arrival streams
	configPath     string  // Optional YAML configuration file
	logLevel       string  // Log verbosity level
	timeLimit      float64 // Simulation time limit (minutes)
	iterationLimit int     // Maximum number of events processed
	capacityMax    int     // Maximum people inside, clerks included
	arrivalProcess string  // fixed or exponential
	interval       float64 // Inter-arrival interval (mean for exponential)
	startTime      float64 // Clock origin (minutes)

	// Output flags
	outputFormat string  // jsonl or table
	rows         int     // Number of records to display (0 = all)
	fromMinute   float64 // Display records from this clock value on
	printSummary bool    // Print the metrics block after the run
	traceLevel   string  // Decision trace verbosity
	recordsPath  string  // Optional JSONL file receiving every record
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "library-sim",
	Short: "Discrete-event simulator for a two-clerk library counter",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the library simulation",
	RunE: func(cmd *cobra.Command, args []string) (runErr error) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("unknown trace level %q", traceLevel)
		}

		cfg, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		log := logrus.WithField("run", runID)
		log.Infof("Starting simulation: seed=%d time_limit=%.2f capacity=%d arrivals=%s/%.2f",
			seed, cfg.TimeLimit, cfg.CapacityMax, cfg.Arrivals.Process, cfg.Arrivals.Interval)

		out := bufio.NewWriter(os.Stdout)

		opts := runOptions{
			Seed:       seed,
			Format:     outputFormat,
			From:       fromMinute,
			Rows:       rows,
			TraceLevel: trace.TraceLevel(traceLevel),
			RunID:      runID,
		}
		if recordsPath != "" {
			f, err := os.Create(recordsPath)
			if err != nil {
				return fmt.Errorf("creating records file: %w", err)
			}
			buffered := bufio.NewWriter(f)
			opts.Records = buffered
			defer func() {
				if err := flushAndClose(buffered, f); err != nil && runErr == nil {
					runErr = fmt.Errorf("writing records file: %w", err)
				}
			}()
		}
		if printSummary {
			// Keep JSONL on stdout machine-readable.
			opts.SummaryOut = io.Writer(out)
			if outputFormat == formatJSONL {
				opts.SummaryOut = os.Stderr
			}
		}

		summary, err := runSimulation(cfg, opts, out)
		if err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		log.Infof("Simulation complete: %d events, %d departed, %d rejected",
			summary.Iterations, summary.Departed, summary.Rejected)
		return nil
	},
}

// flushAndClose flushes w and closes c, returning the first error.
func flushAndClose(w *bufio.Writer, c io.Closer) error {
	flushErr := w.Flush()
	closeErr := c.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// loadRunConfig starts from defaults or --config and applies explicit flag overrides.
func loadRunConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = loaded
	}
	applyOverrides(&cfg, cmd)
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

// applyOverrides copies flags the user set explicitly into cfg.
func applyOverrides(cfg *sim.Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("time-limit") {
		cfg.TimeLimit = timeLimit
	}
	if flags.Changed("iterations") {
		cfg.IterationLimit = iterationLimit
	}
	if flags.Changed("capacity") {
		cfg.CapacityMax = capacityMax
	}
	if flags.Changed("arrival-process") {
		cfg.Arrivals.Process = arrivalProcess
	}
	if flags.Changed("interval") {
		cfg.Arrivals.Interval = interval
	}
	if flags.Changed("start") {
		cfg.StartTime = startTime
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random draws")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Simulation overrides
	runCmd.Flags().Float64Var(&timeLimit, "time-limit", defaults.TimeLimit, "Simulation time limit (minutes)")
	runCmd.Flags().IntVar(&iterationLimit, "iterations", defaults.IterationLimit, "Maximum number of events")
	runCmd.Flags().IntVar(&capacityMax, "capacity", defaults.CapacityMax, "Maximum people inside, clerks included")
	runCmd.Flags().StringVar(&arrivalProcess, "arrival-process", workload.ProcessFixed, "Inter-arrival process (fixed, exponential)")
	runCmd.Flags().Float64Var(&interval, "interval", defaults.Arrivals.Interval, "Inter-arrival interval in minutes (mean for exponential)")
	runCmd.Flags().Float64Var(&startTime, "start", defaults.StartTime, "Clock origin (minutes)")

	// Output
	runCmd.Flags().StringVar(&outputFormat, "format", formatTable, "Record format (jsonl, table)")
	runCmd.Flags().IntVar(&rows, "rows", 0, "Number of records to display, 0 for all; the last record is always shown")
	runCmd.Flags().Float64Var(&fromMinute, "from", 0, "Display records from this minute on")
	runCmd.Flags().BoolVar(&printSummary, "summary", true, "Print the metrics block (to stderr for jsonl)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&recordsPath, "records", "", "Also write every record as JSONL to this file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(defaultsCmd)
}
