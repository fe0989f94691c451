package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/library-sim/library-sim/sim/workload"
)

func TestLoadConfig_ValidYAML(t *testing.T) {
	yaml := `
arrivals:
  process: exponential
  interval: 3.5
transactions:
  request: 0.5
  return: 0.3
  consult: 0.2
consult:
  a: 1
  b: 4
request_service_mean: 5
reading:
  retire_home_probability: 0.4
  duration: 25
time_limit: 480
iteration_limit: 5000
capacity_max: 12
start_time: 10
`
	path := writeTempYAML(t, yaml)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, workload.ProcessExponential, cfg.Arrivals.Process)
	assert.Equal(t, 3.5, cfg.Arrivals.Interval)
	assert.Equal(t, TransactionMix{Request: 0.5, Return: 0.3, Consult: 0.2}, cfg.Transactions)
	assert.Equal(t, UniformBounds{A: 1, B: 4}, cfg.Consult)
	assert.Equal(t, 5.0, cfg.RequestServiceMean)
	assert.Equal(t, ReadingConfig{RetireHomeProbability: 0.4, Duration: 25}, cfg.Reading)
	assert.Equal(t, 480.0, cfg.TimeLimit)
	assert.Equal(t, 5000, cfg.IterationLimit)
	assert.Equal(t, 12, cfg.CapacityMax)
	assert.Equal(t, 10.0, cfg.StartTime)
}

func TestLoadConfig_PartialYAML_KeepsDefaults(t *testing.T) {
	// GIVEN a file overriding only the time limit and one probability pair
	path := writeTempYAML(t, `
time_limit: 120
transactions:
  request: 0.5
  return: 0.4
`)

	// WHEN loaded
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// THEN untouched fields keep their defaults
	want := DefaultConfig()
	want.TimeLimit = 120
	want.Transactions.Request = 0.5
	want.Transactions.Return = 0.4
	assert.Equal(t, want, cfg)
}

func TestLoadConfig_EmptyFile_ReturnsDefaults(t *testing.T) {
	path := writeTempYAML(t, "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Rejected(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown top-level key", "capacity: 20\n"},
		{"unknown nested key", "reading:\n  minutes: 30\n"},
		{"unknown arrival process", "arrivals:\n  process: poisson\n"},
		{"negative interval", "arrivals:\n  interval: -1\n"},
		{"probability above one", "reading:\n  retire_home_probability: 1.5\n"},
		{"fractional capacity", "capacity_max: 20.5\n"},
		{"capacity below clerk count", "capacity_max: 1\n"},
		{"probabilities do not sum to one", "transactions:\n  request: 0.9\n"},
		{"inverted consult bounds", "consult:\n  a: 5\n  b: 2\n"},
		{"start after time limit", "start_time: 90\n"},
		{"wrong type", "time_limit: soon\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempYAML(t, tc.yaml)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_SchemaErrorsWrapInvalidConfig(t *testing.T) {
	path := writeTempYAML(t, "capacity_max: 0\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidateSchema_AcceptsDefaultsDocument(t *testing.T) {
	// GIVEN the repository's documented defaults
	data, err := os.ReadFile(filepath.Join("..", "defaults.yaml"))
	require.NoError(t, err)

	// WHEN validated and parsed
	require.NoError(t, ValidateSchema(data))
	cfg, err := ParseConfig(data)
	require.NoError(t, err)

	// THEN it describes exactly DefaultConfig
	assert.Equal(t, DefaultConfig(), cfg)
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
