package trace

import (
	"testing"
)

func TestSimulationTrace_RecordAdmission_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an admission record is recorded
	st.RecordAdmission(AdmissionRecord{
		ClientID:  1,
		Clock:     4,
		Admitted:  true,
		Occupancy: 2,
	})

	// THEN the trace contains one admission record with correct data
	if len(st.Admissions) != 1 {
		t.Fatalf("expected 1 admission, got %d", len(st.Admissions))
	}
	if st.Admissions[0].ClientID != 1 {
		t.Errorf("expected client 1, got %d", st.Admissions[0].ClientID)
	}
	if !st.Admissions[0].Admitted {
		t.Error("expected admitted=true")
	}
}

func TestSimulationTrace_RecordDeparture_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a departure record is recorded
	st.RecordDeparture(DepartureRecord{ClientID: 3, Clock: 12, Permanence: 8, Cause: CauseServed})

	// THEN the trace contains one departure record with correct data
	if len(st.Departures) != 1 {
		t.Fatalf("expected 1 departure, got %d", len(st.Departures))
	}
	if st.Departures[0].Cause != CauseServed {
		t.Errorf("expected cause %q, got %q", CauseServed, st.Departures[0].Cause)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordAdmission(AdmissionRecord{ClientID: 1, Clock: 4, Admitted: true})
	st.RecordAdmission(AdmissionRecord{ClientID: 2, Clock: 8, Admitted: false, Reason: "capacity reached (20/20)"})
	st.RecordDeparture(DepartureRecord{ClientID: 2, Clock: 8, Cause: CauseRejected})

	// THEN order is preserved
	if st.Admissions[0].ClientID != 1 || st.Admissions[1].ClientID != 2 {
		t.Error("admission order not preserved")
	}
	if len(st.Departures) != 1 {
		t.Errorf("expected 1 departure, got %d", len(st.Departures))
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	tests := []struct {
		name string
		st   *SimulationTrace
		want bool
	}{
		{"nil trace", nil, false},
		{"level none", NewSimulationTrace(TraceConfig{Level: TraceLevelNone}), false},
		{"level empty", NewSimulationTrace(TraceConfig{}), false},
		{"level decisions", NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.st.Enabled(); got != tc.want {
				t.Errorf("Enabled() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"detailed", false},
		{"NONE", false},
	}
	for _, tc := range tests {
		if got := IsValidTraceLevel(tc.level); got != tc.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tc.level, got, tc.valid)
		}
	}
}
