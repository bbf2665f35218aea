// Package testutil provides shared test infrastructure for the kernel
// simulator: the golden Gantt dataset and assertion helpers used by the
// sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_gantt.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-checked scenario and its expected chart.
type GoldenTestCase struct {
	Name       string          `json:"name"`
	Scheduler  string          `json:"scheduler"`
	Quantum    int             `json:"quantum"`
	IODuration int             `json:"io_duration"`
	MemorySize int             `json:"memory_size"`
	Programs   []GoldenProgram `json:"programs"`
	// Rows maps PID to one character per tick: X running, R ready,
	// W waiting, T terminated, . not yet created.
	Rows    map[string]string `json:"rows"`
	Metrics GoldenMetrics     `json:"metrics"`
}

// GoldenProgram is a program submission. Ops are instruction kinds; EXIT is
// appended by the program builder.
type GoldenProgram struct {
	Name     string   `json:"name"`
	Priority int      `json:"priority"`
	Arrival  int64    `json:"arrival"`
	Ops      []string `json:"ops"`
}

// GoldenMetrics represents the expected chart summary.
type GoldenMetrics struct {
	// Exact match metrics
	Ticks           int `json:"ticks"`
	FinishedCount   int `json:"finished_count"`
	CPUIdleTicks    int `json:"cpu_idle_ticks"`
	ContextSwitches int `json:"context_switches"`

	MeanTurnaround float64 `json:"mean_turnaround"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_gantt.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
