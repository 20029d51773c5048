package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/iqmath/internal/sweep"
)

func testResult() *sweep.Result {
	return &sweep.Result{
		Kernel: "sin",
		Config: sweep.Config{Start: 0, Stop: 64, Step: 32},
		Samples: []sweep.Sample{
			{Input: 0, Output: 0, Reference: 0, Error: 0},
			{Input: 32, Output: 201, Reference: 201.06, Error: -0.06},
			{Input: 64, Output: 402, Reference: 402.1, Error: -0.1},
		},
		Metrics: map[string]float64{
			"max_abs_error": 0.1,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(202, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Kernel != "sin" {
		t.Errorf("expected kernel 'sin', got '%s'", meta.Kernel)
	}
	if meta.Range() != (sweep.Config{Start: 0, Stop: 64, Step: 32}) {
		t.Errorf("unexpected range %+v", meta.Range())
	}
	if meta.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", meta.Samples)
	}
	if meta.Metrics["max_abs_error"] != 0.1 {
		t.Errorf("expected max error 0.1, got %f", meta.Metrics["max_abs_error"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[1].Input != 32 || samples[1].Output != 201 {
		t.Errorf("unexpected sample %+v", samples[1])
	}
	if samples[2].Error != -0.1 {
		t.Errorf("expected error -0.1, got %f", samples[2].Error)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(0, testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(0, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)

	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	if _, err := os.Stat(filepath.Join(runDir, "samples.csv")); os.IsNotExist(err) {
		t.Error("samples.csv not created")
	}
}

func TestStoreSaveLabeled(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.SaveLabeled("sqrt_low", 0, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "sqrt_low_") {
		t.Errorf("run id %q should start with the label", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kernel != "sin" || meta.Label != "sqrt_low" {
		t.Errorf("kernel %q label %q, want sin and sqrt_low", meta.Kernel, meta.Label)
	}
}

func TestWriteRunCleansUpOnFailure(t *testing.T) {
	tmpDir := t.TempDir()
	runDir := filepath.Join(tmpDir, "sin_1")

	// A directory where samples.csv belongs makes the samples write fail.
	if err := os.MkdirAll(filepath.Join(runDir, "samples.csv"), 0755); err != nil {
		t.Fatal(err)
	}

	meta := &RunMetadata{ID: "sin_1", Kernel: "sin"}
	if err := writeRun(runDir, meta, testResult().Samples); err == nil {
		t.Fatal("expected write error")
	}
	if _, err := os.Stat(runDir); !os.IsNotExist(err) {
		t.Errorf("run directory left behind: %v", err)
	}

	runs, err := New(tmpDir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadSamples("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	r := testResult()
	meta := &RunMetadata{ID: "sin_1", Kernel: "sin", Stop: 64, Step: 32, Metrics: r.Metrics}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, r.Samples); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Count != 3 || len(data.Outputs) != 3 || data.Outputs[2] != 402 {
		t.Errorf("unexpected export %+v", data)
	}
	if data.Kernel != "sin" || data.ID != "sin_1" {
		t.Errorf("metadata not carried over: %+v", data)
	}
}
