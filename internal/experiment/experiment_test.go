package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/iqmath/internal/sweep"
)

func TestRegistryKernels(t *testing.T) {
	r := NewRegistry()
	names := r.ListKernels()
	want := []string{"atan2", "cos", "magnitude", "roundtrip", "sin", "sqrt"}

	if len(names) != len(want) {
		t.Fatalf("expected %d kernels, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("kernel %d: expected %s, got %s", i, want[i], names[i])
		}
		k, err := r.GetKernel(want[i])
		if err != nil {
			t.Fatalf("get %s: %v", want[i], err)
		}
		if k.Name() != want[i] {
			t.Errorf("kernel registered as %s reports %s", want[i], k.Name())
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	_, err := NewRegistry().GetKernel("tan")
	if !errors.Is(err, sweep.ErrUnknownKernel) {
		t.Errorf("expected ErrUnknownKernel, got %v", err)
	}
}

func TestDefaultMetrics(t *testing.T) {
	r := NewRegistry()
	if n := len(r.DefaultMetrics("sin", 1)); n != 4 {
		t.Errorf("expected 4 metrics for sin, got %d", n)
	}
	if n := len(r.DefaultMetrics("sqrt", 0)); n != 5 {
		t.Errorf("expected 5 metrics for sqrt, got %d", n)
	}
}

func TestExperimentRun(t *testing.T) {
	exp := New(Config{Kernel: "sqrt", Range: sweep.Config{Start: 0, Stop: 1 << 20, Step: 3}})
	if err := exp.SetupFromRegistry(NewRegistry()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["max_abs_error"] != 0 {
		t.Errorf("sqrt should be exact, got max error %f", result.Metrics["max_abs_error"])
	}
	if result.Metrics["monotonic_violations"] != 0 {
		t.Errorf("sqrt should be monotonic, got %f violations", result.Metrics["monotonic_violations"])
	}
	if result.Metrics["within_tolerance"] != 1 {
		t.Errorf("expected every sample within tolerance, got %f", result.Metrics["within_tolerance"])
	}
}

func TestExperimentDefaultsToKernelDomain(t *testing.T) {
	exp := New(Config{Kernel: "roundtrip", Tolerance: 40})
	if err := exp.SetupFromRegistry(NewRegistry()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Samples) != 32768 {
		t.Errorf("expected full turn of samples, got %d", len(result.Samples))
	}
	if result.Metrics["within_tolerance"] != 1 {
		t.Errorf("round trip exceeded 40 LSB somewhere: %f", result.Metrics["within_tolerance"])
	}
}

func TestExperimentNotSetup(t *testing.T) {
	if _, err := New(Config{Kernel: "sin"}).Run(context.Background()); err == nil {
		t.Error("expected error when running without setup")
	}
}
