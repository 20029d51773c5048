package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/iqmath/internal/config"
	"github.com/san-kum/iqmath/internal/storage"
	"github.com/san-kum/iqmath/internal/sweep"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		op   string
		args []string
		want []int64
	}{
		{"sin", []string{"8192"}, []int64{32767}},
		{"cos", []string{"0x4000"}, []int64{-32767}},
		{"sincos", []string{"-32"}, []int64{0, 32767}},
		{"atan2", []string{"1", "1"}, []int64{3937}},
		{"atan2", []string{"0", "0"}, []int64{0}},
		{"sqrt", []string{"4294967295"}, []int64{65535}},
		{"mag", []string{"3", "4"}, []int64{5}},
		{"clarke", []string{"16384", "0"}, []int64{16384, 9459}},
		{"park", []string{"16384", "0", "0"}, []int64{16383, 0}},
	}

	for _, tt := range tests {
		lines, err := evaluate(tt.op, tt.args)
		if err != nil {
			t.Errorf("%s %v: %v", tt.op, tt.args, err)
			continue
		}
		if len(lines) != len(tt.want) {
			t.Errorf("%s %v: got %d lines, want %d", tt.op, tt.args, len(lines), len(tt.want))
			continue
		}
		for i, l := range lines {
			if l.Value != tt.want[i] {
				t.Errorf("%s %v: %s = %d, want %d", tt.op, tt.args, l.Name, l.Value, tt.want[i])
			}
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	if _, err := evaluate("tan", []string{"1"}); err == nil {
		t.Error("expected unknown op error")
	}
	if _, err := evaluate("atan2", []string{"1"}); !errors.Is(err, errArgs) {
		t.Errorf("expected errArgs, got %v", err)
	}
	if _, err := evaluate("sin", []string{"x"}); err == nil {
		t.Error("expected parse error")
	}
	if _, err := evaluate("sqrt", []string{"-1"}); err == nil {
		t.Error("expected parse error for negative sqrt")
	}
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "sweep"}
	cmd.Flags().StringVar(&dataDir, "data", config.DefaultDataDir, "")
	cmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "")
	cmd.Flags().Int64Var(&start, "start", 0, "")
	cmd.Flags().Int64Var(&stop, "stop", 0, "")
	cmd.Flags().Int64Var(&step, "step", 0, "")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "")
	cmd.Flags().Int32Var(&radius, "radius", config.DefaultRadius, "")
	return cmd
}

func TestLoadConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("kernel: cos\ntolerance: 100\nradius: 1000\nsweep:\n  start: 0\n  stop: 99\n  step: 1\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	configFile, preset = path, ""
	t.Cleanup(func() { configFile, preset = "", "" })

	cmd := newSweepCmd()
	if err := cmd.ParseFlags([]string{"--stop", "49"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Kernel != "cos" || cfg.Tolerance != 100 || cfg.Radius != 1000 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Sweep != (sweep.Config{Start: 0, Stop: 49, Step: 1}) {
		t.Errorf("sweep = %+v, want stop overridden by flag", cfg.Sweep)
	}

	preset = "coarse"
	cmd = newSweepCmd()
	cfg, err = loadConfig(cmd, "sin")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Kernel != "sin" || cfg.Sweep.Step != 32 || cfg.Tolerance != 202 {
		t.Errorf("preset not applied: %+v", cfg)
	}

	preset = "missing"
	if _, err := loadConfig(newSweepCmd(), "sin"); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestDataDirFromConfigFile(t *testing.T) {
	runs := filepath.Join(t.TempDir(), "runs")
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("data_dir: "+runs+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	configFile, preset = path, ""
	t.Cleanup(func() { configFile, preset = "", "" })

	cfg, err := loadConfig(newSweepCmd(), "sin")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != runs {
		t.Fatalf("sweep data dir = %q, want %q", cfg.DataDir, runs)
	}
	runID, err := storage.New(cfg.DataDir).Save(cfg.Tolerance, &sweep.Result{
		Kernel:  "sin",
		Config:  sweep.Config{Start: 0, Stop: 0, Step: 1},
		Samples: []sweep.Sample{{}},
		Metrics: map[string]float64{},
	})
	if err != nil {
		t.Fatal(err)
	}

	listCmd := &cobra.Command{Use: "list"}
	listCmd.Flags().StringVar(&dataDir, "data", config.DefaultDataDir, "")
	st, err := openStore(listCmd)
	if err != nil {
		t.Fatal(err)
	}
	listed, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].ID != runID {
		t.Errorf("list under the config's data_dir = %+v, want run %s", listed, runID)
	}

	if err := listCmd.ParseFlags([]string{"--data", t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	st, err = openStore(listCmd)
	if err != nil {
		t.Fatal(err)
	}
	if listed, _ := st.List(); len(listed) != 0 {
		t.Errorf("--data should override the config file, got %d runs", len(listed))
	}
}

func TestLoadConfigRejectsRadius(t *testing.T) {
	configFile, preset = "", ""
	cmd := newSweepCmd()
	if err := cmd.ParseFlags([]string{"--radius", "70000"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd, "magnitude"); !errors.Is(err, sweep.ErrOutOfDomain) {
		t.Errorf("expected ErrOutOfDomain, got %v", err)
	}
}

func TestNewRegistryRadius(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Radius = 500

	k, err := newRegistry(cfg).GetKernel("atan2")
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := k.(sweep.Atan2Kernel); !ok || a.Radius != 500 {
		t.Errorf("atan2 kernel = %#v, want radius 500", k)
	}
}
