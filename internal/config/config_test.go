package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/iqmath/internal/sweep"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Kernel != "sin" {
		t.Errorf("expected kernel sin, got %s", cfg.Kernel)
	}
	if cfg.Audio.SampleRate <= 0 {
		t.Error("sample rate should be positive")
	}
	if cfg.Server.Addr == "" {
		t.Error("server address should be set")
	}
	if cfg.SweepRange() != (sweep.Config{}) {
		t.Error("default sweep range should defer to the kernel domain")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iqmath.yaml")

	cfg := DefaultConfig()
	cfg.Kernel = "atan2"
	cfg.Sweep = sweep.Config{Start: 10, Stop: 100, Step: 5}
	cfg.Audio.Frequency = 1000

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Kernel != "atan2" {
		t.Errorf("expected kernel atan2, got %s", loaded.Kernel)
	}
	if loaded.SweepRange() != cfg.Sweep {
		t.Errorf("expected sweep %+v, got %+v", cfg.Sweep, loaded.SweepRange())
	}
	if loaded.Audio.Frequency != 1000 {
		t.Errorf("expected frequency 1000, got %f", loaded.Audio.Frequency)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := writeFile(path, "kernel: sqrt\nsweep:\n  start: 0\n  stop: 99\n  step: 1\n"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Kernel != "sqrt" || cfg.Sweep.Stop != 99 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Audio.SampleRate != DefaultSampleRate {
		t.Errorf("expected default sample rate, got %d", cfg.Audio.SampleRate)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sin", "coarse")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Sweep.Step != 32 {
		t.Errorf("expected step 32, got %d", cfg.Sweep.Step)
	}
	if err := cfg.Sweep.Validate(); err != nil {
		t.Errorf("preset range invalid: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("sin", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "full") != nil {
		t.Error("expected nil for nonexistent kernel")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("sqrt")
	if len(presets) != 2 || presets[0] != "low" || presets[1] != "wide" {
		t.Errorf("unexpected sqrt presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent kernel")
	}
}

func TestAllPresetsValid(t *testing.T) {
	for kernel, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Kernel != kernel {
				t.Errorf("%s/%s names kernel %s", kernel, name, cfg.Kernel)
			}
			if err := cfg.Sweep.Validate(); err != nil {
				t.Errorf("%s/%s: %v", kernel, name, err)
			}
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"magnitude radius overflows", func(c *Config) { c.Kernel, c.Radius = "magnitude", 70000 }},
		{"atan2 radius overflows", func(c *Config) { c.Radius = sweep.MaxAtan2Radius + 1 }},
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"reversed range", func(c *Config) { c.Sweep = sweep.Config{Start: 10, Stop: 0, Step: 1} }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	cfg := DefaultConfig()
	cfg.Kernel, cfg.Radius = "atan2", 70000
	if err := cfg.Validate(); err != nil {
		t.Errorf("atan2 accepts radius 70000: %v", err)
	}
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0644)
}
