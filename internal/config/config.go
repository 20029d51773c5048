package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/iqmath/internal/sweep"
)

const (
	DefaultKernel     = "sin"
	DefaultTolerance  = 202.0
	DefaultFrequency  = 440.0
	DefaultSampleRate = 44100
	DefaultAmplitude  = 0.5
	DefaultToneLength = 2.0
	DefaultAddr       = ":8080"
	DefaultLogLevel   = "info"
	DefaultDataDir    = ".iqmath"
	DefaultRadius     = 30000
)

type Config struct {
	Kernel    string       `yaml:"kernel"`
	Sweep     sweep.Config `yaml:"sweep"`
	Tolerance float64      `yaml:"tolerance"`
	Radius    int32        `yaml:"radius"`
	DataDir   string       `yaml:"data_dir"`
	LogLevel  string       `yaml:"log_level"`
	Audio     AudioConfig  `yaml:"audio"`
	Server    ServerConfig `yaml:"server"`
}

type AudioConfig struct {
	Frequency  float64 `yaml:"frequency"`
	SampleRate int     `yaml:"sample_rate"`
	Amplitude  float64 `yaml:"amplitude"`
	Duration   float64 `yaml:"duration"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Kernel:    DefaultKernel,
		Tolerance: DefaultTolerance,
		Radius:    DefaultRadius,
		DataDir:   DefaultDataDir,
		LogLevel:  DefaultLogLevel,
		Audio: AudioConfig{
			Frequency:  DefaultFrequency,
			SampleRate: DefaultSampleRate,
			Amplitude:  DefaultAmplitude,
			Duration:   DefaultToneLength,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the sweep range, when one is set, and the radius. The
// radius always binds atan2, and must also suit the selected kernel.
func (c *Config) Validate() error {
	if c.Sweep.Step != 0 {
		if err := c.Sweep.Validate(); err != nil {
			return err
		}
	}
	if err := sweep.CheckRadius("atan2", c.Radius); err != nil {
		return err
	}
	return sweep.CheckRadius(c.Kernel, c.Radius)
}

// SweepRange returns the configured range, or the zero Config when none was
// set so the kernel's own domain applies.
func (c *Config) SweepRange() sweep.Config {
	if c.Sweep.Step == 0 {
		return sweep.Config{}
	}
	return c.Sweep
}
