// Package automation runs scripted sequences of sweeps loaded from YAML and
// checks each against an accuracy bound.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/iqmath/internal/experiment"
	"github.com/san-kum/iqmath/internal/sweep"
)

// Scenario defines a scripted sweep sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single sweep in a scenario. A zero Range sweeps the
// kernel's own domain and a zero Radius uses the default. MaxError, when set, fails the step if the largest
// absolute error exceeds it.
type ScenarioStep struct {
	Kernel    string       `yaml:"kernel"`
	Range     sweep.Config `yaml:"range"`
	Tolerance float64      `yaml:"tolerance"`
	Radius    int32        `yaml:"radius"`
	MaxError  float64      `yaml:"max_error"`
	SaveAs    string       `yaml:"save_as"`
}

// StepResult pairs a step with its sweep outcome.
type StepResult struct {
	Step   ScenarioStep
	Result *sweep.Result
	Pass   bool
}

// Saver persists a finished sweep under a label; storage.Store satisfies it.
type Saver interface {
	SaveLabeled(label string, tolerance float64, result *sweep.Result) (string, error)
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	for i, step := range scenario.Steps {
		if step.Radius == 0 {
			continue
		}
		if err := sweep.CheckRadius(step.Kernel, step.Radius); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	return &scenario, nil
}

// registryFor binds the radius-dependent kernels to radius.
func registryFor(radius int32) *experiment.Registry {
	reg := experiment.NewRegistry()
	if radius > 0 {
		reg.Register("atan2", func() sweep.Kernel { return sweep.NewAtan2Kernel(radius) })
		reg.Register("magnitude", func() sweep.Kernel { return sweep.NewMagnitudeKernel(radius) })
	}
	return reg
}

// RunScenario executes all steps in order. Failed accuracy checks do not stop
// the run; sweep errors do. saver may be nil, in which case SaveAs is ignored.
func RunScenario(ctx context.Context, scenario *Scenario, saver Saver, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "kernel", step.Kernel)

		exp := experiment.New(experiment.Config{
			Kernel:    step.Kernel,
			Range:     step.Range,
			Tolerance: step.Tolerance,
		})
		if err := exp.SetupFromRegistry(registryFor(step.Radius)); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		pass := step.MaxError <= 0 || result.Metrics["max_abs_error"] <= step.MaxError
		if !pass {
			logger.Warn("accuracy check failed", "step", i+1, "kernel", step.Kernel,
				"max_abs_error", result.Metrics["max_abs_error"], "limit", step.MaxError)
		}

		if step.SaveAs != "" && saver != nil {
			id, err := saver.SaveLabeled(step.SaveAs, step.Tolerance, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			logger.Info("step saved", "step", i+1, "run_id", id)
		}

		results = append(results, StepResult{Step: step, Result: result, Pass: pass})
	}

	return results, nil
}

// Passed reports whether every step met its accuracy bound.
func Passed(results []StepResult) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return true
}
