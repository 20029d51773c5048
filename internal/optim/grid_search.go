// Package optim searches kernel parameters for the best or worst metric.
package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/iqmath/internal/experiment"
)

// Objective selects whether Search looks for the smallest or largest metric.
type Objective int

const (
	Minimize Objective = iota
	Maximize
)

var ErrNoResult = errors.New("optim: no parameter combination ran")

// Point is one evaluated parameter combination.
type Point struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	objective  Objective
}

func NewGridSearch(params []string, ranges [][]float64, objective Objective) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, objective: objective}
}

// Search runs buildExperiment for every combination on the grid and returns
// the best point under the objective along with every point evaluated, in
// grid order. Combinations whose experiment fails to build or run are
// skipped; context cancellation aborts the search.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Point, []Point, error) {
	var all []Point
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &all); err != nil {
		return Point{}, all, err
	}
	if len(all) == 0 {
		return Point{}, nil, ErrNoResult
	}

	best := all[0]
	for _, p := range all[1:] {
		if g.better(p.Value, best.Value) {
			best = p
		}
	}
	return best, all, nil
}

func (g *GridSearch) better(a, b float64) bool {
	if g.objective == Maximize {
		return a > b
	}
	return a < b
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	all *[]Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return nil
		}

		result, err := exp.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok || math.IsNaN(val) {
			return nil
		}
		*all = append(*all, Point{Params: current, Value: val})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, all); err != nil {
			return err
		}
	}
	return nil
}
