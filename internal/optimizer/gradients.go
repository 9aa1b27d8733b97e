// Package optimizer ranks stats by their marginal effect on a damage target
// and searches artifact main stats and substat rolls that maximize it.
package optimizer

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/udisondev/aminus/internal/artifact"
	"github.com/udisondev/aminus/internal/model"
)

// ErrZeroSlope is returned when a slope has a zero step.
var ErrZeroSlope = fmt.Errorf("%w: zero slope", model.ErrValidation)

// Evaluator scores a stat snapshot. combat.Rotation satisfies it.
type Evaluator interface {
	Evaluate(stats model.Statable) (float32, error)
}

// Gradient is the marginal target value per unit of a stat.
type Gradient struct {
	Stat  model.Stat
	Value float32
}

// StatGradients perturbs base by each slope in turn and reports
// (after-before)/step for every stat. base is never modified.
func StatGradients(base model.Statable, target Evaluator, slopes map[model.Stat]float32) (map[model.Stat]float32, error) {
	before, err := target.Evaluate(base)
	if err != nil {
		return nil, fmt.Errorf("evaluating base: %w", err)
	}

	out := make(map[model.Stat]float32, len(slopes))
	for _, stat := range slices.Sorted(maps.Keys(slopes)) {
		step := slopes[stat]
		if step == 0 {
			return nil, fmt.Errorf("%w: %s", ErrZeroSlope, stat)
		}
		perturbed := model.Chain(base, model.StatTableOf(model.Entry{Stat: stat, Value: step}))
		after, err := target.Evaluate(perturbed)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", stat, err)
		}
		out[stat] = (after - before) / step
	}
	return out, nil
}

// ReluHeuristic returns the stats with a strictly positive gradient, best
// first. Equal gradients are ordered by stat code.
func ReluHeuristic(base model.Statable, target Evaluator, slopes map[model.Stat]float32) ([]Gradient, error) {
	grads, err := StatGradients(base, target, slopes)
	if err != nil {
		return nil, err
	}
	out := make([]Gradient, 0, len(grads))
	for stat, g := range grads {
		if g > 0 {
			out = append(out, Gradient{Stat: stat, Value: g})
		}
	}
	slices.SortFunc(out, func(a, b Gradient) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Stat, b.Stat)
	})
	return out, nil
}

// SubstatSlopes maps every substat to the value of one max roll at rarity.
func SubstatSlopes(values artifact.Values, rarity int) (map[model.Stat]float32, error) {
	out := make(map[model.Stat]float32)
	for _, stat := range artifact.Substats() {
		v, err := values.SubStatValue(rarity, stat)
		if err != nil {
			return nil, fmt.Errorf("substat slope %s: %w", stat, err)
		}
		out[stat] = v
	}
	return out, nil
}

// MainStatSlopes maps every stat a sands, goblet or circlet may carry to its
// main value at rarity and level.
func MainStatSlopes(values artifact.Values, rarity, level int) (map[model.Stat]float32, error) {
	out := make(map[model.Stat]float32)
	for _, slot := range []artifact.Slot{artifact.Sands, artifact.Goblet, artifact.Circlet} {
		for _, stat := range slot.MainStats() {
			if _, ok := out[stat]; ok {
				continue
			}
			v, err := values.MainStatValue(rarity, level, stat)
			if err != nil {
				return nil, fmt.Errorf("main slope %s: %w", stat, err)
			}
			out[stat] = v
		}
	}
	return out, nil
}
