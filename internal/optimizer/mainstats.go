package optimizer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/aminus/internal/artifact"
	"github.com/udisondev/aminus/internal/model"
)

const (
	searchRarity = artifact.MaxRarity
	searchLevel  = 20
)

// MainStatCombo is a sands/goblet/circlet main stat choice.
type MainStatCombo struct {
	Sands   model.Stat
	Goblet  model.Stat
	Circlet model.Stat
}

func (c MainStatCombo) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Sands, c.Goblet, c.Circlet)
}

// MainStatResult is the best combo and the target value it reached.
type MainStatResult struct {
	Combo  MainStatCombo
	Value  float32
	Tested int
}

// OptimizeMainStats searches every sands × goblet × circlet combination.
// Each slot only tries legal mains that have a positive gradient on base;
// a slot with none falls back to all its legal mains. Combos are scored on
// a KQM 5★ build chained onto base. The first best combo in enumeration
// order wins.
func OptimizeMainStats(base model.Statable, target Evaluator, values artifact.Values) (MainStatResult, error) {
	slopes, err := MainStatSlopes(values, searchRarity, searchLevel)
	if err != nil {
		return MainStatResult{}, err
	}
	effective, err := ReluHeuristic(base, target, slopes)
	if err != nil {
		return MainStatResult{}, err
	}
	useful := make(map[model.Stat]bool, len(effective))
	for _, g := range effective {
		useful[g.Stat] = true
	}

	sands := candidates(artifact.Sands, useful)
	goblets := candidates(artifact.Goblet, useful)
	circlets := candidates(artifact.Circlet, useful)

	var (
		best  MainStatResult
		found bool
	)
	for _, s := range sands {
		for _, g := range goblets {
			for _, c := range circlets {
				combo := MainStatCombo{Sands: s, Goblet: g, Circlet: c}
				v, err := scoreCombo(base, target, values, combo)
				if err != nil {
					return MainStatResult{}, fmt.Errorf("combo %s: %w", combo, err)
				}
				best.Tested++
				if !found || v > best.Value {
					best.Combo, best.Value, found = combo, v, true
				}
			}
		}
	}

	slog.Debug("main stat search done",
		"tested", best.Tested, "best", best.Combo.String(), "value", best.Value)
	return best, nil
}

// candidates returns the legal mains of slot that are useful, in the slot's
// own order, or all legal mains when none are.
func candidates(slot artifact.Slot, useful map[model.Stat]bool) []model.Stat {
	legal := slot.MainStats()
	out := slices.DeleteFunc(slices.Clone(legal), func(s model.Stat) bool { return !useful[s] })
	if len(out) == 0 {
		return legal
	}
	return out
}

func scoreCombo(base model.Statable, target Evaluator, values artifact.Values, combo MainStatCombo) (float32, error) {
	b, err := artifact.NewKQMAll5Star(values, combo.Sands, combo.Goblet, combo.Circlet)
	if err != nil {
		return 0, err
	}
	gear, err := b.Build()
	if err != nil {
		return 0, err
	}
	return target.Evaluate(model.Chain(base, gear))
}
