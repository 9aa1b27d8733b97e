package optimizer

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/aminus/internal/artifact"
	"github.com/udisondev/aminus/internal/model"
)

// Options controls OptimizeSubstats.
type Options struct {
	// ERRequirement is the total energy recharge rolled for before any
	// damage stat (1.0 = 100%). Zero disables the ER phase.
	ERRequirement float32
	// Quality of every placed roll.
	Quality artifact.RollQuality
}

// SubstatResult is the allocation OptimizeSubstats settled on.
type SubstatResult struct {
	// Rolls counts placed rolls per substat, fixed rolls excluded.
	Rolls map[model.Stat]int
	// Builder holds the final allocation.
	Builder *artifact.Builder
	Value   float32
	ER      float32
}

// OptimizeSubstats greedily places rolls on a copy of b. It first rolls
// energy recharge until base plus gear reaches opts.ERRequirement, then keeps
// adding the substat with the highest positive gain on target until no roll
// fits or helps. Ties go to the canonical substat order.
func OptimizeSubstats(base model.Statable, target Evaluator, b *artifact.Builder, opts Options) (SubstatResult, error) {
	if !opts.Quality.Valid() {
		return SubstatResult{}, fmt.Errorf("%w: %d", artifact.ErrInvalidQuality, opts.Quality)
	}
	g := &greedy{base: base, target: target, b: b.Clone(), quality: opts.Quality}

	total, err := g.total()
	if err != nil {
		return SubstatResult{}, err
	}
	erRolls := 0
	for total.Get(model.EnergyRecharge) < opts.ERRequirement {
		ok, err := g.roll(model.EnergyRecharge)
		if err != nil {
			return SubstatResult{}, err
		}
		if !ok {
			slog.Debug("energy recharge requirement not reachable",
				"want", opts.ERRequirement, "have", total.Get(model.EnergyRecharge))
			break
		}
		erRolls++
		if total, err = g.total(); err != nil {
			return SubstatResult{}, err
		}
	}

	current, err := g.value()
	if err != nil {
		return SubstatResult{}, err
	}
	steps := 0
	for {
		stat, next, ok, err := g.bestStep(current)
		if err != nil {
			return SubstatResult{}, err
		}
		if !ok {
			break
		}
		if _, err := g.roll(stat); err != nil {
			return SubstatResult{}, err
		}
		current = next
		steps++
	}

	if total, err = g.total(); err != nil {
		return SubstatResult{}, err
	}
	slog.Debug("substat allocation done", "er_rolls", erRolls, "damage_rolls", steps, "value", current)

	rolls := make(map[model.Stat]int)
	for _, stat := range artifact.Substats() {
		n := 0
		for _, r := range g.b.Rarities() {
			n += g.b.FluidRolls(stat, r)
		}
		if n > 0 {
			rolls[stat] = n
		}
	}
	return SubstatResult{
		Rolls:   rolls,
		Builder: g.b,
		Value:   current,
		ER:      total.Get(model.EnergyRecharge),
	}, nil
}

type greedy struct {
	base    model.Statable
	target  Evaluator
	b       *artifact.Builder
	quality artifact.RollQuality
}

func (g *greedy) total() (model.Statable, error) {
	gear, err := g.b.Build()
	if err != nil {
		return nil, err
	}
	return model.Chain(g.base, gear), nil
}

func (g *greedy) value() (float32, error) {
	total, err := g.total()
	if err != nil {
		return 0, err
	}
	return g.target.Evaluate(total)
}

// rarityFor returns the highest rarity with room for one more roll of stat.
func (g *greedy) rarityFor(stat model.Stat) (int, bool) {
	for _, r := range g.b.Rarities() {
		if g.b.FluidRolls(stat, r) < g.b.SubstatConstraint(stat, r) && g.b.RollsLeftAt(r) > 0 {
			return r, true
		}
	}
	return 0, false
}

func (g *greedy) roll(stat model.Stat) (bool, error) {
	r, ok := g.rarityFor(stat)
	if !ok {
		return false, nil
	}
	if err := g.b.Roll(stat, g.quality, r, 1); err != nil {
		return false, err
	}
	return true, nil
}

func (g *greedy) bestStep(current float32) (model.Stat, float32, bool, error) {
	var (
		best     model.Stat
		bestNext float32
		found    bool
	)
	for _, stat := range artifact.Substats() {
		r, ok := g.rarityFor(stat)
		if !ok {
			continue
		}
		trial := g.b.Clone()
		if err := trial.Roll(stat, g.quality, r, 1); err != nil {
			return 0, 0, false, err
		}
		gear, err := trial.Build()
		if err != nil {
			return 0, 0, false, err
		}
		next, err := g.target.Evaluate(model.Chain(g.base, gear))
		if err != nil {
			return 0, 0, false, fmt.Errorf("evaluating %s roll: %w", stat, err)
		}
		if next > current && (!found || next > bestNext) {
			best, bestNext, found = stat, next, true
		}
	}
	return best, bestNext, found, nil
}
