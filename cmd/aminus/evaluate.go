package main

import (
	"context"
	"flag"
	"slices"

	"github.com/udisondev/aminus/internal/artifact"
	"github.com/udisondev/aminus/internal/model"
	"github.com/udisondev/aminus/internal/optimizer"
)

func runDamage(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("damage", flag.ContinueOnError)
	var bf buildFlags
	bf.register(fs, true)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := a.session(ctx, bf)
	if err != nil {
		return err
	}
	b, err := s.kqm(bf)
	if err != nil {
		return err
	}
	gear, err := b.Build()
	if err != nil {
		return err
	}
	stats := model.Chain(s.base, gear)

	parts, err := s.rotation.Breakdown(stats)
	if err != nil {
		return err
	}
	var total float32
	for _, name := range s.rotation.Names() {
		a.printf("%-24s %12.1f\n", name, parts[name])
		total += parts[name]
	}
	a.printf("%-24s %12.1f\n", "total", total)
	return nil
}

func runGradients(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("gradients", flag.ContinueOnError)
	var bf buildFlags
	bf.register(fs, true)
	rarity := fs.Int("rarity", artifact.MaxRarity, "substat roll rarity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := a.session(ctx, bf)
	if err != nil {
		return err
	}
	b, err := s.kqm(bf)
	if err != nil {
		return err
	}
	gear, err := b.Build()
	if err != nil {
		return err
	}
	slopes, err := optimizer.SubstatSlopes(s.values, *rarity)
	if err != nil {
		return err
	}
	grads, err := optimizer.StatGradients(model.Chain(s.base, gear), s.rotation, slopes)
	if err != nil {
		return err
	}

	// Rank by damage per roll.
	stats := artifact.Substats()
	slices.SortStableFunc(stats, func(x, y model.Stat) int {
		gx, gy := grads[x]*slopes[x], grads[y]*slopes[y]
		switch {
		case gx > gy:
			return -1
		case gx < gy:
			return 1
		}
		return 0
	})
	for _, stat := range stats {
		a.printf("%-18s %10.2f per roll\n", stat, grads[stat]*slopes[stat])
	}
	return nil
}

func runMains(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("mains", flag.ContinueOnError)
	var bf buildFlags
	bf.register(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := a.session(ctx, bf)
	if err != nil {
		return err
	}
	res, err := optimizer.OptimizeMainStats(s.base, s.rotation, s.values)
	if err != nil {
		return err
	}
	a.printf("sands:   %s\ngoblet:  %s\ncirclet: %s\n", res.Combo.Sands, res.Combo.Goblet, res.Combo.Circlet)
	a.printf("damage:  %.1f (%d combinations)\n", res.Value, res.Tested)
	return nil
}

func runSubstats(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("substats", flag.ContinueOnError)
	var bf buildFlags
	bf.register(fs, true)
	er := fs.Float64("er", float64(a.cfg.Optimizer.ERRequirement), "energy recharge to reach first (1.0 = 100%)")
	quality := fs.String("quality", a.cfg.Optimizer.Quality, "roll quality: LOW, MID, HIGH, MAX, AVG")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, err := artifact.ParseQuality(*quality)
	if err != nil {
		return err
	}

	s, err := a.session(ctx, bf)
	if err != nil {
		return err
	}
	b, err := s.kqm(bf)
	if err != nil {
		return err
	}
	res, err := optimizer.OptimizeSubstats(s.base, s.rotation, b, optimizer.Options{
		ERRequirement: float32(*er),
		Quality:       q,
	})
	if err != nil {
		return err
	}

	for _, stat := range artifact.Substats() {
		if n := res.Rolls[stat]; n > 0 {
			a.printf("%-18s %3d\n", stat, n)
		}
	}
	a.printf("rolls left:        %3d\n", res.Builder.RollsLeft())
	a.printf("energy recharge:   %.1f%%\n", res.ER*100)
	a.printf("damage:            %.1f\n", res.Value)
	return nil
}
