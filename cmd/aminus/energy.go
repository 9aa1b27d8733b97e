package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/aminus/internal/energy"
)

func runEnergy(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("energy", flag.ContinueOnError)
	party := fs.Int("party", 4, "party size")
	burst := fs.Float64("burst", 80, "burst energy cost")
	er := fs.Float64("er", 1, "current energy recharge (1.0 = 100%)")
	pickupFile := fs.String("pickup", "", "YAML file with particle and orb counts; replaces the count flags")

	var p energy.Pickup
	particles := func(prefix, what string, dst *energy.Particles) {
		fs.Var(floatVar{&dst.Same}, prefix+"-same", "same-element "+what)
		fs.Var(floatVar{&dst.Different}, prefix+"-diff", "different-element "+what)
		fs.Var(floatVar{&dst.White}, prefix+"-white", "elementless "+what)
	}
	particles("on", "particles caught on-field", &p.ParticlesOnField)
	particles("off", "particles caught off-field", &p.ParticlesOffField)
	particles("orb-on", "orbs caught on-field", &p.OrbsOnField)
	particles("orb-off", "orbs caught off-field", &p.OrbsOffField)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pickupFile != "" {
		raw, err := os.ReadFile(*pickupFile)
		if err != nil {
			return fmt.Errorf("reading pickup: %w", err)
		}
		p = energy.Pickup{}
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("parsing pickup %s: %w", *pickupFile, err)
		}
	}

	got, err := energy.CalculateEnergy(*party, float32(*er), p)
	if err != nil {
		return err
	}
	need, err := energy.RequiredER(*party, float32(*burst), p)
	if err != nil {
		return err
	}
	a.printf("energy gathered:   %.1f\n", got)
	a.printf("required recharge: %.1f%%\n", need*100)
	return nil
}
