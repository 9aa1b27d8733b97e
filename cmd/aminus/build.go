package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/udisondev/aminus/internal/artifact"
	"github.com/udisondev/aminus/internal/combat"
	"github.com/udisondev/aminus/internal/model"
)

// buildFlags are shared by every command that evaluates a rotation.
type buildFlags struct {
	character string
	weapon    string
	rotation  string
	sands     string
	goblet    string
	circlet   string
}

func (f *buildFlags) register(fs *flag.FlagSet, withMains bool) {
	fs.StringVar(&f.character, "character", "", "character name (fuzzy)")
	fs.StringVar(&f.weapon, "weapon", "", "weapon name (fuzzy, optional)")
	fs.StringVar(&f.rotation, "rotation", "", "rotation YAML file")
	if withMains {
		fs.StringVar(&f.sands, "sands", "ATK%", "sands main stat")
		fs.StringVar(&f.goblet, "goblet", "ElementalDMGBonus", "goblet main stat; ElementalDMGBonus picks the character's element")
		fs.StringVar(&f.circlet, "circlet", "CritRate", "circlet main stat")
	}
}

// session is a parsed character setup ready for evaluation.
type session struct {
	base     *model.StatTable
	rotation *combat.Rotation
	values   artifact.Values
	element  model.Element
}

func (a *app) session(ctx context.Context, f buildFlags) (*session, error) {
	if f.character == "" || f.rotation == "" {
		return nil, errors.New("-character and -rotation are required")
	}
	rot, err := combat.LoadRotationAgainst(f.rotation, a.cfg.Target.Target())
	if err != nil {
		return nil, err
	}
	base, err := a.baseStats(ctx, f.character, f.weapon)
	if err != nil {
		return nil, err
	}
	values, err := a.artifactValues()
	if err != nil {
		return nil, err
	}

	s := &session{base: base, rotation: rot, values: values, element: model.ElementNone}
	// Elemental goblet needs the element; only the bundled catalog records it.
	if c, err := a.embedded(); err == nil {
		if ch, err := c.Character(f.character); err == nil {
			s.element = ch.Element
		}
	}
	return s, nil
}

// mains parses the -sands/-goblet/-circlet flags.
func (s *session) mains(f buildFlags) (sands, goblet, circlet model.Stat, err error) {
	if sands, err = model.ParseStat(f.sands); err != nil {
		return
	}
	if goblet, err = model.ParseStat(f.goblet); err != nil {
		return
	}
	if circlet, err = model.ParseStat(f.circlet); err != nil {
		return
	}
	if goblet == model.ElementalDMGBonus {
		bonus, ok := s.element.DMGBonus()
		if !ok {
			return 0, 0, 0, fmt.Errorf("character element %s has no goblet bonus; pass -goblet", s.element)
		}
		goblet = bonus
	}
	return sands, goblet, circlet, nil
}

func (s *session) kqm(f buildFlags) (*artifact.Builder, error) {
	sands, goblet, circlet, err := s.mains(f)
	if err != nil {
		return nil, err
	}
	return artifact.NewKQMAll5Star(s.values, sands, goblet, circlet)
}
