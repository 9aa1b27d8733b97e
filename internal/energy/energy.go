// Package energy estimates burst energy gathered from elemental particles
// and orbs, and the energy recharge needed to burst every rotation.
package energy

import (
	"fmt"

	"github.com/udisondev/aminus/internal/model"
)

// Flat energy per particle by element match.
const (
	SameElement      = 3
	NoElement        = 2
	DifferentElement = 1
	// OrbMultiplier: an orb is worth six particles of the same kind.
	OrbMultiplier = 6
)

var (
	ErrInvalidPartySize = fmt.Errorf("%w: party size must be 1..4", model.ErrValidation)
	ErrNoEnergy         = fmt.Errorf("%w: no energy gathered", model.ErrValidation)
	ErrNegativeCount    = fmt.Errorf("%w: negative particle count", model.ErrValidation)
)

// Particles counts drops by element match. White drops have no element.
type Particles struct {
	Same      float32 `yaml:"same"`
	Different float32 `yaml:"different"`
	White     float32 `yaml:"white"`
}

func (p Particles) flat() float32 {
	return p.Same*SameElement + p.Different*DifferentElement + p.White*NoElement
}

func (p Particles) valid() bool {
	return p.Same >= 0 && p.Different >= 0 && p.White >= 0
}

// Pickup groups the particles and orbs a character collects during one
// rotation, split by whether the character was on the field.
type Pickup struct {
	ParticlesOnField  Particles `yaml:"particles_on_field"`
	ParticlesOffField Particles `yaml:"particles_off_field"`
	OrbsOnField       Particles `yaml:"orbs_on_field"`
	OrbsOffField      Particles `yaml:"orbs_off_field"`
}

// OffFieldMultiplier is the share of energy an off-field character receives.
// A solo character is never off-field.
func OffFieldMultiplier(partySize int) (float32, error) {
	switch partySize {
	case 4:
		return 0.6, nil
	case 3:
		return 0.7, nil
	case 2:
		return 0.8, nil
	case 1:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidPartySize, partySize)
	}
}

// CalculateEnergy returns the energy gathered from pickup with the given
// energy recharge (1.0 = 100%).
func CalculateEnergy(partySize int, er float32, pickup Pickup) (float32, error) {
	off, err := OffFieldMultiplier(partySize)
	if err != nil {
		return 0, err
	}
	for _, p := range []Particles{pickup.ParticlesOnField, pickup.ParticlesOffField, pickup.OrbsOnField, pickup.OrbsOffField} {
		if !p.valid() {
			return 0, ErrNegativeCount
		}
	}

	total := pickup.ParticlesOnField.flat() +
		pickup.ParticlesOffField.flat()*off +
		pickup.OrbsOnField.flat()*OrbMultiplier +
		pickup.OrbsOffField.flat()*off*OrbMultiplier
	return total * er, nil
}

// RequiredER is the energy recharge needed to gather burstCost energy from
// pickup.
func RequiredER(partySize int, burstCost float32, pickup Pickup) (float32, error) {
	e, err := CalculateEnergy(partySize, 1, pickup)
	if err != nil {
		return 0, err
	}
	if e <= 0 {
		return 0, ErrNoEnergy
	}
	return burstCost / e, nil
}
