package combat

import (
	"fmt"

	"github.com/udisondev/aminus/internal/model"
)

// Hit describes one damage instance group.
type Hit struct {
	Element     model.Element
	DamageType  model.DamageType
	Scaling     model.BaseScaling
	Amplifier   model.Amplifier
	Instances   float32
	MotionValue float32
}

// Target is the enemy a hit lands on.
type Target struct {
	CharacterLevel  int
	EnemyLevel      int
	EnemyResistance float32
}

// DefaultTarget is the KQMC standard target: a level 90 character against
// a level 100 enemy with 10% resistance.
func DefaultTarget() Target {
	return Target{CharacterLevel: 90, EnemyLevel: 100, EnemyResistance: 0.1}
}

// CalculateDamage evaluates hit against the default target. buffs may be nil.
func CalculateDamage(hit Hit, character, buffs model.Statable) (float32, error) {
	return CalculateDamageAgainst(hit, DefaultTarget(), character, buffs)
}

// CalculateDamageAgainst evaluates hit against target. character and buffs
// are merged into one working total; neither is modified.
func CalculateDamageAgainst(hit Hit, target Target, character, buffs model.Statable) (float32, error) {
	if hit.Amplifier != model.AmplifierNone && !hit.Element.Amplifiable() {
		return 0, fmt.Errorf("%w: %s with %s", ErrAmplifierElement, hit.Amplifier, hit.Element)
	}

	total := model.Sum(character, buffs)

	var scaling float32
	switch hit.Scaling {
	case model.ScalingATK:
		scaling = TotalATK(total)
	case model.ScalingDEF:
		scaling = TotalDEF(total)
	case model.ScalingHP:
		scaling = TotalHP(total)
	default:
		return 0, fmt.Errorf("%w: scaling %d", model.ErrInvalidID, hit.Scaling)
	}

	amp := float32(1)
	if hit.Amplifier != model.AmplifierNone {
		amp = AmplifierMultiplier(hit.Amplifier.Multiplier(),
			total.Get(model.ElementalMastery), total.Get(model.ReactionBonus))
	}

	bonus := total.Get(model.DMGBonus) + total.Get(model.ElementalDMGBonus)
	if s, ok := hit.Element.DMGBonus(); ok {
		bonus += total.Get(s)
	}
	if s, ok := hit.DamageType.DMGBonus(); ok {
		bonus += total.Get(s)
	}

	def, err := DefMultiplier(target.CharacterLevel, target.EnemyLevel,
		total.Get(model.DefReduction), total.Get(model.DefIgnore))
	if err != nil {
		return 0, err
	}

	var resReduction float32
	if s, ok := hit.Element.ResistanceReduction(); ok {
		resReduction = total.Get(s)
	}

	return FullDamage(DamageTerms{
		Instances:           hit.Instances,
		ScalingStat:         scaling,
		MotionValue:         hit.MotionValue,
		BaseDMGMultiplier:   1,
		AvgCritMultiplier:   AvgCritMultiplier(total),
		DMGBonus:            bonus,
		DefMultiplier:       def,
		ResMultiplier:       ResMultiplier(target.EnemyResistance, resReduction),
		AmplifierMultiplier: amp,
	}), nil
}
