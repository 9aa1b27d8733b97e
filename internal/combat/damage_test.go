package combat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aminus/internal/model"
)

// dilucStats is a level 90 Diluc with Rainslasher and a typical artifact set.
func dilucStats() *model.StatTable {
	diluc := model.StatTableOf(
		model.Entry{Stat: model.BaseATK, Value: 334.85},
		model.Entry{Stat: model.CritRate, Value: 0.192 + 0.05},
		model.Entry{Stat: model.CritDMG, Value: 0.5},
		model.Entry{Stat: model.EnergyRecharge, Value: 1.0},
	)
	weapon := model.StatTableOf(
		model.Entry{Stat: model.BaseATK, Value: 510},
		model.Entry{Stat: model.ElementalMastery, Value: 165},
	)
	artifacts := model.StatTableOf(
		model.Entry{Stat: model.FlatHP, Value: 4780},
		model.Entry{Stat: model.FlatATK, Value: 311},
		model.Entry{Stat: model.ATKPercent, Value: 0.466},
		model.Entry{Stat: model.PyroDMGBonus, Value: 0.466},
		model.Entry{Stat: model.CritRate, Value: 0.311},
		model.Entry{Stat: model.ATKPercent, Value: 0.0992},
		model.Entry{Stat: model.FlatATK, Value: 33.08},
		model.Entry{Stat: model.ElementalMastery, Value: 39.64},
		model.Entry{Stat: model.CritRate, Value: 0.0662},
		model.Entry{Stat: model.CritDMG, Value: 0.1324},
		model.Entry{Stat: model.EnergyRecharge, Value: 0.1102},
	)
	diluc.AddTable(weapon)
	diluc.AddTable(artifacts)
	return diluc
}

var dilucSkill = Hit{
	Element:     model.Pyro,
	DamageType:  model.Skill,
	Scaling:     model.ScalingATK,
	Amplifier:   model.AmplifierNone,
	Instances:   1,
	MotionValue: 1,
}

func TestCalculateDamage_Diluc(t *testing.T) {
	stats := dilucStats()
	assert.InDelta(t, 1667.0, TotalATK(stats), 10)

	dmg, err := CalculateDamage(dilucSkill, stats, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1490.609, dmg, 0.5)
}

func TestCalculateDamage_DoesNotMutateInputs(t *testing.T) {
	stats := dilucStats()
	buffs := model.StatTableOf(model.Entry{Stat: model.DMGBonus, Value: 0.2})
	before := stats.Clone()

	_, err := CalculateDamage(dilucSkill, stats, buffs)
	require.NoError(t, err)
	assert.True(t, before.Equal(stats))
	assert.Equal(t, 1, buffs.Len())
}

func TestCalculateDamage_Buffs(t *testing.T) {
	stats := dilucStats()
	plain, err := CalculateDamage(dilucSkill, stats, nil)
	require.NoError(t, err)

	// +20% generic DMG bonus: (1.466 + 0.2) / 1.466.
	buffed, err := CalculateDamage(dilucSkill, stats, model.StatTableOf(model.Entry{Stat: model.DMGBonus, Value: 0.2}))
	require.NoError(t, err)
	assert.InDelta(t, plain*1.666/1.466, buffed, 0.5)

	// Skill bonus applies, burst bonus does not.
	skill, err := CalculateDamage(dilucSkill, stats, model.StatTableOf(model.Entry{Stat: model.SkillDMGBonus, Value: 0.2}))
	require.NoError(t, err)
	assert.InDelta(t, buffed, skill, 0.01)
	burst, err := CalculateDamage(dilucSkill, stats, model.StatTableOf(model.Entry{Stat: model.BurstDMGBonus, Value: 0.2}))
	require.NoError(t, err)
	assert.InDelta(t, plain, burst, 0.01)

	// Pyro shred moves resistance from 10% to -10%.
	shred, err := CalculateDamage(dilucSkill, stats, model.StatTableOf(model.Entry{Stat: model.PyroResistanceReduction, Value: 0.2}))
	require.NoError(t, err)
	assert.InDelta(t, plain*1.05/0.9, shred, 0.5)

	// Hydro shred does nothing for a pyro hit.
	other, err := CalculateDamage(dilucSkill, stats, model.StatTableOf(model.Entry{Stat: model.HydroResistanceReduction, Value: 0.2}))
	require.NoError(t, err)
	assert.InDelta(t, plain, other, 0.01)
}

func TestCalculateDamage_Amplifier(t *testing.T) {
	stats := dilucStats()
	plain, err := CalculateDamage(dilucSkill, stats, nil)
	require.NoError(t, err)

	vape := dilucSkill
	vape.Amplifier = model.Reverse
	got, err := CalculateDamage(vape, stats, nil)
	require.NoError(t, err)

	em := stats.Get(model.ElementalMastery)
	assert.InDelta(t, plain*AmplifierMultiplier(1.5, em, 0), got, 0.5)
}

func TestCalculateDamage_AmplifierElement(t *testing.T) {
	for _, elem := range []model.Element{model.Electro, model.Geo, model.Dendro, model.Physical} {
		hit := dilucSkill
		hit.Element = elem
		hit.Amplifier = model.Forward
		_, err := CalculateDamage(hit, dilucStats(), nil)
		require.Error(t, err, "%s", elem)
		assert.True(t, errors.Is(err, ErrAmplifierElement))
		assert.True(t, errors.Is(err, model.ErrContract))
	}
}

func TestCalculateDamageAgainst(t *testing.T) {
	stats := dilucStats()
	plain, err := CalculateDamage(dilucSkill, stats, nil)
	require.NoError(t, err)

	// Same levels, no resistance.
	got, err := CalculateDamageAgainst(dilucSkill, Target{CharacterLevel: 90, EnemyLevel: 100}, stats, nil)
	require.NoError(t, err)
	assert.InDelta(t, plain/0.9, got, 0.5)

	_, err = CalculateDamageAgainst(dilucSkill, Target{CharacterLevel: 95, EnemyLevel: 100}, stats, nil)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestCalculateDamage_Scaling(t *testing.T) {
	stats := model.StatTableOf(
		model.Entry{Stat: model.BaseHP, Value: 10000},
		model.Entry{Stat: model.BaseDEF, Value: 800},
		model.Entry{Stat: model.BaseATK, Value: 100},
	)
	hit := Hit{Element: model.Geo, DamageType: model.Burst, Instances: 1, MotionValue: 1}

	hit.Scaling = model.ScalingHP
	hp, err := CalculateDamageAgainst(hit, Target{CharacterLevel: 90, EnemyLevel: 90}, stats, nil)
	require.NoError(t, err)
	hit.Scaling = model.ScalingDEF
	def, err := CalculateDamageAgainst(hit, Target{CharacterLevel: 90, EnemyLevel: 90}, stats, nil)
	require.NoError(t, err)

	// Equal levels give a 0.5 defense multiplier.
	assert.InDelta(t, 5000, hp, 0.01)
	assert.InDelta(t, 400, def, 0.01)
}
