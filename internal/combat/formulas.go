package combat

import (
	"fmt"

	"github.com/udisondev/aminus/internal/model"
)

// Level bounds accepted by DefMultiplier.
const (
	MinCharacterLevel = 1
	MaxCharacterLevel = 90
	MinEnemyLevel     = 1
	// MaxDefReduction caps defense shred before it enters the formula.
	MaxDefReduction = 0.9
)

var (
	ErrInvalidLevel     = fmt.Errorf("%w: level out of range", model.ErrContract)
	ErrAmplifierElement = fmt.Errorf("%w: element cannot trigger amplifying reactions", model.ErrContract)
)

// TotalATK = BaseATK * (1 + ATK%) + FlatATK.
func TotalATK(s model.Statable) float32 {
	return s.Get(model.BaseATK)*(1+s.Get(model.ATKPercent)) + s.Get(model.FlatATK)
}

// TotalDEF = BaseDEF * (1 + DEF%) + FlatDEF.
func TotalDEF(s model.Statable) float32 {
	return s.Get(model.BaseDEF)*(1+s.Get(model.DEFPercent)) + s.Get(model.FlatDEF)
}

// TotalHP = BaseHP * (1 + HP%) + FlatHP.
func TotalHP(s model.Statable) float32 {
	return s.Get(model.BaseHP)*(1+s.Get(model.HPPercent)) + s.Get(model.FlatHP)
}

// AvgCritMultiplier is the expected crit multiplier with crit rate clamped
// to [0, 1].
func AvgCritMultiplier(s model.Statable) float32 {
	cr := min(max(s.Get(model.CritRate), 0), 1)
	return 1 + cr*s.Get(model.CritDMG)
}

// DefMultiplier returns the share of damage left after enemy defense.
func DefMultiplier(characterLevel, enemyLevel int, defReduction, defIgnore float32) (float32, error) {
	if characterLevel < MinCharacterLevel || characterLevel > MaxCharacterLevel {
		return 0, fmt.Errorf("%w: character level %d", ErrInvalidLevel, characterLevel)
	}
	if enemyLevel < MinEnemyLevel {
		return 0, fmt.Errorf("%w: enemy level %d", ErrInvalidLevel, enemyLevel)
	}
	char := float32(characterLevel) + 100
	enemy := float32(enemyLevel) + 100
	return char / (char + enemy*(1-min(defReduction, MaxDefReduction))*(1-defIgnore)), nil
}

// ResMultiplier returns the share of damage left after enemy resistance.
func ResMultiplier(baseResistance, reduction float32) float32 {
	res := baseResistance - reduction
	switch {
	case res < 0:
		return 1 - res/2
	case res < 0.75:
		return 1 - res
	default:
		return 1 / (4*res + 1)
	}
}

// AmplifierMultiplier scales a reaction base multiplier by elemental
// mastery and reaction bonus.
func AmplifierMultiplier(base, em, reactionBonus float32) float32 {
	return base * (1 + (2.78*em)/(1400+em) + reactionBonus)
}

// DamageTerms are the factors of the final damage formula.
type DamageTerms struct {
	Instances           float32
	ScalingStat         float32
	MotionValue         float32
	BaseDMGMultiplier   float32
	AdditiveBaseDMG     float32
	AvgCritMultiplier   float32
	DMGBonus            float32
	DMGReduction        float32
	DefMultiplier       float32
	ResMultiplier       float32
	AmplifierMultiplier float32
}

// FullDamage multiplies out every damage term.
func FullDamage(t DamageTerms) float32 {
	return ((t.ScalingStat*t.MotionValue)*t.BaseDMGMultiplier + t.AdditiveBaseDMG) *
		t.AvgCritMultiplier *
		(1 + t.DMGBonus - t.DMGReduction) *
		t.DefMultiplier *
		t.ResMultiplier *
		t.AmplifierMultiplier *
		t.Instances
}
