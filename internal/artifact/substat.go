package artifact

import (
	"fmt"
	"slices"

	"github.com/udisondev/aminus/internal/model"
)

// substats in canonical order. KQM fixed rolls are placed and rebalanced
// in this order.
var substats = []model.Stat{
	model.HPPercent,
	model.FlatHP,
	model.ATKPercent,
	model.FlatATK,
	model.DEFPercent,
	model.FlatDEF,
	model.ElementalMastery,
	model.CritRate,
	model.CritDMG,
	model.EnergyRecharge,
}

// Substats returns the ten stats that can appear as substats.
func Substats() []model.Stat {
	return slices.Clone(substats)
}

// IsValidSubstat reports whether stat can be rolled as a substat.
func IsValidSubstat(stat model.Stat) bool {
	return slices.Contains(substats, stat)
}

// Errors returned by pieces and the builder.
var (
	ErrInvalidRarity      = fmt.Errorf("%w: invalid artifact rarity", model.ErrValidation)
	ErrInvalidLevel       = fmt.Errorf("%w: invalid artifact level", model.ErrValidation)
	ErrInvalidMainStat    = fmt.Errorf("%w: invalid main stat for slot", model.ErrValidation)
	ErrInvalidSubstat     = fmt.Errorf("%w: invalid substat", model.ErrValidation)
	ErrInvalidRollCount   = fmt.Errorf("%w: roll count must be positive", model.ErrValidation)
	ErrInvalidQuality     = fmt.Errorf("%w: invalid roll quality", model.ErrValidation)
	ErrRollBudgetExceeded = fmt.Errorf("%w: roll budget exceeded", model.ErrValidation)
	ErrMissingValues      = fmt.Errorf("%w: artifact value source not set", model.ErrContract)
)
