// Package data provides base stats for characters, weapons and artifacts.
//
// The embedded Catalog is the default source; RemoteSource and the
// PostgreSQL store in internal/db serve the same StatLookup contract.
package data

import (
	"context"
	"fmt"

	"github.com/udisondev/aminus/internal/model"
)

// StatLookup resolves character and weapon base stats by name.
type StatLookup interface {
	CharacterBase(ctx context.Context, name string) (*model.StatTable, error)
	WeaponBase(ctx context.Context, name string) (*model.StatTable, error)
}

// ArtifactValues resolves artifact main stat and per-roll substat values.
type ArtifactValues interface {
	MainStatValue(rarity, level int, stat model.Stat) (float32, error)
	SubStatValue(rarity int, stat model.Stat) (float32, error)
}

var (
	ErrNotFound  = fmt.Errorf("%w: not found", model.ErrLookup)
	ErrAmbiguous = fmt.Errorf("%w: ambiguous name", model.ErrLookup)

	ErrInvalidRarity         = fmt.Errorf("%w: invalid rarity", model.ErrValidation)
	ErrInvalidLevelForRarity = fmt.Errorf("%w: invalid level for rarity", model.ErrValidation)
	ErrInvalidStat           = fmt.Errorf("%w: stat has no artifact value", model.ErrValidation)
	ErrInvalidData           = fmt.Errorf("%w: malformed game data", model.ErrValidation)
)

// Base stats every character has before gear.
const (
	baseCritRate       = 0.05
	baseCritDMG        = 0.5
	baseEnergyRecharge = 1.0
)

// Character is a level 90 character entry.
type Character struct {
	Name           string        `yaml:"name"`
	Element        model.Element `yaml:"element"`
	Rarity         int           `yaml:"rarity"`
	Weapon         string        `yaml:"weapon"`
	BaseHP         float32       `yaml:"base_hp"`
	BaseATK        float32       `yaml:"base_atk"`
	BaseDEF        float32       `yaml:"base_def"`
	AscensionStat  model.Stat    `yaml:"ascension_stat"`
	AscensionValue float32       `yaml:"ascension_value"`
}

// Stats returns base HP/ATK/DEF, the ascension stat and the innate crit
// and energy recharge.
func (c Character) Stats() *model.StatTable {
	t := model.StatTableOf(
		model.Entry{Stat: model.BaseHP, Value: c.BaseHP},
		model.Entry{Stat: model.BaseATK, Value: c.BaseATK},
		model.Entry{Stat: model.BaseDEF, Value: c.BaseDEF},
		model.Entry{Stat: model.CritRate, Value: baseCritRate},
		model.Entry{Stat: model.CritDMG, Value: baseCritDMG},
		model.Entry{Stat: model.EnergyRecharge, Value: baseEnergyRecharge},
	)
	if c.AscensionStat != model.StatNone && c.AscensionValue != 0 {
		t.Add(c.AscensionStat, c.AscensionValue)
	}
	return t
}

// Weapon is a level 90 weapon entry. SubStat is StatNone for weapons
// without a secondary stat.
type Weapon struct {
	Name     string     `yaml:"name"`
	Rarity   int        `yaml:"rarity"`
	Type     string     `yaml:"type"`
	BaseATK  float32    `yaml:"base_atk"`
	SubStat  model.Stat `yaml:"sub_stat"`
	SubValue float32    `yaml:"sub_value"`
}

// Stats returns base ATK plus the secondary stat.
func (w Weapon) Stats() *model.StatTable {
	t := model.StatTableOf(model.Entry{Stat: model.BaseATK, Value: w.BaseATK})
	if w.SubStat != model.StatNone && w.SubValue != 0 {
		t.Add(w.SubStat, w.SubValue)
	}
	return t
}
