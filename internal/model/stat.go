package model

import (
	"fmt"
	"strings"
)

// Stat identifies a numeric attribute. The set is closed; codes are stable
// and shared with bindings, so new values may only be appended.
type Stat uint8

const (
	BaseHP Stat = iota
	FlatHP
	HPPercent
	BaseATK
	FlatATK
	ATKPercent
	BaseDEF
	FlatDEF
	DEFPercent
	ElementalMastery
	CritRate
	CritDMG
	EnergyRecharge
	DMGBonus
	ElementalDMGBonus
	PyroDMGBonus
	CryoDMGBonus
	GeoDMGBonus
	DendroDMGBonus
	ElectroDMGBonus
	HydroDMGBonus
	AnemoDMGBonus
	PhysicalDMGBonus
	NormalATKDMGBonus
	ChargeATKDMGBonus
	PlungeATKDMGBonus
	SkillDMGBonus
	BurstDMGBonus
	HealingBonus
	StatNone

	// Hidden stats: debuffs and reaction modifiers that never appear on gear.
	ReactionBonus
	DefReduction
	DefIgnore
	PyroResistanceReduction
	HydroResistanceReduction
	ElectroResistanceReduction
	CryoResistanceReduction
	AnemoResistanceReduction
	GeoResistanceReduction
	DendroResistanceReduction
	PhysicalResistanceReduction

	StatCount
)

var statNames = [StatCount]string{
	BaseHP:                      "BaseHP",
	FlatHP:                      "FlatHP",
	HPPercent:                   "HPPercent",
	BaseATK:                     "BaseATK",
	FlatATK:                     "FlatATK",
	ATKPercent:                  "ATKPercent",
	BaseDEF:                     "BaseDEF",
	FlatDEF:                     "FlatDEF",
	DEFPercent:                  "DEFPercent",
	ElementalMastery:            "ElementalMastery",
	CritRate:                    "CritRate",
	CritDMG:                     "CritDMG",
	EnergyRecharge:              "EnergyRecharge",
	DMGBonus:                    "DMGBonus",
	ElementalDMGBonus:           "ElementalDMGBonus",
	PyroDMGBonus:                "PyroDMGBonus",
	CryoDMGBonus:                "CryoDMGBonus",
	GeoDMGBonus:                 "GeoDMGBonus",
	DendroDMGBonus:              "DendroDMGBonus",
	ElectroDMGBonus:             "ElectroDMGBonus",
	HydroDMGBonus:               "HydroDMGBonus",
	AnemoDMGBonus:               "AnemoDMGBonus",
	PhysicalDMGBonus:            "PhysicalDMGBonus",
	NormalATKDMGBonus:           "NormalATKDMGBonus",
	ChargeATKDMGBonus:           "ChargeATKDMGBonus",
	PlungeATKDMGBonus:           "PlungeATKDMGBonus",
	SkillDMGBonus:               "SkillDMGBonus",
	BurstDMGBonus:               "BurstDMGBonus",
	HealingBonus:                "HealingBonus",
	StatNone:                    "None",
	ReactionBonus:               "ReactionBonus",
	DefReduction:                "DefReduction",
	DefIgnore:                   "DefIgnore",
	PyroResistanceReduction:     "PyroResistanceReduction",
	HydroResistanceReduction:    "HydroResistanceReduction",
	ElectroResistanceReduction:  "ElectroResistanceReduction",
	CryoResistanceReduction:     "CryoResistanceReduction",
	AnemoResistanceReduction:    "AnemoResistanceReduction",
	GeoResistanceReduction:      "GeoResistanceReduction",
	DendroResistanceReduction:   "DendroResistanceReduction",
	PhysicalResistanceReduction: "PhysicalResistanceReduction",
}

// statAliases maps the short names used by community data dumps onto stats.
// Keys are lower-case.
var statAliases = map[string]Stat{
	"hp":          FlatHP,
	"hp%":         HPPercent,
	"atk":         FlatATK,
	"atk%":        ATKPercent,
	"def":         FlatDEF,
	"def%":        DEFPercent,
	"em":          ElementalMastery,
	"cr":          CritRate,
	"cd":          CritDMG,
	"er":          EnergyRecharge,
	"crit rate":   CritRate,
	"crit dmg":    CritDMG,
	"pyro%":       PyroDMGBonus,
	"cryo%":       CryoDMGBonus,
	"geo%":        GeoDMGBonus,
	"dendro%":     DendroDMGBonus,
	"electro%":    ElectroDMGBonus,
	"hydro%":      HydroDMGBonus,
	"anemo%":      AnemoDMGBonus,
	"phys%":       PhysicalDMGBonus,
	"heal%":       HealingBonus,
	"healing":     HealingBonus,
	"physical%":   PhysicalDMGBonus,
	"elemental%":  ElementalDMGBonus,
	"dmg%":        DMGBonus,
	"reaction%":   ReactionBonus,
	"def shred":   DefReduction,
	"def ignore":  DefIgnore,
	"none":        StatNone,
	"base hp":     BaseHP,
	"base atk":    BaseATK,
	"base def":    BaseDEF,
	"energy":      EnergyRecharge,
	"mastery":     ElementalMastery,
	"crit damage": CritDMG,
}

// String returns the canonical stat name.
func (s Stat) String() string {
	if s >= StatCount {
		return fmt.Sprintf("Stat(%d)", uint8(s))
	}
	return statNames[s]
}

// ID returns the binding code of the stat.
func (s Stat) ID() int {
	return int(s)
}

// Valid reports whether s is one of the declared stats.
func (s Stat) Valid() bool {
	return s < StatCount
}

// IsElementalDMGBonus reports whether s is one of the eight element-specific
// damage bonuses (physical included).
func (s Stat) IsElementalDMGBonus() bool {
	switch s {
	case PyroDMGBonus, CryoDMGBonus, GeoDMGBonus, DendroDMGBonus,
		ElectroDMGBonus, HydroDMGBonus, AnemoDMGBonus, PhysicalDMGBonus:
		return true
	default:
		return false
	}
}

// StatFromID translates a binding code into a Stat.
func StatFromID(id int) (Stat, error) {
	if id < 0 || id >= int(StatCount) {
		return 0, fmt.Errorf("%w: stat %d", ErrInvalidID, id)
	}
	return Stat(id), nil
}

// ParseStat resolves a stat by canonical name (case-insensitive) or by one of
// the short aliases found in community data.
func ParseStat(name string) (Stat, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range statNames {
		if strings.ToLower(n) == key {
			return Stat(i), nil
		}
	}
	if s, ok := statAliases[key]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, name)
}

// AllStats returns every stat in code order.
func AllStats() []Stat {
	out := make([]Stat, StatCount)
	for i := range out {
		out[i] = Stat(i)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (s Stat) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: stat %d", ErrInvalidID, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so stats can be used
// directly in YAML and JSON documents.
func (s *Stat) UnmarshalText(text []byte) error {
	parsed, err := ParseStat(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
