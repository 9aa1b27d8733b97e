package model

import (
	"fmt"
	"strings"
)

// Element is the elemental type of a hit.
type Element uint8

const (
	Pyro Element = iota
	Hydro
	Electro
	Cryo
	Anemo
	Geo
	Dendro
	Physical
	// ElementNone has no binding code; it is used for hits without an element.
	ElementNone
)

var elementNames = [...]string{"Pyro", "Hydro", "Electro", "Cryo", "Anemo", "Geo", "Dendro", "Physical", "None"}

func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return fmt.Sprintf("Element(%d)", uint8(e))
}

// ID returns the binding code of the element.
func (e Element) ID() int { return int(e) }

// DMGBonus returns the element-specific damage bonus stat.
func (e Element) DMGBonus() (Stat, bool) {
	switch e {
	case Pyro:
		return PyroDMGBonus, true
	case Hydro:
		return HydroDMGBonus, true
	case Electro:
		return ElectroDMGBonus, true
	case Cryo:
		return CryoDMGBonus, true
	case Anemo:
		return AnemoDMGBonus, true
	case Geo:
		return GeoDMGBonus, true
	case Dendro:
		return DendroDMGBonus, true
	case Physical:
		return PhysicalDMGBonus, true
	default:
		return StatNone, false
	}
}

// ResistanceReduction returns the resistance shred stat for the element.
func (e Element) ResistanceReduction() (Stat, bool) {
	switch e {
	case Pyro:
		return PyroResistanceReduction, true
	case Hydro:
		return HydroResistanceReduction, true
	case Electro:
		return ElectroResistanceReduction, true
	case Cryo:
		return CryoResistanceReduction, true
	case Anemo:
		return AnemoResistanceReduction, true
	case Geo:
		return GeoResistanceReduction, true
	case Dendro:
		return DendroResistanceReduction, true
	case Physical:
		return PhysicalResistanceReduction, true
	default:
		return StatNone, false
	}
}

// Amplifiable reports whether forward/reverse amplifying reactions may be
// triggered by this element.
func (e Element) Amplifiable() bool {
	switch e {
	case Pyro, Hydro, Cryo, Anemo:
		return true
	default:
		return false
	}
}

// ElementFromID translates binding codes 0..7.
func ElementFromID(id int) (Element, error) {
	if id < 0 || id > int(Physical) {
		return 0, fmt.Errorf("%w: element %d", ErrInvalidID, id)
	}
	return Element(id), nil
}

// ParseElement resolves an element by name, case-insensitive.
func ParseElement(name string) (Element, error) {
	for i, n := range elementNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("%w: element %q", ErrUnknownName, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Element) UnmarshalText(text []byte) error {
	v, err := ParseElement(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// DamageType is the attack category of a hit.
type DamageType uint8

const (
	Normal DamageType = iota
	Charged
	Plunging
	Skill
	Burst
	// DamageTypeNone has no binding code.
	DamageTypeNone
)

var damageTypeNames = [...]string{"Normal", "Charged", "Plunging", "Skill", "Burst", "None"}

func (d DamageType) String() string {
	if int(d) < len(damageTypeNames) {
		return damageTypeNames[d]
	}
	return fmt.Sprintf("DamageType(%d)", uint8(d))
}

// ID returns the binding code of the damage type.
func (d DamageType) ID() int { return int(d) }

// DMGBonus returns the attack-type-specific damage bonus stat.
func (d DamageType) DMGBonus() (Stat, bool) {
	switch d {
	case Normal:
		return NormalATKDMGBonus, true
	case Charged:
		return ChargeATKDMGBonus, true
	case Plunging:
		return PlungeATKDMGBonus, true
	case Skill:
		return SkillDMGBonus, true
	case Burst:
		return BurstDMGBonus, true
	default:
		return StatNone, false
	}
}

// DamageTypeFromID translates binding codes 0..4.
func DamageTypeFromID(id int) (DamageType, error) {
	if id < 0 || id > int(Burst) {
		return 0, fmt.Errorf("%w: damage type %d", ErrInvalidID, id)
	}
	return DamageType(id), nil
}

// ParseDamageType resolves a damage type by name, case-insensitive.
func ParseDamageType(name string) (DamageType, error) {
	for i, n := range damageTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return DamageType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: damage type %q", ErrUnknownName, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DamageType) UnmarshalText(text []byte) error {
	v, err := ParseDamageType(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d DamageType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// BaseScaling selects the stat total a motion value multiplies.
type BaseScaling uint8

const (
	ScalingATK BaseScaling = iota
	ScalingDEF
	ScalingHP
)

var scalingNames = [...]string{"ATK", "DEF", "HP"}

func (b BaseScaling) String() string {
	if int(b) < len(scalingNames) {
		return scalingNames[b]
	}
	return fmt.Sprintf("BaseScaling(%d)", uint8(b))
}

// ID returns the binding code of the scaling.
func (b BaseScaling) ID() int { return int(b) }

// ScalingFromID translates binding codes 0..2.
func ScalingFromID(id int) (BaseScaling, error) {
	if id < 0 || id > int(ScalingHP) {
		return 0, fmt.Errorf("%w: scaling %d", ErrInvalidID, id)
	}
	return BaseScaling(id), nil
}

// ParseScaling resolves a scaling by name, case-insensitive.
func ParseScaling(name string) (BaseScaling, error) {
	for i, n := range scalingNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return BaseScaling(i), nil
		}
	}
	return 0, fmt.Errorf("%w: scaling %q", ErrUnknownName, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BaseScaling) UnmarshalText(text []byte) error {
	v, err := ParseScaling(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b BaseScaling) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Amplifier is the amplifying reaction applied to a hit.
type Amplifier uint8

const (
	AmplifierNone Amplifier = iota
	// Forward is the 2x reaction (e.g. pyro on hydro).
	Forward
	// Reverse is the 1.5x reaction.
	Reverse
)

var amplifierNames = [...]string{"None", "Forward", "Reverse"}

func (a Amplifier) String() string {
	if int(a) < len(amplifierNames) {
		return amplifierNames[a]
	}
	return fmt.Sprintf("Amplifier(%d)", uint8(a))
}

// ID returns the binding code of the amplifier.
func (a Amplifier) ID() int { return int(a) }

// Multiplier returns the reaction base multiplier before EM scaling.
func (a Amplifier) Multiplier() float32 {
	switch a {
	case Forward:
		return 2.0
	case Reverse:
		return 1.5
	default:
		return 1.0
	}
}

// AmplifierFromID translates binding codes 0..2.
func AmplifierFromID(id int) (Amplifier, error) {
	if id < 0 || id > int(Reverse) {
		return 0, fmt.Errorf("%w: amplifier %d", ErrInvalidID, id)
	}
	return Amplifier(id), nil
}

// ParseAmplifier resolves an amplifier by name, case-insensitive.
func ParseAmplifier(name string) (Amplifier, error) {
	for i, n := range amplifierNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Amplifier(i), nil
		}
	}
	return 0, fmt.Errorf("%w: amplifier %q", ErrUnknownName, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amplifier) UnmarshalText(text []byte) error {
	v, err := ParseAmplifier(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Amplifier) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
