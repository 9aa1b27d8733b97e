package artifact

import (
	"fmt"
	"slices"
	"strings"

	"github.com/udisondev/aminus/internal/model"
)

// Rarity bounds.
const (
	MinRarity = 1
	MaxRarity = 5
)

// Slot is one of the five equipment positions.
type Slot uint8

const (
	Flower Slot = iota
	Feather
	Sands
	Goblet
	Circlet

	slotCount
)

var slotNames = [slotCount]string{"Flower", "Feather", "Sands", "Goblet", "Circlet"}

var (
	sandsMains = []model.Stat{
		model.HPPercent, model.ATKPercent, model.DEFPercent,
		model.ElementalMastery, model.EnergyRecharge,
	}
	gobletMains = append(slices.Clone(sandsMains),
		model.PyroDMGBonus, model.CryoDMGBonus, model.GeoDMGBonus, model.DendroDMGBonus,
		model.ElectroDMGBonus, model.HydroDMGBonus, model.AnemoDMGBonus, model.PhysicalDMGBonus,
	)
	circletMains = []model.Stat{
		model.HPPercent, model.ATKPercent, model.DEFPercent, model.ElementalMastery,
		model.CritRate, model.CritDMG, model.HealingBonus,
	}
)

func (s Slot) String() string {
	if s < slotCount {
		return slotNames[s]
	}
	return fmt.Sprintf("Slot(%d)", uint8(s))
}

// Slots returns every slot in equipment order.
func Slots() []Slot {
	return []Slot{Flower, Feather, Sands, Goblet, Circlet}
}

// MainStats returns the main stats a piece in this slot may carry.
func (s Slot) MainStats() []model.Stat {
	switch s {
	case Flower:
		return []model.Stat{model.FlatHP}
	case Feather:
		return []model.Stat{model.FlatATK}
	case Sands:
		return slices.Clone(sandsMains)
	case Goblet:
		return slices.Clone(gobletMains)
	case Circlet:
		return slices.Clone(circletMains)
	default:
		return nil
	}
}

// Allows reports whether stat is a legal main stat for the slot.
func (s Slot) Allows(stat model.Stat) bool {
	return slices.Contains(s.MainStats(), stat)
}

// ParseSlot resolves a slot by name, case-insensitive.
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("%w: slot %q", model.ErrUnknownName, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Slot) UnmarshalText(text []byte) error {
	v, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Piece is one equipped artifact: its rarity, upgrade level and main stat.
type Piece struct {
	Rarity   int
	Level    int
	MainStat model.Stat
}

// NewPiece validates rarity and level before building a piece.
func NewPiece(rarity, level int, mainStat model.Stat) (Piece, error) {
	p := Piece{Rarity: rarity, Level: level, MainStat: mainStat}
	if err := p.Validate(); err != nil {
		return Piece{}, err
	}
	return p, nil
}

// Validate checks rarity and level bounds.
func (p Piece) Validate() error {
	maxLevel, err := LevelCap(p.Rarity)
	if err != nil {
		return err
	}
	if p.Level < 0 || p.Level > maxLevel {
		return fmt.Errorf("%w: level %d for %d★ (max %d)", ErrInvalidLevel, p.Level, p.Rarity, maxLevel)
	}
	if !p.MainStat.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidMainStat, p.MainStat)
	}
	return nil
}

// LevelCap returns the maximum upgrade level for rarity.
func LevelCap(rarity int) (int, error) {
	switch rarity {
	case 1, 2:
		return 4, nil
	case 3:
		return 12, nil
	case 4:
		return 16, nil
	case 5:
		return 20, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidRarity, rarity)
	}
}

// MaxRolls is the number of substat rolls the piece can hold: one per
// starting substat (rarity-1) plus one per four levels.
func (p Piece) MaxRolls() int {
	return (p.Rarity - 1) + p.Level/4
}

// MaxRollsFor is how many of the piece's rolls may land on stat. A piece
// never rolls its own main stat.
func (p Piece) MaxRollsFor(stat model.Stat) int {
	if p.MainStat == stat {
		return 0
	}
	return p.Level/4 + 1
}

func (p Piece) String() string {
	return fmt.Sprintf("%d★ +%d %s", p.Rarity, p.Level, p.MainStat)
}
