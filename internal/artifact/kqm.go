package artifact

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/aminus/internal/model"
)

const (
	// kqmRollsPerPiece caps fluid rolls of one stat per differing piece.
	kqmRollsPerPiece = 2
	// kqmFixedPerSubstat is the number of preset AVG rolls per substat.
	kqmFixedPerSubstat = 2
)

// NewKQM builds a builder following the KQM standard: every substat gets
// two fixed AVG rolls, each stat may take two more rolls per piece whose
// main stat differs, and each rarity holds its pieces' MaxRolls minus one
// per piece.
//
// Fixed rolls go to the rarity held by most pieces (ties favour the higher
// rarity). Every other rarity then takes its proportional share of the
// fixed rolls, moved one substat at a time in canonical order.
func NewKQM(values Values, pieces Pieces) (*Builder, error) {
	b, err := newBuilder(values, pieces)
	if err != nil {
		return nil, err
	}

	present := b.present()
	counts := make(map[int]int)
	for _, p := range present {
		for _, stat := range substats {
			if p.MainStat != stat {
				b.constraints[budgetKey{stat, p.Rarity}] += kqmRollsPerPiece
			}
		}
		b.budgets[p.Rarity] += p.MaxRolls() - 1
		counts[p.Rarity]++
	}
	for r, n := range b.budgets {
		b.budgets[r] = max(n, 0)
	}

	rollRarity := kqmRollRarity(counts)
	for _, stat := range substats {
		b.rollFixed(stat, rollRarity, kqmFixedPerSubstat)
	}

	totalFixed := kqmFixedPerSubstat * len(substats)
	cursor := 0
	for _, r := range b.Rarities() {
		if r == rollRarity {
			continue
		}
		share := totalFixed * counts[r] / len(present)
		for range share {
			stat := substats[cursor%len(substats)]
			cursor++
			b.moveFixed(stat, rollRarity, r)
		}
		slog.Debug("kqm fixed rolls rebalanced", "from", rollRarity, "to", r, "rolls", share)
	}
	return b, nil
}

// kqmRollRarity picks the rarity held by most pieces, preferring the higher
// rarity on ties. Without pieces it falls back to 5★.
func kqmRollRarity(counts map[int]int) int {
	best, bestCount := MaxRarity, 0
	for r := MaxRarity; r >= MinRarity; r-- {
		if counts[r] > bestCount {
			best, bestCount = r, counts[r]
		}
	}
	return best
}

func (b *Builder) moveFixed(stat model.Stat, from, to int) {
	key := rollKey{stat, Avg, from}
	if b.fixed[key] == 0 {
		return
	}
	b.fixed[key]--
	if b.fixed[key] == 0 {
		delete(b.fixed, key)
	}
	b.rolls[key]--
	if b.rolls[key] == 0 {
		delete(b.rolls, key)
	}
	b.rollFixed(stat, to, 1)
}

// NewKQMAll5Star equips five 5★ +20 pieces with the given sands, goblet and
// circlet main stats.
func NewKQMAll5Star(values Values, sands, goblet, circlet model.Stat) (*Builder, error) {
	return newKQMPreset(values, sands, goblet, circlet, func(Slot) (int, int) { return 5, 20 })
}

// NewKQMAll4Star equips five 4★ +16 pieces.
func NewKQMAll4Star(values Values, sands, goblet, circlet model.Stat) (*Builder, error) {
	return newKQMPreset(values, sands, goblet, circlet, func(Slot) (int, int) { return 4, 16 })
}

// NewKQMAll4StarWith5Star equips four 4★ +16 pieces and one 5★ +20 piece in
// fiveStar.
func NewKQMAll4StarWith5Star(values Values, sands, goblet, circlet model.Stat, fiveStar Slot) (*Builder, error) {
	if fiveStar >= slotCount {
		return nil, fmt.Errorf("%w: slot %d", model.ErrInvalidID, fiveStar)
	}
	return newKQMPreset(values, sands, goblet, circlet, func(s Slot) (int, int) {
		if s == fiveStar {
			return 5, 20
		}
		return 4, 16
	})
}

func newKQMPreset(values Values, sands, goblet, circlet model.Stat, grade func(Slot) (int, int)) (*Builder, error) {
	mains := [slotCount]model.Stat{model.FlatHP, model.FlatATK, sands, goblet, circlet}
	var pieces [slotCount]*Piece
	for _, slot := range Slots() {
		rarity, level := grade(slot)
		p, err := NewPiece(rarity, level, mains[slot])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot, err)
		}
		pieces[slot] = &p
	}
	return NewKQM(values, Pieces{
		Flower:  pieces[Flower],
		Feather: pieces[Feather],
		Sands:   pieces[Sands],
		Goblet:  pieces[Goblet],
		Circlet: pieces[Circlet],
	})
}
