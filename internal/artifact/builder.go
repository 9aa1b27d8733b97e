package artifact

import (
	"fmt"
	"maps"
	"slices"

	"github.com/udisondev/aminus/internal/model"
)

// Values supplies per-roll and main stat base values.
type Values interface {
	MainStatValue(rarity, level int, stat model.Stat) (float32, error)
	SubStatValue(rarity int, stat model.Stat) (float32, error)
}

// Pieces holds the optional piece of every slot.
type Pieces struct {
	Flower  *Piece
	Feather *Piece
	Sands   *Piece
	Goblet  *Piece
	Circlet *Piece
}

func (p Pieces) array() [slotCount]*Piece {
	return [slotCount]*Piece{p.Flower, p.Feather, p.Sands, p.Goblet, p.Circlet}
}

type rollKey struct {
	Stat    model.Stat
	Quality RollQuality
	Rarity  int
}

type budgetKey struct {
	Stat   model.Stat
	Rarity int
}

// Roll is one entry of the roll multiset.
type Roll struct {
	Stat    model.Stat
	Quality RollQuality
	Rarity  int
	Count   int
}

// Builder assembles artifact stats from five optional pieces and a multiset
// of substat rolls, enforcing per-stat and per-rarity roll budgets.
//
// Rolls placed by a KQM preset are fixed: they count towards the rarity
// budget but not towards the per-stat constraint, which bounds the rolls a
// caller adds on top.
type Builder struct {
	values      Values
	pieces      [slotCount]*Piece
	rolls       map[rollKey]int
	fixed       map[rollKey]int
	constraints map[budgetKey]int
	budgets     map[int]int
}

func newBuilder(values Values, pieces Pieces) (*Builder, error) {
	b := &Builder{
		values:      values,
		rolls:       make(map[rollKey]int),
		fixed:       make(map[rollKey]int),
		constraints: make(map[budgetKey]int),
		budgets:     make(map[int]int),
	}
	for i, p := range pieces.array() {
		if p == nil {
			continue
		}
		slot := Slot(i)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", slot, err)
		}
		if !slot.Allows(p.MainStat) {
			return nil, fmt.Errorf("%w: %s cannot be a %s main stat", ErrInvalidMainStat, p.MainStat, slot)
		}
		cp := *p
		b.pieces[i] = &cp
	}
	return b, nil
}

// New builds a free-allocation builder. Each stat at a rarity may be rolled
// up to the sum of MaxRollsFor over the pieces of that rarity whose main
// stat differs, and each rarity holds at most the sum of its pieces' MaxRolls.
func New(values Values, pieces Pieces) (*Builder, error) {
	b, err := newBuilder(values, pieces)
	if err != nil {
		return nil, err
	}
	for _, p := range b.present() {
		for _, stat := range substats {
			b.constraints[budgetKey{stat, p.Rarity}] += p.MaxRollsFor(stat)
		}
		b.budgets[p.Rarity] += p.MaxRolls()
	}
	return b, nil
}

func (b *Builder) present() []*Piece {
	out := make([]*Piece, 0, slotCount)
	for _, p := range b.pieces {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Roll adds num rolls of stat at the given quality and rarity.
func (b *Builder) Roll(stat model.Stat, quality RollQuality, rarity, num int) error {
	if err := checkRollArgs(stat, quality, num); err != nil {
		return err
	}
	if limit := b.SubstatConstraint(stat, rarity); b.FluidRolls(stat, rarity)+num > limit {
		return fmt.Errorf("%w: %d more %s at %d★ (have %d, max %d)",
			ErrRollBudgetExceeded, num, stat, rarity, b.FluidRolls(stat, rarity), limit)
	}
	if left := b.RollsLeftAt(rarity); num > left {
		return fmt.Errorf("%w: %d more rolls at %d★ (%d left)", ErrRollBudgetExceeded, num, rarity, left)
	}
	b.rolls[rollKey{stat, quality, rarity}] += num
	return nil
}

// Unroll removes up to num rolls of the key. Counts never drop below zero
// and an absent key is left alone.
func (b *Builder) Unroll(stat model.Stat, quality RollQuality, rarity, num int) error {
	if err := checkRollArgs(stat, quality, num); err != nil {
		return err
	}
	key := rollKey{stat, quality, rarity}
	cur, ok := b.rolls[key]
	if !ok {
		return nil
	}
	cur = max(cur-num, 0)
	if cur == 0 {
		delete(b.rolls, key)
	} else {
		b.rolls[key] = cur
	}
	if f, ok := b.fixed[key]; ok && f > cur {
		if cur == 0 {
			delete(b.fixed, key)
		} else {
			b.fixed[key] = cur
		}
	}
	return nil
}

func checkRollArgs(stat model.Stat, quality RollQuality, num int) error {
	if !IsValidSubstat(stat) {
		return fmt.Errorf("%w: %s", ErrInvalidSubstat, stat)
	}
	if !quality.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}
	if num < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRollCount, num)
	}
	return nil
}

// rollFixed places preset rolls without checking budgets.
func (b *Builder) rollFixed(stat model.Stat, rarity, num int) {
	key := rollKey{stat, Avg, rarity}
	b.rolls[key] += num
	b.fixed[key] += num
}

// CurrentRolls is the total number of rolls, fixed ones included.
func (b *Builder) CurrentRolls() int {
	total := 0
	for _, n := range b.rolls {
		total += n
	}
	return total
}

// CurrentRollsFor is the number of rolls of stat across qualities and rarities.
func (b *Builder) CurrentRollsFor(stat model.Stat) int {
	total := 0
	for k, n := range b.rolls {
		if k.Stat == stat {
			total += n
		}
	}
	return total
}

// CurrentRollsForGiven is the roll count of one (stat, quality, rarity) key.
func (b *Builder) CurrentRollsForGiven(stat model.Stat, quality RollQuality, rarity int) int {
	return b.rolls[rollKey{stat, quality, rarity}]
}

// FluidRolls is the number of caller-placed rolls of stat at rarity.
func (b *Builder) FluidRolls(stat model.Stat, rarity int) int {
	total := 0
	for k, n := range b.rolls {
		if k.Stat == stat && k.Rarity == rarity {
			total += n - b.fixed[k]
		}
	}
	return total
}

// FixedRolls is the number of preset rolls.
func (b *Builder) FixedRolls() int {
	total := 0
	for _, n := range b.fixed {
		total += n
	}
	return total
}

// MaxRolls is the sum of MaxRolls over present pieces.
func (b *Builder) MaxRolls() int {
	total := 0
	for _, p := range b.present() {
		total += p.MaxRolls()
	}
	return total
}

// RollsLeft is the number of rolls that can still be placed across all
// rarities.
func (b *Builder) RollsLeft() int {
	left := 0
	for r := range b.budgets {
		left += b.RollsLeftAt(r)
	}
	return left
}

// RollsLeftAt is the number of rolls that can still be placed at rarity.
func (b *Builder) RollsLeftAt(rarity int) int {
	used := 0
	for k, n := range b.rolls {
		if k.Rarity == rarity {
			used += n
		}
	}
	return max(b.budgets[rarity]-used, 0)
}

// SubstatConstraint is the cap on caller-placed rolls of stat at rarity.
// Absent combinations have a cap of zero.
func (b *Builder) SubstatConstraint(stat model.Stat, rarity int) int {
	return b.constraints[budgetKey{stat, rarity}]
}

// Rolls returns the roll multiset ordered by stat, rarity and quality.
func (b *Builder) Rolls() []Roll {
	out := make([]Roll, 0, len(b.rolls))
	for k, n := range b.rolls {
		out = append(out, Roll{Stat: k.Stat, Quality: k.Quality, Rarity: k.Rarity, Count: n})
	}
	slices.SortFunc(out, func(a, c Roll) int {
		if a.Stat != c.Stat {
			return int(a.Stat) - int(c.Stat)
		}
		if a.Rarity != c.Rarity {
			return a.Rarity - c.Rarity
		}
		return int(a.Quality) - int(c.Quality)
	})
	return out
}

// Rarities returns the rarities of present pieces, highest first.
func (b *Builder) Rarities() []int {
	seen := make(map[int]struct{})
	for _, p := range b.present() {
		seen[p.Rarity] = struct{}{}
	}
	out := slices.Collect(maps.Keys(seen))
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

// Piece returns the piece in slot, if any.
func (b *Builder) Piece(slot Slot) (Piece, bool) {
	if slot >= slotCount || b.pieces[slot] == nil {
		return Piece{}, false
	}
	return *b.pieces[slot], true
}

// Pieces returns a copy of the equipped pieces.
func (b *Builder) Pieces() Pieces {
	cp := func(p *Piece) *Piece {
		if p == nil {
			return nil
		}
		c := *p
		return &c
	}
	return Pieces{
		Flower:  cp(b.pieces[Flower]),
		Feather: cp(b.pieces[Feather]),
		Sands:   cp(b.pieces[Sands]),
		Goblet:  cp(b.pieces[Goblet]),
		Circlet: cp(b.pieces[Circlet]),
	}
}

// Clone returns an independent copy sharing the value source.
func (b *Builder) Clone() *Builder {
	c := &Builder{
		values:      b.values,
		pieces:      b.pieces,
		rolls:       maps.Clone(b.rolls),
		fixed:       maps.Clone(b.fixed),
		constraints: maps.Clone(b.constraints),
		budgets:     maps.Clone(b.budgets),
	}
	return c
}

// SubStats sums every roll: per-roll value x quality multiplier x count.
func (b *Builder) SubStats() (*model.StatTable, error) {
	if b.values == nil {
		return nil, ErrMissingValues
	}
	out := model.NewStatTable()
	for _, r := range b.Rolls() {
		v, err := b.values.SubStatValue(r.Rarity, r.Stat)
		if err != nil {
			return nil, fmt.Errorf("substat %s at %d★: %w", r.Stat, r.Rarity, err)
		}
		out.Add(r.Stat, v*r.Quality.Multiplier()*float32(r.Count))
	}
	return out, nil
}

// MainStats sums the main stat value of every present piece.
func (b *Builder) MainStats() (*model.StatTable, error) {
	if b.values == nil {
		return nil, ErrMissingValues
	}
	out := model.NewStatTable()
	for i, p := range b.pieces {
		if p == nil {
			continue
		}
		v, err := b.values.MainStatValue(p.Rarity, p.Level, p.MainStat)
		if err != nil {
			return nil, fmt.Errorf("%s main stat: %w", Slot(i), err)
		}
		out.Add(p.MainStat, v)
	}
	return out, nil
}

// Build returns main stats plus substats.
func (b *Builder) Build() (*model.StatTable, error) {
	mains, err := b.MainStats()
	if err != nil {
		return nil, err
	}
	subs, err := b.SubStats()
	if err != nil {
		return nil, err
	}
	mains.AddTable(subs)
	return mains, nil
}
