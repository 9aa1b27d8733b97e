package model

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one (stat, value) pair produced by a Statable.
type Entry struct {
	Stat  Stat
	Value float32
}

// Statable is anything that exposes an additive collection of stats.
//
// Entries returns a finite snapshot that may be walked any number of times
// and may contain several entries for the same stat. Get must equal the sum
// of the values of all entries for that stat.
type Statable interface {
	Entries() []Entry
	Get(stat Stat) float32
}

// ModifiableStatable is a Statable that can absorb more stats.
type ModifiableStatable interface {
	Statable
	// Add increases stat by delta and returns the new total.
	Add(stat Stat, delta float32) float32
	// AddTable folds every entry of other into the receiver.
	AddTable(other Statable)
}

// StatTable maps stats to accumulated values. Unset stats read as zero.
// The zero value is ready to use.
type StatTable struct {
	values map[Stat]float32
}

// NewStatTable returns an empty table.
func NewStatTable() *StatTable {
	return &StatTable{values: make(map[Stat]float32)}
}

// StatTableOf builds a table from literal entries. Duplicate stats are
// summed, never overwritten.
func StatTableOf(entries ...Entry) *StatTable {
	t := &StatTable{values: make(map[Stat]float32, len(entries))}
	for _, e := range entries {
		t.values[e.Stat] += e.Value
	}
	return t
}

// Get returns the accumulated value of stat, zero when unset.
func (t *StatTable) Get(stat Stat) float32 {
	if t == nil {
		return 0
	}
	return t.values[stat]
}

// Add increases stat by delta and returns the new total.
func (t *StatTable) Add(stat Stat, delta float32) float32 {
	if t.values == nil {
		t.values = make(map[Stat]float32)
	}
	t.values[stat] += delta
	return t.values[stat]
}

// AddTable folds every entry of other into t.
func (t *StatTable) AddTable(other Statable) {
	if other == nil {
		return
	}
	for _, e := range other.Entries() {
		t.Add(e.Stat, e.Value)
	}
}

// Entries returns the table contents ordered by stat code.
func (t *StatTable) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.values))
	for s, v := range t.values {
		out = append(out, Entry{Stat: s, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stat < out[j].Stat })
	return out
}

// Len returns the number of stats explicitly stored.
func (t *StatTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// Clone returns an independent copy of t.
func (t *StatTable) Clone() *StatTable {
	c := &StatTable{values: make(map[Stat]float32, t.Len())}
	if t != nil {
		for s, v := range t.values {
			c.values[s] = v
		}
	}
	return c
}

// Equal reports whether both tables hold the same value for every stat.
// Stats stored as explicit zeros compare equal to unset ones.
func (t *StatTable) Equal(other *StatTable) bool {
	for _, s := range AllStats() {
		if t.Get(s) != other.Get(s) {
			return false
		}
	}
	return true
}

// Chain returns a read-only view of t followed by other. Neither input is
// mutated; later changes to either are visible through the view.
func (t *StatTable) Chain(other Statable) Statable {
	return Chain(t, other)
}

func (t *StatTable) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range t.Entries() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %g", e.Stat, e.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// Chained is a read-only concatenation of several sources.
type Chained struct {
	sources []Statable
}

// Chain layers sources (character, weapon, artifacts, buffs) into one view
// without copying or aliasing them. Nil sources are skipped.
func Chain(sources ...Statable) *Chained {
	c := &Chained{sources: make([]Statable, 0, len(sources))}
	for _, s := range sources {
		if s != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

// Entries concatenates the entries of every source without collapsing
// duplicates.
func (c *Chained) Entries() []Entry {
	var out []Entry
	for _, s := range c.sources {
		out = append(out, s.Entries()...)
	}
	return out
}

// Get sums stat across every source.
func (c *Chained) Get(stat Stat) float32 {
	var total float32
	for _, s := range c.sources {
		total += s.Get(stat)
	}
	return total
}

// Chain extends the view with another source.
func (c *Chained) Chain(other Statable) *Chained {
	return Chain(append(append([]Statable(nil), c.sources...), other)...)
}

// Sum materializes sources into a new table.
func Sum(sources ...Statable) *StatTable {
	t := NewStatTable()
	for _, s := range sources {
		t.AddTable(s)
	}
	return t
}

var (
	_ ModifiableStatable = (*StatTable)(nil)
	_ Statable           = (*Chained)(nil)
)
