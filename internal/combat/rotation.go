package combat

import (
	"fmt"
	"maps"
	"slices"

	"github.com/udisondev/aminus/internal/model"
)

// Operation produces a damage number from a stat snapshot.
type Operation interface {
	Evaluate(stats model.Statable) (float32, error)
}

// OperationFunc adapts a function to Operation.
type OperationFunc func(stats model.Statable) (float32, error)

// Evaluate calls f.
func (f OperationFunc) Evaluate(stats model.Statable) (float32, error) {
	return f(stats)
}

// DamageOperation evaluates one Hit. A zero Target means DefaultTarget.
// Buffs, when set, are layered on top of the evaluated stats.
type DamageOperation struct {
	Hit    Hit
	Target Target
	Buffs  model.Statable
}

// Evaluate implements Operation.
func (op DamageOperation) Evaluate(stats model.Statable) (float32, error) {
	target := op.Target
	if target == (Target{}) {
		target = DefaultTarget()
	}
	return CalculateDamageAgainst(op.Hit, target, stats, op.Buffs)
}

// Rotation is a named set of operations. Adding an existing name replaces
// the previous operation.
type Rotation struct {
	ops map[string]Operation
}

// NewRotation returns an empty rotation.
func NewRotation() *Rotation {
	return &Rotation{ops: make(map[string]Operation)}
}

// Add registers op under name.
func (r *Rotation) Add(name string, op Operation) {
	if r.ops == nil {
		r.ops = make(map[string]Operation)
	}
	r.ops[name] = op
}

// Remove deletes the operation registered under name.
func (r *Rotation) Remove(name string) {
	delete(r.ops, name)
}

// Get returns the operation registered under name.
func (r *Rotation) Get(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names returns operation names in sorted order.
func (r *Rotation) Names() []string {
	return slices.Sorted(maps.Keys(r.ops))
}

// Len returns the number of operations.
func (r *Rotation) Len() int {
	return len(r.ops)
}

// Evaluate sums every operation against stats. Operations run in name
// order so the float sum is reproducible.
func (r *Rotation) Evaluate(stats model.Statable) (float32, error) {
	var total float32
	for _, name := range r.Names() {
		v, err := r.ops[name].Evaluate(stats)
		if err != nil {
			return 0, fmt.Errorf("operation %q: %w", name, err)
		}
		total += v
	}
	return total, nil
}

// Breakdown evaluates every operation separately.
func (r *Rotation) Breakdown(stats model.Statable) (map[string]float32, error) {
	out := make(map[string]float32, len(r.ops))
	for _, name := range r.Names() {
		v, err := r.ops[name].Evaluate(stats)
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}
