package model

import (
	"errors"
	"fmt"
)

// Error categories. Concrete errors across the module wrap exactly one of
// these so callers can branch on the category with errors.Is.
var (
	// ErrValidation marks input rejected at the API boundary: bad ids,
	// rarity/level combos, illegal main stats, exceeded roll budgets.
	ErrValidation = errors.New("validation error")
	// ErrLookup marks failures of the external data lookup.
	ErrLookup = errors.New("lookup error")
	// ErrContract marks calls whose arguments break a formula precondition.
	ErrContract = errors.New("contract violation")
)

var (
	ErrInvalidID   = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrUnknownStat = fmt.Errorf("%w: unknown stat", ErrValidation)
	ErrUnknownName = fmt.Errorf("%w: unknown name", ErrValidation)
)
