package dense

import "errors"

var (
	// ErrBudget is returned when an array would exceed its element budget.
	ErrBudget = errors.New("dense: element budget exceeded")

	// ErrOutOfRange indicates a position index outside the array shape.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrUnknownLabel indicates a label not present on the addressed axis.
	ErrUnknownLabel = errors.New("dense: unknown label")

	// ErrDuplicateLabel indicates a repeated label while building an axis.
	ErrDuplicateLabel = errors.New("dense: duplicate label on axis")

	// ErrArity indicates the wrong number of coordinates for the array's
	// dimensionality, or an attempt to build an array without axes.
	ErrArity = errors.New("dense: coordinate arity mismatch")
)
