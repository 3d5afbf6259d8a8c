package generics

import (
	"errors"

	"rtgen/internal/c3"
)

var (
	// ErrArgumentCount reports an exactly-one accessor applied to a value
	// that does not carry exactly one type argument.
	ErrArgumentCount = errors.New("expected exactly one type argument")

	// ErrUnknownMethod reports invocation of a classmethod that was never
	// registered on the origin or any of its ancestors.
	ErrUnknownMethod = errors.New("unknown classmethod")

	// ErrSelectorType reports a positional argument selector that is not
	// an integer.
	ErrSelectorType = errors.New("argument selector must be an integer")

	// ErrSelectorRange reports a positional argument selector outside the
	// captured tuple.
	ErrSelectorRange = errors.New("argument selector out of range")

	// ErrPatchTarget reports external-type patch inputs that could not be
	// resolved to identifiers. The universe is left untouched.
	ErrPatchTarget = errors.New("cannot resolve patch target to an identifier")

	// ErrInconsistentHierarchy reports that the C3 merge found no valid
	// linearization. The hierarchy declaration itself is at fault; nothing
	// is partially linearized.
	ErrInconsistentHierarchy = c3.ErrInconsistent
)
