package generics

import "fmt"

// The retrieval API. Every function dispatches on the value's own
// universe, so handles, instances and origins from any universe work
// without naming it.

// TypeArgumentsOf returns the ordered tuple of captured arguments of an
// instance or handle. Bare classes and unparametrized values yield an
// empty tuple.
func TypeArgumentsOf(v any) []Arg {
	switch x := v.(type) {
	case *Instance:
		return x.TypeArguments()
	case *Handle:
		return x.Args()
	default:
		return nil
	}
}

// ArgOf returns the single captured argument of a value. It fails when
// the value does not carry exactly one argument; that is a usage
// contract violation, never silently coerced.
func ArgOf(v any) (Arg, error) {
	args := TypeArgumentsOf(v)
	if len(args) != 1 {
		return Arg{}, fmt.Errorf("%w: %v has %d", ErrArgumentCount, v, len(args))
	}
	return args[0], nil
}

// ArgAt returns the captured argument at the selected position. A
// non-integer selector is a type-mismatch failure, distinct from the
// out-of-bounds failure for an integer outside the tuple.
func ArgAt(v any, selector any) (Arg, error) {
	idx, ok := selector.(int)
	if !ok {
		return Arg{}, fmt.Errorf("%w: got %T", ErrSelectorType, selector)
	}
	args := TypeArgumentsOf(v)
	if idx < 0 || idx >= len(args) {
		return Arg{}, fmt.Errorf("%w: %d of %d", ErrSelectorRange, idx, len(args))
	}
	return args[idx], nil
}

// ParametrizationOf returns the mapping from each declared parameter to
// the argument (or argument group) it received. Unparametrized values
// yield an empty mapping.
func ParametrizationOf(v any) Parametrization {
	switch x := v.(type) {
	case *Instance:
		return x.origin.u.resolveParametrization(x.origin, x.tuple)
	case *Handle:
		return x.u.resolveParametrization(x.origin, x.tuple)
	default:
		return Parametrization{}
	}
}

// ParentsOf returns the ordered immediate parametrized ancestors of a
// handle, instance, or bare class. Parents of an unparametrized value
// keep their registered arguments verbatim; parametrized values
// substitute declared parameters positionally.
func ParentsOf(v any) []*Handle {
	switch x := v.(type) {
	case *Origin:
		return x.Bare().Parents()
	case *Handle:
		return x.Parents()
	case *Instance:
		return x.Handle().Parents()
	default:
		return nil
	}
}

// MROOf returns the full linearized ancestry, self first. The self entry
// is the canonical parametrized-alias form, so a class and its
// equivalently-parametrized instances linearize identically.
func MROOf(v any) ([]*Handle, error) {
	switch x := v.(type) {
	case *Origin:
		return x.anyFilled().MRO()
	case *Handle:
		return x.MRO()
	case *Instance:
		return x.Handle().MRO()
	default:
		return nil, fmt.Errorf("generics: cannot linearize %T", v)
	}
}

// AliasOf returns the canonical parametrized-handle form of a value:
// bare classes become any-filled handles, instances resolve to their
// captured handle, and forms still containing unresolved parameter
// variables canonicalize to any-filled as well. Canonicalization is a
// fixed point: AliasOf(AliasOf(x)) == AliasOf(x).
func AliasOf(v any) (*Handle, bool) {
	switch x := v.(type) {
	case *Origin:
		return x.anyFilled(), true
	case *Handle:
		return x.u.canonicalHandle(x), true
	case *Instance:
		return x.origin.u.canonicalHandle(x.Handle()), true
	case Arg:
		if x.u == nil {
			return nil, false
		}
		if h := x.u.canonicalFor(x.id); h != nil {
			return h, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// Deprecated aliases -------------------------------------------------------
//
// Kept for callers of the earlier API iterations. They behave exactly
// like their replacements and emit a one-time advisory through the
// universe's tracer.

// GetArguments returns the captured arguments of a value.
//
// Deprecated: use TypeArgumentsOf.
func GetArguments(v any) []Arg {
	if u := universeOf(v); u != nil {
		u.advise("GetArguments", "TypeArgumentsOf")
	}
	return TypeArgumentsOf(v)
}

// GetArgument returns the single captured argument of a value.
//
// Deprecated: use ArgOf.
func GetArgument(v any) (Arg, error) {
	if u := universeOf(v); u != nil {
		u.advise("GetArgument", "ArgOf")
	}
	return ArgOf(v)
}

func universeOf(v any) *Universe {
	switch x := v.(type) {
	case *Instance:
		return x.origin.u
	case *Handle:
		return x.u
	case *Origin:
		return x.u
	case Arg:
		return x.u
	default:
		return nil
	}
}
