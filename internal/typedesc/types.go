package typedesc

import "fmt"

// TypeID uniquely identifies a type descriptor inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a descriptor.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of descriptors.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny          // unbound "any" marker
	KindUnbounded    // normalized trailing-ellipsis marker
	KindRuntime      // leaf concrete Go type
	KindOrigin       // registered parametrizable class, bare
	KindApplied      // origin (or proxy target) applied to an argument tuple
	KindParam        // declared parameter variable
	KindSpread       // reference to a variable-length parameter group
	KindGroup        // materialized sub-tuple of arguments
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindUnbounded:
		return "unbounded"
	case KindRuntime:
		return "runtime"
	case KindOrigin:
		return "origin"
	case KindApplied:
		return "applied"
	case KindParam:
		return "param"
	case KindSpread:
		return "spread"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Variance captures how a declared parameter relates subtypes of its argument.
type Variance uint8

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Invariant:
		return "invariant"
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	default:
		return fmt.Sprintf("Variance(%d)", v)
	}
}

// ParseVariance converts a string to Variance.
func ParseVariance(s string) (Variance, error) {
	switch s {
	case "", "invariant":
		return Invariant, nil
	case "covariant":
		return Covariant, nil
	case "contravariant":
		return Contravariant, nil
	default:
		return Invariant, fmt.Errorf("invalid variance: %q (expected: invariant|covariant|contravariant)", s)
	}
}

// Type is a compact descriptor for any supported type form.
type Type struct {
	Kind    Kind
	Elem    TypeID // origin for applied forms, parameter for spreads
	Payload uint32 // side-table slot (runtime, param, tuple)
}

// Descriptor helpers ---------------------------------------------------------

// MakeApplied describes target applied to the argument tuple in the given slot.
func MakeApplied(target TypeID, tupleSlot uint32) Type {
	return Type{Kind: KindApplied, Elem: target, Payload: tupleSlot}
}

// MakeSpread describes an unpacked reference to a group parameter.
func MakeSpread(param TypeID) Type {
	return Type{Kind: KindSpread, Elem: param}
}

// MakeGroup describes a materialized argument sub-tuple in the given slot.
func MakeGroup(tupleSlot uint32) Type {
	return Type{Kind: KindGroup, Payload: tupleSlot}
}
