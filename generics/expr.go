package generics

import (
	"reflect"

	"rtgen/internal/typedesc"
)

// Variance aliases re-exported for declaration sites.
const (
	Invariant     = typedesc.Invariant
	Covariant     = typedesc.Covariant
	Contravariant = typedesc.Contravariant
)

// Variance captures how a declared parameter relates subtypes of its argument.
type Variance = typedesc.Variance

// Expr is anything usable as a type argument: a concrete Go type, a
// registered class or handle, a declared parameter, a group spread, or one
// of the marker sentinels.
type Expr interface {
	intern(u *Universe) typedesc.TypeID
}

// Marker sentinels. Normalization maps each one to its interned marker
// descriptor, so downstream code only ever sees explicit markers.
var (
	// Any is the unbound "any" marker.
	Any Expr = anyExpr{}
	// Ellipsis marks an unbounded, any-length argument position.
	Ellipsis Expr = ellipsisExpr{}
	// Empty marks an explicitly empty argument group.
	Empty Expr = emptyExpr{}
)

type anyExpr struct{}

func (anyExpr) intern(u *Universe) typedesc.TypeID { return u.in.Markers().Any }

type ellipsisExpr struct{}

func (ellipsisExpr) intern(u *Universe) typedesc.TypeID { return u.in.Markers().Unbounded }

type emptyExpr struct{}

func (emptyExpr) intern(u *Universe) typedesc.TypeID { return u.in.Markers().EmptyGroup }

type runtimeExpr struct {
	rt reflect.Type
}

func (e runtimeExpr) intern(u *Universe) typedesc.TypeID { return u.in.RegisterRuntime(e.rt) }

// TypeOf builds an argument expression for a concrete Go type.
func TypeOf[T any]() Expr {
	return runtimeExpr{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// RuntimeType builds an argument expression for an already-reflected type.
func RuntimeType(rt reflect.Type) Expr {
	return runtimeExpr{rt: rt}
}

type spreadExpr struct {
	p *Param
}

func (e spreadExpr) intern(u *Universe) typedesc.TypeID {
	return u.in.Intern(typedesc.MakeSpread(u.paramID(e.p)))
}

// Unpack references a variable-length parameter group inside an argument
// list, e.g. Spam.Of(generics.Unpack(Ts)).
func Unpack(p *Param) Expr {
	return spreadExpr{p: p}
}

// Arg is a resolved argument value bound to a universe. Args compare by
// descriptor identity: equal arguments of the same universe are Equal.
type Arg struct {
	u  *Universe
	id typedesc.TypeID
}

func (a Arg) intern(u *Universe) typedesc.TypeID {
	if a.u != u {
		panic("generics: argument used outside its universe")
	}
	return a.id
}

// IsZero reports whether a is the zero Arg.
func (a Arg) IsZero() bool { return a.u == nil }

// Equal reports whether two argument values are structurally identical.
func (a Arg) Equal(b Arg) bool { return a.u == b.u && a.id == b.id }

// IsAny reports whether a is the unbound "any" marker.
func (a Arg) IsAny() bool {
	return a.u != nil && a.id == a.u.in.Markers().Any
}

// RuntimeType returns the concrete Go type behind a leaf argument.
func (a Arg) RuntimeType() (reflect.Type, bool) {
	if a.u == nil {
		return nil, false
	}
	return a.u.in.RuntimeType(a.id)
}

// Group returns the members of a variable-length argument group.
func (a Arg) Group() ([]Arg, bool) {
	if a.u == nil {
		return nil, false
	}
	tt, ok := a.u.in.Lookup(a.id)
	if !ok || tt.Kind != typedesc.KindGroup {
		return nil, false
	}
	elems := a.u.in.TupleElems(tt.Payload)
	out := make([]Arg, len(elems))
	for i, id := range elems {
		out[i] = Arg{u: a.u, id: id}
	}
	return out, true
}

// Handle returns the parametrization handle behind an applied argument.
func (a Arg) Handle() (*Handle, bool) {
	if a.u == nil {
		return nil, false
	}
	tt, ok := a.u.in.Lookup(a.id)
	if !ok || tt.Kind != typedesc.KindApplied {
		return nil, false
	}
	h := a.u.handleForApplied(a.id)
	if h == nil {
		return nil, false
	}
	return h, true
}

func (a Arg) String() string {
	if a.u == nil {
		return "<zero>"
	}
	return a.u.stringOf(a.id)
}
