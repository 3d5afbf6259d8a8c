package typedesc

import (
	"reflect"
	"testing"
)

func TestInternIsStable(t *testing.T) {
	in := NewInterner()
	a := in.Intern(Type{Kind: KindOrigin, Payload: 7})
	b := in.Intern(Type{Kind: KindOrigin, Payload: 7})
	if a != b {
		t.Fatalf("equal descriptors interned to %d and %d", a, b)
	}
	c := in.Intern(Type{Kind: KindOrigin, Payload: 8})
	if c == a {
		t.Fatalf("distinct descriptors shared TypeID %d", a)
	}
	tt, ok := in.Lookup(a)
	if !ok || tt.Kind != KindOrigin || tt.Payload != 7 {
		t.Fatalf("lookup returned %+v, %v", tt, ok)
	}
}

func TestInternRejectsInvalid(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(Type{}); id != NoTypeID {
		t.Fatalf("invalid descriptor interned to %d", id)
	}
	if _, ok := in.Lookup(NoTypeID); ok {
		t.Fatalf("NoTypeID must not resolve")
	}
}

func TestMarkersAreSingletons(t *testing.T) {
	in := NewInterner()
	m := in.Markers()
	if m.Any == NoTypeID || m.Unbounded == NoTypeID || m.EmptyGroup == NoTypeID {
		t.Fatalf("markers not seeded: %+v", m)
	}
	if in.Intern(Type{Kind: KindAny}) != m.Any {
		t.Fatalf("re-interning the any marker produced a new id")
	}
	if in.Intern(Type{Kind: KindUnbounded}) != m.Unbounded {
		t.Fatalf("re-interning the unbounded marker produced a new id")
	}
}

func TestRuntimeRegistrationDeduplicates(t *testing.T) {
	in := NewInterner()
	intT := reflect.TypeOf(0)
	a := in.RegisterRuntime(intT)
	b := in.RegisterRuntime(intT)
	if a != b {
		t.Fatalf("same reflect.Type interned to %d and %d", a, b)
	}
	if c := in.RegisterRuntime(reflect.TypeOf("")); c == a {
		t.Fatalf("different reflect.Types shared TypeID %d", a)
	}
	rt, ok := in.RuntimeType(a)
	if !ok || rt != intT {
		t.Fatalf("RuntimeType = %v, %v", rt, ok)
	}
	if id := in.RegisterRuntime(nil); id != NoTypeID {
		t.Fatalf("nil reflect.Type interned to %d", id)
	}
	if _, ok := in.RuntimeType(in.Markers().Any); ok {
		t.Fatalf("non-runtime descriptor must not resolve to a reflect.Type")
	}
}

func TestTupleDeduplication(t *testing.T) {
	in := NewInterner()
	x := in.RegisterRuntime(reflect.TypeOf(0))
	y := in.RegisterRuntime(reflect.TypeOf(""))

	a := in.RegisterTuple([]TypeID{x, y})
	b := in.RegisterTuple([]TypeID{x, y})
	if a != b {
		t.Fatalf("equal tuples stored in slots %d and %d", a, b)
	}
	if c := in.RegisterTuple([]TypeID{y, x}); c == a {
		t.Fatalf("order must matter, both tuples in slot %d", a)
	}
	got := in.TupleElems(a)
	if len(got) != 2 || got[0] != x || got[1] != y {
		t.Fatalf("TupleElems = %v", got)
	}
}

func TestTupleStorageIsDetached(t *testing.T) {
	in := NewInterner()
	x := in.RegisterRuntime(reflect.TypeOf(0))
	elems := []TypeID{x}
	slot := in.RegisterTuple(elems)
	elems[0] = NoTypeID
	if got := in.TupleElems(slot); len(got) != 1 || got[0] != x {
		t.Fatalf("stored tuple aliased the caller's slice: %v", got)
	}
}

func TestAppliedFormsShareIDs(t *testing.T) {
	in := NewInterner()
	origin := in.RegisterOrigin(3)
	tuple := in.RegisterTuple([]TypeID{in.RegisterRuntime(reflect.TypeOf(0))})

	a := in.Intern(MakeApplied(origin, tuple))
	b := in.Intern(MakeApplied(origin, tuple))
	if a != b {
		t.Fatalf("equal applied forms interned to %d and %d", a, b)
	}
	slot, ok := in.OriginSlot(origin)
	if !ok || slot != 3 {
		t.Fatalf("OriginSlot = %d, %v", slot, ok)
	}
}

func TestParamsHaveFreshIdentity(t *testing.T) {
	in := NewInterner()
	a := in.RegisterParam("T", Invariant, false)
	b := in.RegisterParam("T", Invariant, false)
	if a == b {
		t.Fatalf("separately declared parameters must be distinct")
	}
	info, ok := in.ParamInfo(a)
	if !ok || info.Name != "T" || info.Variance != Invariant || info.Variadic {
		t.Fatalf("ParamInfo = %+v, %v", info, ok)
	}
	g := in.RegisterParam("Ts", Invariant, true)
	info, ok = in.ParamInfo(g)
	if !ok || !info.Variadic {
		t.Fatalf("group parameter lost its variadic flag: %+v", info)
	}
	if _, ok := in.ParamInfo(in.Markers().Any); ok {
		t.Fatalf("non-parameter descriptor must not resolve to metadata")
	}
}

func TestVarianceParsing(t *testing.T) {
	cases := []struct {
		in   string
		want Variance
		ok   bool
	}{
		{"invariant", Invariant, true},
		{"covariant", Covariant, true},
		{"contravariant", Contravariant, true},
		{"sideways", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseVariance(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseVariance(%q) = %v, %v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseVariance(%q) accepted", tc.in)
		}
	}
}
