package generics

import (
	"reflect"
	"testing"
)

// hierarchy mirrors the canonical layered fixture:
//
//	Foo[T]; Bar[T](Foo[T]); Biz[T](Bar[T]); Baz[T2](Bar[T2])
//	Qux[T](Biz[T], Baz[T]); Fred[T](Bar[int])
//	Spam[*Ts]; Ham[*Ts, T](Spam[*Ts], Qux[T])
type hierarchy struct {
	u                  *Universe
	T, T2              *Param
	Ts                 *Param
	Foo, Bar, Biz, Baz *Origin
	Qux, Fred          *Origin
	Spam, Ham          *Origin
}

func newHierarchy() *hierarchy {
	h := &hierarchy{
		u:  NewUniverse(),
		T:  NewParam("T", Invariant),
		T2: NewParam("T2", Invariant),
		Ts: NewGroup("Ts"),
	}
	h.Foo = h.u.Register("Foo", WithParams(h.T))
	h.Bar = h.u.Register("Bar", WithParams(h.T), WithParents(h.Foo.Of(h.T)))
	h.Biz = h.u.Register("Biz", WithParams(h.T), WithParents(h.Bar.Of(h.T)))
	h.Baz = h.u.Register("Baz", WithParams(h.T2), WithParents(h.Bar.Of(h.T2)))
	h.Qux = h.u.Register("Qux", WithParams(h.T), WithParents(h.Biz.Of(h.T), h.Baz.Of(h.T)))
	h.Fred = h.u.Register("Fred", WithParams(h.T), WithParents(h.Bar.Of(TypeOf[int]())))
	h.Spam = h.u.Register("Spam", WithParams(h.Ts))
	h.Ham = h.u.Register("Ham", WithParams(h.Ts, h.T),
		WithParents(h.Spam.Of(Unpack(h.Ts)), h.Qux.Of(h.T)))
	return h
}

func parentStrings(v any) []string {
	parents := ParentsOf(v)
	out := make([]string, len(parents))
	for i, p := range parents {
		out[i] = p.String()
	}
	return out
}

func TestParentsUnparametrizedAreVerbatim(t *testing.T) {
	h := newHierarchy()
	cases := []struct {
		name string
		v    any
		want []string
	}{
		{"Foo", h.Foo, nil},
		{"Bar", h.Bar, []string{"Foo[T]"}},
		{"Biz", h.Biz, []string{"Bar[T]"}},
		{"Baz", h.Baz, []string{"Bar[T2]"}},
		{"Qux", h.Qux, []string{"Biz[T]", "Baz[T]"}},
		{"Fred", h.Fred, []string{"Bar[int]"}},
		{"Ham", h.Ham, []string{"Spam[*Ts]", "Qux[T]"}},
	}
	for _, tc := range cases {
		got := parentStrings(tc.v)
		if !reflect.DeepEqual(got, tc.want) && !(len(got) == 0 && len(tc.want) == 0) {
			t.Fatalf("%s: parents %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParentsSubstituteDeclaredParameters(t *testing.T) {
	h := newHierarchy()
	if got := parentStrings(h.Qux.Of(TypeOf[int]())); !reflect.DeepEqual(got, []string{"Biz[int]", "Baz[int]"}) {
		t.Fatalf("Qux[int] parents: %v", got)
	}
	if got := parentStrings(h.Ham.Of(TypeOf[float64](), TypeOf[string](), TypeOf[bool]())); !reflect.DeepEqual(got, []string{"Spam[float64, string]", "Qux[bool]"}) {
		t.Fatalf("Ham[float64, string, bool] parents: %v", got)
	}
}

func TestFixedParentArgumentsAreNotOverridden(t *testing.T) {
	h := newHierarchy()
	got := parentStrings(h.Fred.Of(TypeOf[string]()))
	if !reflect.DeepEqual(got, []string{"Bar[int]"}) {
		t.Fatalf("Fred[string] parents must keep the fixed int: %v", got)
	}
}

func TestParentsOfInstanceMatchHandle(t *testing.T) {
	h := newHierarchy()
	handle := h.Qux.Of(TypeOf[int]())
	if !reflect.DeepEqual(parentStrings(handle), parentStrings(handle.New())) {
		t.Fatalf("instance parents must match the handle's")
	}
}

func TestParametrizationMapping(t *testing.T) {
	h := newHierarchy()

	p := ParametrizationOf(h.Fred.Of(TypeOf[string]()))
	arg, ok := p.Get(h.T)
	if !ok {
		t.Fatalf("Fred[string]: T not resolved")
	}
	if rt, _ := arg.RuntimeType(); rt != reflect.TypeOf("") {
		t.Fatalf("Fred[string]: T resolved to %v", arg)
	}

	p = ParametrizationOf(h.Ham.Of(TypeOf[float64](), TypeOf[string](), TypeOf[bool]()))
	group, ok := p.Get(h.Ts)
	if !ok {
		t.Fatalf("Ham: Ts not resolved")
	}
	members, ok := group.Group()
	if !ok || len(members) != 2 {
		t.Fatalf("Ham: Ts must absorb 2 arguments, got %v", group)
	}
	first, _ := members[0].RuntimeType()
	second, _ := members[1].RuntimeType()
	if first != reflect.TypeOf(float64(0)) || second != reflect.TypeOf("") {
		t.Fatalf("Ham: Ts resolved to (%v, %v)", members[0], members[1])
	}
	last, ok := p.Get(h.T)
	if !ok {
		t.Fatalf("Ham: T not resolved")
	}
	if rt, _ := last.RuntimeType(); rt != reflect.TypeOf(true) {
		t.Fatalf("Ham: T resolved to %v", last)
	}
}

func TestParametrizationEmptyWhenUnparametrized(t *testing.T) {
	h := newHierarchy()
	if p := ParametrizationOf(h.Foo.Of()); p.Len() != 0 {
		t.Fatalf("unparametrized value must yield an empty mapping, got %d entries", p.Len())
	}
}

func TestPatchedExternalParent(t *testing.T) {
	h := newHierarchy()
	scope, err := h.u.Patch(reflect.TypeOf(map[any]any(nil)))
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	defer scope.Restore()

	dict, ok := h.u.LookupClass("Map")
	if !ok {
		t.Fatalf("patched proxy not bound")
	}
	eggs := h.u.Register("Eggs", WithParams(h.T, h.T2),
		WithParents(dict.Of(h.Ham.Of(h.T, h.T2), TypeOf[string]())))

	got := parentStrings(eggs.Of(TypeOf[complex128](), TypeOf[bool]()))
	want := []string{"Map[Ham[complex128, bool], string]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Eggs parents: %v, want %v", got, want)
	}
}
