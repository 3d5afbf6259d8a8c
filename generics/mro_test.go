package generics

import (
	"errors"
	"reflect"
	"testing"
)

func mroStrings(v any) ([]string, error) {
	mro, err := MROOf(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(mro))
	for i, h := range mro {
		out[i] = h.String()
	}
	return out, nil
}

func TestLinearizationStartsWithSelf(t *testing.T) {
	h := newHierarchy()
	got, err := mroStrings(h.Qux.Of(TypeOf[int]()))
	if err != nil {
		t.Fatalf("linearization failed: %v", err)
	}
	want := []string{"Qux[int]", "Biz[int]", "Baz[int]", "Bar[int]", "Foo[int]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Qux[int] linearization: %v, want %v", got, want)
	}
}

func TestLinearizationKeepsFixedParentArguments(t *testing.T) {
	h := newHierarchy()
	got, err := mroStrings(h.Fred.Of(TypeOf[string]()))
	if err != nil {
		t.Fatalf("linearization failed: %v", err)
	}
	want := []string{"Fred[string]", "Bar[int]", "Foo[int]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Fred[string] linearization: %v, want %v", got, want)
	}
}

func TestLinearizationOfVariadicClass(t *testing.T) {
	h := newHierarchy()
	got, err := mroStrings(h.Ham.Of(TypeOf[float64](), TypeOf[string](), TypeOf[bool]()))
	if err != nil {
		t.Fatalf("linearization failed: %v", err)
	}
	want := []string{
		"Ham[float64, string, bool]",
		"Spam[float64, string]",
		"Qux[bool]", "Biz[bool]", "Baz[bool]", "Bar[bool]", "Foo[bool]",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Ham linearization: %v, want %v", got, want)
	}
}

func TestLinearizationOfInstanceMatchesHandle(t *testing.T) {
	h := newHierarchy()
	handle := h.Qux.Of(TypeOf[int]())
	fromHandle, err := mroStrings(handle)
	if err != nil {
		t.Fatalf("handle linearization failed: %v", err)
	}
	fromInstance, err := mroStrings(handle.New())
	if err != nil {
		t.Fatalf("instance linearization failed: %v", err)
	}
	if !reflect.DeepEqual(fromHandle, fromInstance) {
		t.Fatalf("instance linearization %v diverges from handle's %v", fromInstance, fromHandle)
	}
}

func TestLinearizationOfBareOriginUsesCanonicalForm(t *testing.T) {
	h := newHierarchy()
	got, err := mroStrings(h.Qux)
	if err != nil {
		t.Fatalf("linearization failed: %v", err)
	}
	want := []string{"Qux[any]", "Biz[any]", "Baz[any]", "Bar[any]", "Foo[any]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("bare Qux linearization: %v, want %v", got, want)
	}
}

func TestInconsistentHierarchyIsReported(t *testing.T) {
	u := NewUniverse()
	a := u.Register("A")
	b := u.Register("B", WithParents(a.Of()))
	c := u.Register("C", WithParents(a.Of(), b.Of()))

	if _, err := mroStrings(c.Of()); err == nil {
		t.Fatalf("C(A, B) with B(A) must fail to linearize")
	} else if !errors.Is(err, ErrInconsistentHierarchy) {
		t.Fatalf("error must wrap the inconsistency sentinel, got: %v", err)
	}
}
