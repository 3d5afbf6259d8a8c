package generics

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestPatchBindsAndRestoreUnbinds(t *testing.T) {
	u := NewUniverse()
	scope, err := u.Patch(reflect.TypeOf([]int(nil)), reflect.TypeOf(bytes.Buffer{}))
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if _, ok := u.LookupClass("Slice"); !ok {
		t.Fatalf("Slice proxy not bound")
	}
	if _, ok := u.LookupClass("Buffer"); !ok {
		t.Fatalf("Buffer proxy not bound")
	}

	scope.Restore()
	if _, ok := u.LookupClass("Slice"); ok {
		t.Fatalf("Slice still bound after restore")
	}
	if _, ok := u.LookupClass("Buffer"); ok {
		t.Fatalf("Buffer still bound after restore")
	}
	scope.Restore() // idempotent
}

func TestPatchShadowsAndRestoresExistingBinding(t *testing.T) {
	u := NewUniverse()
	own := u.Register("Buffer", WithParams(NewParam("T", Invariant)))

	scope, err := u.Patch(reflect.TypeOf(bytes.Buffer{}))
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	shadow, _ := u.LookupClass("Buffer")
	if shadow == own {
		t.Fatalf("patch must shadow the existing binding")
	}

	scope.Restore()
	back, ok := u.LookupClass("Buffer")
	if !ok || back != own {
		t.Fatalf("restore must reinstate the shadowed binding")
	}
}

func TestPatchRejectsUnidentifiableTargets(t *testing.T) {
	u := NewUniverse()
	anon := reflect.TypeOf(struct{ x int }{})
	_, err := u.Patch(reflect.TypeOf(bytes.Buffer{}), anon, nil)
	if err == nil {
		t.Fatalf("anonymous targets must be rejected")
	}
	if !errors.Is(err, ErrPatchTarget) {
		t.Fatalf("error must wrap the patch-target sentinel, got: %v", err)
	}
	if !strings.Contains(err.Error(), "struct") || !strings.Contains(err.Error(), "nil") {
		t.Fatalf("error must name every offending input, got: %v", err)
	}
	// Failure is all-or-nothing: the good target must not have been bound.
	if _, ok := u.LookupClass("Buffer"); ok {
		t.Fatalf("a failed patch must leave the universe untouched")
	}
}

func TestPatchedProxyParametrizes(t *testing.T) {
	u := NewUniverse()
	scope, err := u.Patch(reflect.TypeOf(map[string]any(nil)))
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	defer scope.Restore()

	m, _ := u.LookupClass("Map")
	h := m.Of(TypeOf[string](), TypeOf[int]())
	if got := h.String(); got != "Map[string, int]" {
		t.Fatalf("patched handle renders as %q", got)
	}
	if got := h.Representation().String(); got != "map[string]interface {}[string, int]" {
		t.Fatalf("patched representation renders as %q", got)
	}
	args := h.Args()
	if len(args) != 2 {
		t.Fatalf("patched handle captured %d arguments", len(args))
	}
}
