package generics

import (
	"fmt"
	"reflect"
	"strings"

	"rtgen/internal/trace"
)

// PatchScope is a live external-type patch. Restore unwinds it; the
// universe's identifier bindings return to exactly their previous state.
type PatchScope struct {
	u        *Universe
	names    []string
	previous []*Origin // nil entries mean the name was unbound
	done     bool
}

// Patch temporarily binds parametrizable proxy origins for the given
// externally-owned types, so code declared inside the scope can use them
// as parametrized parents. Every input must resolve to an identifier (a
// named Go type); otherwise Patch reports all offending inputs and
// leaves the universe untouched.
//
//	scope, err := u.Patch(reflect.TypeOf(map[any]any(nil)))
//	if err != nil { ... }
//	defer scope.Restore()
func (u *Universe) Patch(targets ...reflect.Type) (*PatchScope, error) {
	var bad []string
	for _, rt := range targets {
		if rt == nil || patchName(rt) == "" {
			bad = append(bad, fmt.Sprintf("%v", rt))
		}
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrPatchTarget, strings.Join(bad, ", "))
	}

	scope := &PatchScope{u: u}
	for _, rt := range targets {
		name := patchName(rt)
		scope.names = append(scope.names, name)
		scope.previous = append(scope.previous, u.names[name])

		// Register binds the proxy under the external type's name.
		u.Register(name,
			WithParams(NewGroup("Args")),
			ProxyFor(rt),
		)
		u.emit(trace.KindPatch, name, rt.String())
	}
	return scope, nil
}

// Patch applies a scoped external-type patch to the default universe.
func Patch(targets ...reflect.Type) (*PatchScope, error) {
	return Default.Patch(targets...)
}

// Restore reinstates the previous identifier bindings. Safe to call
// more than once.
func (s *PatchScope) Restore() {
	if s.done {
		return
	}
	s.done = true
	for i, name := range s.names {
		if s.previous[i] == nil {
			delete(s.u.names, name)
		} else {
			s.u.names[name] = s.previous[i]
		}
		s.u.emit(trace.KindRestore, name, "")
	}
}

// patchName derives the identifier an external type is known by.
// Unnamed composites such as map[K]V fall back to their kind name, which
// is still a stable identifier; truly anonymous types (structs, funcs
// and the like without a name) do not resolve.
func patchName(rt reflect.Type) string {
	if rt.Name() != "" {
		return rt.Name()
	}
	switch rt.Kind() {
	case reflect.Map:
		return "Map"
	case reflect.Slice:
		return "Slice"
	case reflect.Chan:
		return "Chan"
	case reflect.Array:
		return "Array"
	case reflect.Ptr:
		return "Ptr"
	default:
		return ""
	}
}
