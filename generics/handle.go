package generics

import (
	"fmt"

	"rtgen/internal/typedesc"
)

// Handle is a reusable parametrization: an origin applied to a normalized
// argument tuple. Handles are memoized per universe by their applied
// descriptor, so requesting the same (origin, arguments) pair again
// yields the same handle object while it stays cache-resident.
type Handle struct {
	u      *Universe
	origin *Origin
	id     typedesc.TypeID // applied descriptor, identity key
	tuple  uint32          // normalized argument tuple slot
	repr   typedesc.TypeID // result representation
}

// Of parametrizes the origin with the given arguments and returns the
// handle for the pair, creating and caching it on first request.
func (o *Origin) Of(args ...Expr) *Handle {
	return o.ofTuple(o.u.in.RegisterTuple(o.u.normalize(args)))
}

// ofTuple is the internal factory working on an already-interned tuple.
func (o *Origin) ofTuple(tuple uint32) *Handle {
	u := o.u
	id := u.in.Intern(typedesc.MakeApplied(o.id, tuple))
	if h, ok := u.handles[id]; ok {
		return h
	}
	h := &Handle{
		u:      u,
		origin: o,
		id:     id,
		tuple:  tuple,
	}
	h.repr = h.computeRepr()
	u.cacheInsert(h)
	return h
}

// computeRepr picks the result representation: the proxy target's own
// parametrization when one was configured for this origin, else the
// generic applied form wrapping the origin itself.
func (h *Handle) computeRepr() typedesc.TypeID {
	o := h.origin
	if o.proxy == typedesc.NoTypeID {
		return h.id
	}
	if target := h.u.originFor(o.proxy); target != nil {
		return target.ofTuple(h.tuple).id
	}
	return h.u.in.Intern(typedesc.MakeApplied(o.proxy, h.tuple))
}

// Universe returns the universe the handle lives in.
func (h *Handle) Universe() *Universe { return h.u }

// Origin returns the class this handle parametrizes.
func (h *Handle) Origin() *Origin { return h.origin }

// Args returns the captured argument tuple, in order.
func (h *Handle) Args() []Arg {
	elems := h.u.in.TupleElems(h.tuple)
	out := make([]Arg, len(elems))
	for i, id := range elems {
		out[i] = Arg{u: h.u, id: id}
	}
	return out
}

// Parametrized reports whether any arguments were captured. An empty
// tuple means "not yet parametrized", which is distinct from being
// parametrized with the empty group.
func (h *Handle) Parametrized() bool {
	return len(h.u.in.TupleElems(h.tuple)) > 0
}

// Representation returns what this parametrization structurally behaves
// like; it differs from the handle itself only for proxy origins.
func (h *Handle) Representation() Arg { return Arg{u: h.u, id: h.repr} }

// CopyWith returns the handle for (owner-or-current-origin,
// args-or-current-args), re-targeting classmethod dispatch.
func (h *Handle) CopyWith(owner *Origin, args ...Expr) *Handle {
	o := h.origin
	if owner != nil {
		o = owner
	}
	tuple := h.tuple
	if len(args) > 0 {
		tuple = h.u.in.RegisterTuple(h.u.normalize(args))
	}
	return o.ofTuple(tuple)
}

// New constructs an instance of the origin. The captured arguments and
// the origin back-reference are stamped before the initializer runs, so
// the initializer body can already observe them.
func (h *Handle) New(ctorArgs ...any) *Instance {
	inst := &Instance{
		origin: h.origin,
		tuple:  h.tuple,
		attrs:  make(map[string]any, 4),
	}
	if h.origin.init != nil {
		h.origin.init(inst, ctorArgs...)
	}
	return inst
}

// Invoke calls a classmethod with this handle bound as cls. Methods
// registered with NoAlias receive the declaring origin's bare handle
// instead, because they operate on the unparametrized class only.
func (h *Handle) Invoke(name string, args ...any) (any, error) {
	m, owner, ok := h.origin.findMethod(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, h.origin.name, name)
	}
	cls := h
	if m.noAlias {
		cls = owner.Bare()
	}
	return m.fn(cls, args...), nil
}

func (h *Handle) intern(u *Universe) typedesc.TypeID {
	if h.u != u {
		panic("generics: handle used outside its universe")
	}
	return h.id
}

func (h *Handle) String() string { return h.u.stringOf(h.id) }

// anyFilled returns the canonical parametrized-alias form of a bare
// origin: every single parameter filled with the any marker, every group
// with the unbounded marker.
func (o *Origin) anyFilled() *Handle {
	args := make([]Expr, len(o.params))
	for i, p := range o.params {
		if p.variadic {
			args[i] = Ellipsis
		} else {
			args[i] = Any
		}
	}
	return o.Of(args...)
}
