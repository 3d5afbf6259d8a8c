package generics

import (
	"reflect"

	"rtgen/internal/trace"
	"rtgen/internal/typedesc"
)

// TypeCheck reports whether sub is a valid, variance-respecting subtype
// of cls. Both values may be instances, handles, bare classes, or
// argument values. The only failure mode is an inconsistent hierarchy
// surfacing from the linearization.
func TypeCheck(sub, cls any) (bool, error) {
	subID, u1, ok1 := asCheckable(sub)
	clsID, u2, ok2 := asCheckable(cls)
	if !ok1 || !ok2 || u1 != u2 {
		return false, nil
	}
	u1.emit(trace.KindQuery, u1.stringOf(subID)+" <: "+u1.stringOf(clsID), "type check")
	return u1.checkIDs(subID, clsID)
}

// asCheckable converts a public value into its descriptor.
func asCheckable(v any) (typedesc.TypeID, *Universe, bool) {
	switch x := v.(type) {
	case *Handle:
		return x.id, x.u, true
	case *Origin:
		return x.id, x.u, true
	case *Instance:
		return x.Handle().id, x.origin.u, true
	case Arg:
		if x.u == nil {
			return typedesc.NoTypeID, nil, false
		}
		return x.id, x.u, true
	default:
		return typedesc.NoTypeID, nil, false
	}
}

// checkIDs is the structural subtype walk over interned descriptors.
func (u *Universe) checkIDs(subID, clsID typedesc.TypeID) (bool, error) {
	if subID == clsID {
		return true, nil
	}
	if u.isWildcard(subID) || u.isWildcard(clsID) {
		return true, nil
	}

	subTT, ok1 := u.in.Lookup(subID)
	clsTT, ok2 := u.in.Lookup(clsID)
	if !ok1 || !ok2 {
		return false, nil
	}

	// Plain concrete types: identity or Go assignability (which covers
	// interface implementation).
	if subTT.Kind == typedesc.KindRuntime && clsTT.Kind == typedesc.KindRuntime {
		return u.runtimeSubtype(subID, clsID), nil
	}

	subH := u.canonicalFor(subID)
	clsH := u.canonicalFor(clsID)
	if subH == nil || clsH == nil {
		return false, nil
	}
	return u.checkHandles(subH, clsH)
}

// checkHandles walks the linearized ancestry of sub looking for an
// ancestor sharing cls's origin, then compares resolved arguments
// parameter by parameter under the declared variance. A consistent MRO
// has at most one such ancestor, so the first one decides.
func (u *Universe) checkHandles(sub, cls *Handle) (bool, error) {
	mro, err := u.mroIDs(sub)
	if err != nil {
		return false, err
	}
	params := cls.origin.params
	clsMap := u.resolveIDs(params, u.in.TupleElems(cls.tuple))

	for _, ancID := range mro {
		tt, ok := u.in.Lookup(ancID)
		if !ok || tt.Kind != typedesc.KindApplied || tt.Elem != cls.origin.id {
			continue
		}
		ancMap := u.resolveIDs(params, u.in.TupleElems(tt.Payload))
		return u.matchParams(params, ancMap, clsMap)
	}
	return false, nil
}

// matchParams compares each declared parameter's resolved arguments.
func (u *Universe) matchParams(params []*Param, ancMap, clsMap map[typedesc.TypeID]typedesc.TypeID) (bool, error) {
	anyID := u.in.Markers().Any
	for _, p := range params {
		pid := u.paramID(p)
		av, ok := ancMap[pid]
		if !ok {
			av = anyID
		}
		bv, ok := clsMap[pid]
		if !ok {
			bv = anyID
		}
		matched, err := u.matchOne(p, av, bv)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

func (u *Universe) matchOne(p *Param, av, bv typedesc.TypeID) (bool, error) {
	if u.isWildcard(av) || u.isWildcard(bv) {
		return true, nil
	}
	if p.variadic {
		// Groups compare exactly; no variance across argument groups.
		// A group holding only the unbounded marker is the any-length
		// fill a bare origin gets, so it matches like the marker itself.
		if u.isUnboundedGroup(av) || u.isUnboundedGroup(bv) {
			return true, nil
		}
		return av == bv, nil
	}
	if u.isParametrizedForm(av) || u.isParametrizedForm(bv) {
		switch p.variance {
		case Covariant:
			return u.checkIDs(av, bv)
		case Contravariant:
			return u.checkIDs(bv, av)
		default:
			return av == bv, nil
		}
	}
	switch p.variance {
	case Covariant:
		return u.runtimeSubtype(av, bv), nil
	case Contravariant:
		return u.runtimeSubtype(bv, av), nil
	default:
		return av == bv, nil
	}
}

// isWildcard reports the any and unbounded markers, which trivially
// match anything.
func (u *Universe) isWildcard(id typedesc.TypeID) bool {
	m := u.in.Markers()
	return id == m.Any || id == m.Unbounded
}

// isUnboundedGroup reports a group whose only member is the unbounded
// marker.
func (u *Universe) isUnboundedGroup(id typedesc.TypeID) bool {
	tt, ok := u.in.Lookup(id)
	if !ok || tt.Kind != typedesc.KindGroup {
		return false
	}
	elems := u.in.TupleElems(tt.Payload)
	return len(elems) == 1 && elems[0] == u.in.Markers().Unbounded
}

// isParametrizedForm reports applied and bare-origin descriptors, which
// recurse through the hierarchy instead of comparing as leaves.
func (u *Universe) isParametrizedForm(id typedesc.TypeID) bool {
	tt, ok := u.in.Lookup(id)
	if !ok {
		return false
	}
	return tt.Kind == typedesc.KindApplied || tt.Kind == typedesc.KindOrigin
}

// runtimeSubtype is the leaf relation over concrete Go types.
func (u *Universe) runtimeSubtype(aID, bID typedesc.TypeID) bool {
	if aID == bID {
		return true
	}
	a, ok1 := u.in.RuntimeType(aID)
	b, ok2 := u.in.RuntimeType(bID)
	if !ok1 || !ok2 {
		return false
	}
	return runtimeAssignable(a, b)
}

func runtimeAssignable(a, b reflect.Type) bool {
	if a == b {
		return true
	}
	if b.Kind() == reflect.Interface {
		return a.Implements(b)
	}
	return a.AssignableTo(b)
}

// canonicalFor canonicalizes a descriptor to its parametrized-alias
// handle: bare origins are any-filled, and so are forms still carrying
// unresolved parameter variables or group references.
func (u *Universe) canonicalFor(id typedesc.TypeID) *Handle {
	tt, ok := u.in.Lookup(id)
	if !ok {
		return nil
	}
	switch tt.Kind {
	case typedesc.KindOrigin:
		o := u.originFor(id)
		if o == nil {
			return nil
		}
		return o.anyFilled()
	case typedesc.KindApplied:
		h := u.handleForApplied(id)
		if h == nil {
			return nil
		}
		return u.canonicalHandle(h)
	default:
		return nil
	}
}

// canonicalHandle applies the alias fixed point to a handle.
func (u *Universe) canonicalHandle(h *Handle) *Handle {
	if !h.Parametrized() || u.containsUnresolved(h.id) {
		return h.origin.anyFilled()
	}
	return h
}

// containsUnresolved reports whether a descriptor still references
// parameter variables or group spreads anywhere inside.
func (u *Universe) containsUnresolved(id typedesc.TypeID) bool {
	tt, ok := u.in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case typedesc.KindParam, typedesc.KindSpread:
		return true
	case typedesc.KindApplied, typedesc.KindGroup:
		for _, elem := range u.in.TupleElems(tt.Payload) {
			if u.containsUnresolved(elem) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
