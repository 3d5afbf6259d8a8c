package generics

import (
	"fmt"

	"rtgen/internal/c3"
	"rtgen/internal/trace"
	"rtgen/internal/typedesc"
)

// parentIDs computes the immediate parametrized ancestors of a handle.
// Unparametrized handles see the registered parents verbatim, own stored
// arguments included; parametrized handles see every declared-parameter
// occurrence rewritten through the resolver mapping.
func (u *Universe) parentIDs(h *Handle) []typedesc.TypeID {
	declared := h.origin.parents
	if len(declared) == 0 {
		return nil
	}
	if !h.Parametrized() {
		out := make([]typedesc.TypeID, len(declared))
		copy(out, declared)
		return out
	}
	mapping := u.resolveIDs(h.origin.params, u.in.TupleElems(h.tuple))
	s := newSubst(u, mapping)
	out := make([]typedesc.TypeID, len(declared))
	for i, pid := range declared {
		out[i] = s.apply(pid)
	}
	return out
}

// parentHandles materializes parent handles from their applied descriptors.
func (u *Universe) parentHandles(h *Handle) []*Handle {
	ids := u.parentIDs(h)
	out := make([]*Handle, 0, len(ids))
	for _, id := range ids {
		if p := u.handleForApplied(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// mroIDs computes the C3 linearization of a handle's ancestry, self first.
// The registry is acyclic by construction (parents are registered before
// their subclasses), so the recursion terminates.
func (u *Universe) mroIDs(h *Handle) ([]typedesc.TypeID, error) {
	parents := u.parentHandles(h)
	seqs := make([][]typedesc.TypeID, 0, len(parents)+2)
	seqs = append(seqs, []typedesc.TypeID{h.id})
	for _, p := range parents {
		sub, err := u.mroIDs(p)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, sub)
	}
	if len(parents) > 0 {
		tail := make([]typedesc.TypeID, len(parents))
		for i, p := range parents {
			tail[i] = p.id
		}
		seqs = append(seqs, tail)
	}
	merged, err := c3.Merge(seqs)
	if err != nil {
		return nil, fmt.Errorf("linearizing %s: %w", h, err)
	}
	return merged, nil
}

// MRO returns the full linearized ancestry of the handle, self first.
func (h *Handle) MRO() ([]*Handle, error) {
	u := h.u
	u.emit(trace.KindQuery, h.String(), "mro")
	ids, err := u.mroIDs(h)
	if err != nil {
		return nil, err
	}
	out := make([]*Handle, 0, len(ids))
	for _, id := range ids {
		if a := u.handleForApplied(id); a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

// Parents returns the handle's immediate parametrized ancestors.
func (h *Handle) Parents() []*Handle {
	h.u.emit(trace.KindQuery, h.String(), "parents")
	return h.u.parentHandles(h)
}
