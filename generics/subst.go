package generics

import "rtgen/internal/typedesc"

// subst rewrites declared-parameter occurrences inside a descriptor with
// their resolved arguments, re-interning every node that changed.
// Unresolved single parameters default to the any marker; unresolved
// group references default to the unbounded marker.
type subst struct {
	u       *Universe
	mapping map[typedesc.TypeID]typedesc.TypeID
	cache   map[typedesc.TypeID]typedesc.TypeID
}

func newSubst(u *Universe, mapping map[typedesc.TypeID]typedesc.TypeID) *subst {
	return &subst{u: u, mapping: mapping}
}

func (s *subst) apply(id typedesc.TypeID) typedesc.TypeID {
	if id == typedesc.NoTypeID {
		return id
	}
	if s.cache == nil {
		s.cache = make(map[typedesc.TypeID]typedesc.TypeID, 16)
	} else if cached, ok := s.cache[id]; ok {
		return cached
	}
	out := s.applyNoCache(id)
	s.cache[id] = out
	return out
}

func (s *subst) applyNoCache(id typedesc.TypeID) typedesc.TypeID {
	in := s.u.in
	tt, ok := in.Lookup(id)
	if !ok {
		return id
	}

	switch tt.Kind {
	case typedesc.KindParam:
		if repl, ok := s.mapping[id]; ok && repl != typedesc.NoTypeID {
			return repl
		}
		return in.Markers().Any

	case typedesc.KindSpread:
		// A bare spread position substitutes to its group's unbounded
		// stand-in; spreads inside argument tuples are spliced by
		// applyArgs instead.
		if repl, ok := s.mapping[tt.Elem]; ok && repl != typedesc.NoTypeID {
			return repl
		}
		return in.Markers().Unbounded

	case typedesc.KindApplied:
		args := s.applyArgs(in.TupleElems(tt.Payload))
		slot := in.RegisterTuple(args)
		if slot == tt.Payload {
			return id
		}
		return in.Intern(typedesc.MakeApplied(tt.Elem, slot))

	case typedesc.KindGroup:
		args := s.applyArgs(in.TupleElems(tt.Payload))
		slot := in.RegisterTuple(args)
		if slot == tt.Payload {
			return id
		}
		return in.Intern(typedesc.MakeGroup(slot))

	default:
		return id
	}
}

// applyArgs substitutes an argument tuple elementwise, splicing resolved
// group references inline so the result stays a flat tuple.
func (s *subst) applyArgs(args []typedesc.TypeID) []typedesc.TypeID {
	in := s.u.in
	out := make([]typedesc.TypeID, 0, len(args))
	for _, arg := range args {
		tt, ok := in.Lookup(arg)
		if ok && tt.Kind == typedesc.KindSpread {
			if repl, mapped := s.mapping[tt.Elem]; mapped {
				rt, rok := in.Lookup(repl)
				if rok && rt.Kind == typedesc.KindGroup {
					out = append(out, in.TupleElems(rt.Payload)...)
					continue
				}
				out = append(out, repl)
				continue
			}
			out = append(out, in.Markers().Unbounded)
			continue
		}
		out = append(out, s.apply(arg))
	}
	return out
}
