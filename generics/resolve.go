package generics

import "rtgen/internal/typedesc"

// Parametrization is the ordered mapping from declared parameters to the
// concrete argument (or argument group) each one received. It is computed
// on demand and never cached; recomputation is linear in parameter count.
type Parametrization struct {
	params []*Param
	values []Arg
}

// Len returns the number of resolved parameters.
func (p Parametrization) Len() int { return len(p.params) }

// Params returns the declared parameters, in declaration order.
func (p Parametrization) Params() []*Param { return p.params }

// Get returns the argument resolved for a declared parameter. Group
// parameters resolve to a group value; unwrap it with Arg.Group.
func (p Parametrization) Get(param *Param) (Arg, bool) {
	for i, candidate := range p.params {
		if candidate == param {
			return p.values[i], true
		}
	}
	return Arg{}, false
}

// resolveIDs maps each declared parameter's descriptor to its argument.
// The walk keeps an independent cursor into args: a plain parameter
// consumes exactly one argument; the (at most one) group parameter at
// position i consumes exactly enough to leave one argument for every
// remaining fixed parameter. Empty args yield an empty mapping, which
// distinguishes "not yet parametrized" from "parametrized with zero
// arguments".
func (u *Universe) resolveIDs(params []*Param, args []typedesc.TypeID) map[typedesc.TypeID]typedesc.TypeID {
	mapping := make(map[typedesc.TypeID]typedesc.TypeID, len(params))
	if len(args) == 0 {
		return mapping
	}
	cursor := 0
	for i, p := range params {
		pid := u.paramID(p)
		if p.variadic {
			take := len(args) - cursor - (len(params) - i - 1)
			if take < 0 {
				take = 0
			}
			group := args[cursor : cursor+take]
			cursor += take
			mapping[pid] = u.in.Intern(typedesc.MakeGroup(u.in.RegisterTuple(group)))
			continue
		}
		if cursor >= len(args) {
			break
		}
		mapping[pid] = args[cursor]
		cursor++
	}
	return mapping
}

// resolveParametrization builds the public mapping for an origin's params
// against a captured tuple.
func (u *Universe) resolveParametrization(o *Origin, tuple uint32) Parametrization {
	args := u.in.TupleElems(tuple)
	if len(args) == 0 {
		return Parametrization{}
	}
	mapping := u.resolveIDs(o.params, args)
	out := Parametrization{
		params: o.params,
		values: make([]Arg, len(o.params)),
	}
	for i, p := range o.params {
		if id, ok := mapping[u.paramID(p)]; ok {
			out.values[i] = Arg{u: u, id: id}
		} else {
			out.values[i] = Arg{u: u, id: u.in.Markers().Any}
		}
	}
	return out
}
