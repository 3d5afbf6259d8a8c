package generics

import "rtgen/internal/typedesc"

// normalize interns an argument list into canonical descriptor form.
// Sentinels map to their explicit markers here (Empty to the empty
// group, Ellipsis to the unbounded marker). Total: a nil expression
// normalizes to the any marker rather than failing.
func (u *Universe) normalize(args []Expr) []typedesc.TypeID {
	out := make([]typedesc.TypeID, len(args))
	for i, a := range args {
		if a == nil {
			out[i] = u.in.Markers().Any
			continue
		}
		out[i] = a.intern(u)
	}
	return out
}
