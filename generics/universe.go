package generics

import (
	"fmt"
	"strings"

	"rtgen/internal/trace"
	"rtgen/internal/typedesc"
)

// DefaultCacheCapacity bounds the handle cache when no explicit capacity
// is configured.
const DefaultCacheCapacity = 512

// Universe owns everything the runtime-generic machinery shares: the
// descriptor interner, the origin registry with its parent adjacency, and
// the bounded parametrization-handle cache. Mutation (Register, Patch,
// the first Of for a given pair) follows a single-threaded contract;
// read-only queries are safe to run concurrently afterwards.
type Universe struct {
	in       *typedesc.Interner
	origins  []*Origin          // slot-indexed; slot 0 reserved
	names    map[string]*Origin // identifier bindings, patchable
	handles  map[typedesc.TypeID]*Handle
	paramIDs map[*Param]typedesc.TypeID
	capacity int
	tracer   trace.Tracer
	advised  map[string]bool // deprecation advisories already emitted
}

// Option configures a Universe.
type Option func(*Universe)

// WithCacheCapacity bounds the handle cache. When the cache is full an
// arbitrary resident entry is evicted; handles are cheap to reconstruct.
func WithCacheCapacity(n int) Option {
	return func(u *Universe) {
		if n > 0 {
			u.capacity = n
		}
	}
}

// WithTracer routes registry events to the given tracer.
func WithTracer(t trace.Tracer) Option {
	return func(u *Universe) {
		if t != nil {
			u.tracer = t
		}
	}
}

// NewUniverse constructs an empty universe.
func NewUniverse(opts ...Option) *Universe {
	u := &Universe{
		in:       typedesc.NewInterner(),
		origins:  make([]*Origin, 1),
		names:    make(map[string]*Origin, 16),
		handles:  make(map[typedesc.TypeID]*Handle, 32),
		paramIDs: make(map[*Param]typedesc.TypeID, 16),
		capacity: DefaultCacheCapacity,
		tracer:   trace.Nop,
		advised:  make(map[string]bool, 4),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Default is the process-wide universe used by the package-level Register
// and Patch functions.
var Default = NewUniverse()

// CacheLen returns the number of resident parametrization handles.
func (u *Universe) CacheLen() int { return len(u.handles) }

// Eval resolves an argument expression to its interned value in this
// universe. A nil expression resolves to the any marker.
func (u *Universe) Eval(e Expr) Arg {
	if e == nil {
		return Arg{u: u, id: u.in.Markers().Any}
	}
	return Arg{u: u, id: e.intern(u)}
}

// LookupClass returns the origin currently bound to an identifier.
func (u *Universe) LookupClass(name string) (*Origin, bool) {
	o, ok := u.names[name]
	return o, ok
}

// paramID interns a declared parameter the first time this universe sees it.
func (u *Universe) paramID(p *Param) typedesc.TypeID {
	if id, ok := u.paramIDs[p]; ok {
		return id
	}
	id := u.in.RegisterParam(p.name, p.variance, p.variadic)
	u.paramIDs[p] = id
	return id
}

// originFor resolves a KindOrigin descriptor back to its registry entry.
func (u *Universe) originFor(id typedesc.TypeID) *Origin {
	slot, ok := u.in.OriginSlot(id)
	if !ok || slot == 0 || int(slot) >= len(u.origins) {
		return nil
	}
	return u.origins[slot]
}

// handleForApplied returns the cached handle for an applied descriptor,
// re-creating it if eviction dropped it.
func (u *Universe) handleForApplied(id typedesc.TypeID) *Handle {
	if h, ok := u.handles[id]; ok {
		return h
	}
	tt, ok := u.in.Lookup(id)
	if !ok || tt.Kind != typedesc.KindApplied {
		return nil
	}
	origin := u.originFor(tt.Elem)
	if origin == nil {
		return nil
	}
	return origin.ofTuple(tt.Payload)
}

// cacheInsert stores a freshly constructed handle, evicting an arbitrary
// resident entry first when the cache is at capacity.
func (u *Universe) cacheInsert(h *Handle) {
	if len(u.handles) >= u.capacity {
		for id, victim := range u.handles {
			delete(u.handles, id)
			u.emit(trace.KindEvict, victim.String(), "cache at capacity")
			break
		}
	}
	u.handles[h.id] = h
	u.emit(trace.KindIntern, h.String(), "")
}

func (u *Universe) emit(kind trace.Kind, name, detail string) {
	if !u.tracer.Enabled() {
		return
	}
	u.tracer.Emit(trace.Point(kind, name, detail))
}

// advise emits a deprecation advisory once per alias name.
func (u *Universe) advise(alias, instead string) {
	if u.advised[alias] {
		return
	}
	u.advised[alias] = true
	u.emit(trace.KindDeprecated, alias, fmt.Sprintf("use %s instead", instead))
}

// stringOf renders any interned descriptor for diagnostics.
func (u *Universe) stringOf(id typedesc.TypeID) string {
	tt, ok := u.in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case typedesc.KindAny:
		return "any"
	case typedesc.KindUnbounded:
		return "..."
	case typedesc.KindRuntime:
		rt, _ := u.in.RuntimeType(id)
		if rt == nil {
			return "<invalid>"
		}
		return rt.String()
	case typedesc.KindOrigin:
		if o := u.originFor(id); o != nil {
			return o.name
		}
		return "<origin?>"
	case typedesc.KindParam:
		info, ok := u.in.ParamInfo(id)
		if !ok {
			return "<param?>"
		}
		if info.Variadic {
			return "*" + info.Name
		}
		return info.Name
	case typedesc.KindSpread:
		return "*" + strings.TrimPrefix(u.stringOf(tt.Elem), "*")
	case typedesc.KindGroup:
		return "(" + u.stringOfTuple(tt.Payload) + ")"
	case typedesc.KindApplied:
		return u.stringOf(tt.Elem) + "[" + u.stringOfTuple(tt.Payload) + "]"
	default:
		return "<" + tt.Kind.String() + ">"
	}
}

func (u *Universe) stringOfTuple(slot uint32) string {
	elems := u.in.TupleElems(slot)
	parts := make([]string, len(elems))
	for i, id := range elems {
		parts[i] = u.stringOf(id)
	}
	return strings.Join(parts, ", ")
}
