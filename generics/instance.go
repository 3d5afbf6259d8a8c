package generics

// Instance is the result of calling a parametrization handle. It carries
// the captured argument tuple and a back-reference to its origin, both
// set once at construction; multiple instances from the same handle share
// the identical tuple.
type Instance struct {
	origin *Origin
	tuple  uint32
	attrs  map[string]any
}

// Origin returns the class the instance was constructed from.
func (inst *Instance) Origin() *Origin { return inst.origin }

// TypeArguments returns the captured argument tuple, in order.
func (inst *Instance) TypeArguments() []Arg {
	elems := inst.origin.u.in.TupleElems(inst.tuple)
	out := make([]Arg, len(elems))
	for i, id := range elems {
		out[i] = Arg{u: inst.origin.u, id: id}
	}
	return out
}

// Handle returns the parametrization handle the instance was constructed
// from, re-creating it if cache eviction dropped it.
func (inst *Instance) Handle() *Handle {
	return inst.origin.ofTuple(inst.tuple)
}

// Set stores an instance attribute. Initializers use this to populate
// state derived from the captured arguments.
func (inst *Instance) Set(key string, value any) { inst.attrs[key] = value }

// Get reads an instance attribute.
func (inst *Instance) Get(key string) (any, bool) {
	v, ok := inst.attrs[key]
	return v, ok
}

func (inst *Instance) String() string {
	return inst.Handle().String() + "()"
}
