package generics

import (
	"fmt"
	"reflect"

	"rtgen/internal/trace"
	"rtgen/internal/typedesc"
)

// InitFunc is an origin's initializer. It runs after the captured
// arguments are stamped on the instance, so it can already read them.
type InitFunc func(inst *Instance, ctorArgs ...any)

// ClassMethodFunc is a class-level operation. cls is the parametrization
// handle the call was made through, or the bare-origin handle for methods
// registered with NoAlias.
type ClassMethodFunc func(cls *Handle, args ...any) any

type classMethod struct {
	fn      ClassMethodFunc
	noAlias bool
}

// Origin is a registered parametrizable class: its declared parameters,
// its parametrized parents as declared, its initializer and classmethods.
// Parent entries are recorded once at registration and never mutated.
type Origin struct {
	u       *Universe
	id      typedesc.TypeID // KindOrigin descriptor
	slot    uint32
	name    string
	params  []*Param
	parents []typedesc.TypeID // applied forms, declaration order
	init    InitFunc
	methods map[string]classMethod
	proxy   typedesc.TypeID // result-representation target, NoTypeID for self
}

// RegisterOption configures Register.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	params  []*Param
	parents []*Handle
	init    InitFunc
	proxyRT reflect.Type
	proxyOf *Origin
}

// WithParams declares the ordered parameter list. At most one parameter
// may be a group, at any position.
func WithParams(params ...*Param) RegisterOption {
	return func(c *registerConfig) { c.params = append(c.params, params...) }
}

// WithParents declares the parametrized base classes, in declaration order.
func WithParents(parents ...*Handle) RegisterOption {
	return func(c *registerConfig) { c.parents = append(c.parents, parents...) }
}

// WithInit installs the origin's initializer.
func WithInit(fn InitFunc) RegisterOption {
	return func(c *registerConfig) { c.init = fn }
}

// ProxyFor lets the registered class stand in as a parametrizable proxy
// for an externally-owned type: handle representations delegate to the
// target instead of wrapping the origin itself.
func ProxyFor(rt reflect.Type) RegisterOption {
	return func(c *registerConfig) { c.proxyRT = rt }
}

// ProxyForOrigin delegates handle representations to another registered
// class's own parametrization.
func ProxyForOrigin(o *Origin) RegisterOption {
	return func(c *registerConfig) { c.proxyOf = o }
}

// Register arms a class: allocates its origin record, binds its name,
// records its declared parameters and parametrized parents. Parents must
// already be registered in the same universe, which keeps the adjacency
// acyclic by construction.
func (u *Universe) Register(name string, opts ...RegisterOption) *Origin {
	var cfg registerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	groups := 0
	for _, p := range cfg.params {
		if p.variadic {
			groups++
		}
	}
	if groups > 1 {
		panic(fmt.Sprintf("generics: class %s declares %d variable-length parameters, at most one is allowed", name, groups))
	}

	slot := uint32(len(u.origins))
	o := &Origin{
		u:       u,
		slot:    slot,
		name:    name,
		params:  cfg.params,
		init:    cfg.init,
		methods: make(map[string]classMethod, 2),
	}
	o.id = u.in.RegisterOrigin(slot)
	u.origins = append(u.origins, o)
	u.names[name] = o

	for _, parent := range cfg.parents {
		if parent.u != u {
			panic("generics: parent handle belongs to another universe")
		}
		o.parents = append(o.parents, parent.id)
	}
	switch {
	case cfg.proxyOf != nil:
		o.proxy = cfg.proxyOf.id
	case cfg.proxyRT != nil:
		o.proxy = u.in.RegisterRuntime(cfg.proxyRT)
	}

	u.emit(trace.KindArm, name, fmt.Sprintf("%d params, %d parents", len(o.params), len(o.parents)))
	return o
}

// Register arms a class in the process-wide default universe.
func Register(name string, opts ...RegisterOption) *Origin {
	return Default.Register(name, opts...)
}

// Universe returns the universe the origin is registered in.
func (o *Origin) Universe() *Universe { return o.u }

// Name returns the registered class name.
func (o *Origin) Name() string { return o.name }

// Params returns the declared parameter list.
func (o *Origin) Params() []*Param { return o.params }

func (o *Origin) String() string { return o.name }

func (o *Origin) intern(u *Universe) typedesc.TypeID {
	if o.u != u {
		panic("generics: origin used outside its universe")
	}
	return o.id
}

// MethodOption configures ClassMethod.
type MethodOption func(*classMethod)

// NoAlias suppresses handle rebinding for one classmethod: it always
// receives the bare-origin handle, never the parametrized one.
func NoAlias(m *classMethod) { m.noAlias = true }

// ClassMethod registers a class-level operation on the origin.
func (o *Origin) ClassMethod(name string, fn ClassMethodFunc, opts ...MethodOption) *Origin {
	m := classMethod{fn: fn}
	for _, opt := range opts {
		opt(&m)
	}
	o.methods[name] = m
	return o
}

// Invoke calls a classmethod through the bare (unparametrized) origin.
func (o *Origin) Invoke(name string, args ...any) (any, error) {
	return o.Of().Invoke(name, args...)
}

// Bare returns the handle for the origin with no arguments captured.
func (o *Origin) Bare() *Handle { return o.Of() }

// findMethod resolves a classmethod along the registered parent chain,
// declaration order, depth-first.
func (o *Origin) findMethod(name string) (classMethod, *Origin, bool) {
	if m, ok := o.methods[name]; ok {
		return m, o, true
	}
	for _, pid := range o.parents {
		tt, ok := o.u.in.Lookup(pid)
		if !ok || tt.Kind != typedesc.KindApplied {
			continue
		}
		parent := o.u.originFor(tt.Elem)
		if parent == nil {
			continue
		}
		if m, owner, ok := parent.findMethod(name); ok {
			return m, owner, true
		}
	}
	return classMethod{}, nil, false
}
