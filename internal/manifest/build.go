package manifest

import (
	"fmt"

	"rtgen/generics"
	"rtgen/internal/typedesc"
)

// Hierarchy is the result of arming a manifest's classes in a universe.
type Hierarchy struct {
	Universe *generics.Universe
	Scope    *Scope
	Classes  []string // document order
	Origins  map[string]*generics.Origin
}

// Build declares the manifest's parameters and registers its classes in
// u, in document order. Parents may reference any class declared earlier
// in the same manifest or already present in the universe.
func (m *Manifest) Build(u *generics.Universe) (*Hierarchy, error) {
	scope := &Scope{
		U:      u,
		Params: make(map[string]*generics.Param, len(m.Config.Params)),
	}
	for _, name := range m.params {
		cfg := m.Config.Params[name]
		if cfg.Variadic {
			scope.Params[name] = generics.NewGroup(name)
			continue
		}
		variance, err := typedesc.ParseVariance(cfg.Variance)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", name, err)
		}
		scope.Params[name] = generics.NewParam(name, variance)
	}

	h := &Hierarchy{
		Universe: u,
		Scope:    scope,
		Origins:  make(map[string]*generics.Origin, len(m.classes)),
	}
	for _, name := range m.classes {
		cfg := m.Config.Classes[name]
		params := make([]*generics.Param, 0, len(cfg.Params))
		groups := 0
		for _, pname := range cfg.Params {
			p, ok := scope.Params[pname]
			if !ok {
				return nil, fmt.Errorf("class %s: undeclared parameter %q", name, pname)
			}
			if p.Variadic() {
				groups++
			}
			params = append(params, p)
		}
		if groups > 1 {
			return nil, fmt.Errorf("class %s: at most one parameter group is allowed", name)
		}
		parents := make([]*generics.Handle, 0, len(cfg.Extends))
		for _, text := range cfg.Extends {
			parent, err := scope.ParseHandle(text)
			if err != nil {
				return nil, fmt.Errorf("class %s: parent %w", name, err)
			}
			parents = append(parents, parent)
		}
		h.Origins[name] = u.Register(name,
			generics.WithParams(params...),
			generics.WithParents(parents...),
		)
		h.Classes = append(h.Classes, name)
	}
	return h, nil
}

// Origin returns a registered class by name.
func (h *Hierarchy) Origin(name string) (*generics.Origin, bool) {
	o, ok := h.Origins[name]
	return o, ok
}
