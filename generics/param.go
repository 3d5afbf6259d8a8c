package generics

import "rtgen/internal/typedesc"

// Param is a declared generic parameter. Identity is pointer identity:
// the same *Param declared once and reused across classes is one
// parameter, exactly like a shared type variable in the host source.
type Param struct {
	name     string
	variance Variance
	variadic bool
}

// NewParam declares a single-argument parameter with the given variance.
func NewParam(name string, variance Variance) *Param {
	return &Param{name: name, variance: variance}
}

// NewGroup declares a variable-length parameter group. Groups are always
// invariant; no variance is applied across whole argument groups.
func NewGroup(name string) *Param {
	return &Param{name: name, variadic: true}
}

// Name returns the declared parameter name.
func (p *Param) Name() string { return p.name }

// Variance returns the declared variance.
func (p *Param) Variance() Variance { return p.variance }

// Variadic reports whether p absorbs a variable-length argument group.
func (p *Param) Variadic() bool { return p.variadic }

func (p *Param) String() string {
	if p.variadic {
		return "*" + p.name
	}
	return p.name
}

func (p *Param) intern(u *Universe) typedesc.TypeID { return u.paramID(p) }
