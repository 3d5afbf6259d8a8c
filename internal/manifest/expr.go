package manifest

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"rtgen/generics"
)

// Scope resolves identifiers inside manifest type expressions: declared
// parameters first, then classes armed in the universe, then builtin
// leaf types.
type Scope struct {
	U      *generics.Universe
	Params map[string]*generics.Param
}

// builtins maps builtin identifiers to concrete Go leaf types.
var builtins = map[string]reflect.Type{
	"bool":       reflect.TypeOf(false),
	"int":        reflect.TypeOf(int(0)),
	"int8":       reflect.TypeOf(int8(0)),
	"int16":      reflect.TypeOf(int16(0)),
	"int32":      reflect.TypeOf(int32(0)),
	"int64":      reflect.TypeOf(int64(0)),
	"uint":       reflect.TypeOf(uint(0)),
	"uint8":      reflect.TypeOf(uint8(0)),
	"uint16":     reflect.TypeOf(uint16(0)),
	"uint32":     reflect.TypeOf(uint32(0)),
	"uint64":     reflect.TypeOf(uint64(0)),
	"float32":    reflect.TypeOf(float32(0)),
	"float64":    reflect.TypeOf(float64(0)),
	"complex64":  reflect.TypeOf(complex64(0)),
	"complex128": reflect.TypeOf(complex128(0)),
	"string":     reflect.TypeOf(""),
	"bytes":      reflect.TypeOf([]byte(nil)),
	"rune":       reflect.TypeOf(rune(0)),
	"byte":       reflect.TypeOf(byte(0)),
	"error":      reflect.TypeOf((*error)(nil)).Elem(),
}

// ParseExpr parses one type expression:
//
//	any | ... | *Group | param | builtin | Class | Class[expr, ...]
func (s *Scope) ParseExpr(text string) (generics.Expr, error) {
	p := &exprParser{scope: s, src: norm.NFC.String(text)}
	expr, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("%q: %w", text, err)
	}
	return expr, nil
}

// ParseHandle parses an expression that must denote a class, bare or
// applied, and returns its handle. Bare classes yield the empty
// parametrization.
func (s *Scope) ParseHandle(text string) (*generics.Handle, error) {
	expr, err := s.ParseExpr(text)
	if err != nil {
		return nil, err
	}
	arg := exprArg(s.U, expr)
	if h, ok := arg.Handle(); ok {
		return h, nil
	}
	return nil, fmt.Errorf("%q: not a class expression", text)
}

// exprArg evaluates an expression to an argument value in u.
func exprArg(u *generics.Universe, expr generics.Expr) generics.Arg {
	return u.Eval(expr)
}

type exprParser struct {
	scope *Scope
	src   string
	pos   int
}

func (p *exprParser) parse() (generics.Expr, error) {
	expr, err := p.parseOne()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d", rest(p.src, p.pos), p.pos)
	}
	return expr, nil
}

func (p *exprParser) parseOne() (generics.Expr, error) {
	p.skipSpace()
	switch {
	case p.eat("..."):
		return generics.Ellipsis, nil
	case p.eat("*"):
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		param, ok := p.scope.Params[name]
		if !ok || !param.Variadic() {
			return nil, fmt.Errorf("*%s: not a declared parameter group", name)
		}
		return generics.Unpack(param), nil
	}

	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if name == "any" {
		return generics.Any, nil
	}
	if param, ok := p.scope.Params[name]; ok {
		return param, nil
	}
	if origin, ok := p.scope.U.LookupClass(name); ok {
		return p.parseApplication(origin)
	}
	if rt, ok := builtins[name]; ok {
		return generics.RuntimeType(rt), nil
	}
	return nil, fmt.Errorf("unknown identifier %q", name)
}

// parseApplication parses an optional bracketed argument list after a
// class name. A bare class denotes its empty parametrization.
func (p *exprParser) parseApplication(origin *generics.Origin) (generics.Expr, error) {
	p.skipSpace()
	if !p.eat("[") {
		return origin.Of(), nil
	}
	var args []generics.Expr
	p.skipSpace()
	if !p.eat("]") {
		for {
			arg, err := p.parseOne()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipSpace()
			if p.eat(",") {
				continue
			}
			if p.eat("]") {
				break
			}
			return nil, fmt.Errorf("expected ',' or ']' at offset %d", p.pos)
		}
	}
	return origin.Of(args...), nil
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) eat(tok string) bool {
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *exprParser) ident() (string, error) {
	start := p.pos
	for _, r := range p.src[p.pos:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		p.pos += len(string(r))
	}
	if p.pos == start {
		return "", fmt.Errorf("expected identifier at offset %d", start)
	}
	return p.src[start:p.pos], nil
}

func rest(s string, pos int) string {
	tail := s[pos:]
	if len(tail) > 12 {
		tail = tail[:12] + "..."
	}
	return tail
}
