package generics

import (
	"errors"
	"reflect"
	"testing"
)

func TestCapturedArgumentsRoundTrip(t *testing.T) {
	u := NewUniverse()
	T := NewParam("T", Invariant)
	single := u.Register("Single", WithParams(T))

	inst := single.Of(TypeOf[int]()).New()
	args := TypeArgumentsOf(inst)
	if len(args) != 1 {
		t.Fatalf("expected 1 captured argument, got %d", len(args))
	}
	rt, ok := args[0].RuntimeType()
	if !ok || rt != reflect.TypeOf(0) {
		t.Fatalf("expected int, got %v", args[0])
	}
}

func TestCapturedArgumentsOrderPreserved(t *testing.T) {
	u := NewUniverse()
	T := NewParam("T", Invariant)
	T2 := NewParam("T2", Invariant)
	two := u.Register("Two", WithParams(T, T2))

	inst := two.Of(TypeOf[int](), TypeOf[string]()).New()
	args := TypeArgumentsOf(inst)
	if len(args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(args))
	}
	first, _ := args[0].RuntimeType()
	second, _ := args[1].RuntimeType()
	if first != reflect.TypeOf(0) || second != reflect.TypeOf("") {
		t.Fatalf("argument order not preserved: %v, %v", args[0], args[1])
	}
}

func TestArgumentsVisibleInsideInitializer(t *testing.T) {
	u := NewUniverse()
	T := NewParam("T", Invariant)
	var seen []Arg
	cls := u.Register("Sees", WithParams(T), WithInit(func(inst *Instance, _ ...any) {
		seen = inst.TypeArguments()
		inst.Set("arity", len(seen))
	}))

	inst := cls.Of(TypeOf[bool]()).New()
	if len(seen) != 1 {
		t.Fatalf("initializer did not observe captured arguments")
	}
	arity, _ := inst.Get("arity")
	if arity != 1 {
		t.Fatalf("expected arity attribute 1, got %v", arity)
	}
}

func TestArgOfRequiresExactlyOne(t *testing.T) {
	u := NewUniverse()
	T := NewParam("T", Invariant)
	T2 := NewParam("T2", Invariant)
	two := u.Register("Two", WithParams(T, T2))

	inst := two.Of(TypeOf[int](), TypeOf[string]()).New()
	if _, err := ArgOf(inst); !errors.Is(err, ErrArgumentCount) {
		t.Fatalf("expected ErrArgumentCount, got %v", err)
	}

	one := u.Register("One", WithParams(T))
	arg, err := ArgOf(one.Of(TypeOf[int]()).New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt, _ := arg.RuntimeType(); rt != reflect.TypeOf(0) {
		t.Fatalf("expected int, got %v", arg)
	}
}

func TestArgAtSelectorErrors(t *testing.T) {
	u := NewUniverse()
	T := NewParam("T", Invariant)
	one := u.Register("One", WithParams(T))
	h := one.Of(TypeOf[int]())

	if _, err := ArgAt(h, "0"); !errors.Is(err, ErrSelectorType) {
		t.Fatalf("string selector: expected ErrSelectorType, got %v", err)
	}
	if _, err := ArgAt(h, 5); !errors.Is(err, ErrSelectorRange) {
		t.Fatalf("out-of-range selector: expected ErrSelectorRange, got %v", err)
	}
	arg, err := ArgAt(h, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt, _ := arg.RuntimeType(); rt != reflect.TypeOf(0) {
		t.Fatalf("expected int at position 0, got %v", arg)
	}
}

func TestDeprecatedAliasesStillWork(t *testing.T) {
	u := NewUniverse()
	T := NewParam("T", Invariant)
	one := u.Register("One", WithParams(T))
	h := one.Of(TypeOf[int]())

	if got := GetArguments(h); len(got) != 1 {
		t.Fatalf("GetArguments: expected 1 argument, got %d", len(got))
	}
	arg, err := GetArgument(h)
	if err != nil {
		t.Fatalf("GetArgument: unexpected error: %v", err)
	}
	if rt, _ := arg.RuntimeType(); rt != reflect.TypeOf(0) {
		t.Fatalf("GetArgument: expected int, got %v", arg)
	}
}

func TestVariadicCaptureIsFlat(t *testing.T) {
	u := NewUniverse()
	Ts := NewGroup("Ts")
	T := NewParam("T", Invariant)
	variadic := u.Register("Variadic", WithParams(T, Ts))

	inst := variadic.Of(TypeOf[int](), TypeOf[string](), TypeOf[float64]()).New()
	args := TypeArgumentsOf(inst)
	if len(args) != 3 {
		t.Fatalf("expected flat 3-tuple, got %d elements", len(args))
	}
}
