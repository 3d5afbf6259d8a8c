// Package generics retains, at run time, the concrete type arguments a
// parametrizable class was instantiated with, and answers structural
// questions about them afterwards: which arguments an instance carries,
// how declared parameters map onto them, the ordered list of parametrized
// ancestors, and variance-aware subtype checks over that ancestry.
//
// Classes are declared against a Universe, which owns the descriptor
// interner, the parent registry and the bounded handle cache:
//
//	T := generics.NewParam("T", generics.Invariant)
//	Foo := u.Register("Foo", generics.WithParams(T))
//	Bar := u.Register("Bar", generics.WithParams(T),
//		generics.WithParents(Foo.Of(T)))
//
//	h := Bar.Of(generics.TypeOf[int]())   // parametrization handle
//	inst := h.New()                       // instance, arguments captured
//	generics.TypeArgumentsOf(inst)        // [int]
//	generics.ParentsOf(h)                 // [Foo[int]]
//
// Registration and the first parametrization of a given (origin,
// arguments) pair mutate shared state and follow a single-threaded
// contract; read-only queries may run concurrently once the classes
// involved are fully registered.
package generics
