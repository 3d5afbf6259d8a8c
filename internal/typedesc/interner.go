package typedesc

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"fortio.org/safecast"
)

// Markers stores TypeIDs for the singleton marker descriptors.
type Markers struct {
	Any        TypeID
	Unbounded  TypeID
	EmptyGroup TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Descriptors are append-only; equal descriptors always intern to the
// same TypeID, which makes argument tuples usable as map keys.
type Interner struct {
	types   []Type
	index   map[typeKey]TypeID
	markers Markers

	runtimes     []reflect.Type
	runtimeIndex map[reflect.Type]uint32
	params       []ParamInfo
	tuples       [][]TypeID
	tupleIndex   map[string]uint32
}

// NewInterner constructs an interner seeded with the marker singletons.
func NewInterner() *Interner {
	in := &Interner{
		index:        make(map[typeKey]TypeID, 64),
		runtimeIndex: make(map[reflect.Type]uint32, 16),
		tupleIndex:   make(map[string]uint32, 16),
	}
	in.runtimes = append(in.runtimes, nil) // reserve 0 as invalid sentinel
	in.params = append(in.params, ParamInfo{})
	in.tuples = append(in.tuples, nil)
	in.internRaw(Type{Kind: KindInvalid})
	in.markers.Any = in.Intern(Type{Kind: KindAny})
	in.markers.Unbounded = in.Intern(Type{Kind: KindUnbounded})
	in.markers.EmptyGroup = in.Intern(MakeGroup(in.RegisterTuple(nil)))
	return in
}

// Markers returns TypeIDs for the singleton markers.
func (in *Interner) Markers() Markers {
	return in.markers
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("typedesc: invalid TypeID")
	}
	return tt
}

// RegisterRuntime interns a leaf descriptor for a concrete Go type.
// The same reflect.Type always yields the same TypeID.
func (in *Interner) RegisterRuntime(rt reflect.Type) TypeID {
	if rt == nil {
		return NoTypeID
	}
	if slot, ok := in.runtimeIndex[rt]; ok {
		return in.Intern(Type{Kind: KindRuntime, Payload: slot})
	}
	slot, err := safecast.Conv[uint32](len(in.runtimes))
	if err != nil {
		panic(fmt.Errorf("runtime slot overflow: %w", err))
	}
	in.runtimes = append(in.runtimes, rt)
	in.runtimeIndex[rt] = slot
	return in.Intern(Type{Kind: KindRuntime, Payload: slot})
}

// RuntimeType returns the reflect.Type behind a KindRuntime descriptor.
func (in *Interner) RuntimeType(id TypeID) (reflect.Type, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindRuntime {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.runtimes) {
		return nil, false
	}
	return in.runtimes[tt.Payload], true
}

// RegisterOrigin interns a bare-origin descriptor for a registry slot.
func (in *Interner) RegisterOrigin(slot uint32) TypeID {
	return in.Intern(Type{Kind: KindOrigin, Payload: slot})
}

// OriginSlot returns the registry slot behind a KindOrigin descriptor.
func (in *Interner) OriginSlot(id TypeID) (uint32, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindOrigin {
		return 0, false
	}
	return tt.Payload, true
}

// RegisterTuple deduplicates an ordered argument tuple and returns its slot.
// Equal tuples always share a slot, so applied forms built from equal
// arguments intern to equal TypeIDs.
func (in *Interner) RegisterTuple(elems []TypeID) uint32 {
	key := tupleKey(elems)
	if slot, ok := in.tupleIndex[key]; ok {
		return slot
	}
	slot, err := safecast.Conv[uint32](len(in.tuples))
	if err != nil {
		panic(fmt.Errorf("tuple slot overflow: %w", err))
	}
	stored := make([]TypeID, len(elems))
	copy(stored, elems)
	in.tuples = append(in.tuples, stored)
	in.tupleIndex[key] = slot
	return slot
}

// TupleElems returns the stored elements for a tuple slot.
// The returned slice is shared; callers must not mutate it.
func (in *Interner) TupleElems(slot uint32) []TypeID {
	if slot == 0 || int(slot) >= len(in.tuples) {
		return nil
	}
	return in.tuples[slot]
}

func tupleKey(elems []TypeID) string {
	buf := make([]byte, 4*len(elems))
	for i, id := range elems {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(id))
	}
	return string(buf)
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}
