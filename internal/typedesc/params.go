package typedesc

import (
	"fmt"

	"fortio.org/safecast"
)

// ParamInfo stores metadata about a declared generic parameter.
type ParamInfo struct {
	Name     string
	Variance Variance
	Variadic bool
}

// RegisterParam allocates a new declared-parameter descriptor.
// Every call yields a fresh identity: two parameters named "T" declared
// separately are distinct, as they are in the host source.
func (in *Interner) RegisterParam(name string, variance Variance, variadic bool) TypeID {
	slot := in.appendParamInfo(ParamInfo{
		Name:     name,
		Variance: variance,
		Variadic: variadic,
	})
	return in.internRaw(Type{Kind: KindParam, Payload: slot})
}

// ParamInfo returns metadata for the provided parameter descriptor.
func (in *Interner) ParamInfo(id TypeID) (*ParamInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindParam {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.params) {
		return nil, false
	}
	info := in.params[tt.Payload]
	return &info, true
}

func (in *Interner) appendParamInfo(info ParamInfo) uint32 {
	in.params = append(in.params, info)
	slot, err := safecast.Conv[uint32](len(in.params) - 1)
	if err != nil {
		panic(fmt.Errorf("param slot overflow: %w", err))
	}
	return slot
}
