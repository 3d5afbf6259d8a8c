package trace

import (
	"sync/atomic"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindArm marks a class being registered as a runtime generic.
	KindArm Kind = iota + 1
	// KindIntern marks creation of a new parametrization handle.
	KindIntern
	// KindEvict marks a handle being dropped from the bounded cache.
	KindEvict
	// KindPatch marks a scoped external-type patch being applied.
	KindPatch
	// KindRestore marks a scoped patch being unwound.
	KindRestore
	// KindDeprecated marks usage of a deprecated API alias.
	KindDeprecated
	// KindQuery marks a read-only query (parents, mro, subtype check).
	KindQuery
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindArm:
		return "arm"
	case KindIntern:
		return "intern"
	case KindEvict:
		return "evict"
	case KindPatch:
		return "patch"
	case KindRestore:
		return "restore"
	case KindDeprecated:
		return "deprecated"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time   time.Time // wall-clock timestamp
	Seq    uint64    // global sequence number (monotonic)
	Kind   Kind      // event kind
	Name   string    // subject, e.g. "Bar" or "Bar[int]"
	Detail string    // optional detail message
}

var seqCounter atomic.Uint64

// NextSeq returns the next global sequence number.
func NextSeq() uint64 {
	return seqCounter.Add(1)
}

// Point builds an event stamped with the current time.
func Point(kind Kind, name, detail string) Event {
	return Event{
		Time:   time.Now(),
		Kind:   kind,
		Name:   name,
		Detail: detail,
	}
}
