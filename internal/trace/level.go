package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff Level = iota // no tracing
	// LevelAdvisory emits only deprecation advisories.
	LevelAdvisory
	// LevelRegistry adds class/handle lifecycle events.
	LevelRegistry
	// LevelQuery adds per-query events (linearizations, subtype checks).
	LevelQuery
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelAdvisory:
		return "advisory"
	case LevelRegistry:
		return "registry"
	case LevelQuery:
		return "query"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "advisory", "ADVISORY":
		return LevelAdvisory, nil
	case "registry", "REGISTRY":
		return LevelRegistry, nil
	case "query", "QUERY":
		return LevelQuery, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|advisory|registry|query)", s)
	}
}

// ShouldEmit returns true if an event of the given kind passes this level.
func (l Level) ShouldEmit(kind Kind) bool {
	switch l {
	case LevelOff:
		return false
	case LevelAdvisory:
		return kind == KindDeprecated
	case LevelRegistry:
		return kind != KindQuery
	case LevelQuery:
		return true
	}
	return false
}
