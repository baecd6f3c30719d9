// Package bounds provides the shared out-of-range error used by all
// fixed-size machine components.
package bounds

import "fmt"

// Error is returned when an index into a fixed-size component lies outside
// of its valid range [0, Limit).
type Error struct {
	Component string // name of the accessed component, for example "memory"
	Index     int
	Limit     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s index 0x%X out of range [0, 0x%X)", e.Component, e.Index, e.Limit)
}

// Check returns an *Error if index is not within [0, limit).
func Check(component string, index, limit int) error {
	if index < 0 || index >= limit {
		return &Error{
			Component: component,
			Index:     index,
			Limit:     limit,
		}
	}
	return nil
}
