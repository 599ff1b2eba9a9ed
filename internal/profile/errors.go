package profile

import "fmt"

// ValidationError reports invalid caller input, such as an empty or
// duplicate profile name. State is never mutated when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
