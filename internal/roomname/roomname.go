// Package roomname generates room names for callers that supply none.
package roomname

import "github.com/google/uuid"

// New returns a random version 4 UUID in canonical hyphenated form.
func New() string {
	return uuid.NewString()
}
