package logging

import (
	"github.com/google/uuid"
)

// NewRunID returns a fresh identifier for one CLI invocation.
func NewRunID() string {
	return uuid.NewString()
}
