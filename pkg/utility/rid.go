package utility

import (
	"github.com/google/uuid"
)

type RunID = uuid.UUID

// NewRunID returns a time-ordered identifier for a single estimation run.
func NewRunID() RunID {
	return uuid.Must(uuid.NewV7())
}
