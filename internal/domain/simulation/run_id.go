package simulation

import (
	"fmt"

	"github.com/google/uuid"
)

// RunID identifies one completed simulation run
type RunID struct {
	value string
}

// NewRunID generates a fresh identifier
func NewRunID() RunID {
	return RunID{value: uuid.New().String()}
}

// ParseRunID accepts a full UUID string
func ParseRunID(id string) (RunID, error) {
	if id == "" {
		return RunID{}, fmt.Errorf("run_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return RunID{}, fmt.Errorf("invalid run_id format: %w", err)
	}
	return RunID{value: id}, nil
}

// MustParseRunID panics on a malformed id. Only use it for ids read back
// from storage.
func MustParseRunID(id string) RunID {
	rid, err := ParseRunID(id)
	if err != nil {
		panic(err)
	}
	return rid
}

func (r RunID) String() string { return r.value }

// Short is the first eight characters, enough for tables and directory names
func (r RunID) Short() string {
	if len(r.value) < 8 {
		return r.value
	}
	return r.value[:8]
}

func (r RunID) IsZero() bool { return r.value == "" }
