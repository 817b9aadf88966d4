package simulation

import "fmt"

// ErrRunNotFound is returned when no stored run matches an id
type ErrRunNotFound struct {
	RunID string
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("simulation run not found: %s", e.RunID)
}
