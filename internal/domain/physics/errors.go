package physics

import "fmt"

// ErrNonPositiveEmissivity indicates a thermal balance was requested for a
// surface that cannot radiate.
type ErrNonPositiveEmissivity struct {
	Emissivity float64
}

func (e *ErrNonPositiveEmissivity) Error() string {
	return fmt.Sprintf("emissivity must be > 0 (got %g)", e.Emissivity)
}
