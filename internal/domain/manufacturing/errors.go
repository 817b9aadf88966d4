package manufacturing

import "fmt"

// ErrInsufficientInventory indicates a caller tried to withdraw more mass
// than an inventory holds. This is a logic defect in the caller, not a
// recoverable condition.
type ErrInsufficientInventory struct {
	Item      string
	Available float64
	Requested float64
}

func (e *ErrInsufficientInventory) Error() string {
	return fmt.Sprintf("insufficient %s: have %g kg, need %g kg", e.Item, e.Available, e.Requested)
}

// ErrDuplicateLine indicates two manufacturing lines share a name
type ErrDuplicateLine struct {
	Name string
}

func (e *ErrDuplicateLine) Error() string {
	return fmt.Sprintf("duplicate manufacturing line: %s", e.Name)
}

// ErrInvalidReplication indicates unusable replication economics
type ErrInvalidReplication struct {
	Field  string
	Reason string
}

func (e *ErrInvalidReplication) Error() string {
	return fmt.Sprintf("invalid replication %s: %s", e.Field, e.Reason)
}
