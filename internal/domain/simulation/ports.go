package simulation

import "context"

// RunRepository stores completed runs. Runs are written whole or not at all.
type RunRepository interface {
	Save(ctx context.Context, run *Run) error

	// FindByID loads a run including its time series and events
	FindByID(ctx context.Context, id RunID) (*Run, error)

	// List returns runs newest first with summaries only
	List(ctx context.Context, opts ListOptions) ([]*Run, error)
}

// ListOptions filters and pages List
type ListOptions struct {
	ScenarioName string
	Limit        int
	Offset       int
}

// DefaultListOptions returns the first page of all runs
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20}
}
