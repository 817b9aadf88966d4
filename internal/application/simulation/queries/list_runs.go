package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

// ListRunsQuery pages through stored runs, newest first
type ListRunsQuery struct {
	ScenarioName string
	// Limit <= 0 uses the default page size
	Limit  int
	Offset int
}

// ListRunsResponse carries run headers and summaries without time series
type ListRunsResponse struct {
	Runs []*simulation.Run
}

// ListRunsHandler handles the ListRuns query
type ListRunsHandler struct {
	runRepo simulation.RunRepository
}

// NewListRunsHandler creates a new ListRunsHandler
func NewListRunsHandler(runRepo simulation.RunRepository) *ListRunsHandler {
	return &ListRunsHandler{runRepo: runRepo}
}

// Handle executes the ListRuns query
func (h *ListRunsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListRunsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListRunsQuery")
	}
	if query.Offset < 0 {
		return nil, fmt.Errorf("offset cannot be negative")
	}

	opts := simulation.DefaultListOptions()
	opts.ScenarioName = query.ScenarioName
	opts.Offset = query.Offset
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}

	runs, err := h.runRepo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return &ListRunsResponse{Runs: runs}, nil
}
