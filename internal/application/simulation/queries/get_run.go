package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

// GetRunQuery represents a query to load one stored run
type GetRunQuery struct {
	RunID string
}

// GetRunResponse carries the run with its time series and events
type GetRunResponse struct {
	Run *simulation.Run
}

// GetRunHandler handles the GetRun query
type GetRunHandler struct {
	runRepo simulation.RunRepository
}

// NewGetRunHandler creates a new GetRunHandler
func NewGetRunHandler(runRepo simulation.RunRepository) *GetRunHandler {
	return &GetRunHandler{runRepo: runRepo}
}

// Handle executes the GetRun query
func (h *GetRunHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetRunQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRunQuery")
	}

	id, err := simulation.ParseRunID(query.RunID)
	if err != nil {
		return nil, err
	}

	run, err := h.runRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GetRunResponse{Run: run}, nil
}
