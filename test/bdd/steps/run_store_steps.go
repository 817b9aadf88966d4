package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/persistence"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/test/helpers"
)

// runStore is shared by every scenario that touches persisted runs so the
// application and adapter steps observe the same tables.
type runStore struct {
	db   *gorm.DB
	repo simulation.RunRepository
}

var sharedRunStore = &runStore{}

func InitializeRunStoreSteps(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		sharedRunStore.db = nil
		sharedRunStore.repo = nil
		return ctx, nil
	})

	ctx.Step(`^a clean run store$`, sharedRunStore.aCleanRunStore)
	ctx.Step(`^the run store lists (\d+) runs$`, sharedRunStore.theRunStoreListsRuns)
}

func (s *runStore) aCleanRunStore() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	s.db = helpers.SharedTestDB
	s.repo = persistence.NewGormRunRepository(s.db, 0)
	return nil
}

func (s *runStore) theRunStoreListsRuns(n int) error {
	if s.repo == nil {
		return fmt.Errorf("run store not initialized")
	}
	runs, err := s.repo.List(context.Background(), simulation.ListOptions{Limit: 1000})
	if err != nil {
		return err
	}
	if len(runs) != n {
		return fmt.Errorf("expected %d stored runs, got %d", n, len(runs))
	}
	return nil
}
