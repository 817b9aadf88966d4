package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/persistence"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/database"
)

// runTables must exist before a test touches the run store
var runTables = []interface{}{
	&persistence.SimulationRunModel{},
	&persistence.SimulationDayModel{},
	&persistence.SimulationEventModel{},
}

// NewTestDB opens a private in-memory run store with every run table
// migrated. The connection is closed when the test ends.
func NewTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := database.NewTestConnection()
	require.NoError(tb, err, "open in-memory run store")
	for _, model := range runTables {
		require.True(tb, db.Migrator().HasTable(model), "run table for %T not migrated", model)
	}

	tb.Cleanup(func() {
		if err := database.Close(db); err != nil {
			tb.Errorf("close in-memory run store: %v", err)
		}
	})
	return db
}

// NewTestRunRepository is a run repository over a fresh NewTestDB using the
// default day batch size.
func NewTestRunRepository(tb testing.TB) *persistence.GormRunRepository {
	tb.Helper()
	return persistence.NewGormRunRepository(NewTestDB(tb), 0)
}
