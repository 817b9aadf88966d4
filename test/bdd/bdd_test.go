package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/swarmsim-go/test/bdd/steps"
	"github.com/andrescamacho/swarmsim-go/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application", "features/adapters"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Shared run store steps first so every layer truncates the same tables
	steps.InitializeRunStoreSteps(sc)

	// Domain layer scenarios
	steps.InitializeFactoryScenario(sc)
	steps.InitializeSchedulerScenario(sc)
	steps.InitializeSimulationRunScenario(sc)

	// Application layer scenarios
	steps.InitializeSweepScenario(sc)

	// Adapter layer scenarios
	steps.InitializeRunRepositoryScenario(sc)
}

func TestMain(m *testing.M) {
	// One migrated database for every scenario; each scenario truncates it
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}
