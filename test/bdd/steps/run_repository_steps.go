package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/persistence"
	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

type runRepositoryContext struct {
	repo   *persistence.GormRunRepository
	run    *simulation.Run
	loaded *simulation.Run
	listed []*simulation.Run
	err    error
}

func (c *runRepositoryContext) reset() {
	c.repo = nil
	c.run = nil
	c.loaded = nil
	c.listed = nil
	c.err = nil
}

func InitializeRunRepositoryScenario(ctx *godog.ScenarioContext) {
	c := &runRepositoryContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a run repository with a batch size of (\d+)$`, c.aRunRepositoryWithBatchSize)
	ctx.Step(`^a completed run of scenario "([^"]*)" with (\d+) days and (\d+) events$`, c.aCompletedRunOfScenario)
	ctx.Step(`^saved runs:$`, c.savedRuns)

	// When steps
	ctx.Step(`^I save the run$`, c.iSaveTheRun)
	ctx.Step(`^I load the run by its id$`, c.iLoadTheRunByItsID)
	ctx.Step(`^I load a run with a random id$`, c.iLoadARunWithARandomID)
	ctx.Step(`^I list runs for scenario "([^"]*)"$`, c.iListRunsForScenario)

	// Then steps
	ctx.Step(`^the loaded run has (\d+) days and (\d+) events$`, c.theLoadedRunHasDaysAndEvents)
	ctx.Step(`^the loaded run matches the saved summary$`, c.theLoadedRunMatchesTheSavedSummary)
	ctx.Step(`^the load fails with a run not found error$`, c.theLoadFailsWithRunNotFound)
	ctx.Step(`^the listed runs were created at "([^"]*)"$`, c.theListedRunsWereCreatedAt)
	ctx.Step(`^the listed runs carry no time series$`, c.theListedRunsCarryNoTimeSeries)
}

func (c *runRepositoryContext) aRunRepositoryWithBatchSize(batch int) error {
	if sharedRunStore.db == nil {
		return fmt.Errorf("run store not initialized")
	}
	c.repo = persistence.NewGormRunRepository(sharedRunStore.db, batch)
	return nil
}

// newStoredRun builds a run with a linear area ramp across two bands
func newStoredRun(scenarioName string, createdAt time.Time, days, events int) *simulation.Run {
	timeseries := make([]simulation.DayRecord, days)
	for d := range timeseries {
		remaining := 1e6 - float64(d)*10
		timeseries[d] = simulation.DayRecord{
			Day:                 d,
			Phase:               mission.PhaseExpansion,
			CollectorAreaM2:     50,
			LaunchedM2:          50,
			TransportedM2:       50,
			CumAreaM2:           float64(d+1) * 50,
			PowerGW:             float64(d+1) * 1e-5,
			MassDriversOnline:   1,
			CadenceTotal:        1,
			ResourceRemainingKg: &remaining,
			UsedMassKg:          10,
			GrowthMultiplier:    1,
			BandAreaM2:          []float64{float64(d+1) * 25, float64(d+1) * 25},
			BandOpticalDepth:    []float64{1e-10, 1e-10},
		}
	}

	evs := make([]mission.Event, events)
	for i := range evs {
		evs[i] = mission.Event{Day: i, Type: mission.EventLaunch, AreaM2: 50, System: mission.MercuryMassDriver}
	}

	years := 0.25
	results := &simulation.Results{
		Timeseries: timeseries,
		Events:     evs,
		Summary: simulation.Summary{
			YearsToTarget:     &years,
			TotalAreaM2:       float64(days) * 50,
			DeliveredPowerGW:  float64(days) * 1e-5,
			MassDriversOnline: 1,
		},
		Parameters: simulation.Provenance{
			Docs:   map[string]string{"seed": "Random seed"},
			Values: map[string]interface{}{"seed": 42.0},
		},
	}
	return simulation.NewRun(scenarioName, 42, 1, createdAt, results)
}

func (c *runRepositoryContext) aCompletedRunOfScenario(name string, days, events int) error {
	c.run = newStoredRun(name, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), days, events)
	return nil
}

func (c *runRepositoryContext) savedRuns(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		createdAt, err := time.Parse(time.RFC3339, getCellValue(table, row, "created_at"))
		if err != nil {
			return err
		}
		run := newStoredRun(getCellValue(table, row, "scenario"), createdAt, 2, 1)
		if err := c.repo.Save(context.Background(), run); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
	}
	return nil
}

func (c *runRepositoryContext) iSaveTheRun() error {
	return c.repo.Save(context.Background(), c.run)
}

func (c *runRepositoryContext) iLoadTheRunByItsID() error {
	c.loaded, c.err = c.repo.FindByID(context.Background(), c.run.ID)
	return nil
}

func (c *runRepositoryContext) iLoadARunWithARandomID() error {
	c.loaded, c.err = c.repo.FindByID(context.Background(), simulation.NewRunID())
	return nil
}

func (c *runRepositoryContext) iListRunsForScenario(name string) error {
	opts := simulation.DefaultListOptions()
	opts.ScenarioName = name
	c.listed, c.err = c.repo.List(context.Background(), opts)
	return c.err
}

func (c *runRepositoryContext) theLoadedRunHasDaysAndEvents(days, events int) error {
	if c.err != nil {
		return fmt.Errorf("load failed: %w", c.err)
	}
	if got := len(c.loaded.Results.Timeseries); got != days {
		return fmt.Errorf("expected %d days, got %d", days, got)
	}
	if got := len(c.loaded.Results.Events); got != events {
		return fmt.Errorf("expected %d events, got %d", events, got)
	}
	for i, rec := range c.loaded.Results.Timeseries {
		if !reflect.DeepEqual(rec, c.run.Results.Timeseries[i]) {
			return fmt.Errorf("day %d differs after loading", i)
		}
	}
	return nil
}

func (c *runRepositoryContext) theLoadedRunMatchesTheSavedSummary() error {
	if c.err != nil {
		return fmt.Errorf("load failed: %w", c.err)
	}
	if c.loaded.ID != c.run.ID || c.loaded.ScenarioName != c.run.ScenarioName {
		return fmt.Errorf("loaded run %s/%s does not match saved %s/%s",
			c.loaded.ID, c.loaded.ScenarioName, c.run.ID, c.run.ScenarioName)
	}
	if !reflect.DeepEqual(c.loaded.Results.Summary, c.run.Results.Summary) {
		return fmt.Errorf("summary differs after loading")
	}
	return nil
}

func (c *runRepositoryContext) theLoadFailsWithRunNotFound() error {
	var notFound *simulation.ErrRunNotFound
	if !errors.As(c.err, &notFound) {
		return fmt.Errorf("expected a run not found error, got %v", c.err)
	}
	return nil
}

func (c *runRepositoryContext) theListedRunsWereCreatedAt(raw string) error {
	parts := strings.Split(raw, ",")
	if len(c.listed) != len(parts) {
		return fmt.Errorf("expected %d runs, got %d", len(parts), len(c.listed))
	}
	for i, part := range parts {
		want, err := time.Parse(time.RFC3339, strings.TrimSpace(part))
		if err != nil {
			return err
		}
		if !c.listed[i].CreatedAt.Equal(want) {
			return fmt.Errorf("run %d: expected created at %s, got %s", i, want, c.listed[i].CreatedAt)
		}
	}
	return nil
}

func (c *runRepositoryContext) theListedRunsCarryNoTimeSeries() error {
	for _, run := range c.listed {
		if run.Results != nil && len(run.Results.Timeseries) > 0 {
			return fmt.Errorf("run %s was listed with its time series", run.ID)
		}
	}
	return nil
}
