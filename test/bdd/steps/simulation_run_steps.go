package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
)

// simulationRunContext loads a scenario the way the CLI does and runs the
// engine over it.
type simulationRunContext struct {
	overridePairs []string
	scenarioPath  string
	tempDir       string
	results       []*simulation.Results
}

func (c *simulationRunContext) reset() {
	c.overridePairs = nil
	c.scenarioPath = ""
	c.tempDir = ""
	c.results = nil
}

func InitializeSimulationRunScenario(ctx *godog.ScenarioContext) {
	c := &simulationRunContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if c.tempDir != "" {
			os.RemoveAll(c.tempDir)
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the baseline scenario with overrides:$`, c.theBaselineScenarioWithOverrides)
	ctx.Step(`^the scenario override "([^"]*)" is "([^"]*)"$`, c.theScenarioOverrideIs)
	ctx.Step(`^the scenario file:$`, c.theScenarioFile)

	// When steps
	ctx.Step(`^the simulation runs$`, c.theSimulationRuns)
	ctx.Step(`^the simulation runs twice$`, c.theSimulationRunsTwice)

	// Then steps
	ctx.Step(`^the run has (\d+) daily records$`, c.theRunHasDailyRecords)
	ctx.Step(`^the time series shows no launches before day (\d+)$`, c.theTimeSeriesShowsNoLaunchesBeforeDay)
	ctx.Step(`^every launch event is on or after day (\d+)$`, c.everyLaunchEventIsOnOrAfterDay)
	ctx.Step(`^cumulative deployed area never decreases$`, c.cumulativeDeployedAreaNeverDecreases)
	ctx.Step(`^the time series growth multiplier never decreases$`, c.theTimeSeriesGrowthMultiplierNeverDecreases)
	ctx.Step(`^delivered power is never negative$`, c.deliveredPowerIsNeverNegative)
	ctx.Step(`^daily used mass plus remaining resource equals ([\d.]+) kg$`, c.dailyUsedMassPlusRemainingEquals)
	ctx.Step(`^no day transports more than ([\d.]+) square metres$`, c.noDayTransportsMoreThan)
	ctx.Step(`^the first band holds ([\d.]+) times the area of the second band$`, c.theFirstBandHoldsTimesTheSecond)
	ctx.Step(`^both runs are identical$`, c.bothRunsAreIdentical)
}

func (c *simulationRunContext) theBaselineScenarioWithOverrides(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		c.overridePairs = append(c.overridePairs,
			getCellValue(table, row, "key")+"="+getCellValue(table, row, "value"))
	}
	return nil
}

func (c *simulationRunContext) theScenarioOverrideIs(key, value string) error {
	c.overridePairs = append(c.overridePairs, key+"="+value)
	return nil
}

func (c *simulationRunContext) theScenarioFile(doc *godog.DocString) error {
	dir, err := os.MkdirTemp("", "swarmsim-bdd-*")
	if err != nil {
		return err
	}
	c.tempDir = dir
	c.scenarioPath = filepath.Join(dir, "scenario.yaml")
	return os.WriteFile(c.scenarioPath, []byte(doc.Content), 0o644)
}

func (c *simulationRunContext) runOnce() (*simulation.Results, error) {
	overrides, err := config.ParseOverrides(c.overridePairs)
	if err != nil {
		return nil, err
	}
	sc, err := config.LoadScenario(c.scenarioPath, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	engine, err := simulation.NewEngine(*sc)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	return engine.Run()
}

func (c *simulationRunContext) theSimulationRuns() error {
	results, err := c.runOnce()
	if err != nil {
		return err
	}
	c.results = append(c.results, results)
	return nil
}

func (c *simulationRunContext) theSimulationRunsTwice() error {
	for i := 0; i < 2; i++ {
		if err := c.theSimulationRuns(); err != nil {
			return err
		}
	}
	return nil
}

func (c *simulationRunContext) latest() (*simulation.Results, error) {
	if len(c.results) == 0 {
		return nil, fmt.Errorf("simulation has not run")
	}
	return c.results[len(c.results)-1], nil
}

func (c *simulationRunContext) theRunHasDailyRecords(n int) error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	if len(results.Timeseries) != n {
		return fmt.Errorf("expected %d daily records, got %d", n, len(results.Timeseries))
	}
	for i, rec := range results.Timeseries {
		if rec.Day != i {
			return fmt.Errorf("record %d is labelled day %d", i, rec.Day)
		}
	}
	return nil
}

func (c *simulationRunContext) theTimeSeriesShowsNoLaunchesBeforeDay(day int) error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	for _, rec := range results.Timeseries {
		if rec.Day < day && rec.LaunchedM2 != 0 {
			return fmt.Errorf("day %d launched %g m2", rec.Day, rec.LaunchedM2)
		}
	}
	return nil
}

func (c *simulationRunContext) everyLaunchEventIsOnOrAfterDay(day int) error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	launches := 0
	for _, ev := range results.Events {
		if ev.Type != mission.EventLaunch {
			continue
		}
		launches++
		if ev.Day < day {
			return fmt.Errorf("launch event on day %d", ev.Day)
		}
	}
	if launches == 0 {
		return fmt.Errorf("expected at least one launch event")
	}
	return nil
}

func (c *simulationRunContext) cumulativeDeployedAreaNeverDecreases() error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	for i := 1; i < len(results.Timeseries); i++ {
		prev, rec := results.Timeseries[i-1], results.Timeseries[i]
		if rec.CumAreaM2 < prev.CumAreaM2 {
			return fmt.Errorf("cumulative area fell on day %d: %g -> %g", rec.Day, prev.CumAreaM2, rec.CumAreaM2)
		}
	}
	return nil
}

func (c *simulationRunContext) theTimeSeriesGrowthMultiplierNeverDecreases() error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	prev := 1.0
	for _, rec := range results.Timeseries {
		if rec.GrowthMultiplier < prev {
			return fmt.Errorf("growth multiplier fell on day %d: %g -> %g", rec.Day, prev, rec.GrowthMultiplier)
		}
		prev = rec.GrowthMultiplier
	}
	return nil
}

func (c *simulationRunContext) deliveredPowerIsNeverNegative() error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	for _, rec := range results.Timeseries {
		if rec.PowerGW < 0 {
			return fmt.Errorf("day %d reports %g GW", rec.Day, rec.PowerGW)
		}
	}
	return nil
}

func (c *simulationRunContext) dailyUsedMassPlusRemainingEquals(budget float64) error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	used := 0.0
	for _, rec := range results.Timeseries {
		used += rec.UsedMassKg
		if rec.ResourceRemainingKg == nil {
			return fmt.Errorf("day %d has no remaining resource figure", rec.Day)
		}
		if !approxEqual(budget, used+*rec.ResourceRemainingKg, 1e-6) {
			return fmt.Errorf("day %d: used %g plus remaining %g is not %g",
				rec.Day, used, *rec.ResourceRemainingKg, budget)
		}
	}
	return nil
}

func (c *simulationRunContext) noDayTransportsMoreThan(m2 float64) error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	transported := 0.0
	for _, rec := range results.Timeseries {
		if rec.TransportedM2 > m2+1e-9 {
			return fmt.Errorf("day %d transported %g m2, above %g", rec.Day, rec.TransportedM2, m2)
		}
		if rec.TransportedM2 > rec.LaunchedM2+1e-9 {
			return fmt.Errorf("day %d transported more than it launched", rec.Day)
		}
		transported += rec.TransportedM2
	}
	if transported == 0 {
		return fmt.Errorf("expected some area to be transported")
	}
	return nil
}

func (c *simulationRunContext) theFirstBandHoldsTimesTheSecond(ratio float64) error {
	results, err := c.latest()
	if err != nil {
		return err
	}
	final := results.Final()
	if len(final.BandAreaM2) != 2 {
		return fmt.Errorf("expected 2 bands, got %d", len(final.BandAreaM2))
	}
	if final.BandAreaM2[1] <= 0 {
		return fmt.Errorf("second band holds no area")
	}
	got := final.BandAreaM2[0] / final.BandAreaM2[1]
	if !approxEqual(ratio, got, 1e-9) {
		return fmt.Errorf("expected band ratio %g, got %g", ratio, got)
	}
	return nil
}

func (c *simulationRunContext) bothRunsAreIdentical() error {
	if len(c.results) != 2 {
		return fmt.Errorf("expected 2 runs, got %d", len(c.results))
	}
	first, second := c.results[0], c.results[1]
	if !reflect.DeepEqual(first.Summary, second.Summary) {
		return fmt.Errorf("summaries differ")
	}
	if !reflect.DeepEqual(first.Timeseries, second.Timeseries) {
		return fmt.Errorf("time series differ")
	}
	if !reflect.DeepEqual(first.Events, second.Events) {
		return fmt.Errorf("events differ")
	}
	return nil
}
