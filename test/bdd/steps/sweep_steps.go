package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/application/simulation/commands"
	"github.com/andrescamacho/swarmsim-go/internal/application/simulation/queries"
	"github.com/andrescamacho/swarmsim-go/internal/domain/shared"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
)

type sweepContext struct {
	mediator  common.Mediator
	overrides []string
	response  *commands.RunSweepResponse
	err       error
}

func (c *sweepContext) reset() {
	c.mediator = nil
	c.overrides = nil
	c.response = nil
	c.err = nil
}

func InitializeSweepScenario(ctx *godog.ScenarioContext) {
	c := &sweepContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a simulation mediator using the run store$`, c.aSimulationMediatorUsingTheRunStore)
	ctx.Step(`^sweep overrides:$`, c.sweepOverrides)

	// When steps
	ctx.Step(`^I sweep "([^"]*)" with persistence$`, c.iSweepWithPersistence)
	ctx.Step(`^I sweep "([^"]*)" without persistence$`, c.iSweepWithoutPersistence)

	// Then steps
	ctx.Step(`^the sweep has (\d+) points with values "([^"]*)"$`, c.theSweepHasPointsWithValues)
	ctx.Step(`^each sweep point is labelled with its parameter value$`, c.eachSweepPointIsLabelled)
	ctx.Step(`^listing runs for scenario "([^"]*)" returns (\d+) runs$`, c.listingRunsForScenarioReturns)
	ctx.Step(`^deployed area does not decrease across sweep points$`, c.deployedAreaDoesNotDecrease)
	ctx.Step(`^the sweep fails with "([^"]*)"$`, c.theSweepFailsWith)
}

func (c *sweepContext) aSimulationMediatorUsingTheRunStore() error {
	if sharedRunStore.repo == nil {
		return fmt.Errorf("run store not initialized")
	}

	opts := commands.RunnerOptions{
		Repo:    sharedRunStore.repo,
		Clock:   shared.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Minute),
		Workers: 2,
	}
	m := common.NewMediator()
	if err := common.RegisterHandler[*commands.RunSweepCommand](m, commands.NewRunSweepHandler(config.NewScenarioLoader(), opts)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*queries.ListRunsQuery](m, queries.NewListRunsHandler(sharedRunStore.repo)); err != nil {
		return err
	}
	c.mediator = m
	return nil
}

func (c *sweepContext) sweepOverrides(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		c.overrides = append(c.overrides, getCellValue(table, row, "key")+"="+getCellValue(table, row, "value"))
	}
	return nil
}

func (c *sweepContext) sweep(param string, persist bool) error {
	overrides, err := config.ParseOverrides(c.overrides)
	if err != nil {
		return err
	}
	resp, err := c.mediator.Send(context.Background(), &commands.RunSweepCommand{
		Param:     param,
		Overrides: overrides,
		Persist:   persist,
	})
	c.err = err
	if err == nil {
		c.response = resp.(*commands.RunSweepResponse)
	}
	return nil
}

func (c *sweepContext) iSweepWithPersistence(param string) error {
	return c.sweep(param, true)
}

func (c *sweepContext) iSweepWithoutPersistence(param string) error {
	return c.sweep(param, false)
}

func (c *sweepContext) succeeded() error {
	if c.err != nil {
		return fmt.Errorf("sweep failed: %w", c.err)
	}
	if c.response == nil {
		return fmt.Errorf("sweep has not run")
	}
	return nil
}

func (c *sweepContext) theSweepHasPointsWithValues(n int, raw string) error {
	if err := c.succeeded(); err != nil {
		return err
	}
	if len(c.response.Points) != n {
		return fmt.Errorf("expected %d sweep points, got %d", n, len(c.response.Points))
	}
	for i, part := range strings.Split(raw, ",") {
		want, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return err
		}
		if got := c.response.Points[i].Value; !approxEqual(want, got, 1e-9) {
			return fmt.Errorf("point %d: expected value %g, got %g", i, want, got)
		}
	}
	return nil
}

func (c *sweepContext) eachSweepPointIsLabelled() error {
	if err := c.succeeded(); err != nil {
		return err
	}
	for _, p := range c.response.Points {
		want := fmt.Sprintf("%s=%g", c.response.Key, p.Value)
		if p.Run == nil || p.Run.Label != want {
			return fmt.Errorf("expected sweep point label %q", want)
		}
	}
	return nil
}

func (c *sweepContext) listingRunsForScenarioReturns(name string, n int) error {
	resp, err := c.mediator.Send(context.Background(), &queries.ListRunsQuery{ScenarioName: name})
	if err != nil {
		return err
	}
	if got := len(resp.(*queries.ListRunsResponse).Runs); got != n {
		return fmt.Errorf("expected %d runs for %s, got %d", n, name, got)
	}
	return nil
}

func (c *sweepContext) deployedAreaDoesNotDecrease() error {
	if err := c.succeeded(); err != nil {
		return err
	}
	for i := 1; i < len(c.response.Points); i++ {
		prev := c.response.Points[i-1].Run.Results.Summary.TotalAreaM2
		cur := c.response.Points[i].Run.Results.Summary.TotalAreaM2
		if cur < prev {
			return fmt.Errorf("area fell from %g to %g between sweep points %d and %d", prev, cur, i-1, i)
		}
	}
	return nil
}

func (c *sweepContext) theSweepFailsWith(fragment string) error {
	if c.err == nil {
		return fmt.Errorf("expected the sweep to fail")
	}
	if !strings.Contains(c.err.Error(), fragment) {
		return fmt.Errorf("expected error containing %q, got %v", fragment, c.err)
	}
	return nil
}
