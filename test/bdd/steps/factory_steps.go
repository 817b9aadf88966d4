package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
)

// factoryContext drives a factory one day at a time at full uptime with no
// learning, so the expected numbers are plain arithmetic.
type factoryContext struct {
	cfg      manufacturing.FactoryConfig
	factory  *manufacturing.Factory
	buildErr error
	outputs  []manufacturing.FactoryOutput
}

func (c *factoryContext) reset() {
	c.cfg = manufacturing.FactoryConfig{}
	c.factory = nil
	c.buildErr = nil
	c.outputs = nil
}

func InitializeFactoryScenario(ctx *godog.ScenarioContext) {
	c := &factoryContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a factory with these production lines:$`, c.aFactoryWithTheseProductionLines)
	ctx.Step(`^collectors weighing ([\d.]+) kg per square metre$`, c.collectorsWeighing)
	ctx.Step(`^mass drivers taking ([\d.]+) days to build$`, c.massDriversTakingDaysToBuild)
	ctx.Step(`^the factory replicates by a factor of ([\d.]+) every ([\d.]+) days$`, c.theFactoryReplicates)
	ctx.Step(`^the growth multiplier is capped at ([\d.]+)$`, c.theGrowthMultiplierIsCappedAt)
	ctx.Step(`^a usable resource budget of ([\d.]+) kg$`, c.aUsableResourceBudgetOf)
	ctx.Step(`^an extra "([^"]*)" line with role "([^"]*)"$`, c.anExtraLineWithRole)

	// When steps
	ctx.Step(`^the factory is built$`, c.theFactoryIsBuilt)
	ctx.Step(`^the factory runs for (\d+) days$`, c.theFactoryRunsForDays)

	// Then steps
	ctx.Step(`^the growth multiplier follows:$`, c.theGrowthMultiplierFollows)
	ctx.Step(`^the growth multiplier never drops$`, c.theGrowthMultiplierNeverDrops)
	ctx.Step(`^the factory used ([\d.]+) kg of material on day (\d+)$`, c.theFactoryUsedMaterialOnDay)
	ctx.Step(`^no collector area is produced on day (\d+)$`, c.noCollectorAreaIsProducedOnDay)
	ctx.Step(`^used plus remaining material equals ([\d.]+) kg$`, c.usedPlusRemainingMaterialEquals)
	ctx.Step(`^mass drivers are commissioned on days "([^"]*)"$`, c.massDriversAreCommissionedOnDays)
	ctx.Step(`^the factory has built (\d+) mass drivers$`, c.theFactoryHasBuiltMassDrivers)
	ctx.Step(`^building the factory fails because "([^"]*)" is duplicated$`, c.buildingTheFactoryFailsBecauseDuplicated)
}

func (c *factoryContext) aFactoryWithTheseProductionLines(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		name := getCellValue(table, row, "name")
		role, err := manufacturing.ParseLineRole(getCellValue(table, row, "role"), name)
		if err != nil {
			return err
		}
		kw, err := getFloatCell(table, row, "kw")
		if err != nil {
			return err
		}
		throughput, err := getFloatCell(table, row, "throughput")
		if err != nil {
			return err
		}
		if err := c.addLine(name, role, kw, throughput); err != nil {
			return err
		}
	}
	return nil
}

func (c *factoryContext) addLine(name string, role manufacturing.LineRole, kw, throughput float64) error {
	unit := manufacturing.UnitKg
	if role == manufacturing.RolePhotovoltaic || role == manufacturing.RoleReflector {
		unit = manufacturing.UnitM2
	}
	line, err := manufacturing.NewLine(name, role, kw, throughput, unit, nil)
	if err != nil {
		return err
	}
	c.cfg.Lines = append(c.cfg.Lines, line)
	return nil
}

func (c *factoryContext) collectorsWeighing(kgPerM2 float64) error {
	c.cfg.CollectorArealDensityKgM2 = kgPerM2
	return nil
}

func (c *factoryContext) massDriversTakingDaysToBuild(days float64) error {
	c.cfg.MassDriverBuildDays = days
	return nil
}

func (c *factoryContext) theFactoryReplicates(factor float64, cycleDays float64) error {
	c.cfg.Replication = manufacturing.ReplicationConfig{
		FactoryKitMassKg:     1e6,
		ReplicationFactor:    factor,
		ReplicationCycleDays: cycleDays,
	}
	return nil
}

func (c *factoryContext) theGrowthMultiplierIsCappedAt(limit float64) error {
	c.cfg.MaxGrowthMultiplier = limit
	return nil
}

func (c *factoryContext) aUsableResourceBudgetOf(kg float64) error {
	c.cfg.ResourceLimitKg = &kg
	return nil
}

func (c *factoryContext) anExtraLineWithRole(name, role string) error {
	r, err := manufacturing.ParseLineRole(role, name)
	if err != nil {
		return err
	}
	return c.addLine(name, r, 1, 1)
}

func (c *factoryContext) theFactoryIsBuilt() error {
	c.factory, c.buildErr = manufacturing.NewFactory(c.cfg)
	return nil
}

func (c *factoryContext) theFactoryRunsForDays(days int) error {
	if err := c.theFactoryIsBuilt(); err != nil {
		return err
	}
	if c.buildErr != nil {
		return fmt.Errorf("failed to build factory: %w", c.buildErr)
	}
	for day := 1; day <= days; day++ {
		c.outputs = append(c.outputs, c.factory.TickDay(1.0, 0))
	}
	return nil
}

// output returns the result of the given 1-based day
func (c *factoryContext) output(day int) (manufacturing.FactoryOutput, error) {
	if day < 1 || day > len(c.outputs) {
		return manufacturing.FactoryOutput{}, fmt.Errorf("day %d was not simulated (ran %d days)", day, len(c.outputs))
	}
	return c.outputs[day-1], nil
}

func (c *factoryContext) theGrowthMultiplierFollows(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		day, err := getIntCell(table, row, "day")
		if err != nil {
			return err
		}
		want, err := getFloatCell(table, row, "multiplier")
		if err != nil {
			return err
		}
		out, err := c.output(day)
		if err != nil {
			return err
		}
		if out.GrowthMultiplier != want {
			return fmt.Errorf("day %d: expected growth multiplier %g, got %g", day, want, out.GrowthMultiplier)
		}
	}
	return nil
}

func (c *factoryContext) theGrowthMultiplierNeverDrops() error {
	for i := 1; i < len(c.outputs); i++ {
		if c.outputs[i].GrowthMultiplier < c.outputs[i-1].GrowthMultiplier {
			return fmt.Errorf("growth multiplier dropped on day %d: %g -> %g",
				i+1, c.outputs[i-1].GrowthMultiplier, c.outputs[i].GrowthMultiplier)
		}
	}
	return nil
}

func (c *factoryContext) theFactoryUsedMaterialOnDay(kg float64, day int) error {
	out, err := c.output(day)
	if err != nil {
		return err
	}
	if !approxEqual(kg, out.UsedMassKg, 1e-9) {
		return fmt.Errorf("day %d: expected %g kg used, got %g", day, kg, out.UsedMassKg)
	}
	return nil
}

func (c *factoryContext) noCollectorAreaIsProducedOnDay(day int) error {
	out, err := c.output(day)
	if err != nil {
		return err
	}
	if out.CollectorAreaM2 != 0 || out.StructureKg != 0 {
		return fmt.Errorf("day %d: expected no output, got %g m2 and %g kg structure",
			day, out.CollectorAreaM2, out.StructureKg)
	}
	return nil
}

func (c *factoryContext) usedPlusRemainingMaterialEquals(kg float64) error {
	if len(c.outputs) == 0 {
		return fmt.Errorf("factory has not run")
	}
	last := c.outputs[len(c.outputs)-1]
	if last.ResourceRemainingKg == nil {
		return fmt.Errorf("expected a finite resource budget")
	}
	total := c.factory.ResourceUsedKg() + *last.ResourceRemainingKg
	if !approxEqual(kg, total, 1e-6) {
		return fmt.Errorf("expected used plus remaining to be %g kg, got %g", kg, total)
	}
	return nil
}

func (c *factoryContext) massDriversAreCommissionedOnDays(raw string) error {
	want, err := parseDayList(raw)
	if err != nil {
		return err
	}
	var got []int
	for i, out := range c.outputs {
		for n := 0; n < out.MassDriversCommissioned; n++ {
			got = append(got, i+1)
		}
	}
	if fmt.Sprint(want) != fmt.Sprint(got) {
		return fmt.Errorf("expected commissioning on days %v, got %v", want, got)
	}
	return nil
}

func (c *factoryContext) theFactoryHasBuiltMassDrivers(n int) error {
	if got := c.factory.MassDriversBuilt(); got != n {
		return fmt.Errorf("expected %d mass drivers built, got %d", n, got)
	}
	return nil
}

func (c *factoryContext) buildingTheFactoryFailsBecauseDuplicated(name string) error {
	var dup *manufacturing.ErrDuplicateLine
	if !errors.As(c.buildErr, &dup) {
		return fmt.Errorf("expected a duplicate line error, got %v", c.buildErr)
	}
	if dup.Name != name {
		return fmt.Errorf("expected duplicate line %q, got %q", name, dup.Name)
	}
	return nil
}
