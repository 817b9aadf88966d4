package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
)

type schedulerContext struct {
	pvThroughput float64
	packageArea  float64
	cooldownS    float64
	buildDays    float64
	cadenceCap   float64
	phases       mission.Phases
	results      []mission.DayResult
}

func (c *schedulerContext) reset() {
	c.pvThroughput = 0
	c.packageArea = 0
	c.cooldownS = 0
	c.buildDays = 0
	c.cadenceCap = math.Inf(1)
	c.phases = mission.Phases{}
	c.results = nil
}

func InitializeSchedulerScenario(ctx *godog.ScenarioContext) {
	c := &schedulerContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a production line making ([\d.]+) square metres of collector a day$`, c.aProductionLineMaking)
	ctx.Step(`^launch packages of ([\d.]+) square metres$`, c.launchPackagesOf)
	ctx.Step(`^a mass driver firing once every ([\d.]+) seconds$`, c.aMassDriverFiringEvery)
	ctx.Step(`^mission phases of (\d+), (\d+) and (\d+) days$`, c.missionPhasesOf)
	ctx.Step(`^a new mass driver finished every ([\d.]+) days?$`, c.aNewMassDriverFinishedEvery)
	ctx.Step(`^a cadence cap of ([\d.]+) launch(?:es)? per day$`, c.aCadenceCapOf)

	// When steps
	ctx.Step(`^the scheduler runs for (\d+) days$`, c.theSchedulerRunsFor)

	// Then steps
	ctx.Step(`^nothing is launched before day (\d+)$`, c.nothingIsLaunchedBeforeDay)
	ctx.Step(`^area is launched every day from day (\d+)$`, c.areaIsLaunchedEveryDayFrom)
	ctx.Step(`^no launch event happens before day (\d+)$`, c.noLaunchEventHappensBeforeDay)
	ctx.Step(`^the scheduler reports:$`, c.theSchedulerReports)
	ctx.Step(`^no day launches more than ([\d.]+) square metres$`, c.noDayLaunchesMoreThan)
	ctx.Step(`^the scheduler recorded no events$`, c.theSchedulerRecordedNoEvents)
	ctx.Step(`^infrastructure events are recorded on days "([^"]*)"$`, c.infrastructureEventsAreRecordedOnDays)
	ctx.Step(`^the last infrastructure event reports (\d+) mass drivers online$`, c.theLastInfrastructureEventReports)
}

func (c *schedulerContext) aProductionLineMaking(m2 float64) error {
	c.pvThroughput = m2
	return nil
}

func (c *schedulerContext) launchPackagesOf(m2 float64) error {
	c.packageArea = m2
	return nil
}

func (c *schedulerContext) aMassDriverFiringEvery(seconds float64) error {
	c.cooldownS = seconds
	return nil
}

func (c *schedulerContext) missionPhasesOf(phase0, phase1, phase2 int) error {
	phases, err := mission.NewPhases(phase0, phase1, phase2)
	if err != nil {
		return err
	}
	c.phases = phases
	return nil
}

func (c *schedulerContext) aNewMassDriverFinishedEvery(days float64) error {
	c.buildDays = days
	return nil
}

func (c *schedulerContext) aCadenceCapOf(perDay float64) error {
	c.cadenceCap = perDay
	return nil
}

func (c *schedulerContext) buildScheduler() (*mission.Scheduler, error) {
	pv, err := manufacturing.NewLine("pv_line", manufacturing.RolePhotovoltaic, 100, c.pvThroughput, manufacturing.UnitM2, nil)
	if err != nil {
		return nil, err
	}

	factory, err := manufacturing.NewFactory(manufacturing.FactoryConfig{
		Lines: []*manufacturing.Line{pv},
		Replication: manufacturing.ReplicationConfig{
			FactoryKitMassKg:     1,
			ReplicationFactor:    1,
			ReplicationCycleDays: 30,
		},
		CollectorArealDensityKgM2: 0.15,
		MassDriverBuildDays:       c.buildDays,
	})
	if err != nil {
		return nil, err
	}

	primary, err := mission.NewLaunchSystem(mission.MercuryMassDriver, 30, c.cooldownS, 4500, nil)
	if err != nil {
		return nil, err
	}

	return mission.NewScheduler(factory, mission.SchedulerConfig{
		Phases:           c.phases,
		UptimeFraction:   1.0,
		PackageAreaM2:    c.packageArea,
		CadenceCapPerDay: c.cadenceCap,
		Primary:          primary,
	}), nil
}

func (c *schedulerContext) theSchedulerRunsFor(days int) error {
	scheduler, err := c.buildScheduler()
	if err != nil {
		return fmt.Errorf("failed to build scheduler: %w", err)
	}
	for day := 0; day < days; day++ {
		c.results = append(c.results, scheduler.StepDay(day))
	}
	return nil
}

func (c *schedulerContext) nothingIsLaunchedBeforeDay(day int) error {
	for _, res := range c.results {
		if res.Day < day && res.AreaLaunchedM2 != 0 {
			return fmt.Errorf("day %d launched %g m2", res.Day, res.AreaLaunchedM2)
		}
	}
	return nil
}

func (c *schedulerContext) areaIsLaunchedEveryDayFrom(day int) error {
	for _, res := range c.results {
		if res.Day >= day && res.AreaLaunchedM2 <= 0 {
			return fmt.Errorf("day %d launched nothing", res.Day)
		}
	}
	return nil
}

func (c *schedulerContext) noLaunchEventHappensBeforeDay(day int) error {
	for _, res := range c.results {
		for _, ev := range res.Events {
			if ev.Type == mission.EventLaunch && ev.Day < day {
				return fmt.Errorf("unexpected launch event on day %d", ev.Day)
			}
		}
	}
	return nil
}

func (c *schedulerContext) theSchedulerReports(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		day, err := getIntCell(table, row, "day")
		if err != nil {
			return err
		}
		launched, err := getFloatCell(table, row, "launched_m2")
		if err != nil {
			return err
		}
		online, err := getIntCell(table, row, "online")
		if err != nil {
			return err
		}
		if day < 0 || day >= len(c.results) {
			return fmt.Errorf("day %d was not simulated", day)
		}

		res := c.results[day]
		if !approxEqual(launched, res.AreaLaunchedM2, 1e-9) {
			return fmt.Errorf("day %d: expected %g m2 launched, got %g", day, launched, res.AreaLaunchedM2)
		}
		if res.MassDriversOnline != online {
			return fmt.Errorf("day %d: expected %d mass drivers online, got %d", day, online, res.MassDriversOnline)
		}
		if res.AreaLaunchedM2 > res.CadenceTotal*c.packageArea+1e-9 {
			return fmt.Errorf("day %d: launched %g m2 beyond cadence %g", day, res.AreaLaunchedM2, res.CadenceTotal)
		}
	}
	return nil
}

func (c *schedulerContext) noDayLaunchesMoreThan(m2 float64) error {
	for _, res := range c.results {
		if res.AreaLaunchedM2 > m2+1e-9 {
			return fmt.Errorf("day %d launched %g m2, above %g", res.Day, res.AreaLaunchedM2, m2)
		}
	}
	return nil
}

func (c *schedulerContext) theSchedulerRecordedNoEvents() error {
	for _, res := range c.results {
		if len(res.Events) > 0 {
			return fmt.Errorf("day %d recorded %d events", res.Day, len(res.Events))
		}
	}
	return nil
}

func (c *schedulerContext) infrastructureEvents() []mission.Event {
	var events []mission.Event
	for _, res := range c.results {
		for _, ev := range res.Events {
			if ev.Type == mission.EventInfrastructure {
				events = append(events, ev)
			}
		}
	}
	return events
}

func (c *schedulerContext) infrastructureEventsAreRecordedOnDays(raw string) error {
	want, err := parseDayList(raw)
	if err != nil {
		return err
	}
	var got []int
	for _, ev := range c.infrastructureEvents() {
		got = append(got, ev.Day)
	}
	if fmt.Sprint(want) != fmt.Sprint(got) {
		return fmt.Errorf("expected infrastructure events on days %v, got %v", want, got)
	}
	return nil
}

func (c *schedulerContext) theLastInfrastructureEventReports(online int) error {
	events := c.infrastructureEvents()
	if len(events) == 0 {
		return fmt.Errorf("no infrastructure events recorded")
	}
	if got := events[len(events)-1].MassDriversOnline; got != online {
		return fmt.Errorf("expected %d mass drivers online, got %d", online, got)
	}
	return nil
}
