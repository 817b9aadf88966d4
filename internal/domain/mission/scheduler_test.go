package mission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
)

// newTestScheduler builds a factory that makes 1000 m2 of collector a day and
// finishes a mass driver every buildDays.
func newTestScheduler(t *testing.T, phases mission.Phases, buildDays, cadenceCap float64) *mission.Scheduler {
	t.Helper()

	pv, err := manufacturing.NewLine("pv_line", manufacturing.RolePhotovoltaic, 100, 1000, manufacturing.UnitM2, nil)
	require.NoError(t, err)

	factory, err := manufacturing.NewFactory(manufacturing.FactoryConfig{
		Lines: []*manufacturing.Line{pv},
		Replication: manufacturing.ReplicationConfig{
			FactoryKitMassKg:     1,
			ReplicationFactor:    1,
			ReplicationCycleDays: 30,
		},
		CollectorArealDensityKgM2: 0.15,
		MassDriverBuildDays:       buildDays,
	})
	require.NoError(t, err)

	primary, err := mission.NewLaunchSystem(mission.MercuryMassDriver, 30, 86400, 4500, nil)
	require.NoError(t, err)

	return mission.NewScheduler(factory, mission.SchedulerConfig{
		Phases:           phases,
		UptimeFraction:   1.0,
		PackageAreaM2:    400,
		CadenceCapPerDay: cadenceCap,
		Primary:          primary,
	})
}

func TestScheduler_PhaseGating(t *testing.T) {
	// Arrange
	phases := mission.Phases{Phase0Days: 3, Phase1Days: 4, Phase2Days: 10}
	scheduler := newTestScheduler(t, phases, 1, 1e9)

	// Act & Assert
	for day := 0; day < 12; day++ {
		res := scheduler.StepDay(day)
		if day < phases.FirstLaunchDay() {
			assert.Zero(t, res.AreaLaunchedM2, "day %d", day)
			for _, ev := range res.Events {
				assert.NotEqual(t, mission.EventLaunch, ev.Type)
			}
		} else {
			assert.Positive(t, res.AreaLaunchedM2, "day %d", day)
		}
	}
}

func TestScheduler_CadenceLimitsLaunchedArea(t *testing.T) {
	// one shot per day per unit, one unit per day of build
	scheduler := newTestScheduler(t, mission.Phases{}, 1, 1e9)

	first := scheduler.StepDay(0)
	second := scheduler.StepDay(1)
	third := scheduler.StepDay(2)

	assert.Equal(t, 1, first.MassDriversOnline)
	assert.InDelta(t, 400, first.AreaLaunchedM2, 1e-9)
	assert.InDelta(t, 800, second.AreaLaunchedM2, 1e-9)
	// production is the binding constraint from here on
	assert.InDelta(t, 1000, third.AreaLaunchedM2, 1e-9)
	assert.LessOrEqual(t, third.AreaLaunchedM2, third.CadenceTotal*400)
}

func TestScheduler_GlobalCadenceCap(t *testing.T) {
	scheduler := newTestScheduler(t, mission.Phases{}, 1, 1)

	for day := 0; day < 10; day++ {
		res := scheduler.StepDay(day)
		assert.LessOrEqual(t, res.CadenceTotal, 1.0)
		assert.LessOrEqual(t, res.AreaLaunchedM2, 400.0+1e-9)
	}
}

func TestScheduler_NoInfrastructureNoLaunch(t *testing.T) {
	scheduler := newTestScheduler(t, mission.Phases{}, 1000, 1e9)

	res := scheduler.StepDay(0)

	assert.Equal(t, 0, res.MassDriversOnline)
	assert.Zero(t, res.AreaLaunchedM2)
	assert.Empty(t, res.Events)
	assert.InDelta(t, 1000, res.CollectorAreaM2, 1e-9)
}

func TestScheduler_WeeklyInfrastructureEvents(t *testing.T) {
	scheduler := newTestScheduler(t, mission.Phases{Phase0Days: 100}, 1, 1e9)

	var infra []mission.Event
	for day := 0; day < 15; day++ {
		for _, ev := range scheduler.StepDay(day).Events {
			if ev.Type == mission.EventInfrastructure {
				infra = append(infra, ev)
			}
		}
	}

	require.Len(t, infra, 3)
	assert.Equal(t, []int{0, 7, 14}, []int{infra[0].Day, infra[1].Day, infra[2].Day})
	assert.Equal(t, 15, infra[2].MassDriversOnline)
}
