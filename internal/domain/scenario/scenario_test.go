package scenario_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/domain/scenario"
)

func ptr[T any](v T) *T { return &v }

func minimalScenario() scenario.Scenario {
	return scenario.Scenario{
		Name: "minimal",
		Factories: scenario.FactoriesConfig{
			Nodes: []scenario.NodeConfig{
				{Name: "pv_line", KW: 100, ThroughputM2PerDay: ptr(1000.0)},
			},
			Replication: &scenario.ReplicationConfig{
				FactoryKitMassKg:     1e5,
				ReplicationFactor:    2,
				ReplicationCycleDays: 180,
			},
		},
	}
}

func TestWithDefaults_FillsEveryAbsentValue(t *testing.T) {
	// Act
	sc := minimalScenario().WithDefaults()

	// Assert
	assert.Equal(t, scenario.DefaultHorizonYears, *sc.HorizonYears)
	assert.Equal(t, 365, *sc.Phases.Phase0Days)
	assert.Equal(t, 1095, *sc.Phases.Phase1Days)
	assert.Equal(t, 7665, *sc.Phases.Phase2Days)
	assert.Equal(t, 0.85, *sc.Production.UptimeFraction)
	assert.Equal(t, 0.85, *sc.Production.LearningCurveB)
	assert.Equal(t, []float64{0.35, 0.45}, sc.LaunchStrategy.TargetARangeAU)
	assert.Equal(t, 1e9, *sc.LaunchStrategy.CadencePerDay)
	assert.Equal(t, 1.0, *sc.Transport.FleetPowerMW)
	assert.Equal(t, 1e4, *sc.Transport.AreaPerMWPerDay)
	assert.InDelta(t, 0.85*0.97*0.85*0.92, sc.Beaming.Chain(), 1e-12)
	require.Len(t, sc.Collectors.CollectorTypes, 1)
	assert.Equal(t, 0.25, *sc.Collectors.DefaultCollector().Efficiency1AU)
	assert.Equal(t, 5000.0, *sc.Collectors.DefaultCollector().AreaM2)
	assert.Equal(t, 1e5, *sc.MercurySite.RadiatorAreaM2)
	assert.Equal(t, 120.0, *sc.Vehicles.Launchers.MercuryMassDriver.CooldownS)
	assert.Equal(t, 120.0, *sc.Factories.MassDriverBuild.DurationDays)
	assert.Equal(t, 1.0, *sc.Targets.OpticalDepthMax)
	assert.True(t, math.IsInf(sc.MaxGrowthMultiplier(), 1))
	assert.NoError(t, sc.Validate())
}

func TestWithDefaults_KeepsExplicitZeroes(t *testing.T) {
	base := minimalScenario()
	base.Phases.Phase0Days = ptr(0)
	base.Production.LearningCurveB = ptr(0.0)

	sc := base.WithDefaults()

	assert.Equal(t, 0, *sc.Phases.Phase0Days)
	assert.Equal(t, 0.0, *sc.Production.LearningCurveB)
}

func TestHorizon_DefaultsOnlyWhenAbsent(t *testing.T) {
	absent := minimalScenario()
	explicit := minimalScenario()
	explicit.HorizonYears = ptr(0)

	assert.Equal(t, scenario.DefaultHorizonYears, absent.Horizon())
	assert.Equal(t, 0, explicit.Horizon())
	assert.Equal(t, 0, *explicit.WithDefaults().HorizonYears)
}

func TestWithDefaults_DoesNotMutateCaller(t *testing.T) {
	base := minimalScenario()
	base.Collectors.CollectorTypes = []scenario.CollectorType{{Name: "thin_film"}}

	_ = base.WithDefaults()

	assert.Nil(t, base.Collectors.CollectorTypes[0].Efficiency1AU)
	assert.Nil(t, base.Production.UptimeFraction)
}

func TestWithDefaults_FleetPowerFallsBackToTug(t *testing.T) {
	base := minimalScenario()
	base.Vehicles.Tugs.ElecTug.FleetPowerMW = ptr(7.5)

	sc := base.WithDefaults()

	assert.Equal(t, 7.5, *sc.Transport.FleetPowerMW)
}

func TestValidate_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*scenario.Scenario)
		field  string
	}{
		{"missing replication", func(s *scenario.Scenario) { s.Factories.Replication = nil }, "factories.replication"},
		{"zero horizon", func(s *scenario.Scenario) { s.HorizonYears = ptr(0) }, "horizon_years"},
		{"negative horizon", func(s *scenario.Scenario) { s.HorizonYears = ptr(-3) }, "horizon_years"},
		{"zero cycle", func(s *scenario.Scenario) { s.Factories.Replication.ReplicationCycleDays = 0 }, "factories.replication.replication_cycle_days"},
		{"infinite cycle", func(s *scenario.Scenario) {
			s.Factories.Replication.ReplicationCycleDays = math.Inf(1)
		}, "factories.replication.replication_cycle_days"},
		{"no lines", func(s *scenario.Scenario) { s.Factories.Nodes = nil }, "factories.nodes"},
		{"duplicate lines", func(s *scenario.Scenario) {
			s.Factories.Nodes = append(s.Factories.Nodes, scenario.NodeConfig{Name: "pv_line"})
		}, "factories.nodes"},
		{"zero cooldown", func(s *scenario.Scenario) {
			s.Vehicles.Launchers.MercuryMassDriver.CooldownS = ptr(0.0)
		}, "vehicles.launchers.mercury_mass_driver.cooldown_s"},
		{"zero emissivity", func(s *scenario.Scenario) {
			s.Collectors.CollectorTypes = []scenario.CollectorType{{Emissivity: ptr(0.0)}}
		}, "collectors.collector_types"},
		{"inverted band", func(s *scenario.Scenario) {
			s.LaunchStrategy.TargetBandsAU = [][]float64{{0.5, 0.3}}
		}, "launch_strategy.target_bands_AU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := minimalScenario()
			tt.mutate(&base)

			err := base.WithDefaults().Validate()

			var cfgErr *scenario.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestBands(t *testing.T) {
	single := minimalScenario().WithDefaults()
	assert.Equal(t, [][2]float64{{0.35, 0.45}}, single.Bands())

	multi := minimalScenario()
	multi.LaunchStrategy.TargetBandsAU = [][]float64{{0.3, 0.4}, {0.6, 0.8}}
	assert.Equal(t, [][2]float64{{0.3, 0.4}, {0.6, 0.8}}, multi.WithDefaults().Bands())
}
