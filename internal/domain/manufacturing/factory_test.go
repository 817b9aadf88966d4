package manufacturing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
)

func mustLine(t *testing.T, name string, role manufacturing.LineRole, kw, throughput float64) *manufacturing.Line {
	t.Helper()
	line, err := manufacturing.NewLine(name, role, kw, throughput, manufacturing.UnitKg, nil)
	require.NoError(t, err)
	return line
}

func baseFactoryConfig(t *testing.T) manufacturing.FactoryConfig {
	return manufacturing.FactoryConfig{
		Lines: []*manufacturing.Line{
			mustLine(t, "regolith_mining", manufacturing.RoleMining, 1000, 10000),
			mustLine(t, "beneficiation", manufacturing.RoleBeneficiation, 500, 8000),
			mustLine(t, "smelter", manufacturing.RoleSmelting, 2000, 5000),
			mustLine(t, "pv_line", manufacturing.RolePhotovoltaic, 300, 1000),
			mustLine(t, "reflector_line", manufacturing.RoleReflector, 100, 400),
			mustLine(t, "structure_line", manufacturing.RoleStructure, 200, 50),
		},
		Replication: manufacturing.ReplicationConfig{
			FactoryKitMassKg:     1e6,
			ReplicationFactor:    2.0,
			ReplicationCycleDays: 10,
		},
		CollectorArealDensityKgM2: 0.15,
		MassDriverBuildDays:       120,
	}
}

func TestFactory_TickDayRoutesThroughProcessGraph(t *testing.T) {
	// Arrange
	factory, err := manufacturing.NewFactory(baseFactoryConfig(t))
	require.NoError(t, err)

	// Act
	out := factory.TickDay(1.0, 0)

	// Assert
	assert.InDelta(t, 10000, out.OreKg, 1e-9)
	// smelter is throttled by its own throughput, not by refined stock
	assert.InDelta(t, 8000*0.75+5000*0.2, out.RefinedKg, 1e-9)
	assert.InDelta(t, 1000+400*0.5, out.CollectorAreaM2, 1e-9)
	assert.InDelta(t, 50, out.StructureKg, 1e-9)
	assert.InDelta(t, (1000+500+2000+300+100+200)*24.0, out.EnergyKWh, 1e-9)
	assert.InDelta(t, 1200*0.15+50, out.UsedMassKg, 1e-9)
	assert.Nil(t, out.ResourceRemainingKg)
	assert.Equal(t, 1.0, out.LearningFactor)
}

func TestFactory_GrowthCompoundsOnCycleAndRespectsCap(t *testing.T) {
	// Arrange
	cfg := baseFactoryConfig(t)
	cfg.MaxGrowthMultiplier = 5
	factory, err := manufacturing.NewFactory(cfg)
	require.NoError(t, err)

	// Act
	var growth []float64
	for day := 1; day <= 40; day++ {
		growth = append(growth, factory.TickDay(1.0, 0).GrowthMultiplier)
	}

	// Assert
	assert.Equal(t, 1.0, growth[8])
	assert.Equal(t, 2.0, growth[9])
	assert.Equal(t, 4.0, growth[19])
	assert.Equal(t, 5.0, growth[29])
	assert.Equal(t, 5.0, growth[39])
	for i := 1; i < len(growth); i++ {
		assert.GreaterOrEqual(t, growth[i], growth[i-1])
	}
}

func TestFactory_GrowthBound(t *testing.T) {
	cfg := baseFactoryConfig(t)
	factory, err := manufacturing.NewFactory(cfg)
	require.NoError(t, err)

	for day := 1; day <= 365; day++ {
		out := factory.TickDay(0.85, 0.9)
		bound := math.Pow(cfg.Replication.ReplicationFactor, math.Floor(float64(day)/cfg.Replication.ReplicationCycleDays))
		assert.LessOrEqual(t, out.GrowthMultiplier, bound*(1+1e-12))
	}
}

func TestFactory_FractionalCycleReplicatesOnWholeMultiples(t *testing.T) {
	// Arrange
	cfg := baseFactoryConfig(t)
	cfg.Replication.ReplicationCycleDays = 2.5
	factory, err := manufacturing.NewFactory(cfg)
	require.NoError(t, err)

	// Act
	var growth []float64
	for day := 1; day <= 10; day++ {
		growth = append(growth, factory.TickDay(1.0, 0).GrowthMultiplier)
	}

	// Assert
	assert.Equal(t, []float64{1, 1, 1, 1, 2, 2, 2, 2, 2, 4}, growth)
}

func TestFactory_UncappedGrowthStaysFinite(t *testing.T) {
	// Arrange
	cfg := baseFactoryConfig(t)
	cfg.Replication.ReplicationCycleDays = 1
	limit := 1e12
	cfg.ResourceLimitKg = &limit
	factory, err := manufacturing.NewFactory(cfg)
	require.NoError(t, err)

	// Act
	var last manufacturing.FactoryOutput
	for day := 1; day <= 6*365; day++ {
		last = factory.TickDay(1.0, 0)
		require.False(t, math.IsNaN(last.CollectorAreaM2), "day %d area", day)
		require.False(t, math.IsNaN(last.UsedMassKg), "day %d used mass", day)
		require.False(t, math.IsInf(last.EnergyKWh, 0), "day %d energy", day)
	}

	// Assert
	assert.Equal(t, manufacturing.GrowthCeiling, last.GrowthMultiplier)
	assert.Equal(t, 0.0, last.CollectorAreaM2)
	assert.InDelta(t, 0, *last.ResourceRemainingKg, 1e-3)
	assert.InDelta(t, limit, factory.ResourceUsedKg(), 1e-3)
	assert.Positive(t, factory.MassDriversBuilt())
}

func TestFactory_ResourceCapScalesProportionally(t *testing.T) {
	// Arrange
	cfg := baseFactoryConfig(t)
	limit := 270.0
	cfg.ResourceLimitKg = &limit
	factory, err := manufacturing.NewFactory(cfg)
	require.NoError(t, err)

	// Act
	first := factory.TickDay(1.0, 0)
	second := factory.TickDay(1.0, 0)
	third := factory.TickDay(1.0, 0)

	// Assert
	assert.InDelta(t, 230, first.UsedMassKg, 1e-9)
	assert.InDelta(t, 40, *first.ResourceRemainingKg, 1e-9)

	// second day wants 230 kg but only 40 kg remain, scaled to fit exactly
	assert.InDelta(t, 40, second.UsedMassKg, 1e-9)
	scale := 40.0 / 230.0
	assert.InDelta(t, 1200*scale, second.CollectorAreaM2, 1e-9)
	assert.InDelta(t, 50*scale, second.StructureKg, 1e-9)
	assert.InDelta(t, 0, *second.ResourceRemainingKg, 1e-6)

	assert.Equal(t, 0.0, third.CollectorAreaM2)
	assert.Equal(t, 0.0, third.StructureKg)
	assert.InDelta(t, limit, factory.ResourceUsedKg()+*third.ResourceRemainingKg, 1e-6)
}

func TestFactory_LearningFactor(t *testing.T) {
	assert.Equal(t, 1.0, manufacturing.LearningFactor(100, 0))
	assert.InDelta(t, math.Pow(100, 0.15), manufacturing.LearningFactor(100, 0.85), 1e-12)
	assert.InDelta(t, 1.0, manufacturing.LearningFactor(1, 0.85), 1e-12)
}

func TestFactory_MassDriverBuildCarriesRemainder(t *testing.T) {
	// Arrange
	cfg := baseFactoryConfig(t)
	cfg.MassDriverBuildDays = 3
	cfg.Replication.ReplicationCycleDays = 1000
	factory, err := manufacturing.NewFactory(cfg)
	require.NoError(t, err)

	// Act
	var commissioned []int
	for day := 1; day <= 7; day++ {
		commissioned = append(commissioned, factory.TickDay(1, 0).MassDriversCommissioned)
	}

	// Assert
	assert.Equal(t, []int{0, 0, 1, 0, 0, 1, 0}, commissioned)
	assert.Equal(t, 2, factory.MassDriversBuilt())
}

func TestFactory_StockpileAccumulates(t *testing.T) {
	factory, err := manufacturing.NewFactory(baseFactoryConfig(t))
	require.NoError(t, err)

	factory.TickDay(1, 0)
	factory.TickDay(1, 0)

	assert.InDelta(t, 20000, factory.Stockpile().Mass(manufacturing.StockOre), 1e-9)
	assert.InDelta(t, 100, factory.Stockpile().Mass(manufacturing.StockStructure), 1e-9)
}

func TestNewFactory_Validation(t *testing.T) {
	t.Run("duplicate line", func(t *testing.T) {
		cfg := baseFactoryConfig(t)
		cfg.Lines = append(cfg.Lines, mustLine(t, "smelter", manufacturing.RoleSmelting, 1, 1))

		_, err := manufacturing.NewFactory(cfg)

		var dup *manufacturing.ErrDuplicateLine
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "smelter", dup.Name)
	})

	t.Run("non-positive cycle", func(t *testing.T) {
		cfg := baseFactoryConfig(t)
		cfg.Replication.ReplicationCycleDays = 0

		_, err := manufacturing.NewFactory(cfg)

		var invalid *manufacturing.ErrInvalidReplication
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("infinite cycle", func(t *testing.T) {
		cfg := baseFactoryConfig(t)
		cfg.Replication.ReplicationCycleDays = math.Inf(1)

		_, err := manufacturing.NewFactory(cfg)

		var invalid *manufacturing.ErrInvalidReplication
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("shrinking factor", func(t *testing.T) {
		cfg := baseFactoryConfig(t)
		cfg.Replication.ReplicationFactor = 0.5

		_, err := manufacturing.NewFactory(cfg)
		assert.Error(t, err)
	})
}
