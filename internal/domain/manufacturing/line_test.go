package manufacturing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
)

func TestParseLineRole_InfersFromName(t *testing.T) {
	tests := map[string]manufacturing.LineRole{
		"regolith_mining": manufacturing.RoleMining,
		"beneficiation":   manufacturing.RoleBeneficiation,
		"smelter":         manufacturing.RoleSmelting,
		"pv_line":         manufacturing.RolePhotovoltaic,
		"reflector_line":  manufacturing.RoleReflector,
		"structure_line":  manufacturing.RoleStructure,
		"habitat_module":  manufacturing.RoleAuxiliary,
	}

	for name, expected := range tests {
		role, err := manufacturing.ParseLineRole("", name)
		require.NoError(t, err)
		assert.Equal(t, expected, role, name)
	}
}

func TestParseLineRole_ExplicitRoleWins(t *testing.T) {
	role, err := manufacturing.ParseLineRole("Photovoltaic", "smelter")
	require.NoError(t, err)
	assert.Equal(t, manufacturing.RolePhotovoltaic, role)

	_, err = manufacturing.ParseLineRole("teleporter", "x")
	assert.Error(t, err)
}

func TestLine_EffectiveThroughput(t *testing.T) {
	// Arrange
	line, err := manufacturing.NewLine("pv_line", manufacturing.RolePhotovoltaic, 500, 1000, manufacturing.UnitM2,
		&manufacturing.Reliability{MTBFHours: 900, MTTRHours: 100})
	require.NoError(t, err)

	// Act
	got := line.EffectiveThroughput(0.85, 2.0)

	// Assert
	assert.InDelta(t, 1000*0.85*2.0*0.9, got, 1e-9)
	assert.InDelta(t, 500*24*0.85*2.0*0.9*3.0, line.DailyEnergyKWh(0.85, 2.0, 3.0), 1e-9)
}

func TestLine_ZeroAvailabilityProducesNothing(t *testing.T) {
	line, err := manufacturing.NewLine("smelter", manufacturing.RoleSmelting, 100, 1000, manufacturing.UnitKg,
		&manufacturing.Reliability{MTBFHours: 0, MTTRHours: 5})
	require.NoError(t, err)

	assert.Equal(t, 0.0, line.EffectiveThroughput(1, 1))
	assert.Equal(t, 0.0, line.DailyEnergyKWh(1, 1, 1))
}

func TestNewLine_RequiresName(t *testing.T) {
	_, err := manufacturing.NewLine("", manufacturing.RoleMining, 1, 1, "", nil)
	assert.Error(t, err)
}
