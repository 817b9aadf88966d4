package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/domain/physics"
)

func TestEquilibriumTemperature_FourthRootScaling(t *testing.T) {
	// Arrange & Act
	t1, err := physics.EquilibriumTemperatureK(1.0, 1.0, 1000.0, 1.0)
	require.NoError(t, err)
	t2, err := physics.EquilibriumTemperatureK(1.0, 1.0, 2000.0, 1.0)
	require.NoError(t, err)

	// Assert
	assert.Greater(t, t2, t1)
	assert.InEpsilon(t, math.Pow(2.0, 0.25), t2/t1, 1e-6)
}

func TestEquilibriumTemperature_RejectsNonPositiveEmissivity(t *testing.T) {
	for _, eps := range []float64{0, -0.5} {
		_, err := physics.EquilibriumTemperatureK(0.9, eps, 1361.0, 1.0)

		var target *physics.ErrNonPositiveEmissivity
		require.ErrorAs(t, err, &target)
		assert.Equal(t, eps, target.Emissivity)
	}
}

func TestPVEfficiencyDerated(t *testing.T) {
	assert.InDelta(t, 0.25, physics.PVEfficiencyDerated(0.25, -0.004, physics.ReferenceCellTempK, physics.ReferenceCellTempK), 1e-12)
	assert.InDelta(t, 0.25*(1-0.004*100), physics.PVEfficiencyDerated(0.25, -0.004, 398.15, physics.ReferenceCellTempK), 1e-12)
	// clamps at zero when hot enough
	assert.Equal(t, 0.0, physics.PVEfficiencyDerated(0.25, -0.004, 1000, physics.ReferenceCellTempK))
}

func TestRadiatorDerate_CapsAtOne(t *testing.T) {
	assert.Equal(t, 0.5, physics.RadiatorDerate(5e4))
	assert.Equal(t, 1.0, physics.RadiatorDerate(1e6))
}
