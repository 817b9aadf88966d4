package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/swarmsim-go/internal/domain/physics"
)

func TestHohmannDeltaV_EarthToMercuryBounds(t *testing.T) {
	// Act
	dv := physics.HohmannDeltaVBetweenCircular(1.0, 0.387)

	// Assert - known order of magnitude is 9-12 km/s
	assert.Greater(t, dv.Departure, 0.0)
	assert.Greater(t, dv.Arrival, 0.0)
	assert.Greater(t, dv.Total(), 6000.0)
	assert.Less(t, dv.Total(), 18000.0)
}

func TestHohmannDeltaV_IsSymmetricInTotal(t *testing.T) {
	out := physics.HohmannDeltaVBetweenCircular(1.0, 0.4)
	back := physics.HohmannDeltaVBetweenCircular(0.4, 1.0)

	assert.InDelta(t, out.Total(), back.Total(), 1e-6)
}

func TestHohmannDeltaV_SameOrbitIsFree(t *testing.T) {
	dv := physics.HohmannDeltaVBetweenCircular(0.4, 0.4)

	assert.InDelta(t, 0.0, dv.Total(), 1e-9)
}

func TestMassDriverLength_InvertsDeltaV(t *testing.T) {
	length := physics.MassDriverLengthForDeltaV(30, 4500)

	assert.InDelta(t, 4500.0, physics.MassDriverDeltaVFromLength(30, length), 1e-6)
	assert.True(t, math.IsInf(physics.MassDriverLengthForDeltaV(0, 4500), 1))
}
