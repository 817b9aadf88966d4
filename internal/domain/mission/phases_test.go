package mission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
)

func TestPhases_Which(t *testing.T) {
	phases, err := mission.NewPhases(10, 20, 30)
	require.NoError(t, err)

	assert.Equal(t, mission.PhaseSetup, phases.Which(0))
	assert.Equal(t, mission.PhaseSetup, phases.Which(9))
	assert.Equal(t, mission.PhaseRampUp, phases.Which(10))
	assert.Equal(t, mission.PhaseRampUp, phases.Which(29))
	assert.Equal(t, mission.PhaseExpansion, phases.Which(30))
	// expansion never ends
	assert.Equal(t, mission.PhaseExpansion, phases.Which(10_000))
	assert.Equal(t, 30, phases.FirstLaunchDay())
}

func TestPhases_ZeroLengthWindows(t *testing.T) {
	phases, err := mission.NewPhases(0, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, mission.PhaseExpansion, phases.Which(0))
}

func TestNewPhases_RejectsNegative(t *testing.T) {
	_, err := mission.NewPhases(10, -1, 5)
	assert.Error(t, err)
}

func TestPhase_LaunchesPermitted(t *testing.T) {
	assert.False(t, mission.PhaseSetup.LaunchesPermitted())
	assert.False(t, mission.PhaseRampUp.LaunchesPermitted())
	assert.True(t, mission.PhaseExpansion.LaunchesPermitted())
	assert.Equal(t, "ramp_up", mission.PhaseRampUp.String())
}
