package mission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
)

func TestLaunchSystem_CadencePerDay(t *testing.T) {
	tests := []struct {
		name        string
		cooldownS   float64
		reliability *manufacturing.Reliability
		expected    float64
	}{
		{"two minute cooldown", 120, nil, 720},
		{"slower than daily still fires once", 200000, nil, 1},
		{"availability scales cadence", 120, &manufacturing.Reliability{MTBFHours: 900, MTTRHours: 100}, 648},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls, err := mission.NewLaunchSystem(mission.MercuryMassDriver, 30, tt.cooldownS, 4500, tt.reliability)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, ls.CadencePerDay(), 1e-9)
		})
	}
}

func TestNewLaunchSystem_RejectsNonPositiveCooldown(t *testing.T) {
	_, err := mission.NewLaunchSystem("broken", 30, 0, 4500, nil)
	assert.Error(t, err)
}

func TestAlternateLaunchers(t *testing.T) {
	steam := mission.SolarThermalSteamLauncher()
	sling := mission.ElectromagneticSling()

	assert.Equal(t, mission.SolarThermalSteam, steam.Name())
	assert.InDelta(t, 288, steam.CadencePerDay(), 1e-9)
	assert.InDelta(t, 480, sling.CadencePerDay(), 1e-9)

	// v^2 / (2a): 2500^2 / (2 * 10 * 9.80665)
	assert.InDelta(t, 2500.0*2500.0/(2*10*9.80665), steam.RailLengthM(), 1e-6)
	assert.Less(t, sling.RailLengthM(), steam.RailLengthM())
}
