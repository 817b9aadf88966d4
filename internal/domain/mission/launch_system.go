package mission

import (
	"fmt"
	"math"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
	"github.com/andrescamacho/swarmsim-go/internal/domain/physics"
)

const secondsPerDay = 86400.0

// Launcher names
const (
	MercuryMassDriver = "mercury_mass_driver"
	SolarThermalSteam = "solar_thermal_steam"
	EMSling           = "em_sling"
)

// LaunchSystem is a surface launcher. It is immutable after construction.
type LaunchSystem struct {
	name         string
	maxG         float64
	cooldownS    float64
	muzzleDeltaV float64
	reliability  *manufacturing.Reliability
}

// NewLaunchSystem requires a positive cooldown, since cadence divides by it
func NewLaunchSystem(name string, maxG, cooldownS, muzzleDeltaV float64, reliability *manufacturing.Reliability) (LaunchSystem, error) {
	if cooldownS <= 0 {
		return LaunchSystem{}, fmt.Errorf("launch system %s: cooldown must be positive, got %g s", name, cooldownS)
	}
	return LaunchSystem{
		name:         name,
		maxG:         maxG,
		cooldownS:    cooldownS,
		muzzleDeltaV: muzzleDeltaV,
		reliability:  reliability,
	}, nil
}

// SolarThermalSteamLauncher is the low-tech alternate launcher
func SolarThermalSteamLauncher() LaunchSystem {
	return LaunchSystem{name: SolarThermalSteam, maxG: 10, cooldownS: 300, muzzleDeltaV: 2500}
}

// ElectromagneticSling is the rotating-tether alternate launcher
func ElectromagneticSling() LaunchSystem {
	return LaunchSystem{name: EMSling, maxG: 20, cooldownS: 180, muzzleDeltaV: 3200}
}

func (l LaunchSystem) Name() string                            { return l.name }
func (l LaunchSystem) MaxG() float64                           { return l.maxG }
func (l LaunchSystem) CooldownS() float64                      { return l.cooldownS }
func (l LaunchSystem) MuzzleDeltaVMS() float64                 { return l.muzzleDeltaV }
func (l LaunchSystem) Reliability() *manufacturing.Reliability { return l.reliability }
func (l LaunchSystem) Availability() float64                   { return manufacturing.AvailabilityOf(l.reliability) }

// CadencePerDay is shots per day for one unit: at least one, scaled by availability
func (l LaunchSystem) CadencePerDay() float64 {
	return math.Max(1.0, secondsPerDay/l.cooldownS) * l.Availability()
}

// RailLengthM is the track needed to reach muzzle velocity at max acceleration
func (l LaunchSystem) RailLengthM() float64 {
	return physics.MassDriverLengthForDeltaV(l.maxG, l.muzzleDeltaV)
}
