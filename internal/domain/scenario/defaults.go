package scenario

import "math"

// Every scenario default lives here.
const (
	DefaultHorizonYears = 25

	DefaultPhase0Days = 365
	DefaultPhase1Days = 3 * 365
	DefaultPhase2Days = 21 * 365

	DefaultUptimeFraction = 0.85
	DefaultLearningCurveB = 0.85

	// DefaultCadenceCapPerDay is effectively unlimited
	DefaultCadenceCapPerDay = 1e9

	DefaultFleetPowerMW    = 1.0
	DefaultAreaPerMWPerDay = 1.0e4

	DefaultTxConversion    = 0.85
	DefaultPointing        = 0.97
	DefaultRxConversion    = 0.85
	DefaultEarthAtmosphere = 0.92

	DefaultCollectorName         = "default"
	DefaultEfficiency1AU         = 0.25
	DefaultArealDensityKgM2      = 0.15
	DefaultPackageAreaM2         = 5000.0
	DefaultCollectorAbsorptivity = 0.9
	DefaultCollectorEmissivity   = 0.85
	DefaultTempCoeffPerK         = -0.004

	DefaultRadiatorAreaM2 = 1e5

	DefaultSiteBody        = "Mercury"
	DefaultMiningDepthM    = 10.0
	DefaultFeUtilization   = 1.0
	DefaultSiO2Utilization = 0.2

	// Fallbacks for a site body record missing its bulk figures
	DefaultBodyRadiusM     = 2.4397e6
	DefaultBodyDensityKgM3 = 5427.0

	DefaultMassDriverMaxG         = 30.0
	DefaultMassDriverCooldownS    = 120.0
	DefaultMassDriverMuzzleDeltaV = 4500.0
	DefaultMassDriverBuildDays    = 120.0

	DefaultOpticalDepthMax = 1.0

	// InSituFraction is the share of swarm mass sourced off-Earth
	InSituFraction = 0.9
)

// DefaultTargetARangeAU is the single deployment band used when none is set
var DefaultTargetARangeAU = []float64{0.35, 0.45}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func setInt(p **int, v int) {
	if *p == nil {
		*p = intPtr(v)
	}
}

func setFloat(p **float64, v float64) {
	if *p == nil {
		*p = floatPtr(v)
	}
}

// WithDefaults returns a copy of the scenario with every absent value
// resolved. The receiver is not modified.
func (s Scenario) WithDefaults() Scenario {
	out := s.clone()
	ApplyDefaults(&out)
	return out
}

// ApplyDefaults fills absent values in place
func ApplyDefaults(s *Scenario) {
	if s.Name == "" {
		s.Name = "scenario"
	}
	setInt(&s.HorizonYears, DefaultHorizonYears)

	setInt(&s.Phases.Phase0Days, DefaultPhase0Days)
	setInt(&s.Phases.Phase1Days, DefaultPhase1Days)
	setInt(&s.Phases.Phase2Days, DefaultPhase2Days)

	setFloat(&s.Production.UptimeFraction, DefaultUptimeFraction)
	setFloat(&s.Production.LearningCurveB, DefaultLearningCurveB)

	if len(s.LaunchStrategy.TargetARangeAU) == 0 {
		s.LaunchStrategy.TargetARangeAU = append([]float64(nil), DefaultTargetARangeAU...)
	}
	setFloat(&s.LaunchStrategy.CadencePerDay, DefaultCadenceCapPerDay)

	if s.Transport.FleetPowerMW == nil {
		if tug := s.Vehicles.Tugs.ElecTug.FleetPowerMW; tug != nil {
			s.Transport.FleetPowerMW = floatPtr(*tug)
		} else {
			s.Transport.FleetPowerMW = floatPtr(DefaultFleetPowerMW)
		}
	}
	setFloat(&s.Transport.AreaPerMWPerDay, DefaultAreaPerMWPerDay)

	setFloat(&s.Beaming.TxConversion, DefaultTxConversion)
	setFloat(&s.Beaming.Pointing, DefaultPointing)
	setFloat(&s.Beaming.RxConversion, DefaultRxConversion)
	setFloat(&s.Beaming.EarthAtmosphere, DefaultEarthAtmosphere)

	if len(s.Collectors.CollectorTypes) == 0 {
		s.Collectors.CollectorTypes = []CollectorType{{Name: DefaultCollectorName}}
	}
	for i := range s.Collectors.CollectorTypes {
		ct := &s.Collectors.CollectorTypes[i]
		setFloat(&ct.Efficiency1AU, DefaultEfficiency1AU)
		setFloat(&ct.ArealDensityKgM2, DefaultArealDensityKgM2)
		setFloat(&ct.AreaM2, DefaultPackageAreaM2)
		setFloat(&ct.Absorptivity, DefaultCollectorAbsorptivity)
		setFloat(&ct.Emissivity, DefaultCollectorEmissivity)
		setFloat(&ct.TempCoeffPerK, DefaultTempCoeffPerK)
	}

	setFloat(&s.MercurySite.RadiatorAreaM2, DefaultRadiatorAreaM2)

	if s.Resources.SiteBody == "" {
		s.Resources.SiteBody = DefaultSiteBody
	}
	setFloat(&s.Resources.MiningDepthM, DefaultMiningDepthM)
	setFloat(&s.Resources.Utilization.Fe, DefaultFeUtilization)
	setFloat(&s.Resources.Utilization.SiO2, DefaultSiO2Utilization)

	md := &s.Vehicles.Launchers.MercuryMassDriver
	setFloat(&md.MaxG, DefaultMassDriverMaxG)
	setFloat(&md.CooldownS, DefaultMassDriverCooldownS)
	setFloat(&md.MuzzleDeltaVMS, DefaultMassDriverMuzzleDeltaV)

	setFloat(&s.Factories.MassDriverBuild.DurationDays, DefaultMassDriverBuildDays)

	setFloat(&s.Targets.OpticalDepthMax, DefaultOpticalDepthMax)
}

// Horizon resolves the run length in years
func (s Scenario) Horizon() int {
	if s.HorizonYears == nil {
		return DefaultHorizonYears
	}
	return *s.HorizonYears
}

// MaxGrowthMultiplier resolves the growth ceiling, +Inf when unbounded
func (s Scenario) MaxGrowthMultiplier() float64 {
	if m := s.Caps.MaxGrowthMultiplier; m != nil && *m > 0 {
		return *m
	}
	return math.Inf(1)
}

// clone copies every slice and map so defaults can be applied without
// touching the caller's scenario.
func (s Scenario) clone() Scenario {
	out := s

	out.LaunchStrategy.TargetARangeAU = append([]float64(nil), s.LaunchStrategy.TargetARangeAU...)
	out.LaunchStrategy.BandWeights = append([]float64(nil), s.LaunchStrategy.BandWeights...)
	if s.LaunchStrategy.TargetBandsAU != nil {
		out.LaunchStrategy.TargetBandsAU = make([][]float64, len(s.LaunchStrategy.TargetBandsAU))
		for i, band := range s.LaunchStrategy.TargetBandsAU {
			out.LaunchStrategy.TargetBandsAU[i] = append([]float64(nil), band...)
		}
	}

	out.Collectors.CollectorTypes = append([]CollectorType(nil), s.Collectors.CollectorTypes...)
	out.Factories.Nodes = append([]NodeConfig(nil), s.Factories.Nodes...)
	if s.Factories.Replication != nil {
		rep := *s.Factories.Replication
		out.Factories.Replication = &rep
	}

	out.Bodies.Bodies = make([]Body, len(s.Bodies.Bodies))
	for i, body := range s.Bodies.Bodies {
		out.Bodies.Bodies[i] = body
		if body.CompositionMassFrac != nil {
			comp := make(map[string]float64, len(body.CompositionMassFrac))
			for k, v := range body.CompositionMassFrac {
				comp[k] = v
			}
			out.Bodies.Bodies[i].CompositionMassFrac = comp
		}
	}

	return out
}
