package mission

import (
	"math"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
)

// SchedulerConfig bundles the launch policy
type SchedulerConfig struct {
	Phases           Phases
	UptimeFraction   float64
	LearningB        float64
	PackageAreaM2    float64
	CadenceCapPerDay float64
	Primary          LaunchSystem
}

// DayResult is one day of production and deployment
type DayResult struct {
	Day                 int
	Phase               Phase
	CollectorAreaM2     float64
	StructureKg         float64
	AreaLaunchedM2      float64
	MassDriversOnline   int
	CadenceTotal        float64
	EnergyKWh           float64
	ResourceRemainingKg *float64
	UsedMassKg          float64
	GrowthMultiplier    float64
	Events              []Event
}

// Scheduler advances the factory and decides what leaves the surface each
// day. Only the current day's production is a launch candidate: area that is
// not launched the day it is made is not carried forward.
type Scheduler struct {
	factory *manufacturing.Factory
	cfg     SchedulerConfig
}

// NewScheduler wires a scheduler to the factory it drives
func NewScheduler(factory *manufacturing.Factory, cfg SchedulerConfig) *Scheduler {
	return &Scheduler{factory: factory, cfg: cfg}
}

func (s *Scheduler) Factory() *manufacturing.Factory { return s.factory }
func (s *Scheduler) Phases() Phases                  { return s.cfg.Phases }
func (s *Scheduler) Primary() LaunchSystem           { return s.cfg.Primary }

// StepDay runs one zero-based mission day
func (s *Scheduler) StepDay(day int) DayResult {
	phase := s.cfg.Phases.Which(day)
	out := s.factory.TickDay(s.cfg.UptimeFraction, s.cfg.LearningB)

	online := s.factory.MassDriversBuilt()
	cadence := math.Min(s.cfg.Primary.CadencePerDay()*float64(online), s.cfg.CadenceCapPerDay)

	candidate := 0.0
	if phase.LaunchesPermitted() {
		candidate = out.CollectorAreaM2
	}
	launched := math.Min(candidate, cadence*s.cfg.PackageAreaM2)

	var events []Event
	if launched > 0 {
		events = append(events, newLaunchEvent(day, launched, s.cfg.Primary.Name()))
	}
	if online > 0 && day%infrastructureReportInterval == 0 {
		events = append(events, newInfrastructureEvent(day, online))
	}

	return DayResult{
		Day:                 day,
		Phase:               phase,
		CollectorAreaM2:     out.CollectorAreaM2,
		StructureKg:         out.StructureKg,
		AreaLaunchedM2:      launched,
		MassDriversOnline:   online,
		CadenceTotal:        cadence,
		EnergyKWh:           out.EnergyKWh,
		ResourceRemainingKg: out.ResourceRemainingKg,
		UsedMassKg:          out.UsedMassKg,
		GrowthMultiplier:    out.GrowthMultiplier,
		Events:              events,
	}
}
