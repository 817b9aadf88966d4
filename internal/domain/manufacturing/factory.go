package manufacturing

import (
	"math"
)

// Fixed process-graph yields
const (
	BeneficiationYield = 0.75
	SmeltingYield      = 0.2
	ReflectorAreaShare = 0.5
)

// resourceTolerance lets demand overshoot the remaining budget by float noise
const resourceTolerance = 1e-9

// GrowthCeiling bounds an uncapped growth multiplier so that daily output,
// energy and their horizon totals stay finite.
const GrowthCeiling = 1e200

// massDriverCountCeiling keeps the commissioned count inside int range
const massDriverCountCeiling = math.MaxInt32

// Stockpile item names tracked across the factory's lifetime
const (
	StockOre       = "ore"
	StockRefined   = "refined"
	StockStructure = "structure"
)

// ReplicationConfig describes how the factory copies itself
type ReplicationConfig struct {
	FactoryKitMassKg  float64
	ReplicationFactor float64
	// ReplicationCycleDays may be fractional; replication fires on every
	// elapsed day that is a whole multiple of it.
	ReplicationCycleDays float64
}

// FactoryConfig is everything a factory needs to run
type FactoryConfig struct {
	Lines       []*Line
	Replication ReplicationConfig
	// MaxGrowthMultiplier <= 0 means bounded only by GrowthCeiling
	MaxGrowthMultiplier float64
	// ResourceLimitKg nil means unbounded
	ResourceLimitKg           *float64
	CollectorArealDensityKgM2 float64
	MassDriverBuildDays       float64
}

// FactoryOutput is one day of factory production
type FactoryOutput struct {
	OreKg               float64
	RefinedKg           float64
	CollectorAreaM2     float64
	StructureKg         float64
	EnergyKWh           float64
	UsedMassKg          float64
	ResourceRemainingKg *float64
	LearningFactor      float64
	// GrowthMultiplier is the value after any end-of-day replication
	GrowthMultiplier float64
	// MassDriversCommissioned counts units finished this day
	MassDriversCommissioned int
}

// Factory is the self-replicating in-situ production complex. It owns the
// growth state and is advanced exactly once per simulated day.
type Factory struct {
	lines       []*Line
	linesByName map[string]*Line

	replication               ReplicationConfig
	maxGrowthMultiplier       float64
	resourceLimitKg           *float64
	collectorArealDensityKgM2 float64
	massDriverBuildDays       float64

	elapsedDays        int
	growthMultiplier   float64
	resourceUsedKg     float64
	massDriverProgress float64
	massDriversBuilt   int

	stockpile *Inventory
}

// NewFactory validates the configuration and returns a factory at day 0
func NewFactory(cfg FactoryConfig) (*Factory, error) {
	if cycle := cfg.Replication.ReplicationCycleDays; math.IsNaN(cycle) || math.IsInf(cycle, 0) || cycle <= 0 {
		return nil, &ErrInvalidReplication{Field: "replication_cycle_days", Reason: "must be positive"}
	}
	if cfg.Replication.ReplicationFactor < 1 {
		return nil, &ErrInvalidReplication{Field: "replication_factor", Reason: "must be at least 1"}
	}
	if cfg.MassDriverBuildDays <= 0 {
		return nil, &ErrInvalidReplication{Field: "mass_driver_build.duration_days", Reason: "must be positive"}
	}

	linesByName := make(map[string]*Line, len(cfg.Lines))
	for _, line := range cfg.Lines {
		if _, exists := linesByName[line.Name()]; exists {
			return nil, &ErrDuplicateLine{Name: line.Name()}
		}
		linesByName[line.Name()] = line
	}

	maxGrowth := cfg.MaxGrowthMultiplier
	if maxGrowth <= 0 || maxGrowth > GrowthCeiling {
		maxGrowth = GrowthCeiling
	}

	return &Factory{
		lines:                     cfg.Lines,
		linesByName:               linesByName,
		replication:               cfg.Replication,
		maxGrowthMultiplier:       maxGrowth,
		resourceLimitKg:           cfg.ResourceLimitKg,
		collectorArealDensityKgM2: cfg.CollectorArealDensityKgM2,
		massDriverBuildDays:       cfg.MassDriverBuildDays,
		growthMultiplier:          1.0,
		stockpile:                 NewInventory(),
	}, nil
}

// Line looks up a line by name
func (f *Factory) Line(name string) (*Line, bool) {
	line, ok := f.linesByName[name]
	return line, ok
}

func (f *Factory) Lines() []*Line            { return f.lines }
func (f *Factory) ElapsedDays() int          { return f.elapsedDays }
func (f *Factory) GrowthMultiplier() float64 { return f.growthMultiplier }
func (f *Factory) ResourceUsedKg() float64   { return f.resourceUsedKg }
func (f *Factory) MassDriversBuilt() int     { return f.massDriversBuilt }
func (f *Factory) Stockpile() *Inventory     { return f.stockpile }

// ResourceRemainingKg is nil when the factory is not resource capped
func (f *Factory) ResourceRemainingKg() *float64 {
	if f.resourceLimitKg == nil {
		return nil
	}
	remaining := math.Max(0, *f.resourceLimitKg-f.resourceUsedKg)
	return &remaining
}

// LearningFactor for a given elapsed day count: elapsed^(1-b), or 1 with no learning
func LearningFactor(elapsedDays int, learningB float64) float64 {
	if learningB <= 0 {
		return 1.0
	}
	return math.Pow(float64(elapsedDays), 1.0-learningB)
}

// TickDay advances the factory one day and reports what it produced
func (f *Factory) TickDay(uptimeFraction, learningB float64) FactoryOutput {
	f.elapsedDays++
	learning := LearningFactor(f.elapsedDays, learningB)
	growth := f.growthMultiplier

	var ore, refined, area, structure, energy float64
	for _, line := range f.lines {
		throughput := line.EffectiveThroughput(uptimeFraction, learning) * growth
		energy += line.DailyEnergyKWh(uptimeFraction, learning, growth)

		switch line.Role() {
		case RoleMining:
			ore += throughput
		case RoleBeneficiation:
			refined += math.Min(throughput, ore) * BeneficiationYield
		case RoleSmelting:
			refined += math.Min(throughput, refined) * SmeltingYield
		case RolePhotovoltaic:
			area += throughput
		case RoleReflector:
			area += throughput * ReflectorAreaShare
		case RoleStructure:
			structure += throughput
		}
	}

	area, structure, used := f.applyResourceCap(area, structure)
	f.resourceUsedKg += used

	f.stockpile.Add(StockOre, ore)
	f.stockpile.Add(StockRefined, refined)
	f.stockpile.Add(StockStructure, structure)

	// Replication lands at the end of the day, so the new multiplier first
	// shows up in tomorrow's throughput but already speeds today's build.
	if math.Mod(float64(f.elapsedDays), f.replication.ReplicationCycleDays) == 0 {
		f.growthMultiplier = math.Min(f.growthMultiplier*f.replication.ReplicationFactor, f.maxGrowthMultiplier)
	}
	commissioned := f.advanceMassDriverBuild(f.growthMultiplier)

	return FactoryOutput{
		OreKg:                   ore,
		RefinedKg:               refined,
		CollectorAreaM2:         area,
		StructureKg:             structure,
		EnergyKWh:               energy,
		UsedMassKg:              used,
		ResourceRemainingKg:     f.ResourceRemainingKg(),
		LearningFactor:          learning,
		GrowthMultiplier:        f.growthMultiplier,
		MassDriversCommissioned: commissioned,
	}
}

// applyResourceCap scales area and structure together so that their mass
// never exceeds what is left of the budget.
func (f *Factory) applyResourceCap(area, structure float64) (float64, float64, float64) {
	demand := area*f.collectorArealDensityKgM2 + structure
	if math.IsNaN(demand) || math.IsInf(demand, 0) {
		if f.resourceLimitKg == nil {
			return 0, 0, 0
		}
		return 0, 0, math.Max(0, *f.resourceLimitKg-f.resourceUsedKg)
	}
	if f.resourceLimitKg == nil {
		return area, structure, demand
	}

	remaining := math.Max(0, *f.resourceLimitKg-f.resourceUsedKg)
	if demand <= remaining+resourceTolerance {
		return area, structure, demand
	}
	if demand <= 0 {
		return 0, 0, 0
	}

	scale := remaining / demand
	return area * scale, structure * scale, remaining
}

func (f *Factory) advanceMassDriverBuild(growth float64) int {
	f.massDriverProgress += growth
	if f.massDriverProgress < f.massDriverBuildDays {
		return 0
	}
	completed := math.Floor(f.massDriverProgress / f.massDriverBuildDays)
	f.massDriverProgress -= completed * f.massDriverBuildDays
	completed = math.Min(completed, float64(massDriverCountCeiling-f.massDriversBuilt))
	f.massDriversBuilt += int(completed)
	return int(completed)
}
