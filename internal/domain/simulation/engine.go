package simulation

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
	"github.com/andrescamacho/swarmsim-go/internal/domain/physics"
	"github.com/andrescamacho/swarmsim-go/internal/domain/scenario"
)

// sampleOrbitsPerBand is how many evenly spaced orbits each band summary lists
const sampleOrbitsPerBand = 5

// ErrEngineAlreadyRun guards against replaying a consumed engine
var ErrEngineAlreadyRun = errors.New("simulation engine has already run")

// Engine drives one scenario across its horizon. Engines hold all run state
// and are single use; build a new one per run.
type Engine struct {
	sc           scenario.Scenario
	scheduler    *mission.Scheduler
	bands        []mission.OrbitBand
	weights      []float64
	usableMassKg *float64

	dayListeners []func(DayRecord)
	ran          bool
}

// NewEngine resolves defaults, validates the scenario and builds the factory
// and scheduler. Configuration problems surface here, before any day runs.
func NewEngine(sc scenario.Scenario) (*Engine, error) {
	resolved := sc.WithDefaults()
	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	scheduler, err := buildScheduler(resolved)
	if err != nil {
		return nil, err
	}
	bands, err := buildBands(resolved)
	if err != nil {
		return nil, err
	}

	return &Engine{
		sc:           resolved,
		scheduler:    scheduler,
		bands:        bands,
		weights:      mission.NormalizeWeights(resolved.LaunchStrategy.BandWeights, len(bands)),
		usableMassKg: resolved.UsableResourceMassKg(),
	}, nil
}

// RegisterDayListener is called with each record as soon as the day completes
func (e *Engine) RegisterDayListener(fn func(DayRecord)) {
	e.dayListeners = append(e.dayListeners, fn)
}

// Scenario is the resolved scenario the engine runs
func (e *Engine) Scenario() scenario.Scenario { return e.sc }

// Days is the horizon length in days
func (e *Engine) Days() int { return e.sc.Horizon() * int(physics.DaysPerYear) }

// dayContext is what stays fixed across the day loop
type dayContext struct {
	transportCapM2   float64
	areaPerMWPerDay  float64
	opticalDepthCap  float64
	baseEfficiency   float64
	degradationPerYr float64
	thermalDerate    float64
	beamingChain     float64
	bandMeans        []float64
}

func (e *Engine) newDayContext() dayContext {
	collector := e.sc.Collectors.DefaultCollector()
	means := make([]float64, len(e.bands))
	for i, b := range e.bands {
		means[i] = b.MeanAU()
	}
	return dayContext{
		transportCapM2:   *e.sc.Transport.FleetPowerMW * *e.sc.Transport.AreaPerMWPerDay,
		areaPerMWPerDay:  *e.sc.Transport.AreaPerMWPerDay,
		opticalDepthCap:  *e.sc.Targets.OpticalDepthMax,
		baseEfficiency:   *collector.Efficiency1AU,
		degradationPerYr: collector.DegradationPerYear,
		thermalDerate:    physics.RadiatorDerate(*e.sc.MercurySite.RadiatorAreaM2),
		beamingChain:     e.sc.Beaming.Chain(),
		bandMeans:        means,
	}
}

// effectiveEfficiency is the degraded PV efficiency times every loss stage
func (c dayContext) effectiveEfficiency(day int) (degraded, effective float64) {
	degraded = physics.DegradedEfficiency(c.baseEfficiency, c.degradationPerYr, float64(day)/physics.DaysPerYear)
	return degraded, degraded * c.thermalDerate * c.beamingChain
}

// Run executes every day of the horizon and aggregates the results
func (e *Engine) Run() (*Results, error) {
	if e.ran {
		return nil, ErrEngineAlreadyRun
	}
	e.ran = true

	ctx := e.newDayContext()
	days := e.Days()
	cumBands := make([]float64, len(e.bands))
	timeseries := make([]DayRecord, 0, days)
	var events []mission.Event

	for day := 0; day < days; day++ {
		res := e.scheduler.StepDay(day)

		transported := math.Min(res.AreaLaunchedM2, ctx.transportCapM2)
		mwUsed := 0.0
		if ctx.areaPerMWPerDay > 0 {
			mwUsed = transported / ctx.areaPerMWPerDay
		}

		if transported > 0 {
			for i, w := range e.weights {
				cumBands[i] += w * transported
			}
		}

		bandOD := make([]float64, len(cumBands))
		for i, area := range cumBands {
			bandOD[i] = physics.OpticalDepth(area, ctx.bandMeans[i])
		}

		_, effective := ctx.effectiveEfficiency(day)
		power := 0.0
		for i, area := range cumBands {
			power += physics.PowerCaptureGW(area, ctx.bandMeans[i], effective)
		}

		record := DayRecord{
			Day:                 day,
			Phase:               res.Phase,
			CollectorAreaM2:     res.CollectorAreaM2,
			StructureKg:         res.StructureKg,
			LaunchedM2:          res.AreaLaunchedM2,
			TransportedM2:       transported,
			CumAreaM2:           floats.Sum(cumBands),
			OpticalDepth:        math.Min(floats.Max(bandOD), ctx.opticalDepthCap),
			PowerGW:             power,
			MassDriversOnline:   res.MassDriversOnline,
			CadenceTotal:        res.CadenceTotal,
			EnergyKWh:           res.EnergyKWh,
			ResourceRemainingKg: res.ResourceRemainingKg,
			UsedMassKg:          res.UsedMassKg,
			GrowthMultiplier:    res.GrowthMultiplier,
			TransportMWUsed:     mwUsed,
			TransportMWh:        mwUsed * physics.HoursPerDay,
			BandAreaM2:          append([]float64(nil), cumBands...),
			BandOpticalDepth:    bandOD,
		}
		timeseries = append(timeseries, record)
		events = append(events, res.Events...)

		for _, fn := range e.dayListeners {
			fn(record)
		}
	}

	summary, err := e.summarize(ctx, timeseries)
	if err != nil {
		return nil, err
	}

	return &Results{
		Timeseries: timeseries,
		Events:     events,
		Summary:    summary,
		Parameters: newProvenance(e.sc, e.usableMassKg),
	}, nil
}

func (e *Engine) summarize(ctx dayContext, ts []DayRecord) (Summary, error) {
	final := ts[len(ts)-1]
	factory := e.scheduler.Factory()
	collector := e.sc.Collectors.DefaultCollector()
	degraded, effective := ctx.effectiveEfficiency(final.Day)

	var yearsToTarget *float64
	for _, rec := range ts {
		if rec.CumAreaM2 >= e.sc.Targets.TotalCollectorAreaM2 {
			y := float64(rec.Day) / physics.DaysPerYear
			yearsToTarget = &y
			break
		}
	}

	var energy, transportMWh, structure, used float64
	var remaining *float64
	for _, rec := range ts {
		energy += rec.EnergyKWh
		transportMWh += rec.TransportMWh
		structure += rec.StructureKg
		used += rec.UsedMassKg
		if rec.ResourceRemainingKg != nil {
			remaining = rec.ResourceRemainingKg
		}
	}

	var energyPerM2, transportPerM2 *float64
	if final.CumAreaM2 > 0 {
		e1 := energy / final.CumAreaM2
		e2 := transportMWh * 1000.0 / final.CumAreaM2
		energyPerM2, transportPerM2 = &e1, &e2
	}

	bands, err := e.bandSummaries(ctx, final, effective)
	if err != nil {
		return Summary{}, err
	}

	var maxGrowth *float64
	if m := e.sc.Caps.MaxGrowthMultiplier; m != nil {
		v := *m
		maxGrowth = &v
	}

	return Summary{
		YearsToTarget:           yearsToTarget,
		TotalAreaM2:             final.CumAreaM2,
		DeliveredPowerGW:        final.PowerGW,
		EarthMassKg:             e.sc.EarthMassKg(),
		InSituFraction:          scenario.InSituFraction,
		EnergyKWhTotal:          energy,
		EnergyPerM2KWh:          energyPerM2,
		TransportMWhTotal:       transportMWh,
		TransportEnergyPerM2KWh: transportPerM2,
		MassDriversOnline:       final.MassDriversOnline,
		MassDriverAvailability:  e.sc.MassDriverAvailability(),
		Materials: MaterialsSummary{
			CollectorArealDensityKgM2: *collector.ArealDensityKgM2,
			CollectorMassKg:           final.CumAreaM2 * *collector.ArealDensityKgM2,
			StructureKgTotal:          structure,
			OreKgTotal:                factory.Stockpile().Mass(manufacturing.StockOre),
			RefinedKgTotal:            factory.Stockpile().Mass(manufacturing.StockRefined),
			ResourceUsedKgTotal:       used,
			ResourceRemainingKgFinal:  remaining,
		},
		Bands: bands,
		Efficiencies: EfficiencySummary{
			PVEff1AUBase:  ctx.baseEfficiency,
			PVEff1AUEnd:   degraded,
			ThermalDerate: ctx.thermalDerate,
			Beaming: BeamingSummary{
				TxConversion:    *e.sc.Beaming.TxConversion,
				Pointing:        *e.sc.Beaming.Pointing,
				RxConversion:    *e.sc.Beaming.RxConversion,
				EarthAtmosphere: *e.sc.Beaming.EarthAtmosphere,
				Chain:           ctx.beamingChain,
			},
			EffectiveEff1AUEnd: effective,
		},
		Transport:     e.transportSummary(ctx, transportMWh),
		Caps:          CapsSummary{MaxGrowthMultiplier: maxGrowth, GrowthMultiplierFinal: factory.GrowthMultiplier()},
		LaunchSystems: e.launchSystemSummaries(ctx),
	}, nil
}

func (e *Engine) bandSummaries(ctx dayContext, final DayRecord, effective float64) ([]BandSummary, error) {
	collector := e.sc.Collectors.DefaultCollector()
	summaries := make([]BandSummary, len(e.bands))
	for i, band := range e.bands {
		mean := ctx.bandMeans[i]
		area := final.BandAreaM2[i]

		tempK, err := physics.EquilibriumTemperatureK(*collector.Absorptivity, *collector.Emissivity, physics.IrradianceWM2(mean), 1.0)
		if err != nil {
			return nil, err
		}

		summaries[i] = BandSummary{
			Index:               i,
			InnerAU:             band.InnerAU,
			OuterAU:             band.OuterAU,
			MeanAU:              mean,
			Weight:              e.weights[i],
			CumAreaM2:           area,
			OpticalDepth:        physics.OpticalDepth(area, mean),
			PowerGW:             physics.PowerCaptureGW(area, mean, effective),
			EquilibriumTempK:    tempK,
			PVEfficiencyThermal: physics.PVEfficiencyDerated(*collector.Efficiency1AU, *collector.TempCoeffPerK, tempK, physics.ReferenceCellTempK),
			SampleAAU:           mission.AssignOrbitsUniform(sampleOrbitsPerBand, band),
		}
	}
	return summaries, nil
}

func (e *Engine) transportSummary(ctx dayContext, transportMWh float64) TransportSummary {
	fleetMW := *e.sc.Transport.FleetPowerMW
	summary := TransportSummary{
		FleetPowerMW:      fleetMW,
		AreaPerMWPerDay:   ctx.areaPerMWPerDay,
		AreaCapM2PerDay:   ctx.transportCapM2,
		TransportMWhTotal: transportMWh,
	}
	if tugKW := e.sc.Vehicles.Tugs.ElecTug.PowerKW; tugKW > 0 {
		implied := fleetMW * 1000.0 / tugKW
		summary.ImpliedTugCount = &implied
		summary.TugPowerKW = &tugKW
	}
	return summary
}

func (e *Engine) launchSystemSummaries(ctx dayContext) []LaunchSystemSummary {
	var siteAAU *float64
	if body, ok := e.sc.SiteBody(); ok {
		siteAAU = body.OrbitalAAU
	}

	systems := []mission.LaunchSystem{
		e.scheduler.Primary(),
		mission.SolarThermalSteamLauncher(),
		mission.ElectromagneticSling(),
	}

	summaries := make([]LaunchSystemSummary, len(systems))
	for i, ls := range systems {
		summaries[i] = LaunchSystemSummary{
			Name:           ls.Name(),
			Primary:        i == 0,
			MaxG:           ls.MaxG(),
			CooldownS:      ls.CooldownS(),
			MuzzleDeltaVMS: ls.MuzzleDeltaVMS(),
			CadencePerDay:  ls.CadencePerDay(),
			RailLengthM:    ls.RailLengthM(),
		}
		if siteAAU != nil {
			for _, mean := range ctx.bandMeans {
				summaries[i].TransferDeltaVMS = append(summaries[i].TransferDeltaVMS,
					physics.HohmannDeltaVBetweenCircular(*siteAAU, mean).Total())
			}
		}
	}
	return summaries
}
