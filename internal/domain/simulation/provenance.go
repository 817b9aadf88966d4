package simulation

import "github.com/andrescamacho/swarmsim-go/internal/domain/scenario"

// Provenance records the documented parameters and the values a run used
type Provenance struct {
	Docs   map[string]string      `json:"docs"`
	Values map[string]interface{} `json:"values"`
}

func positiveOrNil(p *float64) interface{} {
	if p == nil || *p <= 0 {
		return nil
	}
	return *p
}

func floatsOrNil(v []float64) interface{} {
	if len(v) == 0 {
		return nil
	}
	return v
}

// newProvenance expects a scenario with defaults applied
func newProvenance(sc scenario.Scenario, usableMassKg *float64) Provenance {
	collector := sc.Collectors.DefaultCollector()
	md := sc.Vehicles.Launchers.MercuryMassDriver

	var bands interface{}
	if len(sc.LaunchStrategy.TargetBandsAU) > 0 {
		bands = sc.LaunchStrategy.TargetBandsAU
	}
	var usable interface{}
	if usableMassKg != nil {
		usable = *usableMassKg
	}
	var availability interface{}
	if a := sc.MassDriverAvailability(); a != nil {
		availability = *a
	}

	values := map[string]interface{}{
		"seed":                                                sc.Seed,
		"horizon_years":                                       sc.Horizon(),
		"phases.phase0_days":                                  *sc.Phases.Phase0Days,
		"phases.phase1_days":                                  *sc.Phases.Phase1Days,
		"phases.phase2_days":                                  *sc.Phases.Phase2Days,
		"production.uptime_fraction":                          *sc.Production.UptimeFraction,
		"production.learning_curve_b":                         *sc.Production.LearningCurveB,
		"launch_strategy.cadence_per_day":                     *sc.LaunchStrategy.CadencePerDay,
		"launch_strategy.target_a_AU_range":                   sc.LaunchStrategy.TargetARangeAU,
		"launch_strategy.target_bands_AU":                     bands,
		"launch_strategy.band_weights":                        floatsOrNil(sc.LaunchStrategy.BandWeights),
		"caps.max_growth_multiplier":                          positiveOrNil(sc.Caps.MaxGrowthMultiplier),
		"resources.usable_mass_kg":                            usable,
		"transport.fleet_power_MW":                            *sc.Transport.FleetPowerMW,
		"transport.area_per_MW_per_day":                       *sc.Transport.AreaPerMWPerDay,
		"transport.area_cap_m2_per_day":                       *sc.Transport.FleetPowerMW * *sc.Transport.AreaPerMWPerDay,
		"beaming.tx_conversion":                               *sc.Beaming.TxConversion,
		"beaming.pointing":                                    *sc.Beaming.Pointing,
		"beaming.rx_conversion":                               *sc.Beaming.RxConversion,
		"beaming.earth_atmosphere":                            *sc.Beaming.EarthAtmosphere,
		"beaming.total_chain_efficiency":                      sc.Beaming.Chain(),
		"collectors.efficiency_1AU":                           *collector.Efficiency1AU,
		"collectors.degradation_per_year":                     collector.DegradationPerYear,
		"mercury_site.radiator_area_m2":                       *sc.MercurySite.RadiatorAreaM2,
		"vehicles.launchers.mercury_mass_driver.cooldown_s":   *md.CooldownS,
		"vehicles.launchers.mercury_mass_driver.mtbf_h":       positiveOrNil(md.MTBFHours),
		"vehicles.launchers.mercury_mass_driver.mttr_h":       positiveOrNil(md.MTTRHours),
		"vehicles.launchers.mercury_mass_driver.availability": availability,
		"targets.total_collector_area_m2":                     sc.Targets.TotalCollectorAreaM2,
		"targets.optical_depth_max":                           *sc.Targets.OpticalDepthMax,
	}

	return Provenance{Docs: scenario.ParameterDocMap(), Values: values}
}

// ProvenanceFor documents a scenario without running it
func ProvenanceFor(sc scenario.Scenario) Provenance {
	resolved := sc.WithDefaults()
	return newProvenance(resolved, resolved.UsableResourceMassKg())
}
