package scenario

// ParameterDoc explains what one tunable does to the trajectory
type ParameterDoc struct {
	Key         string
	Description string
}

// ParameterDocs is the documented parameter set, in display order
var ParameterDocs = []ParameterDoc{
	{"horizon_years", "Simulation length; longer horizon allows later phases to accrue area/power."},
	{"phases.phase0_days", "Initial setup (no launches); affects when production/launching starts."},
	{"phases.phase1_days", "Ramp-up phase; launches are still gated until phase 2."},
	{"phases.phase2_days", "Steady expansion phase when daily collector production can be launched."},
	{"production.uptime_fraction", "Multiplies all manufacturing line throughputs."},
	{"production.learning_curve_b", "Learning-curve exponent; lower b accelerates throughput growth over time."},
	{"launch_strategy.cadence_per_day", "Global cap on packages launched per day across rails."},
	{"launch_strategy.target_a_AU_range", "Single deployment band; sets mean radius for optical depth and 1/r^2 power."},
	{"launch_strategy.target_bands_AU", "Multiple deployment bands; area split by optional band_weights; per-band optical depth and power tracked."},
	{"launch_strategy.band_weights", "Optional weights for area split across bands; normalized to 1."},
	{"caps.max_growth_multiplier", "Upper bound on replication growth multiplier (limits exponential growth)."},
	{"resources.usable_mass_kg", "Usable in-situ material mass; derived from site body composition unless set."},
	{"transport.fleet_power_MW", "Tug fleet electrical power; caps daily deployed area."},
	{"transport.area_per_MW_per_day", "Scaling from fleet power to deployed area per day (model constant)."},
	{"beaming.tx_conversion", "Transmitter conversion efficiency factor in delivered power."},
	{"beaming.pointing", "Pointing/phase efficiency factor in delivered power."},
	{"beaming.rx_conversion", "Receiver conversion efficiency factor in delivered power."},
	{"beaming.earth_atmosphere", "Atmospheric transmission factor for delivered power to Earth."},
	{"collectors.efficiency_1AU", "Base PV efficiency at 1 AU for the default collector type."},
	{"collectors.degradation_per_year", "Annual PV degradation; reduces efficiency exponentially over years."},
	{"mercury_site.radiator_area_m2", "Thermal derating proxy; larger radiators reduce efficiency losses."},
	{"vehicles.launchers.mercury_mass_driver.cooldown_s", "Cooldown between shots; sets base launch cadence."},
	{"vehicles.launchers.mercury_mass_driver.mtbf_h", "Mean time between failures; with MTTR sets availability for cadence."},
	{"vehicles.launchers.mercury_mass_driver.mttr_h", "Mean time to repair; with MTBF sets availability for cadence."},
	{"targets.total_collector_area_m2", "Target cumulative area; summary reports time to reach if within horizon."},
	{"targets.optical_depth_max", "Reference optical depth threshold; reported optical depth is capped to this for readability."},
}

// ParameterDocMap indexes ParameterDocs by key
func ParameterDocMap() map[string]string {
	docs := make(map[string]string, len(ParameterDocs))
	for _, d := range ParameterDocs {
		docs[d.Key] = d.Description
	}
	return docs
}
