package simulation

// Summary is the end-of-run digest. Optional figures are nil when they are
// undefined for the run, e.g. per-m2 intensities with no area deployed.
type Summary struct {
	YearsToTarget           *float64              `json:"years_to_target"`
	TotalAreaM2             float64               `json:"total_area_m2"`
	DeliveredPowerGW        float64               `json:"delivered_power_GW_at_1AU_equiv"`
	EarthMassKg             float64               `json:"earth_mass_kg"`
	InSituFraction          float64               `json:"in_situ_fraction"`
	EnergyKWhTotal          float64               `json:"energy_kWh_total"`
	EnergyPerM2KWh          *float64              `json:"energy_per_m2_kWh_m2"`
	TransportMWhTotal       float64               `json:"transport_MWh_total"`
	TransportEnergyPerM2KWh *float64              `json:"transport_energy_per_m2_kWh_m2"`
	MassDriversOnline       int                   `json:"mass_drivers_online"`
	MassDriverAvailability  *float64              `json:"mass_driver_availability"`
	Materials               MaterialsSummary      `json:"materials"`
	Bands                   []BandSummary         `json:"bands"`
	Efficiencies            EfficiencySummary     `json:"efficiencies"`
	Transport               TransportSummary      `json:"transport"`
	Caps                    CapsSummary           `json:"caps"`
	LaunchSystems           []LaunchSystemSummary `json:"launch_systems"`
}

type MaterialsSummary struct {
	CollectorArealDensityKgM2 float64  `json:"collector_areal_density_kg_m2"`
	CollectorMassKg           float64  `json:"collector_mass_kg"`
	StructureKgTotal          float64  `json:"structure_kg_total"`
	OreKgTotal                float64  `json:"ore_kg_total"`
	RefinedKgTotal            float64  `json:"refined_kg_total"`
	ResourceUsedKgTotal       float64  `json:"resource_used_kg_total"`
	ResourceRemainingKgFinal  *float64 `json:"resource_remaining_kg_final"`
}

// BandSummary is the final state of one deployment band. The thermal
// figures describe a collector parked at the band mean and do not feed the
// power figure.
type BandSummary struct {
	Index               int       `json:"index"`
	InnerAU             float64   `json:"a_AU_min"`
	OuterAU             float64   `json:"a_AU_max"`
	MeanAU              float64   `json:"a_AU_mean"`
	Weight              float64   `json:"weight"`
	CumAreaM2           float64   `json:"cum_area_m2"`
	OpticalDepth        float64   `json:"optical_depth"`
	PowerGW             float64   `json:"power_GW"`
	EquilibriumTempK    float64   `json:"equilibrium_temp_K"`
	PVEfficiencyThermal float64   `json:"pv_eff_thermal_derated"`
	SampleAAU           []float64 `json:"sample_a_AU"`
}

type EfficiencySummary struct {
	PVEff1AUBase       float64        `json:"pv_eff_1au_base"`
	PVEff1AUEnd        float64        `json:"pv_eff_1au_end"`
	ThermalDerate      float64        `json:"thermal_derate"`
	Beaming            BeamingSummary `json:"beaming"`
	EffectiveEff1AUEnd float64        `json:"effective_eff_1au_end"`
}

type BeamingSummary struct {
	TxConversion    float64 `json:"tx_conversion"`
	Pointing        float64 `json:"pointing"`
	RxConversion    float64 `json:"rx_conversion"`
	EarthAtmosphere float64 `json:"earth_atmosphere"`
	Chain           float64 `json:"chain"`
}

type TransportSummary struct {
	FleetPowerMW      float64  `json:"fleet_power_MW"`
	AreaPerMWPerDay   float64  `json:"area_per_MW_per_day"`
	AreaCapM2PerDay   float64  `json:"area_cap_m2_per_day"`
	ImpliedTugCount   *float64 `json:"implied_tug_count"`
	TugPowerKW        *float64 `json:"tug_power_kW"`
	TransportMWhTotal float64  `json:"transport_MWh_total"`
}

type CapsSummary struct {
	MaxGrowthMultiplier   *float64 `json:"max_growth_multiplier"`
	GrowthMultiplierFinal float64  `json:"growth_multiplier_final"`
}

// LaunchSystemSummary characterises a launcher. Only the primary drives the
// schedule.
type LaunchSystemSummary struct {
	Name           string  `json:"name"`
	Primary        bool    `json:"primary"`
	MaxG           float64 `json:"max_g"`
	CooldownS      float64 `json:"cooldown_s"`
	MuzzleDeltaVMS float64 `json:"muzzle_delta_v_m_s"`
	CadencePerDay  float64 `json:"cadence_per_day"`
	RailLengthM    float64 `json:"rail_length_m"`
	// TransferDeltaVMS is the Hohmann total from the site orbit to each band mean
	TransferDeltaVMS []float64 `json:"transfer_delta_v_m_s,omitempty"`
}
