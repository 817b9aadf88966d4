package scenario

// Scenario is the fully typed description of one build-out run. Optional
// scalars are pointers so an absent value can be told apart from zero;
// ApplyDefaults fills every one of them.
type Scenario struct {
	Name         string `mapstructure:"name"`
	Seed         int64  `mapstructure:"seed"`
	HorizonYears *int   `mapstructure:"horizon_years" validate:"omitempty,gte=0"`

	Phases         PhasesConfig         `mapstructure:"phases"`
	Production     ProductionConfig     `mapstructure:"production"`
	Caps           CapsConfig           `mapstructure:"caps"`
	LaunchStrategy LaunchStrategyConfig `mapstructure:"launch_strategy"`
	Transport      TransportConfig      `mapstructure:"transport"`
	Beaming        BeamingConfig        `mapstructure:"beaming"`
	Collectors     CollectorsConfig     `mapstructure:"collectors"`
	MercurySite    SiteConfig           `mapstructure:"mercury_site"`
	Resources      ResourcesConfig      `mapstructure:"resources"`
	Bodies         BodiesConfig         `mapstructure:"bodies"`
	Vehicles       VehiclesConfig       `mapstructure:"vehicles"`
	Factories      FactoriesConfig      `mapstructure:"factories"`
	Targets        TargetsConfig        `mapstructure:"targets"`
	EarthBootstrap EarthBootstrapConfig `mapstructure:"earth_bootstrap"`
}

// PhasesConfig holds the mission windows in days
type PhasesConfig struct {
	Phase0Days *int `mapstructure:"phase0_days" validate:"omitempty,gte=0"`
	Phase1Days *int `mapstructure:"phase1_days" validate:"omitempty,gte=0"`
	Phase2Days *int `mapstructure:"phase2_days" validate:"omitempty,gte=0"`
}

// ProductionConfig scales every manufacturing line
type ProductionConfig struct {
	UptimeFraction *float64 `mapstructure:"uptime_fraction" validate:"omitempty,gte=0"`
	LearningCurveB *float64 `mapstructure:"learning_curve_b" validate:"omitempty,gte=0"`
}

// CapsConfig bounds exponential growth
type CapsConfig struct {
	// MaxGrowthMultiplier absent or <= 0 means unbounded
	MaxGrowthMultiplier *float64 `mapstructure:"max_growth_multiplier"`
}

// LaunchStrategyConfig selects deployment bands and the global cadence cap.
// TargetBandsAU wins over TargetARangeAU when both are set.
type LaunchStrategyConfig struct {
	TargetARangeAU []float64   `mapstructure:"target_a_AU_range" validate:"omitempty,len=2,dive,gt=0"`
	TargetBandsAU  [][]float64 `mapstructure:"target_bands_AU" validate:"omitempty,dive,len=2,dive,gt=0"`
	BandWeights    []float64   `mapstructure:"band_weights"`
	CadencePerDay  *float64    `mapstructure:"cadence_per_day" validate:"omitempty,gte=0"`
}

// TransportConfig sizes the electric tug fleet bottleneck
type TransportConfig struct {
	FleetPowerMW    *float64 `mapstructure:"fleet_power_MW" validate:"omitempty,gte=0"`
	AreaPerMWPerDay *float64 `mapstructure:"area_per_MW_per_day" validate:"omitempty,gte=0"`
}

// BeamingConfig is the four-stage power beaming loss chain
type BeamingConfig struct {
	TxConversion    *float64 `mapstructure:"tx_conversion" validate:"omitempty,gte=0,lte=1"`
	Pointing        *float64 `mapstructure:"pointing" validate:"omitempty,gte=0,lte=1"`
	RxConversion    *float64 `mapstructure:"rx_conversion" validate:"omitempty,gte=0,lte=1"`
	EarthAtmosphere *float64 `mapstructure:"earth_atmosphere" validate:"omitempty,gte=0,lte=1"`
}

// Chain multiplies the four stages. Call after ApplyDefaults.
func (b BeamingConfig) Chain() float64 {
	return *b.TxConversion * *b.Pointing * *b.RxConversion * *b.EarthAtmosphere
}

// CollectorsConfig lists collector designs; the first is the default
type CollectorsConfig struct {
	CollectorTypes []CollectorType `mapstructure:"collector_types" validate:"dive"`
}

// CollectorType is one collector design
type CollectorType struct {
	Name               string   `mapstructure:"name"`
	Efficiency1AU      *float64 `mapstructure:"efficiency_1AU" validate:"omitempty,gte=0,lte=1"`
	DegradationPerYear float64  `mapstructure:"degradation_per_year" validate:"gte=0,lte=1"`
	ArealDensityKgM2   *float64 `mapstructure:"areal_density_kg_m2" validate:"omitempty,gte=0"`
	AreaM2             *float64 `mapstructure:"area_m2" validate:"omitempty,gt=0"`
	Absorptivity       *float64 `mapstructure:"absorptivity" validate:"omitempty,gte=0,lte=1"`
	Emissivity         *float64 `mapstructure:"emissivity"`
	TempCoeffPerK      *float64 `mapstructure:"temp_coeff_per_K"`
}

// DefaultCollector is the first configured collector type
func (c CollectorsConfig) DefaultCollector() CollectorType {
	return c.CollectorTypes[0]
}

// SiteConfig describes the surface installation
type SiteConfig struct {
	RadiatorAreaM2 *float64 `mapstructure:"radiator_area_m2" validate:"omitempty,gte=0"`
}

// ResourcesConfig controls how much of the site body can be mined
type ResourcesConfig struct {
	SiteBody     string            `mapstructure:"site_body"`
	MiningDepthM *float64          `mapstructure:"mining_depth_m" validate:"omitempty,gte=0"`
	Utilization  UtilizationConfig `mapstructure:"utilization"`
	// UsableMassKg > 0 replaces the composition-derived estimate
	UsableMassKg *float64 `mapstructure:"usable_mass_kg"`
}

// UtilizationConfig is the recoverable fraction of each feedstock
type UtilizationConfig struct {
	Fe   *float64 `mapstructure:"Fe" validate:"omitempty,gte=0"`
	SiO2 *float64 `mapstructure:"SiO2" validate:"omitempty,gte=0"`
}

// BodiesConfig is the planetary body catalogue
type BodiesConfig struct {
	Bodies []Body `mapstructure:"bodies" validate:"dive"`
}

// Body is one planetary body record
type Body struct {
	Name                string             `mapstructure:"name" validate:"required"`
	Type                string             `mapstructure:"type"`
	RadiusM             *float64           `mapstructure:"radius_m" validate:"omitempty,gt=0"`
	MeanDensityKgM3     *float64           `mapstructure:"mean_density_kg_m3" validate:"omitempty,gt=0"`
	OrbitalAAU          *float64           `mapstructure:"orbital_a_AU" validate:"omitempty,gt=0"`
	OrbitalE            *float64           `mapstructure:"orbital_e"`
	CompositionMassFrac map[string]float64 `mapstructure:"composition_mass_frac"`
	MiningNotes         string             `mapstructure:"mining_notes"`
}

// VehiclesConfig groups launchers and tugs
type VehiclesConfig struct {
	Launchers LaunchersConfig `mapstructure:"launchers"`
	Tugs      TugsConfig      `mapstructure:"tugs"`
}

// LaunchersConfig holds the surface launcher and the Earth bootstrap vehicle
type LaunchersConfig struct {
	MercuryMassDriver MassDriverConfig      `mapstructure:"mercury_mass_driver"`
	EarthToTransfer   EarthToTransferConfig `mapstructure:"earth_to_transfer"`
}

// MassDriverConfig is the primary launcher. Reliability applies only when
// both MTBF and MTTR are given.
type MassDriverConfig struct {
	MaxG           *float64 `mapstructure:"max_g" validate:"omitempty,gt=0"`
	CooldownS      *float64 `mapstructure:"cooldown_s"`
	MuzzleDeltaVMS *float64 `mapstructure:"muzzle_delta_v_m_s" validate:"omitempty,gt=0"`
	MTBFHours      *float64 `mapstructure:"mtbf_h" validate:"omitempty,gte=0"`
	MTTRHours      *float64 `mapstructure:"mttr_h" validate:"omitempty,gte=0"`
}

// EarthToTransferConfig is the Earth-launched bootstrap vehicle
type EarthToTransferConfig struct {
	PayloadKg float64 `mapstructure:"payload_kg" validate:"gte=0"`
}

// TugsConfig holds the in-space transport vehicles
type TugsConfig struct {
	ElecTug ElecTugConfig `mapstructure:"elec_tug"`
}

// ElecTugConfig is the electric tug. FleetPowerMW is a fallback for the
// transport section.
type ElecTugConfig struct {
	FleetPowerMW *float64 `mapstructure:"fleet_power_MW" validate:"omitempty,gte=0"`
	PowerKW      float64  `mapstructure:"power_kW" validate:"gte=0"`
}

// FactoriesConfig describes the production complex
type FactoriesConfig struct {
	Nodes           []NodeConfig          `mapstructure:"nodes" validate:"dive"`
	MassDriverBuild MassDriverBuildConfig `mapstructure:"mass_driver_build"`
	Replication     *ReplicationConfig    `mapstructure:"replication"`
}

// NodeConfig is one manufacturing line. At most one throughput field is
// expected; tonnes take precedence, then square metres, then kilograms.
type NodeConfig struct {
	Name               string   `mapstructure:"name" validate:"required"`
	Role               string   `mapstructure:"role"`
	KW                 float64  `mapstructure:"kW" validate:"gte=0"`
	ThroughputTPerDay  *float64 `mapstructure:"throughput_t_per_day" validate:"omitempty,gte=0"`
	ThroughputM2PerDay *float64 `mapstructure:"throughput_m2_per_day" validate:"omitempty,gte=0"`
	ThroughputKgPerDay *float64 `mapstructure:"throughput_kg_per_day" validate:"omitempty,gte=0"`
	MTBFHours          *float64 `mapstructure:"mtbf_h" validate:"omitempty,gte=0"`
	MTTRHours          *float64 `mapstructure:"mttr_h" validate:"omitempty,gte=0"`
}

// MassDriverBuildConfig is the effort to commission one mass driver
type MassDriverBuildConfig struct {
	DurationDays *float64 `mapstructure:"duration_days" validate:"omitempty,gt=0"`
}

// ReplicationConfig is the factory self-copy economics. It has no defaults.
type ReplicationConfig struct {
	FactoryKitMassKg     float64 `mapstructure:"factory_kit_mass_kg" validate:"gt=0"`
	ReplicationFactor    float64 `mapstructure:"replication_factor" validate:"gte=1"`
	ReplicationCycleDays float64 `mapstructure:"replication_cycle_days" validate:"gt=0"`
}

// TargetsConfig is the build-out goal
type TargetsConfig struct {
	TotalCollectorAreaM2 float64  `mapstructure:"total_collector_area_m2" validate:"gte=0"`
	OpticalDepthMax      *float64 `mapstructure:"optical_depth_max" validate:"omitempty,gt=0"`
}

// EarthBootstrapConfig counts seed launches from Earth
type EarthBootstrapConfig struct {
	Launches int `mapstructure:"launches" validate:"gte=0"`
}
