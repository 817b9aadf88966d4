package persistence

import (
	"time"
)

// SimulationRunModel represents the simulation_runs table. The summary and
// provenance are stored whole; the headline figures are copied into columns
// so listings do not need to decode them.
type SimulationRunModel struct {
	ID               string    `gorm:"column:id;primaryKey;not null"`
	ScenarioName     string    `gorm:"column:scenario_name;index;not null"`
	Seed             int64     `gorm:"column:seed;not null"`
	HorizonYears     int       `gorm:"column:horizon_years;not null"`
	Label            string    `gorm:"column:label"`
	CreatedAt        time.Time `gorm:"column:created_at;index;not null"`
	DayCount         int       `gorm:"column:day_count;not null"`
	YearsToTarget    *float64  `gorm:"column:years_to_target"`
	TotalAreaM2      float64   `gorm:"column:total_area_m2;not null"`
	DeliveredPowerGW float64   `gorm:"column:delivered_power_gw;not null"`
	Summary          string    `gorm:"column:summary;type:text"`    // JSON as text
	Parameters       string    `gorm:"column:parameters;type:text"` // JSON as text
}

func (SimulationRunModel) TableName() string {
	return "simulation_runs"
}

// SimulationDayModel represents the simulation_days table, one row per
// simulated day
type SimulationDayModel struct {
	RunID               string   `gorm:"column:run_id;primaryKey;not null"`
	Day                 int      `gorm:"column:day;primaryKey;not null"`
	Phase               int      `gorm:"column:phase;not null"`
	CollectorAreaM2     float64  `gorm:"column:collector_area_m2"`
	StructureKg         float64  `gorm:"column:structure_kg"`
	LaunchedM2          float64  `gorm:"column:launched_m2"`
	TransportedM2       float64  `gorm:"column:transported_m2"`
	CumAreaM2           float64  `gorm:"column:cum_area_m2"`
	OpticalDepth        float64  `gorm:"column:optical_depth"`
	PowerGW             float64  `gorm:"column:power_gw"`
	MassDriversOnline   int      `gorm:"column:mass_drivers_online"`
	CadenceTotal        float64  `gorm:"column:cadence_total"`
	EnergyKWh           float64  `gorm:"column:energy_kwh"`
	ResourceRemainingKg *float64 `gorm:"column:resource_remaining_kg"`
	UsedMassKg          float64  `gorm:"column:used_mass_kg"`
	GrowthMultiplier    float64  `gorm:"column:growth_multiplier"`
	TransportMWUsed     float64  `gorm:"column:transport_mw_used"`
	TransportMWh        float64  `gorm:"column:transport_mwh"`
	BandAreaM2          string   `gorm:"column:band_area_m2;type:text"`       // JSON array as text
	BandOpticalDepth    string   `gorm:"column:band_optical_depth;type:text"` // JSON array as text
}

func (SimulationDayModel) TableName() string {
	return "simulation_days"
}

// SimulationEventModel represents the simulation_events table
type SimulationEventModel struct {
	ID                int     `gorm:"column:id;primaryKey;autoIncrement"`
	RunID             string  `gorm:"column:run_id;index;not null"`
	Day               int     `gorm:"column:day;not null"`
	Type              string  `gorm:"column:type;not null"`
	AreaM2            float64 `gorm:"column:area_m2"`
	System            string  `gorm:"column:system"`
	MassDriversOnline int     `gorm:"column:mass_drivers_online"`
}

func (SimulationEventModel) TableName() string {
	return "simulation_events"
}
