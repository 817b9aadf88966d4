package simulation

import "github.com/andrescamacho/swarmsim-go/internal/domain/mission"

// DayRecord is one row of the run time series
type DayRecord struct {
	Day                 int
	Phase               mission.Phase
	CollectorAreaM2     float64
	StructureKg         float64
	LaunchedM2          float64
	TransportedM2       float64
	CumAreaM2           float64
	OpticalDepth        float64
	PowerGW             float64
	MassDriversOnline   int
	CadenceTotal        float64
	EnergyKWh           float64
	ResourceRemainingKg *float64
	UsedMassKg          float64
	GrowthMultiplier    float64
	TransportMWUsed     float64
	TransportMWh        float64
	BandAreaM2          []float64
	BandOpticalDepth    []float64
}

// Results is everything a finished run produced
type Results struct {
	Timeseries []DayRecord
	Events     []mission.Event
	Summary    Summary
	Parameters Provenance
}

// Final is the last time series row. Results always holds at least one day.
func (r *Results) Final() DayRecord {
	return r.Timeseries[len(r.Timeseries)-1]
}
