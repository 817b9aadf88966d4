package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

var timeseriesColumns = []string{
	"day", "phase", "pv_m2", "structure_kg", "launched_m2", "transported_m2",
	"cum_area_m2", "optical_depth", "power_GW_1AU_equiv", "mass_drivers_online",
	"cadence_total", "energy_kWh", "resource_remaining_kg", "used_mass_kg_day",
	"growth_multiplier", "transport_MW_used", "transport_MWh",
}

var eventColumns = []string{"day", "type", "area_m2", "system", "mass_drivers_online"}

var bandColumns = []string{
	"index", "a_AU_min", "a_AU_max", "a_AU_mean", "weight", "cum_area_m2",
	"optical_depth", "power_GW", "equilibrium_temp_K", "pv_eff_thermal_derated",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// optional values are written as empty cells
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// WriteTimeseriesCSV writes one row per day followed by per-band area and
// optical depth columns
func WriteTimeseriesCSV(w io.Writer, rows []simulation.DayRecord) error {
	bands := 0
	if len(rows) > 0 {
		bands = len(rows[0].BandAreaM2)
	}

	header := append([]string(nil), timeseriesColumns...)
	for i := 0; i < bands; i++ {
		header = append(header, fmt.Sprintf("band_%d_area_m2", i))
	}
	for i := 0; i < bands; i++ {
		header = append(header, fmt.Sprintf("band_%d_od", i))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Day),
			strconv.Itoa(int(r.Phase)),
			formatFloat(r.CollectorAreaM2),
			formatFloat(r.StructureKg),
			formatFloat(r.LaunchedM2),
			formatFloat(r.TransportedM2),
			formatFloat(r.CumAreaM2),
			formatFloat(r.OpticalDepth),
			formatFloat(r.PowerGW),
			strconv.Itoa(r.MassDriversOnline),
			formatFloat(r.CadenceTotal),
			formatFloat(r.EnergyKWh),
			formatOptional(r.ResourceRemainingKg),
			formatFloat(r.UsedMassKg),
			formatFloat(r.GrowthMultiplier),
			formatFloat(r.TransportMWUsed),
			formatFloat(r.TransportMWh),
		}
		for i := 0; i < bands; i++ {
			record = append(record, formatFloat(r.BandAreaM2[i]))
		}
		for i := 0; i < bands; i++ {
			record = append(record, formatFloat(r.BandOpticalDepth[i]))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEventsCSV writes events in occurrence order. Fields an event type
// does not carry are left empty.
func WriteEventsCSV(w io.Writer, events []mission.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(eventColumns); err != nil {
		return err
	}

	for _, e := range events {
		area, online := "", ""
		switch e.Type {
		case mission.EventLaunch:
			area = formatFloat(e.AreaM2)
		case mission.EventInfrastructure:
			online = strconv.Itoa(e.MassDriversOnline)
		}
		if err := cw.Write([]string{strconv.Itoa(e.Day), string(e.Type), area, e.System, online}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBandSummaryCSV writes the final per-band figures
func WriteBandSummaryCSV(w io.Writer, bands []simulation.BandSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bandColumns); err != nil {
		return err
	}

	for _, b := range bands {
		record := []string{
			strconv.Itoa(b.Index),
			formatFloat(b.InnerAU),
			formatFloat(b.OuterAU),
			formatFloat(b.MeanAU),
			formatFloat(b.Weight),
			formatFloat(b.CumAreaM2),
			formatFloat(b.OpticalDepth),
			formatFloat(b.PowerGW),
			formatFloat(b.EquilibriumTempK),
			formatFloat(b.PVEfficiencyThermal),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
