package scenario

import (
	"math"
	"strconv"
)

// Validate checks the cross-field rules struct tags cannot express. It
// expects defaults to have been applied.
func (s Scenario) Validate() error {
	if s.HorizonYears == nil || *s.HorizonYears <= 0 {
		return newConfigError("horizon_years", "must be a positive number of years, got %s", describeInt(s.HorizonYears))
	}

	if s.Factories.Replication == nil {
		return newConfigError("factories.replication", "is required")
	}
	rep := s.Factories.Replication
	if rep.FactoryKitMassKg <= 0 {
		return newConfigError("factories.replication.factory_kit_mass_kg", "must be positive")
	}
	if cycle := rep.ReplicationCycleDays; math.IsNaN(cycle) || math.IsInf(cycle, 0) || cycle <= 0 {
		return newConfigError("factories.replication.replication_cycle_days", "must be positive and finite, got %g", cycle)
	}
	if rep.ReplicationFactor < 1 {
		return newConfigError("factories.replication.replication_factor", "must be at least 1, got %g", rep.ReplicationFactor)
	}
	if len(s.Factories.Nodes) == 0 {
		return newConfigError("factories.nodes", "at least one manufacturing line is required")
	}
	seen := make(map[string]bool, len(s.Factories.Nodes))
	for _, node := range s.Factories.Nodes {
		if node.Name == "" {
			return newConfigError("factories.nodes", "line without a name")
		}
		if seen[node.Name] {
			return newConfigError("factories.nodes", "duplicate line %q", node.Name)
		}
		seen[node.Name] = true
	}

	if *s.Phases.Phase0Days < 0 || *s.Phases.Phase1Days < 0 || *s.Phases.Phase2Days < 0 {
		return newConfigError("phases", "durations must be non-negative")
	}

	if cooldown := *s.Vehicles.Launchers.MercuryMassDriver.CooldownS; cooldown <= 0 {
		return newConfigError("vehicles.launchers.mercury_mass_driver.cooldown_s", "must be positive, got %g", cooldown)
	}

	for i, ct := range s.Collectors.CollectorTypes {
		if *ct.Emissivity <= 0 {
			return newConfigError("collectors.collector_types", "entry %d: emissivity must be positive, got %g", i, *ct.Emissivity)
		}
	}

	if r := s.LaunchStrategy.TargetARangeAU; len(r) != 2 || r[0] <= 0 || r[1] < r[0] {
		return newConfigError("launch_strategy.target_a_AU_range", "must be [inner, outer] with 0 < inner <= outer, got %v", r)
	}
	for i, band := range s.LaunchStrategy.TargetBandsAU {
		if len(band) != 2 || band[0] <= 0 || band[1] < band[0] {
			return newConfigError("launch_strategy.target_bands_AU", "band %d must be [inner, outer] with 0 < inner <= outer, got %v", i, band)
		}
	}

	return nil
}

func describeInt(v *int) string {
	if v == nil {
		return "nothing"
	}
	return strconv.Itoa(*v)
}
