package simulation

import (
	"fmt"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
	"github.com/andrescamacho/swarmsim-go/internal/domain/scenario"
)

const kgPerTonne = 1000.0

func buildLines(nodes []scenario.NodeConfig) ([]*manufacturing.Line, error) {
	lines := make([]*manufacturing.Line, 0, len(nodes))
	for _, node := range nodes {
		role, err := manufacturing.ParseLineRole(node.Role, node.Name)
		if err != nil {
			return nil, &scenario.ConfigError{Field: "factories.nodes", Message: err.Error()}
		}

		throughput, unit := 0.0, manufacturing.UnitNone
		switch {
		case node.ThroughputTPerDay != nil:
			throughput, unit = *node.ThroughputTPerDay*kgPerTonne, manufacturing.UnitKg
		case node.ThroughputM2PerDay != nil:
			throughput, unit = *node.ThroughputM2PerDay, manufacturing.UnitM2
		case node.ThroughputKgPerDay != nil:
			throughput, unit = *node.ThroughputKgPerDay, manufacturing.UnitKg
		}

		line, err := manufacturing.NewLine(node.Name, role, node.KW, throughput, unit,
			manufacturing.NewReliability(node.MTBFHours, node.MTTRHours))
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func buildFactory(sc scenario.Scenario) (*manufacturing.Factory, error) {
	lines, err := buildLines(sc.Factories.Nodes)
	if err != nil {
		return nil, err
	}

	rep := sc.Factories.Replication
	factory, err := manufacturing.NewFactory(manufacturing.FactoryConfig{
		Lines: lines,
		Replication: manufacturing.ReplicationConfig{
			FactoryKitMassKg:     rep.FactoryKitMassKg,
			ReplicationFactor:    rep.ReplicationFactor,
			ReplicationCycleDays: rep.ReplicationCycleDays,
		},
		MaxGrowthMultiplier:       sc.MaxGrowthMultiplier(),
		ResourceLimitKg:           sc.UsableResourceMassKg(),
		CollectorArealDensityKgM2: *sc.Collectors.DefaultCollector().ArealDensityKgM2,
		MassDriverBuildDays:       *sc.Factories.MassDriverBuild.DurationDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build factory: %w", err)
	}
	return factory, nil
}

func buildPrimaryLauncher(sc scenario.Scenario) (mission.LaunchSystem, error) {
	md := sc.Vehicles.Launchers.MercuryMassDriver
	return mission.NewLaunchSystem(mission.MercuryMassDriver, *md.MaxG, *md.CooldownS, *md.MuzzleDeltaVMS,
		manufacturing.NewReliability(md.MTBFHours, md.MTTRHours))
}

func buildBands(sc scenario.Scenario) ([]mission.OrbitBand, error) {
	ranges := sc.Bands()
	bands := make([]mission.OrbitBand, 0, len(ranges))
	for _, r := range ranges {
		band, err := mission.NewOrbitBand(r[0], r[1])
		if err != nil {
			return nil, &scenario.ConfigError{Field: "launch_strategy", Message: err.Error()}
		}
		bands = append(bands, band)
	}
	return bands, nil
}

func buildScheduler(sc scenario.Scenario) (*mission.Scheduler, error) {
	factory, err := buildFactory(sc)
	if err != nil {
		return nil, err
	}
	primary, err := buildPrimaryLauncher(sc)
	if err != nil {
		return nil, err
	}
	phases, err := mission.NewPhases(*sc.Phases.Phase0Days, *sc.Phases.Phase1Days, *sc.Phases.Phase2Days)
	if err != nil {
		return nil, err
	}

	return mission.NewScheduler(factory, mission.SchedulerConfig{
		Phases:           phases,
		UptimeFraction:   *sc.Production.UptimeFraction,
		LearningB:        *sc.Production.LearningCurveB,
		PackageAreaM2:    *sc.Collectors.DefaultCollector().AreaM2,
		CadenceCapPerDay: *sc.LaunchStrategy.CadencePerDay,
		Primary:          primary,
	}), nil
}
