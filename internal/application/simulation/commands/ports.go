package commands

import (
	"github.com/andrescamacho/swarmsim-go/internal/domain/scenario"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

// ScenarioSource resolves a scenario file plus dotted-key overrides into a
// validated scenario with defaults applied
type ScenarioSource interface {
	Load(path string, overrides map[string]interface{}) (*scenario.Scenario, error)
}

// ResultsWriter writes a run's outputs under a directory
type ResultsWriter interface {
	Write(dir string, results *simulation.Results) error
}
