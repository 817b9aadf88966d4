package simulation

import "time"

// Run is a completed simulation together with what produced it
type Run struct {
	ID           RunID
	ScenarioName string
	Seed         int64
	HorizonYears int
	CreatedAt    time.Time
	// Label distinguishes sweep points and replicates sharing a scenario
	Label   string
	Results *Results
}

// NewRun stamps results with a fresh id
func NewRun(scenarioName string, seed int64, horizonYears int, createdAt time.Time, results *Results) *Run {
	return &Run{
		ID:           NewRunID(),
		ScenarioName: scenarioName,
		Seed:         seed,
		HorizonYears: horizonYears,
		CreatedAt:    createdAt,
		Results:      results,
	}
}
