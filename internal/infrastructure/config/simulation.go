package config

// SimulationConfig holds defaults for the run and sweep commands
type SimulationConfig struct {
	// ScenarioPath is overlaid on the built-in Mercury baseline; empty runs
	// the baseline as is
	ScenarioPath string `mapstructure:"scenario_path"`

	// OutputDir receives one directory per run
	OutputDir string `mapstructure:"output_dir" validate:"required"`

	// SweepWorkers bounds how many runs execute at once
	SweepWorkers int `mapstructure:"sweep_workers" validate:"min=1,max=256"`

	// Persist stores every completed run in the database
	Persist bool `mapstructure:"persist"`
}
