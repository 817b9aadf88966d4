package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	// Arrange
	t.Chdir(t.TempDir())

	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "swarmsim.db", cfg.Database.Path)
	assert.Equal(t, 500, cfg.Database.BatchSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
	assert.Equal(t, "runs", cfg.Simulation.OutputDir)
	assert.Positive(t, cfg.Simulation.SweepWorkers)
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "swarmsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
simulation:
  output_dir: /tmp/swarm-runs
  sweep_workers: 3
`), 0o644))
	t.Setenv("SWARM_LOGGING_FORMAT", "json")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/swarm-runs", cfg.Simulation.OutputDir)
	assert.Equal(t, 3, cfg.Simulation.SweepWorkers)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swarmsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  type: mysql\n"), 0o644))

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'database.type' failed validation: oneof")
}

func TestValidateConfig_FileOutputNeedsPath(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Logging.Output = "file"

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.file_path")
}
