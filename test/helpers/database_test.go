package helpers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/persistence"
	"github.com/andrescamacho/swarmsim-go/test/helpers"
)

func TestNewTestDB_MigratesAndClosesOnCleanup(t *testing.T) {
	// Arrange
	var db *gorm.DB

	// Act
	t.Run("open", func(t *testing.T) {
		db = helpers.NewTestDB(t)
		assert.True(t, db.Migrator().HasTable(&persistence.SimulationRunModel{}))
	})

	// Assert
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "connection should be closed once the subtest ends")
}

func TestNewTestDB_StoresAreIsolated(t *testing.T) {
	// Arrange
	first := helpers.NewTestDB(t)
	second := helpers.NewTestDB(t)
	require.NoError(t, first.Create(&persistence.SimulationRunModel{
		ID:           "run-1",
		ScenarioName: "mercury_baseline",
		HorizonYears: 1,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DayCount:     365,
	}).Error)

	// Act
	var firstCount, secondCount int64
	require.NoError(t, first.Model(&persistence.SimulationRunModel{}).Count(&firstCount).Error)
	require.NoError(t, second.Model(&persistence.SimulationRunModel{}).Count(&secondCount).Error)

	// Assert
	assert.Equal(t, int64(1), firstCount)
	assert.Zero(t, secondCount)
}
