package manufacturing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
)

func TestInventory_AddAndRemove(t *testing.T) {
	// Arrange
	inv := manufacturing.NewInventory()
	inv.Add("iron", 100)
	inv.Add("iron", 50)
	inv.Add("silica", 20)

	// Act
	err := inv.Remove("iron", 120)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 30, inv.Mass("iron"), 1e-12)
	assert.InDelta(t, 50, inv.TotalMass(), 1e-12)
	assert.Equal(t, []string{"iron", "silica"}, inv.Items())
}

func TestInventory_RemoveWithinTolerance(t *testing.T) {
	inv := manufacturing.NewInventory()
	inv.Add("iron", 1.0)

	require.NoError(t, inv.Remove("iron", 1.0+1e-10))
	assert.InDelta(t, 0, inv.Mass("iron"), 1e-9)
}

func TestInventory_RemoveMoreThanAvailable(t *testing.T) {
	// Arrange
	inv := manufacturing.NewInventory()
	inv.Add("iron", 10)

	// Act
	err := inv.Remove("iron", 11)

	// Assert
	var insufficient *manufacturing.ErrInsufficientInventory
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "iron", insufficient.Item)
	assert.Equal(t, 10.0, insufficient.Available)
	assert.Equal(t, 11.0, insufficient.Requested)
	assert.Equal(t, 10.0, inv.Mass("iron"), "failed withdrawal must not change the ledger")
}

func TestInventory_RemoveUnknownItem(t *testing.T) {
	inv := manufacturing.NewInventory()

	err := inv.Remove("water", 1)

	var insufficient *manufacturing.ErrInsufficientInventory
	assert.ErrorAs(t, err, &insufficient)
}
