package manufacturing

import "sort"

// inventoryTolerance absorbs float noise on withdrawals
const inventoryTolerance = 1e-9

// Inventory is a named mass ledger in kilograms
type Inventory struct {
	massKg map[string]float64
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{massKg: make(map[string]float64)}
}

// Add deposits kg of the named item
func (inv *Inventory) Add(name string, kg float64) {
	inv.massKg[name] += kg
}

// Remove withdraws kg of the named item. Withdrawing more than is held is a
// hard error and leaves the inventory unchanged.
func (inv *Inventory) Remove(name string, kg float64) error {
	available := inv.massKg[name]
	if kg > available+inventoryTolerance {
		return &ErrInsufficientInventory{Item: name, Available: available, Requested: kg}
	}
	inv.massKg[name] = available - kg
	return nil
}

// Mass returns the held mass of one item (0 if absent)
func (inv *Inventory) Mass(name string) float64 {
	return inv.massKg[name]
}

// TotalMass sums all items
func (inv *Inventory) TotalMass() float64 {
	total := 0.0
	for _, name := range inv.Items() {
		total += inv.massKg[name]
	}
	return total
}

// Items lists item names in a stable order
func (inv *Inventory) Items() []string {
	names := make([]string, 0, len(inv.massKg))
	for name := range inv.massKg {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
