package manufacturing

import (
	"fmt"
	"strings"
)

// LineRole decides where a line's throughput lands in the process graph
type LineRole string

const (
	RoleMining        LineRole = "mining"
	RoleBeneficiation LineRole = "beneficiation"
	RoleSmelting      LineRole = "smelting"
	RolePhotovoltaic  LineRole = "photovoltaic"
	RoleReflector     LineRole = "reflector"
	RoleStructure     LineRole = "structure"
	// RoleAuxiliary lines draw power but feed no tracked output
	RoleAuxiliary LineRole = "auxiliary"
)

// Units a line can report its throughput in
const (
	UnitKg   = "kg"
	UnitM2   = "m2"
	UnitNone = "unit"
)

var lineRolesByName = map[string]LineRole{
	"regolith_mining": RoleMining,
	"beneficiation":   RoleBeneficiation,
	"smelter":         RoleSmelting,
	"pv_line":         RolePhotovoltaic,
	"reflector_line":  RoleReflector,
	"structure_line":  RoleStructure,
}

// ParseLineRole accepts an explicit role, or infers it from the conventional
// line name when role is empty.
func ParseLineRole(role, lineName string) (LineRole, error) {
	if role == "" {
		if inferred, ok := lineRolesByName[strings.ToLower(lineName)]; ok {
			return inferred, nil
		}
		return RoleAuxiliary, nil
	}

	switch r := LineRole(strings.ToLower(role)); r {
	case RoleMining, RoleBeneficiation, RoleSmelting, RolePhotovoltaic, RoleReflector, RoleStructure, RoleAuxiliary:
		return r, nil
	default:
		return "", fmt.Errorf("unknown line role %q for line %s", role, lineName)
	}
}

// Line is a named production line. It is immutable after construction.
type Line struct {
	name             string
	role             LineRole
	powerKW          float64
	throughputPerDay float64
	unit             string
	reliability      *Reliability
}

// NewLine creates a manufacturing line
func NewLine(name string, role LineRole, powerKW, throughputPerDay float64, unit string, reliability *Reliability) (*Line, error) {
	if name == "" {
		return nil, fmt.Errorf("line name cannot be empty")
	}
	if unit == "" {
		unit = UnitNone
	}
	return &Line{
		name:             name,
		role:             role,
		powerKW:          powerKW,
		throughputPerDay: throughputPerDay,
		unit:             unit,
		reliability:      reliability,
	}, nil
}

func (l *Line) Name() string              { return l.name }
func (l *Line) Role() LineRole            { return l.role }
func (l *Line) PowerKW() float64          { return l.powerKW }
func (l *Line) ThroughputPerDay() float64 { return l.throughputPerDay }
func (l *Line) Unit() string              { return l.unit }
func (l *Line) Reliability() *Reliability { return l.reliability }
func (l *Line) Availability() float64     { return AvailabilityOf(l.reliability) }

// EffectiveThroughput is the daily output after uptime, learning and
// availability. Inputs are not range-checked.
func (l *Line) EffectiveThroughput(uptimeFraction, learningFactor float64) float64 {
	return l.throughputPerDay * uptimeFraction * learningFactor * l.Availability()
}

// DailyEnergyKWh scales the nameplate draw by the same factors as throughput
func (l *Line) DailyEnergyKWh(uptimeFraction, learningFactor, growthMultiplier float64) float64 {
	return l.powerKW * 24.0 * uptimeFraction * learningFactor * l.Availability() * growthMultiplier
}
