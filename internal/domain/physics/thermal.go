package physics

import "math"

// ReferenceCellTempK is the temperature PV efficiencies are rated at.
const ReferenceCellTempK = 298.15

// EquilibriumTemperatureK solves the radiative balance of a flat surface:
// alpha·S·F = epsilon·σ·T⁴.
func EquilibriumTemperatureK(alpha, epsilon, irradianceWM2, viewFactor float64) (float64, error) {
	if epsilon <= 0 {
		return 0, &ErrNonPositiveEmissivity{Emissivity: epsilon}
	}
	qAbs := alpha * irradianceWM2 * viewFactor
	t4 := qAbs / (epsilon * SigmaSB)
	return math.Pow(t4, 0.25), nil
}

// PVEfficiencyDerated applies a linear temperature coefficient to a rated
// efficiency. Coefficients are typically negative.
func PVEfficiencyDerated(eff1AU, tempCoeffPerK, cellTempK, refTempK float64) float64 {
	return math.Max(0, eff1AU*(1.0+tempCoeffPerK*(cellTempK-refTempK)))
}

// RadiatorDerate is the thermal derate proxy used for the collector chain:
// radiator area relative to a 1e5 m^2 reference, capped at 1.
func RadiatorDerate(radiatorAreaM2 float64) float64 {
	return math.Min(1.0, radiatorAreaM2/1e5)
}
