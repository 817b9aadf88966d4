package physics

import "math"

// IrradianceWM2 scales the 1 AU solar constant by the inverse square of the
// heliocentric distance.
func IrradianceWM2(distanceAU float64) float64 {
	return SolarConstant1AU / (distanceAU * distanceAU)
}

// PowerCaptureGW is the electrical power produced by areaM2 of collector at
// aAU with an end-to-end efficiency referenced to 1 AU.
func PowerCaptureGW(areaM2, aAU, eff1AU float64) float64 {
	return areaM2 * IrradianceWM2(aAU) * eff1AU * 1e-9
}

// OpticalDepth is the ratio of collector area to the area of a sphere of
// radius aAU.
func OpticalDepth(areaM2, aAU float64) float64 {
	r := aAU * AUMeters
	return areaM2 / (4.0 * math.Pi * r * r)
}

// DegradedEfficiency applies exponential annual degradation to a base
// efficiency, clamped at zero.
func DegradedEfficiency(base, degradationPerYear, years float64) float64 {
	return math.Max(0, base*math.Pow(1.0-degradationPerYear, years))
}
