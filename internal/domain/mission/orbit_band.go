package mission

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// DefaultBand is used when a scenario names no deployment band
var DefaultBand = OrbitBand{InnerAU: 0.35, OuterAU: 0.45}

// OrbitBand is a range of heliocentric semi-major axes in AU
type OrbitBand struct {
	InnerAU float64
	OuterAU float64
}

// NewOrbitBand requires 0 < inner <= outer
func NewOrbitBand(innerAU, outerAU float64) (OrbitBand, error) {
	if innerAU <= 0 || outerAU < innerAU {
		return OrbitBand{}, fmt.Errorf("invalid orbit band [%g, %g] AU", innerAU, outerAU)
	}
	return OrbitBand{InnerAU: innerAU, OuterAU: outerAU}, nil
}

// MeanAU is the representative radius used for optical depth and irradiance
func (b OrbitBand) MeanAU() float64 {
	return (b.InnerAU + b.OuterAU) * 0.5
}

func (b OrbitBand) String() string {
	return fmt.Sprintf("%g-%g AU", b.InnerAU, b.OuterAU)
}

// NormalizeWeights turns raw per-band weights into fractions summing to 1.
// Negative weights count as zero. A missing, mismatched or all-zero weight
// vector falls back to an even split.
func NormalizeWeights(raw []float64, bandCount int) []float64 {
	if bandCount <= 0 {
		return nil
	}

	weights := make([]float64, bandCount)
	if len(raw) == bandCount {
		for i, w := range raw {
			if w > 0 {
				weights[i] = w
			}
		}
		if total := floats.Sum(weights); total > 0 {
			floats.Scale(1/total, weights)
			return weights
		}
	}

	for i := range weights {
		weights[i] = 1.0 / float64(bandCount)
	}
	return weights
}

// AssignOrbitsUniform spreads n collectors evenly across the band, both
// edges included.
func AssignOrbitsUniform(n int, band OrbitBand) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{band.InnerAU}
	default:
		return floats.Span(make([]float64, n), band.InnerAU, band.OuterAU)
	}
}
