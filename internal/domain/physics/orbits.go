package physics

import "math"

// TransferDeltaV holds both burns of a two-impulse transfer, in m/s.
type TransferDeltaV struct {
	Departure float64
	Arrival   float64
}

// Total returns the sum of both burns.
func (t TransferDeltaV) Total() float64 {
	return t.Departure + t.Arrival
}

// HohmannDeltaVBetweenCircular estimates a heliocentric Hohmann transfer
// between two circular orbits given in AU. Both legs are reported as positive
// magnitudes regardless of transfer direction.
func HohmannDeltaVBetweenCircular(a1AU, a2AU float64) TransferDeltaV {
	r1 := a1AU * AUMeters
	r2 := a2AU * AUMeters

	v1 := math.Sqrt(GMSun / r1)
	v2 := math.Sqrt(GMSun / r2)

	aTransfer := 0.5 * (r1 + r2)
	vPeri := math.Sqrt(GMSun * (2.0/r1 - 1.0/aTransfer))
	vApo := math.Sqrt(GMSun * (2.0/r2 - 1.0/aTransfer))

	return TransferDeltaV{
		Departure: math.Abs(vPeri - v1),
		Arrival:   math.Abs(v2 - vApo),
	}
}

// MassDriverDeltaVFromLength returns the muzzle velocity of a rail of the
// given length accelerating at a constant maxG: Δv = sqrt(2·a·L).
func MassDriverDeltaVFromLength(maxG, railLengthM float64) float64 {
	a := maxG * StandardGravity
	return math.Sqrt(2.0 * a * railLengthM)
}

// MassDriverLengthForDeltaV inverts MassDriverDeltaVFromLength. A non-positive
// acceleration yields +Inf since no finite rail reaches the target.
func MassDriverLengthForDeltaV(maxG, deltaV float64) float64 {
	a := maxG * StandardGravity
	if a <= 0 {
		return math.Inf(1)
	}
	return deltaV * deltaV / (2.0 * a)
}
