package physics

// Physical constants in SI units unless the name says otherwise.
const (
	// AUMeters is one astronomical unit in meters.
	AUMeters = 1.495978707e11

	// SigmaSB is the Stefan-Boltzmann constant (W m^-2 K^-4).
	SigmaSB = 5.670374419e-8

	SolarLuminosityW = 3.828e26

	// SolarConstant1AU is the mean solar irradiance at 1 AU (W/m^2).
	SolarConstant1AU = 1361.0

	GMSun     = 1.32712440018e20 // m^3/s^2
	GMEarth   = 3.986004418e14
	GMMercury = 2.203186855e13

	RadiusSunM = 6.9634e8

	// StandardGravity converts accelerations given in g to m/s^2.
	StandardGravity = 9.80665

	SecondsPerDay = 86400.0
	HoursPerDay   = 24.0
	DaysPerYear   = 365.0
)

// BodyOrbit is a heliocentric orbit reduced to its scalar elements.
type BodyOrbit struct {
	SemiMajorAxisM float64
	Eccentricity   float64
}
