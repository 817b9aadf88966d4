package scenario

import (
	"math"
	"strings"
)

// Feedstocks counted toward usable in-situ mass
const (
	CompositionFe   = "Fe"
	CompositionSiO2 = "SiO2"
)

// Bands resolves the deployment bands as [inner, outer] pairs
func (s Scenario) Bands() [][2]float64 {
	if len(s.LaunchStrategy.TargetBandsAU) > 0 {
		bands := make([][2]float64, len(s.LaunchStrategy.TargetBandsAU))
		for i, b := range s.LaunchStrategy.TargetBandsAU {
			bands[i] = [2]float64{b[0], b[1]}
		}
		return bands
	}
	r := s.LaunchStrategy.TargetARangeAU
	return [][2]float64{{r[0], r[1]}}
}

// SiteBody returns the configured mining body, falling back to the first
// catalogue entry. ok is false for an empty catalogue.
func (s Scenario) SiteBody() (Body, bool) {
	if len(s.Bodies.Bodies) == 0 {
		return Body{}, false
	}
	for _, body := range s.Bodies.Bodies {
		if strings.EqualFold(body.Name, s.Resources.SiteBody) {
			return body, true
		}
	}
	return s.Bodies.Bodies[0], true
}

// Fraction looks up a composition mass fraction. Keys are matched without
// regard to case because config loaders may fold them.
func (b Body) Fraction(species string) float64 {
	if v, ok := b.CompositionMassFrac[species]; ok {
		return v
	}
	for k, v := range b.CompositionMassFrac {
		if strings.EqualFold(k, species) {
			return v
		}
	}
	return 0
}

// UsableResourceMassKg is the factory's in-situ mass budget: the utilised
// Fe and SiO2 fraction of a surface shell mining_depth_m thick. An explicit
// usable_mass_kg wins. nil means unbounded.
func (s Scenario) UsableResourceMassKg() *float64 {
	if m := s.Resources.UsableMassKg; m != nil && *m > 0 {
		v := *m
		return &v
	}

	body, ok := s.SiteBody()
	if !ok {
		return nil
	}

	usableFrac := math.Max(0, *s.Resources.Utilization.Fe*body.Fraction(CompositionFe)+
		*s.Resources.Utilization.SiO2*body.Fraction(CompositionSiO2))

	radius := DefaultBodyRadiusM
	if body.RadiusM != nil {
		radius = *body.RadiusM
	}
	density := DefaultBodyDensityKgM3
	if body.MeanDensityKgM3 != nil {
		density = *body.MeanDensityKgM3
	}

	shellVolume := 4.0 * math.Pi * radius * radius * *s.Resources.MiningDepthM
	usable := usableFrac * density * shellVolume
	return &usable
}

// MassDriverAvailability is MTBF / (MTBF + MTTR) when either figure is set
func (s Scenario) MassDriverAvailability() *float64 {
	md := s.Vehicles.Launchers.MercuryMassDriver
	var mtbf, mttr float64
	if md.MTBFHours != nil {
		mtbf = *md.MTBFHours
	}
	if md.MTTRHours != nil {
		mttr = *md.MTTRHours
	}
	if mtbf+mttr <= 0 {
		return nil
	}
	a := mtbf / (mtbf + mttr)
	return &a
}

// EarthMassKg is the mass lifted from Earth to bootstrap the site
func (s Scenario) EarthMassKg() float64 {
	return float64(s.EarthBootstrap.Launches) * s.Vehicles.Launchers.EarthToTransfer.PayloadKg
}
