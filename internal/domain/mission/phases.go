package mission

import "fmt"

// Phase is the mission stage a day falls into
type Phase int

const (
	PhaseSetup     Phase = 0
	PhaseRampUp    Phase = 1
	PhaseExpansion Phase = 2
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRampUp:
		return "ramp_up"
	case PhaseExpansion:
		return "expansion"
	default:
		return fmt.Sprintf("phase_%d", int(p))
	}
}

// LaunchesPermitted reports whether collector packages may leave the surface
func (p Phase) LaunchesPermitted() bool {
	return p >= PhaseExpansion
}

// Phases holds the three consecutive mission windows in days. The last
// window is nominal: expansion continues past its end.
type Phases struct {
	Phase0Days int
	Phase1Days int
	Phase2Days int
}

// NewPhases rejects negative window lengths
func NewPhases(phase0, phase1, phase2 int) (Phases, error) {
	if phase0 < 0 || phase1 < 0 || phase2 < 0 {
		return Phases{}, fmt.Errorf("phase durations must be non-negative, got %d/%d/%d", phase0, phase1, phase2)
	}
	return Phases{Phase0Days: phase0, Phase1Days: phase1, Phase2Days: phase2}, nil
}

// Which maps a zero-based day index to its phase
func (p Phases) Which(day int) Phase {
	switch {
	case day < p.Phase0Days:
		return PhaseSetup
	case day < p.Phase0Days+p.Phase1Days:
		return PhaseRampUp
	default:
		return PhaseExpansion
	}
}

// FirstLaunchDay is the earliest day a launch can happen
func (p Phases) FirstLaunchDay() int {
	return p.Phase0Days + p.Phase1Days
}
