package manufacturing

// Reliability models a repairable component by its mean time between
// failures and mean time to repair, both in hours.
type Reliability struct {
	MTBFHours float64
	MTTRHours float64
}

// NewReliability returns a reliability model, or nil when either figure is
// missing so callers fall back to full availability.
func NewReliability(mtbfHours, mttrHours *float64) *Reliability {
	if mtbfHours == nil || mttrHours == nil {
		return nil
	}
	return &Reliability{MTBFHours: *mtbfHours, MTTRHours: *mttrHours}
}

// Availability is the steady-state uptime fraction MTBF / (MTBF + MTTR).
// A component that never runs between failures is never available.
func (r Reliability) Availability() float64 {
	if r.MTBFHours <= 0 {
		return 0
	}
	return r.MTBFHours / (r.MTBFHours + r.MTTRHours)
}

// AvailabilityOf treats a nil model as always available.
func AvailabilityOf(r *Reliability) float64 {
	if r == nil {
		return 1.0
	}
	return r.Availability()
}
