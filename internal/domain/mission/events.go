package mission

// EventType classifies discrete mission events
type EventType string

const (
	EventLaunch         EventType = "launch"
	EventInfrastructure EventType = "infrastructure"
)

// infrastructureReportInterval throttles status events to once a week
const infrastructureReportInterval = 7

// Event is a discrete occurrence on a given day. Launch events carry the
// area and launcher; infrastructure events carry the online unit count.
type Event struct {
	Day               int       `json:"day"`
	Type              EventType `json:"type"`
	AreaM2            float64   `json:"area_m2,omitempty"`
	System            string    `json:"system,omitempty"`
	MassDriversOnline int       `json:"mass_drivers_online,omitempty"`
}

func newLaunchEvent(day int, areaM2 float64, system string) Event {
	return Event{Day: day, Type: EventLaunch, AreaM2: areaM2, System: system}
}

func newInfrastructureEvent(day, online int) Event {
	return Event{Day: day, Type: EventInfrastructure, MassDriversOnline: online}
}
