package surety

import (
	"fmt"
	"strings"
)

// FlightStatus is the status code of a flight as reported by oracles.
type FlightStatus uint8

const (
	StatusUnknown       FlightStatus = 0
	StatusOnTime        FlightStatus = 10
	StatusLateAirline   FlightStatus = 20
	StatusLateWeather   FlightStatus = 30
	StatusLateTechnical FlightStatus = 40
	StatusLateOther     FlightStatus = 50
)

// FlightStatuses lists every valid status code in ascending order.
var FlightStatuses = []FlightStatus{
	StatusUnknown,
	StatusOnTime,
	StatusLateAirline,
	StatusLateWeather,
	StatusLateTechnical,
	StatusLateOther,
}

var statusNames = map[FlightStatus]string{
	StatusUnknown:       "unknown",
	StatusOnTime:        "on_time",
	StatusLateAirline:   "late_airline",
	StatusLateWeather:   "late_weather",
	StatusLateTechnical: "late_technical",
	StatusLateOther:     "late_other",
}

// Valid returns true if s is one of the defined status codes.
func (s FlightStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s FlightStatus) String() string {
	name, ok := statusNames[s]
	if !ok {
		return fmt.Sprintf("invalid(%d)", uint8(s))
	}
	return name
}

// ParseFlightStatus accepts a status name such as "late_airline".
func ParseFlightStatus(name string) (FlightStatus, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return StatusUnknown, fmt.Errorf("unknown flight status %q", name)
}

// Flight is a scheduled flight operated by a registered airline. The flight code
// is unique across the registry. Index is the position in registration order.
type Flight struct {
	Airline   Address
	Code      string
	Timestamp int64
	Status    FlightStatus
	Index     uint64
}

// FlightStatusRecord is the consensus outcome of a resolved status request. It is
// kept for every resolution, including flights that were never registered.
type FlightStatusRecord struct {
	Airline   Address
	Flight    string
	Timestamp int64
	Status    FlightStatus
	Index     uint8
	// Height of the event log when the request was resolved.
	Height uint64
}
