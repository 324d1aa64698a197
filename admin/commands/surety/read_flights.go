package surety

import (
	"context"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/admin/commands"
	"github.com/onflow/flight-surety/model/surety"
)

var _ commands.AdminCommand = (*ReadFlightsCommand)(nil)

type FlightReader interface {
	Flights() ([]surety.Flight, error)
}

// ReadFlightsCommand lists registered flights, optionally only those of one airline.
type ReadFlightsCommand struct {
	flights FlightReader
}

func NewReadFlightsCommand(flights FlightReader) *ReadFlightsCommand {
	return &ReadFlightsCommand{flights: flights}
}

func (r *ReadFlightsCommand) Handler(_ context.Context, req *admin.CommandRequest) (any, error) {
	airline, filter := req.ValidatorData.(surety.Address)

	flights, err := r.flights.Flights()
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(flights))
	for _, flight := range flights {
		if filter && flight.Airline != airline {
			continue
		}
		out = append(out, flightView(flight))
	}
	return out, nil
}

// Validator accepts {"airline": hex} or no data.
func (r *ReadFlightsCommand) Validator(req *admin.CommandRequest) error {
	m, err := requestMap(req)
	if err != nil {
		return err
	}
	if _, ok := m["airline"]; !ok {
		return nil
	}
	airline, err := parseAddress(m, "airline")
	if err != nil {
		return err
	}
	req.ValidatorData = airline
	return nil
}

func flightView(flight surety.Flight) map[string]any {
	return map[string]any{
		"index":     flight.Index,
		"airline":   flight.Airline.Hex(),
		"code":      flight.Code,
		"timestamp": flight.Timestamp,
		"status":    flight.Status.String(),
	}
}
