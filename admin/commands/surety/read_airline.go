package surety

import (
	"context"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/admin/commands"
	"github.com/onflow/flight-surety/model/surety"
)

var _ commands.AdminCommand = (*ReadAirlineCommand)(nil)

type AirlineReader interface {
	GetAirline(address surety.Address) (*surety.Airline, error)
	Airlines() ([]surety.Airline, error)
}

// ReadAirlineCommand returns one airline, or all of them if no address is given.
type ReadAirlineCommand struct {
	airlines AirlineReader
}

func NewReadAirlineCommand(airlines AirlineReader) *ReadAirlineCommand {
	return &ReadAirlineCommand{airlines: airlines}
}

func (r *ReadAirlineCommand) Handler(_ context.Context, req *admin.CommandRequest) (any, error) {
	address, ok := req.ValidatorData.(surety.Address)
	if !ok {
		list, err := r.airlines.Airlines()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(list))
		for _, airline := range list {
			out = append(out, airlineView(airline))
		}
		return out, nil
	}

	airline, err := r.airlines.GetAirline(address)
	if err != nil {
		return nil, err
	}
	return airlineView(*airline), nil
}

// Validator accepts {"address": hex} or no data.
func (r *ReadAirlineCommand) Validator(req *admin.CommandRequest) error {
	m, err := requestMap(req)
	if err != nil {
		return err
	}
	if _, ok := m["address"]; !ok {
		return nil
	}
	address, err := parseAddress(m, "address")
	if err != nil {
		return err
	}
	req.ValidatorData = address
	return nil
}

func airlineView(airline surety.Airline) map[string]any {
	return map[string]any{
		"address": airline.Address.Hex(),
		"name":    airline.Name,
		"state":   airline.State.String(),
		"votes":   airline.Votes,
		"balance": airline.Balance.String(),
	}
}
