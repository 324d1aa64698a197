package surety

import (
	"context"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/admin/commands"
	"github.com/onflow/flight-surety/model/surety"
)

var _ commands.AdminCommand = (*ReadPoliciesCommand)(nil)

type PolicyReader interface {
	PoliciesByFlight(flightCode string) ([]surety.Policy, error)
}

// ReadPoliciesCommand lists the insurance policies sold on a flight.
type ReadPoliciesCommand struct {
	policies PolicyReader
}

func NewReadPoliciesCommand(policies PolicyReader) *ReadPoliciesCommand {
	return &ReadPoliciesCommand{policies: policies}
}

func (r *ReadPoliciesCommand) Handler(_ context.Context, req *admin.CommandRequest) (any, error) {
	flight := req.ValidatorData.(string)

	policies, err := r.policies.PoliciesByFlight(flight)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(policies))
	for _, policy := range policies {
		out = append(out, policyView(policy))
	}
	return out, nil
}

// Validator expects {"flight": code}.
func (r *ReadPoliciesCommand) Validator(req *admin.CommandRequest) error {
	m, err := requestMap(req)
	if err != nil {
		return err
	}
	flight, err := parseString(m, "flight")
	if err != nil {
		return err
	}
	req.ValidatorData = flight
	return nil
}

func policyView(policy surety.Policy) map[string]any {
	return map[string]any{
		"flight":    policy.FlightCode,
		"passenger": policy.Passenger.Hex(),
		"amount":    policy.Amount.String(),
		"payout":    policy.Payout.String(),
		"state":     policy.State.String(),
	}
}
