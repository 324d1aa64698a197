package surety

import (
	"context"
	"fmt"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/admin/commands"
	"github.com/onflow/flight-surety/contract"
	"github.com/onflow/flight-surety/model/surety"
)

var _ commands.AdminCommand = (*SetOperatingStatusCommand)(nil)

type OperatingStatusSetter interface {
	Owner() (surety.Address, error)
	IsOperational() (bool, error)
	SetOperatingStatus(ctx context.Context, caller surety.Address, operational bool) (*contract.Result, error)
}

// SetOperatingStatusCommand pauses or resumes the contract on behalf of its owner.
type SetOperatingStatusCommand struct {
	contract OperatingStatusSetter
}

func NewSetOperatingStatusCommand(c OperatingStatusSetter) *SetOperatingStatusCommand {
	return &SetOperatingStatusCommand{contract: c}
}

func (s *SetOperatingStatusCommand) Handler(ctx context.Context, req *admin.CommandRequest) (any, error) {
	operational := req.ValidatorData.(bool)

	owner, err := s.contract.Owner()
	if err != nil {
		return nil, err
	}
	previous, err := s.contract.IsOperational()
	if err != nil {
		return nil, err
	}

	result, err := s.contract.SetOperatingStatus(ctx, owner, operational)
	if err != nil {
		return nil, fmt.Errorf("could not set operating status: %w", err)
	}

	return map[string]any{
		"oldValue":    previous,
		"newValue":    operational,
		"transaction": result.TransactionID.String(),
		"height":      result.Height,
	}, nil
}

// Validator expects {"operational": bool}.
func (s *SetOperatingStatusCommand) Validator(req *admin.CommandRequest) error {
	m, err := requestMap(req)
	if err != nil {
		return err
	}
	raw, ok := m["operational"]
	if !ok {
		return admin.NewInvalidAdminReqErrorf("missing required field 'operational'")
	}
	operational, ok := raw.(bool)
	if !ok {
		return admin.NewInvalidAdminReqParameterError("operational", "must be a boolean", raw)
	}
	req.ValidatorData = operational
	return nil
}
