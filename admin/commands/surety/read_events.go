package surety

import (
	"context"
	"fmt"
	"math"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/admin/commands"
	"github.com/onflow/flight-surety/model/surety"
)

var _ commands.AdminCommand = (*ReadEventsCommand)(nil)

const (
	// DefaultEventCount is the number of most recent events returned when no range is given.
	DefaultEventCount = 50
	MaxEventRange     = 1000
)

type EventReader interface {
	EventHead() (uint64, error)
	Events(from uint64, to uint64) ([]surety.Event, error)
}

type eventRange struct {
	from  uint64
	to    uint64
	toSet bool
}

// ReadEventsCommand returns a range of the event log with decoded payloads.
type ReadEventsCommand struct {
	events EventReader
}

func NewReadEventsCommand(events EventReader) *ReadEventsCommand {
	return &ReadEventsCommand{events: events}
}

func (r *ReadEventsCommand) Handler(_ context.Context, req *admin.CommandRequest) (any, error) {
	rng := req.ValidatorData.(eventRange)

	head, err := r.events.EventHead()
	if err != nil {
		return nil, err
	}

	from, to := rng.from, rng.to
	if !rng.toSet {
		to = head
		if from == 0 {
			from = 1
			if head > DefaultEventCount {
				from = head - DefaultEventCount + 1
			}
		}
		if to >= from && to-from >= MaxEventRange {
			to = from + MaxEventRange - 1
		}
	}
	if from == 0 {
		from = 1
	}
	if to > head {
		to = head
	}
	if from > to {
		return []any{}, nil
	}

	events, err := r.events.Events(from, to)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(events))
	for _, event := range events {
		payload, err := event.DecodePayload()
		if err != nil {
			return nil, fmt.Errorf("could not decode event at height %d: %w", event.Height, err)
		}
		converted, err := commands.ConvertToMap(payload)
		if err != nil {
			return nil, fmt.Errorf("could not convert event at height %d: %w", event.Height, err)
		}
		out = append(out, map[string]any{
			"height":      event.Height,
			"transaction": event.TransactionID.String(),
			"index":       event.EventIndex,
			"type":        string(event.Type),
			"caller":      event.Caller.Hex(),
			"payload":     converted,
		})
	}
	return out, nil
}

// Validator accepts {"from": n, "to": n}, both optional.
func (r *ReadEventsCommand) Validator(req *admin.CommandRequest) error {
	m, err := requestMap(req)
	if err != nil {
		return err
	}
	from, _, err := parseUint(m, "from", math.MaxUint64)
	if err != nil {
		return err
	}
	to, toSet, err := parseUint(m, "to", math.MaxUint64)
	if err != nil {
		return err
	}
	if toSet {
		if to < from {
			return admin.NewInvalidAdminReqErrorf("'to' (%d) must not be less than 'from' (%d)", to, from)
		}
		if to-from >= MaxEventRange {
			return admin.NewInvalidAdminReqErrorf("range [%d, %d] exceeds %d events", from, to, MaxEventRange)
		}
	}

	req.ValidatorData = eventRange{from: from, to: to, toSet: toSet}
	return nil
}
