package surety

import (
	"context"
	"math"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/admin/commands"
	"github.com/onflow/flight-surety/model/surety"
)

var _ commands.AdminCommand = (*ReadStatusRequestCommand)(nil)

type StatusRequestReader interface {
	GetStatusRequest(key surety.RequestKey) (*surety.StatusRequest, error)
}

type ReadStatusRequestCommand struct {
	requests StatusRequestReader
}

func NewReadStatusRequestCommand(requests StatusRequestReader) *ReadStatusRequestCommand {
	return &ReadStatusRequestCommand{requests: requests}
}

func (r *ReadStatusRequestCommand) Handler(_ context.Context, req *admin.CommandRequest) (any, error) {
	key := req.ValidatorData.(surety.RequestKey)

	request, err := r.requests.GetStatusRequest(key)
	if err != nil {
		return nil, err
	}

	tally := make(map[string]any, len(request.Tally))
	for _, t := range request.Tally {
		tally[t.Status.String()] = t.Count
	}
	responses := make([]any, 0, len(request.Responses))
	for _, response := range request.Responses {
		responses = append(responses, map[string]any{
			"oracle": response.Oracle.Hex(),
			"status": response.Status.String(),
		})
	}

	view := map[string]any{
		"id":        key.ID().String(),
		"index":     key.Index,
		"airline":   key.Airline.Hex(),
		"flight":    key.Flight,
		"timestamp": key.Timestamp,
		"requester": request.Requester.Hex(),
		"resolved":  request.Resolved,
		"tally":     tally,
		"responses": responses,
	}
	if request.Resolved {
		view["status"] = request.Status.String()
	}
	return view, nil
}

// Validator expects {"index": n, "airline": hex, "flight": code, "timestamp": n}.
func (r *ReadStatusRequestCommand) Validator(req *admin.CommandRequest) error {
	m, err := requestMap(req)
	if err != nil {
		return err
	}
	index, err := requireUint(m, "index", math.MaxUint8)
	if err != nil {
		return err
	}
	airline, err := parseAddress(m, "airline")
	if err != nil {
		return err
	}
	flight, err := parseString(m, "flight")
	if err != nil {
		return err
	}
	timestamp, err := requireUint(m, "timestamp", math.MaxInt64)
	if err != nil {
		return err
	}

	req.ValidatorData = surety.RequestKey{
		Index:     uint8(index),
		Airline:   airline,
		Flight:    flight,
		Timestamp: int64(timestamp),
	}
	return nil
}
