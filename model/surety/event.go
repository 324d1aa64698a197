package surety

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
)

// EventType names the kind of an event in the event log.
type EventType string

const (
	EventAirlineVoted           EventType = "AirlineVoted"
	EventAirlineRegistered      EventType = "AirlineRegistered"
	EventAirlineFunded          EventType = "AirlineFunded"
	EventAirlinePaid            EventType = "AirlinePaid"
	EventFlightRegistered       EventType = "FlightRegistered"
	EventInsurancePurchased     EventType = "InsurancePurchased"
	EventInsuranceClaimed       EventType = "InsuranceClaimed"
	EventBalanceWithdrawn       EventType = "BalanceWithdrawn"
	EventOracleRegistered       EventType = "OracleRegistered"
	EventOracleRequest          EventType = "OracleRequest"
	EventOracleReport           EventType = "OracleReport"
	EventFlightStatusInfo       EventType = "FlightStatusInfo"
	EventFlightStatusProcessed  EventType = "FlightStatusProcessed"
	EventOperatingStatusChanged EventType = "OperatingStatusChanged"
)

// Event is an entry of the append-only event log. Height is the position in the
// log, starting at 1 and without gaps.
type Event struct {
	Height        uint64
	TransactionID Identifier
	EventIndex    uint32
	Type          EventType
	Caller        Address
	Payload       []byte
}

// ID returns a unique identifier for the event.
func (e Event) ID() Identifier {
	return MakeID(e)
}

func (e Event) String() string {
	return fmt.Sprintf("%d:%s(tx=%s, caller=%s)", e.Height, e.Type, e.TransactionID, e.Caller)
}

// Decode decodes the payload into target, which must be a pointer to the
// payload type matching e.Type.
func (e Event) Decode(target interface{}) error {
	err := msgpack.Unmarshal(e.Payload, target)
	if err != nil {
		return fmt.Errorf("could not decode %s payload: %w", e.Type, err)
	}
	return nil
}

// DecodePayload decodes the payload into a freshly allocated value of the
// type registered for e.Type.
func (e Event) DecodePayload() (interface{}, error) {
	create, ok := payloadTypes[e.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
	payload := create()
	err := e.Decode(payload)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// EncodePayload encodes an event payload.
func EncodePayload(payload interface{}) ([]byte, error) {
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not encode event payload: %w", err)
	}
	return data, nil
}
