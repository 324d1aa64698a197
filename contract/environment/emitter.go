package environment

import (
	"github.com/onflow/flight-surety/model/surety"
)

// EventEmitter buffers the events of a transaction. The events become part of
// the log only if the transaction commits.
type EventEmitter struct {
	txID   surety.Identifier
	caller surety.Address
	head   uint64
	events []surety.Event
}

// NewEventEmitter creates an emitter whose first event follows head.
func NewEventEmitter(txID surety.Identifier, caller surety.Address, head uint64) *EventEmitter {
	return &EventEmitter{
		txID:   txID,
		caller: caller,
		head:   head,
	}
}

// Emit appends an event carrying the encoded payload.
func (e *EventEmitter) Emit(eventType surety.EventType, payload interface{}) error {
	data, err := surety.EncodePayload(payload)
	if err != nil {
		return err
	}

	index := uint32(len(e.events))
	e.events = append(e.events, surety.Event{
		Height:        e.head + uint64(index) + 1,
		TransactionID: e.txID,
		EventIndex:    index,
		Type:          eventType,
		Caller:        e.caller,
		Payload:       data,
	})
	return nil
}

func (e *EventEmitter) Events() []surety.Event {
	return e.events
}
