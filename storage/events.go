package storage

import (
	"github.com/onflow/flight-surety/model/surety"
)

// EventLog is the append-only, height indexed log of contract events. Events
// are appended by the coordinator inside the transaction that emitted them.
type EventLog interface {

	// Head returns the height of the last event, 0 for an empty log.
	// No errors are expected during normal operation.
	Head() (uint64, error)

	// ByHeight returns the event at the given height.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if no event exists at that height
	ByHeight(height uint64) (*surety.Event, error)

	// ByHeightRange returns the events with from <= height <= to in ascending
	// height order. Heights beyond the head are ignored.
	// No errors are expected during normal operation.
	ByHeightRange(from uint64, to uint64) ([]surety.Event, error)
}
