package badger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module"
	"github.com/onflow/flight-surety/module/metrics"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/storage/badger/operation"
	"github.com/onflow/flight-surety/storage/badger/transaction"
)

// EventLog implements storage.EventLog on badger. Events are immutable once
// written, so single event reads are served from an LRU cache.
type EventLog struct {
	db    *badger.DB
	cache *Cache[uint64, *surety.Event]
}

var _ storage.EventLog = (*EventLog)(nil)

func NewEventLog(collector module.CacheMetrics, db *badger.DB) *EventLog {
	store := func(height uint64, event *surety.Event) func(*transaction.Tx) error {
		return transaction.WithTx(operation.InsertEvent(event))
	}

	retrieve := func(height uint64) func(*badger.Txn) (*surety.Event, error) {
		return func(tx *badger.Txn) (*surety.Event, error) {
			var event surety.Event
			err := operation.RetrieveEvent(height, &event)(tx)
			return &event, err
		}
	}

	return &EventLog{
		db: db,
		cache: newCache[uint64, *surety.Event](collector, metrics.ResourceEvent,
			withLimit[uint64, *surety.Event](4*1000),
			withStore(store),
			withRetrieve(retrieve),
		),
	}
}

// Append adds the events after the current head and advances the head. The
// heights of the events must continue the log without gaps.
func (l *EventLog) Append(events []surety.Event) func(*transaction.Tx) error {
	return func(tx *transaction.Tx) error {
		var head uint64
		err := operation.RetrieveEventHead(&head)(tx.DBTxn)
		if err != nil {
			return fmt.Errorf("could not retrieve event head: %w", err)
		}
		for i := range events {
			event := events[i]
			if event.Height != head+1 {
				return fmt.Errorf("event height %d does not follow head %d", event.Height, head)
			}
			err = l.cache.PutTx(event.Height, &event)(tx)
			if err != nil {
				return fmt.Errorf("could not store event %d: %w", event.Height, err)
			}
			head = event.Height
		}
		err = operation.UpdateEventHead(head)(tx.DBTxn)
		if err != nil {
			return fmt.Errorf("could not update event head: %w", err)
		}
		return nil
	}
}

func (l *EventLog) Head() (uint64, error) {
	var head uint64
	err := l.db.View(operation.RetrieveEventHead(&head))
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not retrieve event head: %w", err)
	}
	return head, nil
}

func (l *EventLog) ByHeight(height uint64) (*surety.Event, error) {
	tx := l.db.NewTransaction(false)
	defer tx.Discard()
	return l.cache.Get(height)(tx)
}

func (l *EventLog) ByHeightRange(from uint64, to uint64) ([]surety.Event, error) {
	if from > to {
		return nil, fmt.Errorf("invalid height range [%d, %d]", from, to)
	}
	var events []surety.Event
	err := l.db.View(operation.LookupEventsByHeightRange(from, to, &events))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve events in range [%d, %d]: %w", from, to, err)
	}
	return events, nil
}
