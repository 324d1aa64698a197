package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
)

func InsertEvent(event *surety.Event) func(*badger.Txn) error {
	return insert(makePrefix(codeEvent, event.Height), event)
}

func RetrieveEvent(height uint64, event *surety.Event) func(*badger.Txn) error {
	return retrieve(makePrefix(codeEvent, height), event)
}

// LookupEventsByHeightRange returns the events with from <= height <= to in
// ascending order.
func LookupEventsByHeightRange(from uint64, to uint64, events *[]surety.Event) func(*badger.Txn) error {
	*events = make([]surety.Event, 0)
	return iterate(makePrefix(codeEvent, from), makePrefix(codeEvent, to), collect(events))
}

func InsertEventHead(height uint64) func(*badger.Txn) error {
	return insert(makePrefix(codeEventHead), height)
}

func UpdateEventHead(height uint64) func(*badger.Txn) error {
	return update(makePrefix(codeEventHead), height)
}

// RetrieveEventHead returns the height of the last event in the log.
func RetrieveEventHead(height *uint64) func(*badger.Txn) error {
	return retrieve(makePrefix(codeEventHead), height)
}

func InsertTransactionCount(count uint64) func(*badger.Txn) error {
	return insert(makePrefix(codeTransactionCount), count)
}

func UpdateTransactionCount(count uint64) func(*badger.Txn) error {
	return update(makePrefix(codeTransactionCount), count)
}

func RetrieveTransactionCount(count *uint64) func(*badger.Txn) error {
	return retrieve(makePrefix(codeTransactionCount), count)
}

// SetLastTransactionID records the ID of the last committed transaction. It
// seeds the entropy for index derivation.
func SetLastTransactionID(txID surety.Identifier) func(*badger.Txn) error {
	return upsert(makePrefix(codeLastTransactionID), txID)
}

func RetrieveLastTransactionID(txID *surety.Identifier) func(*badger.Txn) error {
	return retrieve(makePrefix(codeLastTransactionID), txID)
}
