package operation

import (
	"context"
	"errors"
	"syscall"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/module/metrics"
	"github.com/onflow/flight-surety/storage/badger/transaction"
)

func RetryOnConflict(action func(func(*badger.Txn) error) error, op func(tx *badger.Txn) error) error {
	for {
		err := action(op)
		if errors.Is(err, badger.ErrConflict) {
			metrics.GetStorageCollector().RetryOnConflict()
			continue
		}
		return err
	}
}

// RetryOnConflictTx re-executes op from scratch until it commits without an
// optimistic conflict. Before each attempt the context is checked, so a caller
// giving up stops the retries.
func RetryOnConflictTx(ctx context.Context, db *badger.DB, action func(*badger.DB, func(*transaction.Tx) error) error, op func(*transaction.Tx) error) error {
	for {
		err := ctx.Err()
		if err != nil {
			return err
		}
		err = action(db, op)
		if errors.Is(err, badger.ErrConflict) {
			metrics.GetStorageCollector().RetryOnConflict()
			continue
		}
		return err
	}
}

// TerminateOnFullDisk helper function to crash node if write failed because disk is full
func TerminateOnFullDisk(err error) error {
	// using panic so any deferred functions can still execute
	if err != nil && errors.Is(err, syscall.ENOSPC) {
		panic("disk full, terminating node...")
	}
	return err
}
