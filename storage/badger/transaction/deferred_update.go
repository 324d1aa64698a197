package transaction

import (
	"github.com/dgraph-io/badger/v2"
)

// DeferredDBUpdate is a shorthand notation for an anonymous function that takes
// a `transaction.Tx` as input and runs some database operations as part of that transaction.
type DeferredDBUpdate = func(*Tx) error

// DeferredBadgerUpdate is a shorthand notation for an anonymous function that takes
// a badger transaction as input and runs some database operations as part of that transaction.
type DeferredBadgerUpdate = func(*badger.Txn) error

// DeferredDbOps accumulates database operations and callbacks that are
// executed in one atomic transaction, in the order they were added. Callbacks
// added with OnSucceed run only if the transaction commits.
//
// Use it as Update(db, ops.Pending). Pending may be executed more than once,
// e.g. when retrying on conflict; every execution starts from scratch.
//
// NOT CONCURRENCY SAFE
type DeferredDbOps struct {
	Pending DeferredDBUpdate
}

// NewDeferredDbOps instantiates a DeferredDbOps. Initially, it behaves like a no-op until functors are added.
func NewDeferredDbOps() *DeferredDbOps {
	return &DeferredDbOps{
		Pending: func(tx *Tx) error { return nil },
	}
}

// AddBadgerOp schedules op to run on the underlying badger transaction.
// This method returns a self-reference for chaining.
func (d *DeferredDbOps) AddBadgerOp(op DeferredBadgerUpdate) *DeferredDbOps {
	return d.AddDbOp(WithTx(op))
}

// AddDbOp schedules op to run on the transaction.
// This method returns a self-reference for chaining.
func (d *DeferredDbOps) AddDbOp(op DeferredDBUpdate) *DeferredDbOps {
	prior := d.Pending
	d.Pending = func(tx *Tx) error {
		err := prior(tx)
		if err != nil {
			return err
		}
		return op(tx)
	}
	return d
}

// OnSucceed schedules a callback which runs after a successful commit.
// This method returns a self-reference for chaining.
func (d *DeferredDbOps) OnSucceed(callback func()) *DeferredDbOps {
	return d.AddDbOp(func(tx *Tx) error {
		tx.OnSucceed(callback)
		return nil
	})
}
