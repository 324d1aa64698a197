package transaction_test

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/storage/badger/transaction"
	"github.com/onflow/flight-surety/utils/unittest"
)

func TestDeferredDbOps(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		var order []string
		ops := transaction.NewDeferredDbOps().
			AddBadgerOp(func(txn *badger.Txn) error {
				order = append(order, "write")
				return txn.Set([]byte("k"), []byte("v"))
			}).
			OnSucceed(func() { order = append(order, "callback") }).
			AddDbOp(func(tx *transaction.Tx) error {
				order = append(order, "second")
				return nil
			})

		err := transaction.Update(db, ops.Pending)
		require.NoError(t, err)
		assert.Equal(t, []string{"write", "second", "callback"}, order)

		err = db.View(func(txn *badger.Txn) error {
			_, err := txn.Get([]byte("k"))
			return err
		})
		require.NoError(t, err)
	})
}

func TestUpdateDiscardsOnError(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		failure := errors.New("rejected")
		called := false
		ops := transaction.NewDeferredDbOps().
			AddBadgerOp(func(txn *badger.Txn) error {
				return txn.Set([]byte("k"), []byte("v"))
			}).
			OnSucceed(func() { called = true }).
			AddBadgerOp(func(txn *badger.Txn) error { return failure })

		err := transaction.Update(db, ops.Pending)
		require.ErrorIs(t, err, failure)
		assert.False(t, called)

		err = db.View(func(txn *badger.Txn) error {
			_, err := txn.Get([]byte("k"))
			return err
		})
		require.ErrorIs(t, err, badger.ErrKeyNotFound)
	})
}
