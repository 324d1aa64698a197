package badger_test

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/storage"
	badgerstorage "github.com/onflow/flight-surety/storage/badger"
	"github.com/onflow/flight-surety/utils/unittest"
)

func TestConsumerProgress(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		progress := badgerstorage.NewConsumerProgress(db, "oracle_agent")
		require.Equal(t, "oracle_agent", progress.Consumer())

		_, err := progress.ProcessedIndex()
		require.ErrorIs(t, err, storage.ErrNotFound)

		// setting before initialization fails
		err = progress.SetProcessedIndex(3)
		require.Error(t, err)

		require.NoError(t, progress.InitProcessedIndex(0))
		err = progress.InitProcessedIndex(5)
		require.ErrorIs(t, err, storage.ErrAlreadyExists)

		require.NoError(t, progress.SetProcessedIndex(7))
		processed, err := progress.ProcessedIndex()
		require.NoError(t, err)
		require.Equal(t, uint64(7), processed)

		// consumers are independent
		other := badgerstorage.NewConsumerProgress(db, "other")
		_, err = other.ProcessedIndex()
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}
