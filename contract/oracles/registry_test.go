package oracles_test

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/contract/oracles"
	"github.com/onflow/flight-surety/contract/testutil"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module/metrics"
	storagebadger "github.com/onflow/flight-surety/storage/badger"
	"github.com/onflow/flight-surety/utils/unittest"
)

func TestRegisterOracle(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		h := testutil.NewHarness(t, db)
		h.Entropy = environment.FixedEntropy("oracle-test")
		registry := oracles.NewRegistry(storagebadger.NewOracles(metrics.NewNoopCollector(), db))

		registerOracle := func(caller surety.Address, fee surety.Amount) (*surety.Oracle, []surety.Event, error) {
			var oracle *surety.Oracle
			events, err := h.Execute(caller, func(env *environment.Environment) error {
				var err error
				oracle, err = registry.RegisterOracle(env, fee)
				return err
			})
			return oracle, events, err
		}

		caller := unittest.AddressFixture()

		t.Run("not an oracle before registration", func(t *testing.T) {
			_, err := registry.GetMyIndexes(caller)
			require.True(t, suretyerrors.IsNotAnOracleError(err))
		})

		t.Run("fee below registration fee", func(t *testing.T) {
			_, _, err := registerOracle(caller, surety.MustParseAmount("0.99"))
			require.True(t, suretyerrors.IsInsufficientFeeError(err))
		})

		oracle, events, err := registerOracle(caller, surety.Units(1))
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, uint64(0), oracle.Nonce)

		var registered surety.OracleRegistered
		require.NoError(t, events[0].Decode(&registered))
		assert.Equal(t, oracle.Indexes, registered.Indexes)

		entropy := []byte("oracle-test")
		for i, index := range oracle.Indexes {
			assert.Less(t, index, uint8(10))
			assert.Equal(t, environment.DeriveIndex(caller, uint64(i), entropy, 10), index)
		}

		indexes, err := registry.GetMyIndexes(caller)
		require.NoError(t, err)
		assert.Equal(t, oracle.Indexes, indexes)

		t.Run("indexes are stable", func(t *testing.T) {
			_, _, err := registerOracle(caller, surety.Units(1))
			require.True(t, suretyerrors.IsAlreadyRegisteredError(err))

			again, err := registry.GetMyIndexes(caller)
			require.NoError(t, err)
			assert.Equal(t, indexes, again)
		})

		t.Run("nonce keeps increasing", func(t *testing.T) {
			second, _, err := registerOracle(unittest.AddressFixture(), surety.Units(2))
			require.NoError(t, err)
			assert.Equal(t, uint64(3), second.Nonce)
		})

		h.View(t, func(txn *badger.Txn) {
			stored, err := registry.Oracle(txn, caller)
			require.NoError(t, err)
			assert.Equal(t, oracle, stored)

			_, err = registry.Oracle(txn, unittest.AddressFixture())
			require.True(t, suretyerrors.IsNotAnOracleError(err))
		})
	})
}
