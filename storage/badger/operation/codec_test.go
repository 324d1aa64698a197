package operation

import (
	"errors"
	"math"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module/irrecoverable"
	"github.com/onflow/flight-surety/utils/unittest"
)

func withCompressThreshold(t *testing.T, threshold int) {
	compressThreshold = threshold
	t.Cleanup(func() { compressThreshold = defaultCompressThreshold })
}

func TestDecodeCorruptedValue(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		oracle := unittest.OracleFixture()
		key := makePrefix(codeOracle, oracle.Address)
		require.NoError(t, db.Update(func(tx *badger.Txn) error {
			return tx.Set(key, []byte{formatSnappy, 0xde, 0xad})
		}))

		var actual surety.Oracle
		err := db.View(RetrieveOracle(oracle.Address, &actual))
		require.Error(t, err)

		// decode failures are exceptions, not sentinel errors
		var exception irrecoverable.Exception
		assert.ErrorAs(t, err, &exception)
		assert.False(t, isErrUncompressedValue(err))

		err = decodeValue([]byte{formatSnappy, 0xde, 0xad}, &actual)
		assert.True(t, isErrUncompressedValue(err))

		err = decodeValue([]byte{0xde, 0xad}, &actual)
		assert.True(t, errors.Is(err, errUnknownFormat))
		err = decodeValue(nil, &actual)
		assert.True(t, errors.Is(err, errUnknownFormat))
	})
}

func TestCompressThreshold(t *testing.T) {
	t.Run("small values are stored raw", func(t *testing.T) {
		oracle := unittest.OracleFixture()
		val, err := encodeEntity(&oracle)
		require.NoError(t, err)
		assert.Equal(t, formatRaw, val[0])

		var actual surety.Oracle
		require.NoError(t, decodeValue(val, &actual))
		assert.Equal(t, oracle, actual)
	})

	t.Run("large values are compressed", func(t *testing.T) {
		request := unittest.StatusRequestFixture()
		for i := 0; i < 40; i++ {
			request.Record(unittest.AddressFixture(), surety.StatusLateAirline)
		}

		val, err := encodeEntity(request)
		require.NoError(t, err)
		assert.Equal(t, formatSnappy, val[0])

		var actual surety.StatusRequest
		require.NoError(t, decodeValue(val, &actual))
		assert.Equal(t, *request, actual)
	})

	t.Run("both formats are readable whatever the threshold", func(t *testing.T) {
		request := unittest.StatusRequestFixture()

		withCompressThreshold(t, 0)
		compressed, err := encodeEntity(request)
		require.NoError(t, err)

		withCompressThreshold(t, math.MaxInt)
		raw, err := encodeEntity(request)
		require.NoError(t, err)
		assert.Equal(t, formatRaw, raw[0])

		for _, val := range [][]byte{compressed, raw} {
			var actual surety.StatusRequest
			require.NoError(t, decodeValue(val, &actual))
			assert.Equal(t, *request, actual)
		}
	})
}

func TestStatusRequestWithoutCompression(t *testing.T) {
	withCompressThreshold(t, math.MaxInt)

	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		request := unittest.StatusRequestFixture()
		request.Record(unittest.AddressFixture(), surety.StatusOnTime)
		require.NoError(t, db.Update(InsertStatusRequest(request)))

		var actual surety.StatusRequest
		require.NoError(t, db.View(RetrieveStatusRequest(request.Key, &actual)))
		assert.Equal(t, *request, actual)
	})
}
