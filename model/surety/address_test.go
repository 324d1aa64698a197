package surety_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/model/surety"
)

func TestHexToAddress(t *testing.T) {
	type testCase struct {
		literal string
		value   surety.Address
	}

	for _, test := range []testCase{
		{"123", surety.Uint64ToAddress(0x123)},
		{"0x01", surety.Uint64ToAddress(1)},
		{"f8d6e0586b0a20c7", surety.Uint64ToAddress(0xf8d6e0586b0a20c7)},
	} {
		// odd length literals are rejected by hex decoding
		if len(test.literal)%2 == 1 {
			_, err := surety.HexToAddress(test.literal)
			assert.Error(t, err)
			continue
		}
		actual, err := surety.HexToAddress(test.literal)
		require.NoError(t, err)
		assert.Equal(t, test.value, actual)
	}

	_, err := surety.HexToAddress("0102030405060708090a")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := surety.Uint64ToAddress(0xabcdef)
	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"0000000000abcdef"`, string(data))

	var decoded surety.Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestBytesToAddress(t *testing.T) {
	long := []byte{0xff, 1, 2, 3, 4, 5, 6, 7, 8}
	assert.Equal(t, surety.Uint64ToAddress(0x0102030405060708), surety.BytesToAddress(long))
	assert.True(t, surety.BytesToAddress(nil).IsEmpty())
}
