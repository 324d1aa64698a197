package operation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onflow/flight-surety/model/surety"
)

func TestMakePrefix(t *testing.T) {
	code := byte(0x01)

	u8 := uint8(9)
	assert.Equal(t, []byte{0x01, 0x09}, makePrefix(code, u8))

	u64 := uint64(0x0102030405060708)
	assert.Equal(t, []byte{0x01, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, makePrefix(code, u64))

	str := "ND1"
	assert.Equal(t, []byte{0x01, 0x00, 0x03, 'N', 'D', '1'}, makePrefix(code, str))

	addr := surety.Uint64ToAddress(2)
	assert.Equal(t, append([]byte{0x01}, addr[:]...), makePrefix(code, addr))

	assert.Panics(t, func() { makePrefix(code, 1.5) })
}

func TestMakePrefixTimestampOrdering(t *testing.T) {
	negative := makePrefix(codeFlightStatusRecord, int64(-5))
	zero := makePrefix(codeFlightStatusRecord, int64(0))
	positive := makePrefix(codeFlightStatusRecord, int64(1600000000))

	assert.Equal(t, -1, bytes.Compare(negative, zero))
	assert.Equal(t, -1, bytes.Compare(zero, positive))
}
