package operation

import (
	"encoding/binary"
	"fmt"

	"github.com/onflow/flight-surety/model/surety"
)

const (

	// codes for contract configuration
	codeOperatingStatus = 1
	codeContractOwner   = 2

	// codes for the airline registry
	codeAirline                = 10
	codeAirlineVote            = 11
	codeRegisteredAirlineCount = 12
	codeFundedAirlineCount     = 13

	// codes for flights
	codeFlight             = 20
	codeFlightByIndex      = 21
	codeFlightCount        = 22
	codeFlightStatusRecord = 23

	// codes for the escrow and insurance ledger
	codePolicy       = 30
	codeWithdrawable = 31

	// codes for the oracle registry
	codeOracle      = 40
	codeOracleNonce = 41

	// codes for flight status consensus
	codeStatusRequest = 50

	// codes for ledger accounts
	codeAccountBalance = 60

	// codes for the event log
	codeEvent             = 70
	codeEventHead         = 71
	codeTransactionCount  = 72
	codeLastTransactionID = 73

	// job queue consumers and producers
	codeJobConsumerProcessed = 80
)

func makePrefix(code byte, keys ...interface{}) []byte {
	prefix := make([]byte, 1)
	prefix[0] = code
	for _, key := range keys {
		prefix = append(prefix, b(key)...)
	}
	return prefix
}

// b converts a key part into its binary form. Integers are big endian so that
// keys sort numerically. Strings carry a two byte length so that a string part
// never is a prefix of a longer one.
func b(v interface{}) []byte {
	switch i := v.(type) {
	case uint8:
		return []byte{i}
	case uint32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, i)
		return b
	case uint64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, i)
		return b
	case int64:
		// flip the sign bit to keep the ordering of negative values
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(i)^(1<<63))
		return b
	case string:
		b := make([]byte, 2, 2+len(i))
		binary.BigEndian.PutUint16(b, uint16(len(i)))
		return append(b, i...)
	case []byte:
		return i
	case surety.Address:
		return i[:]
	case surety.Identifier:
		return i[:]
	default:
		panic(fmt.Sprintf("unsupported type to convert (%T)", v))
	}
}
