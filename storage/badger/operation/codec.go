package operation

import (
	"errors"
	"fmt"

	"github.com/golang/snappy"
	"github.com/vmihailenco/msgpack/v4"

	"github.com/onflow/flight-surety/module/irrecoverable"
)

// Every stored value starts with a format byte followed by the msgpack
// encoding of the entity, snappy compressed for formatSnappy.
const (
	formatRaw    byte = 0x00
	formatSnappy byte = 0x01
)

// defaultCompressThreshold is the encoded size from which values are
// compressed. Most entities (airlines, flights, policies, oracles) stay below
// it; status requests cross it once they collected a few responses.
const defaultCompressThreshold = 256

var compressThreshold = defaultCompressThreshold

var (
	errUncompressedValue = errors.New("could not uncompress data")
	errUnknownFormat     = errors.New("unknown value format")
)

// encodeEntity encodes the entity with msgpack and compresses encodings of at
// least compressThreshold bytes when snappy makes them smaller.
// possible error to return is irrecoverable.exception
func encodeEntity(entity interface{}) ([]byte, error) {
	val, err := msgpack.Marshal(entity)
	if err != nil {
		return nil, irrecoverable.NewExceptionf("could not encode entity: %w", err)
	}

	if len(val) >= compressThreshold {
		compressed := snappy.Encode(nil, val)
		if len(compressed) < len(val) {
			return withFormat(formatSnappy, compressed), nil
		}
	}
	return withFormat(formatRaw, val), nil
}

func withFormat(format byte, payload []byte) []byte {
	out := make([]byte, 1+len(payload))
	out[0] = format
	copy(out[1:], payload)
	return out
}

// decodeValue decodes a stored value into the entity.
// Expected errors:
//   - errUncompressedValue if a compressed value is corrupted
//   - errUnknownFormat if the format byte is missing or unknown
//
// msgpack failures are returned as irrecoverable.exception
func decodeValue(val []byte, entity interface{}) error {
	if len(val) == 0 {
		return fmt.Errorf("empty value: %w", errUnknownFormat)
	}

	payload := val[1:]
	switch val[0] {
	case formatRaw:
	case formatSnappy:
		var err error
		payload, err = snappy.Decode(nil, payload)
		if err != nil {
			return fmt.Errorf("%s: %w", err, errUncompressedValue)
		}
	default:
		return fmt.Errorf("format byte %#x: %w", val[0], errUnknownFormat)
	}

	err := msgpack.Unmarshal(payload, entity)
	if err != nil {
		return irrecoverable.NewExceptionf("could not decode entity: %w", err)
	}
	return nil
}

func isErrUncompressedValue(err error) bool {
	return errors.Is(err, errUncompressedValue)
}
