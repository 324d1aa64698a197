package environment

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v2"
	"golang.org/x/crypto/sha3"

	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/storage/badger/operation"
)

// EntropySource provides the per transaction entropy mixed into index
// derivation.
type EntropySource interface {
	Entropy(txn *badger.Txn) ([]byte, error)
}

// LedgerEntropy uses the ID of the last committed transaction. Before the
// first transaction the entropy is empty.
type LedgerEntropy struct{}

var _ EntropySource = LedgerEntropy{}

func (LedgerEntropy) Entropy(txn *badger.Txn) ([]byte, error) {
	var txID surety.Identifier
	err := operation.RetrieveLastTransactionID(&txID)(txn)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not retrieve last transaction id: %w", err)
	}
	return txID[:], nil
}

// FixedEntropy always returns the same bytes.
type FixedEntropy []byte

var _ EntropySource = FixedEntropy(nil)

func (f FixedEntropy) Entropy(*badger.Txn) ([]byte, error) {
	return f, nil
}

// DeriveIndex maps (caller, nonce, entropy) to an index in [0, indexRange)
// using Keccak-256.
func DeriveIndex(caller surety.Address, nonce uint64, entropy []byte, indexRange uint8) uint8 {
	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)

	hasher := sha3.NewLegacyKeccak256()
	_, _ = hasher.Write(caller[:])
	_, _ = hasher.Write(nonceBytes[:])
	_, _ = hasher.Write(entropy)
	digest := hasher.Sum(nil)

	return uint8(binary.BigEndian.Uint64(digest[len(digest)-8:]) % uint64(indexRange))
}

// IndexGenerator derives request indexes within one transaction. Every index
// consumes one value of the persisted nonce, so consecutive calls yield
// independent indexes.
type IndexGenerator struct {
	txn        *badger.Txn
	source     EntropySource
	indexRange uint8

	entropy    []byte
	createOnce sync.Once
	createErr  error
}

func NewIndexGenerator(txn *badger.Txn, source EntropySource, indexRange uint8) *IndexGenerator {
	return &IndexGenerator{
		txn:        txn,
		source:     source,
		indexRange: indexRange,
	}
}

// the entropy is read lazily since most transactions never derive an index
func (g *IndexGenerator) maybeLoadEntropy() error {
	g.createOnce.Do(func() {
		g.entropy, g.createErr = g.source.Entropy(g.txn)
	})
	return g.createErr
}

// NextIndex returns the next index for caller and the nonce it consumed.
func (g *IndexGenerator) NextIndex(caller surety.Address) (uint8, uint64, error) {
	err := g.maybeLoadEntropy()
	if err != nil {
		return 0, 0, fmt.Errorf("could not load entropy: %w", err)
	}

	var nonce uint64
	err = operation.RetrieveOracleNonce(&nonce)(g.txn)
	if err != nil {
		return 0, 0, fmt.Errorf("could not retrieve nonce: %w", err)
	}

	index := DeriveIndex(caller, nonce, g.entropy, g.indexRange)

	err = operation.UpdateOracleNonce(nonce + 1)(g.txn)
	if err != nil {
		return 0, 0, fmt.Errorf("could not update nonce: %w", err)
	}
	return index, nonce, nil
}
