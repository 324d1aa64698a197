package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module"
	"github.com/onflow/flight-surety/module/metrics"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/storage/badger/operation"
	"github.com/onflow/flight-surety/storage/badger/transaction"
)

// Oracles stores registered oracles. Oracle records never change after
// registration, which makes them safe to cache.
type Oracles struct {
	db    *badger.DB
	cache *Cache[surety.Address, *surety.Oracle]
}

var _ storage.Oracles = (*Oracles)(nil)

func NewOracles(collector module.CacheMetrics, db *badger.DB) *Oracles {
	store := func(address surety.Address, oracle *surety.Oracle) func(*transaction.Tx) error {
		return transaction.WithTx(operation.InsertOracle(oracle))
	}

	retrieve := func(address surety.Address) func(*badger.Txn) (*surety.Oracle, error) {
		return func(tx *badger.Txn) (*surety.Oracle, error) {
			var oracle surety.Oracle
			err := operation.RetrieveOracle(address, &oracle)(tx)
			return &oracle, err
		}
	}

	return &Oracles{
		db: db,
		cache: newCache[surety.Address, *surety.Oracle](collector, metrics.ResourceOracle,
			withStore(store),
			withRetrieve(retrieve)),
	}
}

func (o *Oracles) Store(oracle *surety.Oracle) func(*transaction.Tx) error {
	return o.cache.PutTx(oracle.Address, oracle)
}

func (o *Oracles) ByAddressTx(address surety.Address) func(*badger.Txn) (*surety.Oracle, error) {
	return o.cache.Get(address)
}

func (o *Oracles) ByAddress(address surety.Address) (*surety.Oracle, error) {
	tx := o.db.NewTransaction(false)
	defer tx.Discard()
	oracle, err := o.ByAddressTx(address)(tx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve oracle %s: %w", address, err)
	}
	return oracle, nil
}
