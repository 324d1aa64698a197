// Package oracles registers the oracles which report flight statuses and
// assigns each of them the request indexes it answers for.
package oracles

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage"
)

type Registry struct {
	oracles storage.Oracles
}

func NewRegistry(oracles storage.Oracles) *Registry {
	return &Registry{
		oracles: oracles,
	}
}

// RegisterOracle registers the caller and assigns its indexes. The fee has
// been moved into the contract account before.
//
// Expected errors:
//   - InsufficientFee if fee is below the registration fee
//   - AlreadyRegistered if the caller is an oracle already
func (r *Registry) RegisterOracle(env *environment.Environment, fee surety.Amount) (*surety.Oracle, error) {
	if fee < env.Params.RegistrationFee {
		return nil, suretyerrors.NewInsufficientFeeError(fee, env.Params.RegistrationFee)
	}

	existing, err := r.lookup(env.Tx.DBTxn, env.Caller)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, suretyerrors.NewAlreadyRegisteredError("oracle", env.Caller)
	}

	oracle := &surety.Oracle{
		Address: env.Caller,
		Fee:     fee,
	}
	for i := range oracle.Indexes {
		index, nonce, err := env.Random.NextIndex(env.Caller)
		if err != nil {
			return nil, fmt.Errorf("could not derive index: %w", err)
		}
		if i == 0 {
			oracle.Nonce = nonce
		}
		oracle.Indexes[i] = index
	}

	err = r.oracles.Store(oracle)(env.Tx)
	if err != nil {
		return nil, fmt.Errorf("could not store oracle: %w", err)
	}

	err = env.Events.Emit(surety.EventOracleRegistered, surety.OracleRegistered{
		Oracle:  oracle.Address,
		Indexes: oracle.Indexes,
	})
	if err != nil {
		return nil, err
	}
	return oracle, nil
}

// GetMyIndexes returns the indexes assigned to the caller.
//
// Expected errors:
//   - NotAnOracle if the caller never registered
func (r *Registry) GetMyIndexes(caller surety.Address) (surety.OracleIndexes, error) {
	oracle, err := r.oracles.ByAddress(caller)
	if errors.Is(err, storage.ErrNotFound) {
		return surety.OracleIndexes{}, suretyerrors.NewNotAnOracleError(caller)
	}
	if err != nil {
		return surety.OracleIndexes{}, err
	}
	return oracle.Indexes, nil
}

// Oracle returns the oracle registered at address within a transaction.
//
// Expected errors:
//   - NotAnOracle if the address never registered
func (r *Registry) Oracle(txn *badger.Txn, address surety.Address) (*surety.Oracle, error) {
	oracle, err := r.lookup(txn, address)
	if err != nil {
		return nil, err
	}
	if oracle == nil {
		return nil, suretyerrors.NewNotAnOracleError(address)
	}
	return oracle, nil
}

func (r *Registry) lookup(txn *badger.Txn, address surety.Address) (*surety.Oracle, error) {
	oracle, err := r.oracles.ByAddressTx(address)(txn)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not retrieve oracle %s: %w", address, err)
	}
	return oracle, nil
}
