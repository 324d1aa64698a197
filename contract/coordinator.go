// Package contract routes requests into the airline registry, the insurance
// ledger, the oracle registry and the status consensus engine. Every mutating
// request runs as one atomic transaction: either all of its state changes and
// events are committed, or none.
package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"

	"github.com/onflow/flight-surety/contract/airlines"
	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/contract/genesis"
	"github.com/onflow/flight-surety/contract/insurance"
	"github.com/onflow/flight-surety/contract/oracles"
	"github.com/onflow/flight-surety/contract/status"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module"
	"github.com/onflow/flight-surety/storage"
	storagebadger "github.com/onflow/flight-surety/storage/badger"
	"github.com/onflow/flight-surety/storage/badger/operation"
	"github.com/onflow/flight-surety/storage/badger/transaction"
	"github.com/onflow/flight-surety/utils/logging"
)

// Result describes a committed transaction.
type Result struct {
	TransactionID surety.Identifier
	// Height is the event log head after the transaction.
	Height uint64
	Events []surety.Event
}

type Coordinator struct {
	log     zerolog.Logger
	db      *badger.DB
	params  environment.Parameters
	metrics module.ContractMetrics
	entropy environment.EntropySource
	hook    environment.TransferHook

	events  *storagebadger.EventLog
	oracles *oracles.Registry

	airlineRegistry *airlines.Registry
	ledger          *insurance.Ledger
	consensus       *status.Engine
}

type Option func(*Coordinator)

// WithEntropySource replaces the ledger entropy used for index derivation.
func WithEntropySource(source environment.EntropySource) Option {
	return func(c *Coordinator) {
		c.entropy = source
	}
}

// WithTransferHook installs a hook that runs after every ledger transfer
// inside the transferring transaction.
func WithTransferHook(hook environment.TransferHook) Option {
	return func(c *Coordinator) {
		c.hook = hook
	}
}

// New creates a coordinator over a bootstrapped database.
func New(
	log zerolog.Logger,
	db *badger.DB,
	params environment.Parameters,
	contractMetrics module.ContractMetrics,
	cacheMetrics module.CacheMetrics,
	opts ...Option,
) (*Coordinator, error) {
	err := params.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid contract parameters: %w", err)
	}

	bootstrapped, err := genesis.IsBootstrapped(db)
	if err != nil {
		return nil, err
	}
	if !bootstrapped {
		return nil, fmt.Errorf("database holds no contract state, run bootstrap first")
	}

	oracleRegistry := oracles.NewRegistry(storagebadger.NewOracles(cacheMetrics, db))

	c := &Coordinator{
		log:             log.With().Str("component", "coordinator").Logger(),
		db:              db,
		params:          params,
		metrics:         contractMetrics,
		entropy:         environment.LedgerEntropy{},
		events:          storagebadger.NewEventLog(cacheMetrics, db),
		oracles:         oracleRegistry,
		airlineRegistry: airlines.NewRegistry(),
		ledger:          insurance.NewLedger(),
		consensus:       status.NewEngine(oracleRegistry, contractMetrics),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c, nil
}

// transactionBody is hashed into the transaction ID. Sequence and Previous
// make IDs unique even for identical requests.
type transactionBody struct {
	Sequence  uint64
	Previous  surety.Identifier
	Operation string
	Caller    surety.Address
	Value     surety.Amount
}

// execute runs f as one transaction of caller. A positive value is moved from
// the caller's account into the contract account before f runs. Optimistic
// conflicts with concurrent transactions re-run the whole transaction.
func (c *Coordinator) execute(
	ctx context.Context,
	operationName string,
	caller surety.Address,
	value surety.Amount,
	f func(env *environment.Environment) error,
) (*Result, error) {
	return c.run(ctx, operationName, caller, value, true, f)
}

func (c *Coordinator) run(
	ctx context.Context,
	operationName string,
	caller surety.Address,
	value surety.Amount,
	requireOperational bool,
	f func(env *environment.Environment) error,
) (*Result, error) {
	start := time.Now()

	var result *Result
	err := operation.RetryOnConflictTx(ctx, c.db, transaction.Update, func(tx *transaction.Tx) error {
		result = nil
		txn := tx.DBTxn

		if requireOperational {
			var operational bool
			err := operation.RetrieveOperatingStatus(&operational)(txn)
			if err != nil {
				return fmt.Errorf("could not retrieve operating status: %w", err)
			}
			if !operational {
				return suretyerrors.NewNotOperationalError(operationName)
			}
		}

		var count uint64
		err := operation.RetrieveTransactionCount(&count)(txn)
		if err != nil {
			return fmt.Errorf("could not retrieve transaction count: %w", err)
		}
		var previous surety.Identifier
		err = operation.RetrieveLastTransactionID(&previous)(txn)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("could not retrieve last transaction id: %w", err)
		}
		var head uint64
		err = operation.RetrieveEventHead(&head)(txn)
		if err != nil {
			return fmt.Errorf("could not retrieve event head: %w", err)
		}

		txID := surety.MakeID(transactionBody{
			Sequence:  count + 1,
			Previous:  previous,
			Operation: operationName,
			Caller:    caller,
			Value:     value,
		})

		env := environment.NewEnvironment(tx, txID, caller, c.params, head, c.entropy, c.hook)

		if value > 0 {
			err = env.Accounts.Transfer(caller, surety.ContractAddress, value)
			if err != nil {
				return err
			}
		}

		err = f(env)
		if err != nil {
			return err
		}

		events := env.Events.Events()
		err = c.events.Append(events)(tx)
		if err != nil {
			return fmt.Errorf("could not append events: %w", err)
		}
		err = operation.SetLastTransactionID(txID)(txn)
		if err != nil {
			return fmt.Errorf("could not store transaction id: %w", err)
		}
		err = operation.UpdateTransactionCount(count + 1)(txn)
		if err != nil {
			return fmt.Errorf("could not update transaction count: %w", err)
		}

		result = &Result{
			TransactionID: txID,
			Height:        head + uint64(len(events)),
			Events:        events,
		}
		tx.OnSucceed(func() {
			c.metrics.OperationExecuted(operationName, time.Since(start))
			c.metrics.EventsEmitted(len(events))
		})
		return nil
	})
	if err != nil {
		return nil, c.handleError(operationName, caller, operation.TerminateOnFullDisk(err))
	}

	c.log.Debug().
		Str("operation", operationName).
		Hex("caller", logging.Address(caller)).
		Hex("tx_id", logging.ID(result.TransactionID)).
		Int("events", len(result.Events)).
		Uint64("height", result.Height).
		Msg("transaction committed")

	return result, nil
}

func (c *Coordinator) handleError(operationName string, caller surety.Address, err error) error {
	code, coded := suretyerrors.CodeOf(err)
	if coded {
		c.metrics.OperationRejected(operationName, code.Name())
		c.log.Debug().
			Str("operation", operationName).
			Hex("caller", logging.Address(caller)).
			Uint16("code", uint16(code)).
			Err(err).
			Msg("transaction rejected")
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	c.metrics.OperationFailed(operationName)
	c.log.Error().
		Str("operation", operationName).
		Hex("caller", logging.Address(caller)).
		Err(err).
		Msg("transaction failed")
	return fmt.Errorf("%s failed: %w", operationName, err)
}

// view runs a read against the latest committed state.
func (c *Coordinator) view(f func(txn *badger.Txn) error) error {
	return c.db.View(f)
}
