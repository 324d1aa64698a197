package environment

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/storage/badger/operation"
)

// TransferHook is invoked after a transfer moved the value. It stands for the
// code a receiving account runs on receipt and may call back into the
// contract within the same transaction.
type TransferHook func(from surety.Address, to surety.Address, amount surety.Amount) error

// Accounts reads and moves ledger account balances within one transaction.
type Accounts struct {
	txn  *badger.Txn
	hook TransferHook
}

func NewAccounts(txn *badger.Txn, hook TransferHook) *Accounts {
	return &Accounts{
		txn:  txn,
		hook: hook,
	}
}

// Balance returns the ledger balance of the account. Unknown accounts hold zero.
func (a *Accounts) Balance(account surety.Address) (surety.Amount, error) {
	var balance surety.Amount
	err := operation.RetrieveAccountBalance(account, &balance)(a.txn)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not retrieve balance of %s: %w", account, err)
	}
	return balance, nil
}

// SetBalance overwrites the balance of the account.
func (a *Accounts) SetBalance(account surety.Address, balance surety.Amount) error {
	err := operation.SetAccountBalance(account, balance)(a.txn)
	if err != nil {
		return fmt.Errorf("could not set balance of %s: %w", account, err)
	}
	return nil
}

// Transfer moves amount from one account to another.
//
// Expected errors:
//   - InsufficientAccountBalance if the sender holds less than amount
func (a *Accounts) Transfer(from surety.Address, to surety.Address, amount surety.Amount) error {
	if amount == 0 {
		return nil
	}

	fromBalance, err := a.Balance(from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return suretyerrors.NewInsufficientAccountBalanceError(from, fromBalance, amount)
	}

	err = a.SetBalance(from, fromBalance-amount)
	if err != nil {
		return err
	}

	toBalance, err := a.Balance(to)
	if err != nil {
		return err
	}
	toBalance, err = toBalance.Add(amount)
	if err != nil {
		return fmt.Errorf("could not credit %s: %w", to, err)
	}
	err = a.SetBalance(to, toBalance)
	if err != nil {
		return err
	}

	if a.hook != nil {
		err = a.hook(from, to, amount)
		if err != nil {
			return fmt.Errorf("transfer hook of %s failed: %w", to, err)
		}
	}
	return nil
}
