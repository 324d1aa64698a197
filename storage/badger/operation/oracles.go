package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
)

func InsertOracle(oracle *surety.Oracle) func(*badger.Txn) error {
	return insert(makePrefix(codeOracle, oracle.Address), oracle)
}

func RetrieveOracle(address surety.Address, oracle *surety.Oracle) func(*badger.Txn) error {
	return retrieve(makePrefix(codeOracle, address), oracle)
}

func LookupOracles(oracles *[]surety.Oracle) func(*badger.Txn) error {
	return traverse(makePrefix(codeOracle), collect(oracles))
}

func InsertOracleNonce(nonce uint64) func(*badger.Txn) error {
	return insert(makePrefix(codeOracleNonce), nonce)
}

func UpdateOracleNonce(nonce uint64) func(*badger.Txn) error {
	return update(makePrefix(codeOracleNonce), nonce)
}

func RetrieveOracleNonce(nonce *uint64) func(*badger.Txn) error {
	return retrieve(makePrefix(codeOracleNonce), nonce)
}
