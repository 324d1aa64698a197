package operation

import (
	"github.com/dgraph-io/badger/v2"
)

func InsertProcessedIndex(jobName string, processed uint64) func(*badger.Txn) error {
	return insert(makePrefix(codeJobConsumerProcessed, jobName), processed)
}

// SetProcessedIndex updates the processed index of the given consumer.
func SetProcessedIndex(jobName string, processed uint64) func(*badger.Txn) error {
	return update(makePrefix(codeJobConsumerProcessed, jobName), processed)
}

func RetrieveProcessedIndex(jobName string, processed *uint64) func(*badger.Txn) error {
	return retrieve(makePrefix(codeJobConsumerProcessed, jobName), processed)
}
