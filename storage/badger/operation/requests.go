package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
)

func InsertStatusRequest(request *surety.StatusRequest) func(*badger.Txn) error {
	return insert(makePrefix(codeStatusRequest, request.Key.ID()), request)
}

func UpdateStatusRequest(request *surety.StatusRequest) func(*badger.Txn) error {
	return update(makePrefix(codeStatusRequest, request.Key.ID()), request)
}

func RetrieveStatusRequest(key surety.RequestKey, request *surety.StatusRequest) func(*badger.Txn) error {
	return retrieve(makePrefix(codeStatusRequest, key.ID()), request)
}

func LookupStatusRequests(requests *[]surety.StatusRequest) func(*badger.Txn) error {
	return traverse(makePrefix(codeStatusRequest), collect(requests))
}
