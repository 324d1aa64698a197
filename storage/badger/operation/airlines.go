package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
)

func InsertAirline(airline *surety.Airline) func(*badger.Txn) error {
	return insert(makePrefix(codeAirline, airline.Address), airline)
}

func UpdateAirline(airline *surety.Airline) func(*badger.Txn) error {
	return update(makePrefix(codeAirline, airline.Address), airline)
}

// RetrieveAirline returns storage.ErrNotFound for addresses the registry has
// never seen.
func RetrieveAirline(address surety.Address, airline *surety.Airline) func(*badger.Txn) error {
	return retrieve(makePrefix(codeAirline, address), airline)
}

func LookupAirlines(airlines *[]surety.Airline) func(*badger.Txn) error {
	return traverse(makePrefix(codeAirline), collect(airlines))
}

// InsertAirlineVote records a vote. A repeated vote by the same voter for the
// same candidate fails with storage.ErrAlreadyExists.
func InsertAirlineVote(vote surety.AirlineVote) func(*badger.Txn) error {
	return insert(makePrefix(codeAirlineVote, vote.Candidate, vote.Voter), vote)
}

func LookupAirlineVotes(candidate surety.Address, votes *[]surety.AirlineVote) func(*badger.Txn) error {
	return traverse(makePrefix(codeAirlineVote, candidate), collect(votes))
}

func InsertRegisteredAirlineCount(count uint32) func(*badger.Txn) error {
	return insert(makePrefix(codeRegisteredAirlineCount), count)
}

func UpdateRegisteredAirlineCount(count uint32) func(*badger.Txn) error {
	return update(makePrefix(codeRegisteredAirlineCount), count)
}

func RetrieveRegisteredAirlineCount(count *uint32) func(*badger.Txn) error {
	return retrieve(makePrefix(codeRegisteredAirlineCount), count)
}

func InsertFundedAirlineCount(count uint32) func(*badger.Txn) error {
	return insert(makePrefix(codeFundedAirlineCount), count)
}

func UpdateFundedAirlineCount(count uint32) func(*badger.Txn) error {
	return update(makePrefix(codeFundedAirlineCount), count)
}

func RetrieveFundedAirlineCount(count *uint32) func(*badger.Txn) error {
	return retrieve(makePrefix(codeFundedAirlineCount), count)
}
