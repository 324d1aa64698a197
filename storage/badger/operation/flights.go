package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
)

func InsertFlight(flight *surety.Flight) func(*badger.Txn) error {
	return insert(makePrefix(codeFlight, flight.Code), flight)
}

func UpdateFlight(flight *surety.Flight) func(*badger.Txn) error {
	return update(makePrefix(codeFlight, flight.Code), flight)
}

func RetrieveFlight(code string, flight *surety.Flight) func(*badger.Txn) error {
	return retrieve(makePrefix(codeFlight, code), flight)
}

// IndexFlight maps the registration position of a flight to its code.
func IndexFlight(index uint64, code string) func(*badger.Txn) error {
	return insert(makePrefix(codeFlightByIndex, index), code)
}

func LookupFlightCode(index uint64, code *string) func(*badger.Txn) error {
	return retrieve(makePrefix(codeFlightByIndex, index), code)
}

// LookupFlights returns the flights ordered by registration index.
func LookupFlights(flights *[]surety.Flight) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		var codes []string
		err := traverse(makePrefix(codeFlightByIndex), collect(&codes))(tx)
		if err != nil {
			return err
		}
		result := make([]surety.Flight, 0, len(codes))
		for _, code := range codes {
			var flight surety.Flight
			err = RetrieveFlight(code, &flight)(tx)
			if err != nil {
				return err
			}
			result = append(result, flight)
		}
		*flights = result
		return nil
	}
}

func InsertFlightCount(count uint64) func(*badger.Txn) error {
	return insert(makePrefix(codeFlightCount), count)
}

func UpdateFlightCount(count uint64) func(*badger.Txn) error {
	return update(makePrefix(codeFlightCount), count)
}

func RetrieveFlightCount(count *uint64) func(*badger.Txn) error {
	return retrieve(makePrefix(codeFlightCount), count)
}

// UpsertFlightStatusRecord stores the outcome of a resolved status request.
// Requests with different indexes for the same flight and timestamp may each
// resolve; the latest resolution wins.
func UpsertFlightStatusRecord(record *surety.FlightStatusRecord) func(*badger.Txn) error {
	return upsert(makePrefix(codeFlightStatusRecord, record.Airline, record.Flight, record.Timestamp), record)
}

func RetrieveFlightStatusRecord(airline surety.Address, flight string, timestamp int64, record *surety.FlightStatusRecord) func(*badger.Txn) error {
	return retrieve(makePrefix(codeFlightStatusRecord, airline, flight, timestamp), record)
}
