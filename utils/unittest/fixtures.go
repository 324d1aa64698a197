package unittest

import (
	crand "crypto/rand"
	"fmt"
	"math/rand"

	"github.com/onflow/flight-surety/model/surety"
)

func AddressFixture() surety.Address {
	var addr surety.Address
	// keep clear of the reserved low addresses such as the contract account
	for addr.IsEmpty() || addr == surety.ContractAddress {
		_, _ = crand.Read(addr[:])
	}
	return addr
}

func AddressListFixture(n int) []surety.Address {
	list := make([]surety.Address, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, AddressFixture())
	}
	return list
}

func IdentifierFixture() surety.Identifier {
	var id surety.Identifier
	_, _ = crand.Read(id[:])
	return id
}

func IdentifierListFixture(n int) []surety.Identifier {
	list := make([]surety.Identifier, n)
	for i := 0; i < n; i++ {
		list[i] = IdentifierFixture()
	}
	return list
}

// AmountFixture returns an amount between 0.01 and 1 units.
func AmountFixture() surety.Amount {
	return surety.Amount(1_000_000 + rand.Int63n(99_000_000))
}

func AirlineFixture(state surety.AirlineState) surety.Airline {
	addr := AddressFixture()
	return surety.Airline{
		Address: addr,
		Name:    fmt.Sprintf("Airline %s", addr.Hex()[:6]),
		State:   state,
	}
}

// FlightCodeFixture returns a flight code such as "SU1234".
func FlightCodeFixture() string {
	return fmt.Sprintf("SU%04d", rand.Intn(10000))
}

func FlightFixture(airline surety.Address, index uint64) surety.Flight {
	return surety.Flight{
		Airline:   airline,
		Code:      fmt.Sprintf("%s-%d", FlightCodeFixture(), index),
		Timestamp: 1_600_000_000 + rand.Int63n(100_000_000),
		Status:    surety.StatusUnknown,
		Index:     index,
	}
}

func PolicyFixture(flightCode string) surety.Policy {
	amount := AmountFixture()
	return surety.Policy{
		FlightCode: flightCode,
		Passenger:  AddressFixture(),
		Amount:     amount,
		Payout:     amount + amount/2,
		State:      surety.PolicyActive,
	}
}

// EventFixture returns an OracleReport-shaped event of the given type. The
// payload is only decodable for EventOracleReport.
func EventFixture(eventType surety.EventType, height uint64, txID surety.Identifier) surety.Event {
	payload, err := surety.EncodePayload(surety.OracleReport{
		Oracle:    AddressFixture(),
		Airline:   AddressFixture(),
		Flight:    FlightCodeFixture(),
		Timestamp: 1_600_000_000,
		Status:    surety.StatusLateAirline,
	})
	if err != nil {
		panic(err)
	}
	return surety.Event{
		Height:        height,
		TransactionID: txID,
		EventIndex:    0,
		Type:          eventType,
		Caller:        AddressFixture(),
		Payload:       payload,
	}
}

func OracleIndexesFixture() surety.OracleIndexes {
	var indexes surety.OracleIndexes
	for i := range indexes {
		indexes[i] = uint8(rand.Intn(10))
	}
	return indexes
}

func OracleFixture() surety.Oracle {
	return surety.Oracle{
		Address: AddressFixture(),
		Fee:     surety.Units(1),
		Indexes: OracleIndexesFixture(),
		Nonce:   rand.Uint64(),
	}
}

func RequestKeyFixture() surety.RequestKey {
	return surety.RequestKey{
		Index:     uint8(rand.Intn(10)),
		Airline:   AddressFixture(),
		Flight:    FlightCodeFixture(),
		Timestamp: 1_600_000_000 + rand.Int63n(100_000_000),
	}
}

// StatusRequestFixture returns an open request with two recorded votes.
func StatusRequestFixture() *surety.StatusRequest {
	request := &surety.StatusRequest{
		Key:       RequestKeyFixture(),
		Requester: AddressFixture(),
	}
	request.Record(AddressFixture(), surety.StatusLateAirline)
	request.Record(AddressFixture(), surety.StatusOnTime)
	return request
}
