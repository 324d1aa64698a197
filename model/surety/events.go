package surety

// Payload types of the events emitted by the contract. Each payload is stored
// msgpack encoded in Event.Payload.

// AirlineVotedEvent carries the vote count of the candidate after the vote.
type AirlineVotedEvent struct {
	Candidate Address
	Name      string
	VoteCount uint32
}

type AirlineRegisteredEvent struct {
	Airline Address
	Name    string
}

type AirlineFundedEvent struct {
	Airline Address
	Amount  Amount
	Balance Amount
}

// AirlinePaid confirms that an airline submitted its funding.
type AirlinePaid struct {
	Airline Address
	Amount  Amount
}

type FlightRegistered struct {
	Airline   Address
	Code      string
	Timestamp int64
	Index     uint64
}

type InsurancePurchased struct {
	Passenger      Address
	FlightCode     string
	Amount         Amount
	InsuranceValue Amount
}

type InsuranceClaimed struct {
	Passenger  Address
	FlightCode string
	Payout     Amount
}

type BalanceWithdrawn struct {
	Account Address
	Amount  Amount
}

type OracleRegistered struct {
	Oracle  Address
	Indexes OracleIndexes
}

// OracleRequest asks every oracle holding Index to report the status of the flight.
type OracleRequest struct {
	Index     uint8
	Airline   Address
	Flight    string
	Timestamp int64
}

type OracleReport struct {
	Oracle    Address
	Airline   Address
	Flight    string
	Timestamp int64
	Status    FlightStatus
}

type FlightStatusInfo struct {
	Airline   Address
	Flight    string
	Timestamp int64
	Status    FlightStatus
}

type FlightStatusProcessed struct {
	Airline   Address
	Flight    string
	Timestamp int64
	Status    FlightStatus
}

type OperatingStatusChanged struct {
	Operational bool
}

var payloadTypes = map[EventType]func() interface{}{
	EventAirlineVoted:           func() interface{} { return new(AirlineVotedEvent) },
	EventAirlineRegistered:      func() interface{} { return new(AirlineRegisteredEvent) },
	EventAirlineFunded:          func() interface{} { return new(AirlineFundedEvent) },
	EventAirlinePaid:            func() interface{} { return new(AirlinePaid) },
	EventFlightRegistered:       func() interface{} { return new(FlightRegistered) },
	EventInsurancePurchased:     func() interface{} { return new(InsurancePurchased) },
	EventInsuranceClaimed:       func() interface{} { return new(InsuranceClaimed) },
	EventBalanceWithdrawn:       func() interface{} { return new(BalanceWithdrawn) },
	EventOracleRegistered:       func() interface{} { return new(OracleRegistered) },
	EventOracleRequest:          func() interface{} { return new(OracleRequest) },
	EventOracleReport:           func() interface{} { return new(OracleReport) },
	EventFlightStatusInfo:       func() interface{} { return new(FlightStatusInfo) },
	EventFlightStatusProcessed:  func() interface{} { return new(FlightStatusProcessed) },
	EventOperatingStatusChanged: func() interface{} { return new(OperatingStatusChanged) },
}
