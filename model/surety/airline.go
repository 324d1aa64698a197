package surety

import "fmt"

// AirlineState is the admission state of an airline.
type AirlineState uint8

const (
	AirlineUnregistered AirlineState = iota
	// AirlineVoted is a candidate which received votes but no quorum yet.
	AirlineVoted
	AirlineRegistered
	// AirlineFunded is a registered airline which submitted its funding.
	// Only funded airlines participate in admission votes.
	AirlineFunded
)

func (s AirlineState) String() string {
	switch s {
	case AirlineUnregistered:
		return "unregistered"
	case AirlineVoted:
		return "voted"
	case AirlineRegistered:
		return "registered"
	case AirlineFunded:
		return "funded"
	default:
		return fmt.Sprintf("unknown airline state %d", uint8(s))
	}
}

// IsRegistered returns true for registered airlines, funded or not.
func (s AirlineState) IsRegistered() bool {
	return s == AirlineRegistered || s == AirlineFunded
}

// Airline is an airline known to the registry. Airlines are created on the first
// vote or on direct registration and are never removed.
type Airline struct {
	Address Address
	Name    string
	State   AirlineState
	Votes   uint32
	Balance Amount
}

// AirlineVote records that Voter voted for the admission of Candidate.
type AirlineVote struct {
	Candidate Address
	Voter     Address
}
