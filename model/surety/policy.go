package surety

// PolicyState is the lifecycle state of an insurance policy.
type PolicyState uint8

const (
	PolicyActive PolicyState = iota + 1
	PolicyClaimed
)

func (s PolicyState) String() string {
	switch s {
	case PolicyActive:
		return "active"
	case PolicyClaimed:
		return "claimed"
	default:
		return "invalid"
	}
}

// Policy is the insurance bought by one passenger for one flight. The payout is
// fixed at purchase time.
type Policy struct {
	FlightCode string
	Passenger  Address
	Amount     Amount
	Payout     Amount
	State      PolicyState
}
