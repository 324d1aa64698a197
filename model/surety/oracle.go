package surety

// IndexesPerOracle is the number of request indexes assigned to every oracle.
const IndexesPerOracle = 3

// OracleIndexes are the request indexes an oracle answers for. They are not
// necessarily distinct.
type OracleIndexes [IndexesPerOracle]uint8

// Contains returns true if index is one of the assigned indexes.
func (ix OracleIndexes) Contains(index uint8) bool {
	for _, i := range ix {
		if i == index {
			return true
		}
	}
	return false
}

// Oracle is a registered flight status oracle. Oracles are never modified after
// registration.
type Oracle struct {
	Address Address
	Fee     Amount
	Indexes OracleIndexes
	// Nonce is the registration counter value used to derive the indexes.
	Nonce uint64
}
