package surety

// RequestKey identifies a flight status request.
type RequestKey struct {
	Index     uint8
	Airline   Address
	Flight    string
	Timestamp int64
}

// ID returns the storage identifier of the request.
func (k RequestKey) ID() Identifier {
	return MakeID(k)
}

// StatusTally is the number of distinct oracles that reported a status.
type StatusTally struct {
	Status FlightStatus
	Count  uint32
}

// OracleResponse is a single vote on a request.
type OracleResponse struct {
	Oracle Address
	Status FlightStatus
}

// StatusRequest collects oracle votes on the status of a flight. A request is
// resolved exactly once; votes arriving afterwards are recorded but inert.
type StatusRequest struct {
	Key       RequestKey
	Requester Address
	Resolved  bool
	Status    FlightStatus
	Tally     []StatusTally
	Responses []OracleResponse
}

// HasVoted returns true if the oracle already responded to this request.
func (r *StatusRequest) HasVoted(oracle Address) bool {
	for _, resp := range r.Responses {
		if resp.Oracle == oracle {
			return true
		}
	}
	return false
}

// Record adds the vote and returns the updated count for the reported status.
// Callers must check HasVoted first.
func (r *StatusRequest) Record(oracle Address, status FlightStatus) uint32 {
	r.Responses = append(r.Responses, OracleResponse{Oracle: oracle, Status: status})
	for i := range r.Tally {
		if r.Tally[i].Status == status {
			r.Tally[i].Count++
			return r.Tally[i].Count
		}
	}
	r.Tally = append(r.Tally, StatusTally{Status: status, Count: 1})
	return 1
}

// Count returns the number of votes for status.
func (r *StatusRequest) Count(status FlightStatus) uint32 {
	for _, t := range r.Tally {
		if t.Status == status {
			return t.Count
		}
	}
	return 0
}
