package surety_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/model/surety"
)

func TestStatusRequestRecord(t *testing.T) {
	oracle1 := surety.Uint64ToAddress(11)
	oracle2 := surety.Uint64ToAddress(12)

	req := &surety.StatusRequest{}
	require.False(t, req.HasVoted(oracle1))

	assert.Equal(t, uint32(1), req.Record(oracle1, surety.StatusLateAirline))
	assert.Equal(t, uint32(2), req.Record(oracle2, surety.StatusLateAirline))
	assert.Equal(t, uint32(0), req.Count(surety.StatusOnTime))
	assert.True(t, req.HasVoted(oracle1))
	assert.Len(t, req.Responses, 2)
	assert.Len(t, req.Tally, 1)
}

func TestRequestKeyID(t *testing.T) {
	key := surety.RequestKey{Index: 4, Airline: surety.Uint64ToAddress(1), Flight: "ND1309", Timestamp: 1600000000}
	same := key
	other := key
	other.Index = 5

	assert.Equal(t, key.ID(), same.ID())
	assert.NotEqual(t, key.ID(), other.ID())
}

func TestFlightStatus(t *testing.T) {
	for _, status := range surety.FlightStatuses {
		assert.True(t, status.Valid())
		parsed, err := surety.ParseFlightStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
	assert.False(t, surety.FlightStatus(15).Valid())
	_, err := surety.ParseFlightStatus("delayed")
	assert.Error(t, err)
}

func TestOracleIndexesContains(t *testing.T) {
	ix := surety.OracleIndexes{4, 4, 7}
	assert.True(t, ix.Contains(4))
	assert.True(t, ix.Contains(7))
	assert.False(t, ix.Contains(0))
}
