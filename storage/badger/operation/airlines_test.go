package operation

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/utils/unittest"
)

func TestAirlineInsertRetrieve(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		expected := unittest.AirlineFixture(surety.AirlineRegistered)

		err := db.Update(InsertAirline(&expected))
		require.NoError(t, err)

		var actual surety.Airline
		err = db.View(RetrieveAirline(expected.Address, &actual))
		require.NoError(t, err)
		assert.Equal(t, expected, actual)

		// inserting the same airline twice is rejected
		err = db.Update(InsertAirline(&expected))
		require.ErrorIs(t, err, storage.ErrAlreadyExists)

		expected.State = surety.AirlineFunded
		err = db.Update(UpdateAirline(&expected))
		require.NoError(t, err)
		err = db.View(RetrieveAirline(expected.Address, &actual))
		require.NoError(t, err)
		assert.Equal(t, surety.AirlineFunded, actual.State)
	})
}

func TestAirlineRetrieveUnknown(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		var actual surety.Airline
		err := db.View(RetrieveAirline(unittest.AddressFixture(), &actual))
		require.ErrorIs(t, err, storage.ErrNotFound)

		err = db.Update(UpdateAirline(&surety.Airline{Address: unittest.AddressFixture()}))
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAirlineVotes(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		candidate := unittest.AddressFixture()
		voters := unittest.AddressListFixture(3)

		for _, voter := range voters {
			err := db.Update(InsertAirlineVote(surety.AirlineVote{Candidate: candidate, Voter: voter}))
			require.NoError(t, err)
		}

		err := db.Update(InsertAirlineVote(surety.AirlineVote{Candidate: candidate, Voter: voters[0]}))
		require.ErrorIs(t, err, storage.ErrAlreadyExists)

		// votes of other candidates are not returned
		err = db.Update(InsertAirlineVote(surety.AirlineVote{Candidate: unittest.AddressFixture(), Voter: voters[0]}))
		require.NoError(t, err)

		var votes []surety.AirlineVote
		err = db.View(LookupAirlineVotes(candidate, &votes))
		require.NoError(t, err)
		assert.Len(t, votes, 3)
	})
}

func TestAirlineCounts(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		var count uint32
		err := db.View(RetrieveFundedAirlineCount(&count))
		require.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, db.Update(InsertFundedAirlineCount(1)))
		require.NoError(t, db.Update(UpdateFundedAirlineCount(2)))
		require.NoError(t, db.View(RetrieveFundedAirlineCount(&count)))
		assert.Equal(t, uint32(2), count)
	})
}
