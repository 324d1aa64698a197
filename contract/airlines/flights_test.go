package airlines_test

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/contract/airlines"
	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/contract/testutil"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/utils/unittest"
)

func TestRegisterFlight(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		h := testutil.NewHarness(t, db)
		registry := airlines.NewRegistry()

		registerFlight := func(caller surety.Address, code string) ([]surety.Event, error) {
			return h.Execute(caller, func(env *environment.Environment) error {
				_, err := registry.RegisterFlight(env, code, 1_700_000_000)
				return err
			})
		}

		t.Run("requires a funded airline", func(t *testing.T) {
			_, err := registerFlight(h.Genesis.FirstAirline.Address, "SU100")
			require.True(t, suretyerrors.IsUnauthorizedError(err))
		})

		funded := h.FundedAirlines(t, 2)

		events, err := registerFlight(funded[0], "SU100")
		require.NoError(t, err)
		require.Len(t, events, 1)

		var registered surety.FlightRegistered
		require.NoError(t, events[0].Decode(&registered))
		assert.Equal(t, uint64(0), registered.Index)
		assert.Equal(t, funded[0], registered.Airline)

		_, err = registerFlight(funded[1], "SU200")
		require.NoError(t, err)

		t.Run("codes are unique across airlines", func(t *testing.T) {
			_, err := registerFlight(funded[1], "SU100")
			require.True(t, suretyerrors.IsDuplicateFlightError(err))
		})

		h.View(t, func(txn *badger.Txn) {
			count, err := airlines.GetFlightsCount(txn)
			require.NoError(t, err)
			assert.Equal(t, uint64(2), count)

			flight, err := airlines.GetFlightByIndex(txn, 1)
			require.NoError(t, err)
			assert.Equal(t, "SU200", flight.Code)
			assert.Equal(t, funded[1], flight.Airline)
			assert.Equal(t, surety.StatusUnknown, flight.Status)

			_, err = airlines.GetFlightByIndex(txn, 2)
			require.True(t, suretyerrors.IsFlightNotFoundError(err))

			flights, err := airlines.ListFlights(txn)
			require.NoError(t, err)
			require.Len(t, flights, 2)
			assert.Equal(t, "SU100", flights[0].Code)
		})
	})
}
