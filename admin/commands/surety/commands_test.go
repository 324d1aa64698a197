package surety_test

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/admin"
	commands "github.com/onflow/flight-surety/admin/commands/surety"
	"github.com/onflow/flight-surety/contract"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/contract/environment"
	"github.com/onflow/flight-surety/contract/genesis"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module/metrics"
	"github.com/onflow/flight-surety/utils/unittest"
)

const departure = int64(1_700_000_000)

type fixture struct {
	coord      *contract.Coordinator
	owner      surety.Address
	airline    surety.Address
	passengers []surety.Address
}

func newFixture(t *testing.T, db *badger.DB) *fixture {
	f := &fixture{
		owner:      unittest.AddressFixture(),
		airline:    unittest.AddressFixture(),
		passengers: unittest.AddressListFixture(2),
	}
	g := &genesis.Genesis{
		Owner:        f.owner,
		FirstAirline: genesis.Airline{Address: f.airline, Name: "First Air"},
		Flights: []genesis.Flight{
			{Code: "SU100", Timestamp: departure},
			{Code: "SU200", Timestamp: departure + 3600},
		},
	}
	for _, passenger := range f.passengers {
		g.Accounts = append(g.Accounts, genesis.Account{Address: passenger, Balance: surety.Units(1)})
	}
	require.NoError(t, contract.Bootstrap(db, g))

	coord, err := contract.New(unittest.Logger(), db, environment.DefaultParameters(), metrics.NewNoopCollector(), metrics.NewNoopCollector())
	require.NoError(t, err)
	f.coord = coord
	return f
}

// run validates and handles the request the way the command runner does.
func run(t *testing.T, command interface {
	Validator(*admin.CommandRequest) error
	Handler(context.Context, *admin.CommandRequest) (any, error)
}, data any) (any, error) {
	req := &admin.CommandRequest{Data: data}
	err := command.Validator(req)
	if err != nil {
		return nil, err
	}
	return command.Handler(context.Background(), req)
}

func TestSetOperatingStatus(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		command := commands.NewSetOperatingStatusCommand(f.coord)

		out, err := run(t, command, map[string]any{"operational": false})
		require.NoError(t, err)
		result := out.(map[string]any)
		assert.Equal(t, true, result["oldValue"])
		assert.Equal(t, false, result["newValue"])

		operational, err := f.coord.IsOperational()
		require.NoError(t, err)
		assert.False(t, operational)

		_, _, err = f.coord.FetchFlightStatus(context.Background(), unittest.AddressFixture(), f.airline, "SU100", departure)
		unittest.RequireErrorCode(t, err, suretyerrors.ErrCodeNotOperationalError)

		_, err = run(t, command, map[string]any{"operational": true})
		require.NoError(t, err)
		operational, err = f.coord.IsOperational()
		require.NoError(t, err)
		assert.True(t, operational)
	})
}

func TestSetOperatingStatusValidation(t *testing.T) {
	command := commands.NewSetOperatingStatusCommand(nil)

	for name, data := range map[string]any{
		"not a map":     "false",
		"missing field": map[string]any{},
		"wrong type":    map[string]any{"operational": "no"},
	} {
		t.Run(name, func(t *testing.T) {
			err := command.Validator(&admin.CommandRequest{Data: data})
			assert.True(t, admin.IsInvalidAdminParameterError(err))
		})
	}
}

func TestReadAirline(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		command := commands.NewReadAirlineCommand(f.coord)

		out, err := run(t, command, map[string]any{"address": f.airline.Hex()})
		require.NoError(t, err)
		airline := out.(map[string]any)
		assert.Equal(t, f.airline.Hex(), airline["address"])
		assert.Equal(t, "First Air", airline["name"])
		assert.Equal(t, "registered", airline["state"])
		assert.Equal(t, "0", airline["balance"])

		out, err = run(t, command, nil)
		require.NoError(t, err)
		assert.Len(t, out, 1)

		_, err = run(t, command, map[string]any{"address": unittest.AddressFixture().Hex()})
		unittest.RequireErrorCode(t, err, suretyerrors.ErrCodeAirlineNotFoundError)

		_, err = run(t, command, map[string]any{"address": "zz"})
		assert.True(t, admin.IsInvalidAdminParameterError(err))
	})
}

func TestReadFlights(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		command := commands.NewReadFlightsCommand(f.coord)

		out, err := run(t, command, nil)
		require.NoError(t, err)
		flights := out.([]any)
		require.Len(t, flights, 2)
		assert.Equal(t, "SU100", flights[0].(map[string]any)["code"])
		assert.Equal(t, "unknown", flights[0].(map[string]any)["status"])

		out, err = run(t, command, map[string]any{"airline": unittest.AddressFixture().Hex()})
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestReadStatusRequest(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		command := commands.NewReadStatusRequestCommand(f.coord)

		key, _, err := f.coord.FetchFlightStatus(context.Background(), unittest.AddressFixture(), f.airline, "SU100", departure)
		require.NoError(t, err)

		out, err := run(t, command, map[string]any{
			"index":     float64(key.Index),
			"airline":   f.airline.Hex(),
			"flight":    "SU100",
			"timestamp": float64(departure),
		})
		require.NoError(t, err)
		request := out.(map[string]any)
		assert.Equal(t, key.ID().String(), request["id"])
		assert.Equal(t, false, request["resolved"])
		assert.NotContains(t, request, "status")

		_, err = run(t, command, map[string]any{
			"index":     float64(key.Index),
			"airline":   f.airline.Hex(),
			"flight":    "SU100",
			"timestamp": 1.5,
		})
		assert.True(t, admin.IsInvalidAdminParameterError(err))

		_, err = run(t, command, map[string]any{"index": 300.0})
		assert.True(t, admin.IsInvalidAdminParameterError(err))
	})
}

func TestReadEvents(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		command := commands.NewReadEventsCommand(f.coord)

		out, err := run(t, command, nil)
		require.NoError(t, err)
		assert.Empty(t, out)

		_, _, err = f.coord.FetchFlightStatus(context.Background(), unittest.AddressFixture(), f.airline, "SU100", departure)
		require.NoError(t, err)
		_, _, err = f.coord.FetchFlightStatus(context.Background(), unittest.AddressFixture(), f.airline, "SU200", departure+3600)
		require.NoError(t, err)

		out, err = run(t, command, nil)
		require.NoError(t, err)
		events := out.([]any)
		require.Len(t, events, 2)
		first := events[0].(map[string]any)
		assert.Equal(t, uint64(1), first["height"])
		assert.Equal(t, string(surety.EventOracleRequest), first["type"])
		assert.Equal(t, "SU100", first["payload"].(map[string]any)["Flight"])

		out, err = run(t, command, map[string]any{"from": 2.0, "to": "2"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, uint64(2), out.([]any)[0].(map[string]any)["height"])

		_, err = run(t, command, map[string]any{"from": 5.0, "to": 2.0})
		assert.True(t, admin.IsInvalidAdminParameterError(err))
		_, err = run(t, command, map[string]any{"from": 1.0, "to": float64(1 + commands.MaxEventRange)})
		assert.True(t, admin.IsInvalidAdminParameterError(err))
	})
}

func TestReadPolicies(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		command := commands.NewReadPoliciesCommand(f.coord)

		out, err := run(t, command, map[string]any{"flight": "SU100"})
		require.NoError(t, err)
		assert.Empty(t, out)

		for _, passenger := range f.passengers {
			_, _, err = f.coord.PurchaseInsurance(context.Background(), passenger, "SU100", surety.MustParseAmount("0.5"))
			require.NoError(t, err)
		}

		out, err = run(t, command, map[string]any{"flight": "SU100"})
		require.NoError(t, err)
		policies := out.([]any)
		require.Len(t, policies, len(f.passengers))

		seen := make(map[string]bool)
		for _, raw := range policies {
			policy := raw.(map[string]any)
			assert.Equal(t, "SU100", policy["flight"])
			assert.Equal(t, "0.5", policy["amount"])
			assert.Equal(t, "0.75", policy["payout"])
			assert.Equal(t, "active", policy["state"])
			seen[policy["passenger"].(string)] = true
		}
		for _, passenger := range f.passengers {
			assert.True(t, seen[passenger.Hex()])
		}

		out, err = run(t, command, map[string]any{"flight": "SU200"})
		require.NoError(t, err)
		assert.Empty(t, out)

		_, err = run(t, command, map[string]any{"flight": "SU999"})
		unittest.RequireErrorCode(t, err, suretyerrors.ErrCodeFlightNotFoundError)

		_, err = run(t, command, nil)
		assert.True(t, admin.IsInvalidAdminParameterError(err))
	})
}
