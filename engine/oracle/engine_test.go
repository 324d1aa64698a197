package oracle_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/contract"
	"github.com/onflow/flight-surety/contract/environment"
	"github.com/onflow/flight-surety/contract/genesis"
	"github.com/onflow/flight-surety/engine/oracle"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module"
	"github.com/onflow/flight-surety/module/irrecoverable"
	"github.com/onflow/flight-surety/module/metrics"
	modulemock "github.com/onflow/flight-surety/module/mock"
	storagebadger "github.com/onflow/flight-surety/storage/badger"
	"github.com/onflow/flight-surety/utils/unittest"
)

const (
	flightCode = "SU100"
	departure  = int64(1_700_000_000)
	// enough oracles for every index to be held by at least three of them
	oracleCount = 40
)

type fixture struct {
	db      *badger.DB
	coord   *contract.Coordinator
	airline surety.Address
	oracles []surety.Address
}

func newFixture(t *testing.T, db *badger.DB) *fixture {
	f := &fixture{
		db:      db,
		airline: unittest.AddressFixture(),
		oracles: unittest.AddressListFixture(oracleCount),
	}

	g := &genesis.Genesis{
		Owner:        unittest.AddressFixture(),
		FirstAirline: genesis.Airline{Address: f.airline, Name: "First Air"},
		Flights:      []genesis.Flight{{Code: flightCode, Timestamp: departure}},
	}
	for _, address := range f.oracles {
		g.Accounts = append(g.Accounts, genesis.Account{Address: address, Balance: surety.Units(1)})
	}
	require.NoError(t, contract.Bootstrap(db, g))

	coord, err := contract.New(unittest.Logger(), db, environment.DefaultParameters(), metrics.NewNoopCollector(), metrics.NewNoopCollector())
	require.NoError(t, err)
	f.coord = coord
	return f
}

func (f *fixture) config() oracle.Config {
	cfg := oracle.DefaultConfig()
	cfg.Oracles = f.oracles
	cfg.PollInterval = 10 * time.Millisecond
	cfg.BatchSize = 7
	return cfg
}

func (f *fixture) start(t *testing.T, ctx context.Context, cfg oracle.Config) *oracle.Engine {
	return f.startWithMetrics(t, ctx, cfg, metrics.NewNoopCollector())
}

func (f *fixture) startWithMetrics(t *testing.T, ctx context.Context, cfg oracle.Config, agentMetrics module.OracleAgentMetrics) *oracle.Engine {
	e, err := oracle.New(unittest.Logger(), cfg, f.coord, storagebadger.NewConsumerProgress(f.db, "oracle_agent"), agentMetrics)
	require.NoError(t, err)

	e.Start(irrecoverable.NewMockSignalerContext(t, ctx))
	unittest.RequireCloseBefore(t, e.Ready(), 10*time.Second, "oracle engine did not become ready")
	return e
}

func stop(t *testing.T, cancel context.CancelFunc, e *oracle.Engine) {
	cancel()
	unittest.RequireCloseBefore(t, e.Done(), 10*time.Second, "oracle engine did not shut down")
}

func (f *fixture) holders(e *oracle.Engine, index uint8) int {
	count := 0
	for _, indexes := range e.Indexes() {
		if indexes.Contains(index) {
			count++
		}
	}
	return count
}

func TestOraclesResolveRequest(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		ctx, cancel := context.WithCancel(context.Background())

		e := f.start(t, ctx, f.config())
		require.Len(t, e.Indexes(), oracleCount)

		key, _, err := f.coord.FetchFlightStatus(ctx, unittest.AddressFixture(), f.airline, flightCode, departure)
		require.NoError(t, err)
		holders := f.holders(e, key.Index)
		require.GreaterOrEqual(t, holders, 3)

		require.Eventually(t, func() bool {
			return e.Submitted() == uint64(holders)
		}, 10*time.Second, 10*time.Millisecond)

		request, err := f.coord.GetStatusRequest(key)
		require.NoError(t, err)
		assert.True(t, request.Resolved)
		assert.Equal(t, surety.StatusLateAirline, request.Status)
		assert.Len(t, request.Responses, holders)
		assert.Zero(t, e.Rejected())

		flight, err := f.coord.GetFlightByIndex(0)
		require.NoError(t, err)
		assert.Equal(t, surety.StatusLateAirline, flight.Status)

		head, err := f.coord.EventHead()
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			return e.ProcessedHeight() == head
		}, 10*time.Second, 10*time.Millisecond)

		stop(t, cancel, e)
	})
}

// A restarted engine keeps its oracles and resumes after the processed height,
// so old requests are not answered twice.
func TestRestartResumes(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)

		ctx, cancel := context.WithCancel(context.Background())
		first := f.start(t, ctx, f.config())
		key, _, err := f.coord.FetchFlightStatus(ctx, unittest.AddressFixture(), f.airline, flightCode, departure)
		require.NoError(t, err)
		holders := uint64(f.holders(first, key.Index))
		require.Eventually(t, func() bool {
			return first.Submitted() == holders
		}, 10*time.Second, 10*time.Millisecond)
		indexes := first.Indexes()
		processed := first.ProcessedHeight()
		stop(t, cancel, first)

		ctx, cancel = context.WithCancel(context.Background())
		second := f.start(t, ctx, f.config())
		defer stop(t, cancel, second)
		assert.Equal(t, indexes, second.Indexes())
		assert.GreaterOrEqual(t, second.ProcessedHeight(), processed)

		// the second engine only sees the new request
		key, _, err = f.coord.FetchFlightStatus(ctx, unittest.AddressFixture(), f.airline, "SU200", departure)
		require.NoError(t, err)
		expected := uint64(f.holders(second, key.Index))
		require.Eventually(t, func() bool {
			return second.Submitted() == expected
		}, 10*time.Second, 10*time.Millisecond)
		assert.Zero(t, second.Rejected())
	})
}

func TestRandomStatuses(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		ctx, cancel := context.WithCancel(context.Background())

		cfg := f.config()
		cfg.RandomStatus = true
		e := f.start(t, ctx, cfg)
		defer stop(t, cancel, e)

		key, _, err := f.coord.FetchFlightStatus(ctx, unittest.AddressFixture(), f.airline, flightCode, departure)
		require.NoError(t, err)
		holders := uint64(f.holders(e, key.Index))

		require.Eventually(t, func() bool {
			return e.Submitted() == holders
		}, 10*time.Second, 10*time.Millisecond)

		request, err := f.coord.GetStatusRequest(key)
		require.NoError(t, err)
		for _, response := range request.Responses {
			assert.True(t, response.Status.Valid())
		}
	})
}

func TestUnfundedOraclesAreSkipped(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		ctx, cancel := context.WithCancel(context.Background())

		cfg := f.config()
		cfg.Oracles = append(cfg.Oracles, unittest.AddressFixture())
		e := f.start(t, ctx, cfg)
		defer stop(t, cancel, e)
		assert.Len(t, e.Indexes(), oracleCount)
	})
}

func TestAgentMetrics(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		ctx, cancel := context.WithCancel(context.Background())

		collector := modulemock.NewOracleAgentMetrics(t)
		collector.On("OracleRequestObserved").Return().Once()
		collector.On("OracleResponseSubmitted").Return()
		collector.On("ProcessedHeight", mock.Anything).Return()
		collector.On("RequestQueueLength", mock.Anything).Return()

		e := f.startWithMetrics(t, ctx, f.config(), collector)
		defer stop(t, cancel, e)
		key, _, err := f.coord.FetchFlightStatus(ctx, unittest.AddressFixture(), f.airline, flightCode, departure)
		require.NoError(t, err)
		holders := f.holders(e, key.Index)

		require.Eventually(t, func() bool {
			return e.Submitted() == uint64(holders)
		}, 10*time.Second, 10*time.Millisecond)
		collector.AssertNumberOfCalls(t, "OracleResponseSubmitted", holders)
		collector.AssertNotCalled(t, "OracleResponseRejected", mock.Anything)
	})
}

// flakyContract fails the first submission of every oracle with an error the
// contract did not raise itself.
type flakyContract struct {
	*contract.Coordinator
	mu     sync.Mutex
	failed map[surety.Address]bool
	errors int
}

func (c *flakyContract) SubmitOracleResponse(
	ctx context.Context,
	caller surety.Address,
	index uint8,
	airline surety.Address,
	flight string,
	timestamp int64,
	status surety.FlightStatus,
) (*contract.Result, error) {
	c.mu.Lock()
	if !c.failed[caller] {
		c.failed[caller] = true
		c.errors++
		c.mu.Unlock()
		return nil, fmt.Errorf("connection reset")
	}
	c.mu.Unlock()
	return c.Coordinator.SubmitOracleResponse(ctx, caller, index, airline, flight, timestamp, status)
}

func TestTransientSubmitErrorsAreRetried(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		f := newFixture(t, db)
		ctx, cancel := context.WithCancel(context.Background())

		flaky := &flakyContract{Coordinator: f.coord, failed: make(map[surety.Address]bool)}
		cfg := f.config()
		cfg.RetryBase = time.Millisecond

		e, err := oracle.New(unittest.Logger(), cfg, flaky, storagebadger.NewConsumerProgress(db, "oracle_agent"), metrics.NewNoopCollector())
		require.NoError(t, err)
		e.Start(irrecoverable.NewMockSignalerContext(t, ctx))
		unittest.RequireCloseBefore(t, e.Ready(), 10*time.Second, "oracle engine did not become ready")
		defer stop(t, cancel, e)

		key, _, err := f.coord.FetchFlightStatus(ctx, unittest.AddressFixture(), f.airline, flightCode, departure)
		require.NoError(t, err)
		holders := f.holders(e, key.Index)

		require.Eventually(t, func() bool {
			return e.Submitted() == uint64(holders)
		}, 10*time.Second, 10*time.Millisecond)
		assert.Zero(t, e.Rejected())

		flaky.mu.Lock()
		assert.Equal(t, holders, flaky.errors)
		flaky.mu.Unlock()

		request, err := f.coord.GetStatusRequest(key)
		require.NoError(t, err)
		assert.True(t, request.Resolved)
	})
}

func TestConfigValidation(t *testing.T) {
	cfg := oracle.DefaultConfig()
	require.NoError(t, cfg.Validate())

	address := unittest.AddressFixture()
	cfg.Oracles = []surety.Address{address, address}
	cfg.Status = surety.FlightStatus(7)
	cfg.Workers = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate oracle")
	assert.Contains(t, err.Error(), "invalid status code")
	assert.Contains(t, err.Error(), "workers must be positive")
}
