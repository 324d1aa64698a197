// Package oracle simulates the off-ledger oracles. The engine registers its
// oracles with the contract, follows the event log for OracleRequest events
// and lets every oracle holding the request index submit a status response.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"go.uber.org/atomic"

	"github.com/onflow/flight-surety/contract"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/engine"
	"github.com/onflow/flight-surety/engine/common/fifoqueue"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module"
	"github.com/onflow/flight-surety/module/component"
	"github.com/onflow/flight-surety/module/counters"
	"github.com/onflow/flight-surety/module/irrecoverable"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/utils/logging"
	"github.com/onflow/flight-surety/utils/rand"
)

// Contract is the part of the contract the oracles talk to.
type Contract interface {
	RegistrationFee() surety.Amount
	RegisterOracle(ctx context.Context, caller surety.Address, fee surety.Amount) (*surety.Oracle, *contract.Result, error)
	GetMyIndexes(caller surety.Address) (surety.OracleIndexes, error)
	SubmitOracleResponse(
		ctx context.Context,
		caller surety.Address,
		index uint8,
		airline surety.Address,
		flight string,
		timestamp int64,
		status surety.FlightStatus,
	) (*contract.Result, error)
	EventHead() (uint64, error)
	Events(from uint64, to uint64) ([]surety.Event, error)
}

type Engine struct {
	*component.ComponentManager

	log      zerolog.Logger
	cfg      Config
	contract Contract
	metrics  module.OracleAgentMetrics

	processed *counters.PersistentStrictMonotonicCounter
	requests  *fifoqueue.FifoQueue[surety.OracleRequest]
	notifier  engine.Notifier
	seen      *lru.Cache[surety.Identifier, struct{}]
	pool      *workerpool.WorkerPool

	mu      sync.RWMutex
	indexes map[surety.Address]surety.OracleIndexes
	byIndex map[uint8][]surety.Address

	submitted *atomic.Uint64
	rejected  *atomic.Uint64
}

var _ component.Component = (*Engine)(nil)

// New creates the oracle engine. The event log position is persisted through
// progress, so a restarted engine resumes after the last processed event.
func New(
	log zerolog.Logger,
	cfg Config,
	c Contract,
	progress storage.ConsumerProgress,
	agentMetrics module.OracleAgentMetrics,
) (*Engine, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid oracle config: %w", err)
	}

	processed, err := counters.NewPersistentStrictMonotonicCounter(progress, 0)
	if err != nil {
		return nil, fmt.Errorf("could not initialize processed height: %w", err)
	}

	requests, err := fifoqueue.NewFifoQueue(
		fifoqueue.WithCapacity[surety.OracleRequest](cfg.QueueCapacity),
		fifoqueue.WithLengthObserver[surety.OracleRequest](agentMetrics.RequestQueueLength),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create request queue: %w", err)
	}

	seen, err := lru.New[surety.Identifier, struct{}](cfg.SeenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("could not create seen cache: %w", err)
	}

	e := &Engine{
		log:       log.With().Str("engine", "oracle").Logger(),
		cfg:       cfg,
		contract:  c,
		metrics:   agentMetrics,
		processed: processed,
		requests:  requests,
		notifier:  engine.NewNotifier(),
		seen:      seen,
		pool:      workerpool.New(cfg.Workers),
		indexes:   make(map[surety.Address]surety.OracleIndexes),
		byIndex:   make(map[uint8][]surety.Address),
		submitted: atomic.NewUint64(0),
		rejected:  atomic.NewUint64(0),
	}

	e.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(e.followEvents).
		AddWorker(e.dispatchRequests).
		Build()

	return e, nil
}

// Indexes returns the indexes of the oracles operated by the engine.
func (e *Engine) Indexes() map[surety.Address]surety.OracleIndexes {
	e.mu.RLock()
	defer e.mu.RUnlock()

	indexes := make(map[surety.Address]surety.OracleIndexes, len(e.indexes))
	for address, oracleIndexes := range e.indexes {
		indexes[address] = oracleIndexes
	}
	return indexes
}

// Submitted is the number of responses accepted by the contract.
func (e *Engine) Submitted() uint64 {
	return e.submitted.Load()
}

// Rejected is the number of responses rejected by the contract.
func (e *Engine) Rejected() uint64 {
	return e.rejected.Load()
}

// ProcessedHeight is the height of the last event handled.
func (e *Engine) ProcessedHeight() uint64 {
	return e.processed.Value()
}

// followEvents registers the oracles and then polls the event log.
func (e *Engine) followEvents(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	err := e.registerOracles(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		ctx.Throw(err)
	}
	ready()

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		// drain the log before waiting for the next tick
		for {
			caughtUp, err := e.poll()
			if err != nil {
				ctx.Throw(err)
			}
			if caughtUp {
				break
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (e *Engine) registerOracles(ctx context.Context) error {
	fee := e.contract.RegistrationFee()

	for _, address := range e.cfg.Oracles {
		indexes, err := e.contract.GetMyIndexes(address)
		if suretyerrors.IsNotAnOracleError(err) {
			var oracle *surety.Oracle
			oracle, _, err = e.contract.RegisterOracle(ctx, address, fee)
			if err == nil {
				indexes = oracle.Indexes
				e.log.Info().
					Hex("oracle", logging.Address(address)).
					Uints8("indexes", indexes[:]).
					Msg("oracle registered")
			}
		}
		if suretyerrors.IsCodedError(err) {
			e.log.Warn().Err(err).Hex("oracle", logging.Address(address)).Msg("could not register oracle, skipping")
			continue
		}
		if err != nil {
			return fmt.Errorf("could not register oracle %s: %w", address, err)
		}

		e.addOracle(address, indexes)
	}

	e.log.Info().Int("oracles", len(e.Indexes())).Msg("oracles ready")
	return nil
}

func (e *Engine) addOracle(address surety.Address, indexes surety.OracleIndexes) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.indexes[address] = indexes
	added := make(map[uint8]struct{}, len(indexes))
	for _, index := range indexes {
		// an oracle holding an index twice answers once
		if _, ok := added[index]; ok {
			continue
		}
		added[index] = struct{}{}
		e.byIndex[index] = append(e.byIndex[index], address)
	}
}

func (e *Engine) oraclesFor(index uint8) []surety.Address {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return append([]surety.Address(nil), e.byIndex[index]...)
}

// poll handles the next batch of events and reports whether the log is
// exhausted. No errors are expected during normal operation.
func (e *Engine) poll() (bool, error) {
	head, err := e.contract.EventHead()
	if err != nil {
		return false, fmt.Errorf("could not read event head: %w", err)
	}

	from := e.processed.Value() + 1
	if from > head {
		return true, nil
	}
	to := from + e.cfg.BatchSize - 1
	if to > head {
		to = head
	}

	events, err := e.contract.Events(from, to)
	if err != nil {
		return false, fmt.Errorf("could not read events: %w", err)
	}

	for _, event := range events {
		if event.Type != surety.EventOracleRequest {
			continue
		}
		id := event.ID()
		if e.seen.Contains(id) {
			continue
		}
		e.seen.Add(id, struct{}{})

		var request surety.OracleRequest
		err := event.Decode(&request)
		if err != nil {
			return false, fmt.Errorf("could not decode oracle request at height %d: %w", event.Height, err)
		}
		e.metrics.OracleRequestObserved()

		if !e.requests.Push(request) {
			e.log.Warn().
				Uint64("height", event.Height).
				Str("flight", request.Flight).
				Msg("request queue full, dropping oracle request")
		}
	}

	err = e.processed.Set(to)
	if err != nil {
		return false, fmt.Errorf("could not store processed height %d: %w", to, err)
	}
	e.metrics.ProcessedHeight(to)
	e.notifier.Notify()

	return to == head, nil
}

// dispatchRequests hands queued requests to the oracles holding their index.
func (e *Engine) dispatchRequests(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	ready()
	defer e.pool.StopWait()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.notifier.Channel():
		}

		for {
			request, ok := e.requests.Pop()
			if !ok {
				break
			}
			for _, oracle := range e.oraclesFor(request.Index) {
				oracle := oracle
				e.pool.Submit(func() {
					e.respond(ctx, oracle, request)
				})
			}
		}
	}
}

func (e *Engine) status() (surety.FlightStatus, error) {
	if !e.cfg.RandomStatus {
		return e.cfg.Status, nil
	}
	return rand.Sample(surety.FlightStatuses)
}

// respond submits the response of one oracle. Rejected responses are
// discarded, other failures are retried a few times.
func (e *Engine) respond(ctx context.Context, oracle surety.Address, request surety.OracleRequest) {
	log := e.log.With().
		Hex("oracle", logging.Address(oracle)).
		Uint8("index", request.Index).
		Str("flight", request.Flight).
		Int64("timestamp", request.Timestamp).
		Logger()

	// runs on a pool worker, so failures are logged rather than thrown
	status, err := e.status()
	if err != nil {
		log.Error().Err(err).Msg("could not draw status")
		return
	}

	backoff := retry.NewExponential(e.cfg.RetryBase)
	backoff = retry.WithMaxRetries(e.cfg.SubmitRetries, backoff)

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := e.contract.SubmitOracleResponse(ctx, oracle, request.Index, request.Airline, request.Flight, request.Timestamp, status)
		if err == nil {
			return nil
		}
		if suretyerrors.IsCodedError(err) || errors.Is(err, context.Canceled) {
			return err
		}
		log.Warn().Err(err).Msg("could not submit response, retrying")
		return retry.RetryableError(err)
	})

	code, rejected := suretyerrors.CodeOf(err)
	switch {
	case err == nil:
		e.metrics.OracleResponseSubmitted()
		e.submitted.Inc()
		log.Debug().Str("status", status.String()).Msg("response submitted")
	case rejected:
		e.metrics.OracleResponseRejected(code.Name())
		e.rejected.Inc()
		log.Debug().Err(err).Msg("response rejected")
	case errors.Is(err, context.Canceled):
	default:
		log.Error().Err(err).Msg("giving up on response")
	}
}
