package admin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/onflow/flight-surety/module"
	"github.com/onflow/flight-surety/module/component"
	"github.com/onflow/flight-surety/module/irrecoverable"
)

const (
	CommandRunnerMaxQueueLength  = 128
	CommandRunnerNumWorkers      = 1
	CommandRunnerShutdownTimeout = 5 * time.Second
)

type CommandHandler func(ctx context.Context, request *CommandRequest) (any, error)
type CommandValidator func(request *CommandRequest) error

// CommandRunnerBootstrapper collects the handlers before the runner is built.
type CommandRunnerBootstrapper struct {
	handlers   map[string]CommandHandler
	validators map[string]CommandValidator
}

func NewCommandRunnerBootstrapper() *CommandRunnerBootstrapper {
	return &CommandRunnerBootstrapper{
		handlers:   make(map[string]CommandHandler),
		validators: make(map[string]CommandValidator),
	}
}

// RegisterHandler returns false if a handler is already registered for command.
func (r *CommandRunnerBootstrapper) RegisterHandler(command string, handler CommandHandler) bool {
	if _, ok := r.handlers[command]; ok {
		return false
	}
	r.handlers[command] = handler
	return true
}

// RegisterValidator returns false if a validator is already registered for command.
func (r *CommandRunnerBootstrapper) RegisterValidator(command string, validator CommandValidator) bool {
	if _, ok := r.validators[command]; ok {
		return false
	}
	r.validators[command] = validator
	return true
}

func (r *CommandRunnerBootstrapper) Bootstrap(log zerolog.Logger, address string, adminMetrics module.AdminMetrics) *CommandRunner {
	commandQ := make(chan *CommandRequest, CommandRunnerMaxQueueLength)

	handlers := make(map[string]CommandHandler, len(r.handlers))
	for command, handler := range r.handlers {
		handlers[command] = handler
	}
	validators := make(map[string]CommandValidator, len(r.validators))
	for command, validator := range r.validators {
		validators[command] = validator
	}

	runner := &CommandRunner{
		log:        log.With().Str("admin", "command_runner").Logger(),
		address:    address,
		metrics:    adminMetrics,
		handlers:   handlers,
		validators: validators,
		commandQ:   commandQ,
		handled:    atomic.NewUint64(0),
	}

	builder := component.NewComponentManagerBuilder().
		AddWorker(runner.runAdminServer)
	for i := 0; i < CommandRunnerNumWorkers; i++ {
		builder.AddWorker(runner.processLoop)
	}
	runner.ComponentManager = builder.Build()

	return runner
}

// CommandRunner serves admin commands over HTTP and runs them one at a time.
type CommandRunner struct {
	*component.ComponentManager

	log        zerolog.Logger
	address    string
	metrics    module.AdminMetrics
	handlers   map[string]CommandHandler
	validators map[string]CommandValidator
	commandQ   chan *CommandRequest
	handled    *atomic.Uint64

	mu         sync.RWMutex
	listenAddr string
}

var _ component.Component = (*CommandRunner)(nil)

// Addr returns the address the server listens on, once the runner is ready.
func (r *CommandRunner) Addr() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listenAddr
}

// Handled is the number of commands run successfully.
func (r *CommandRunner) Handled() uint64 {
	return r.handled.Load()
}

func (r *CommandRunner) runAdminServer(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	listener, err := net.Listen("tcp", r.address)
	if err != nil {
		ctx.Throw(fmt.Errorf("could not listen on admin address %s: %w", r.address, err))
	}

	r.mu.Lock()
	r.listenAddr = listener.Addr().String()
	r.mu.Unlock()

	server := &http.Server{
		Handler:      newAdminServer(r.log, r.commandQ).router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.Serve(listener)
	}()
	r.log.Info().Str("address", r.listenAddr).Msg("admin server started")
	ready()

	select {
	case <-ctx.Done():
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			ctx.Throw(fmt.Errorf("admin server failed: %w", err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), CommandRunnerShutdownTimeout)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		r.log.Err(err).Msg("admin server shutdown failed")
	}
}

func (r *CommandRunner) processLoop(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	ready()

	for {
		select {
		case <-ctx.Done():
			return
		case command := <-r.commandQ:
			data, err := r.runCommand(command)
			r.metrics.AdminCommandHandled(command.Command, err == nil)

			log := r.log.With().
				Str("command", command.Command).
				Str("request_id", command.ID).
				Logger()
			if err != nil {
				log.Warn().Err(err).Msg("admin command failed")
			} else {
				r.handled.Inc()
				log.Info().Msg("admin command handled")
			}

			command.responseChan <- &CommandResponse{data: data, err: err}
			close(command.responseChan)
		}
	}
}

func (r *CommandRunner) runCommand(command *CommandRequest) (any, error) {
	handler, ok := r.handlers[command.Command]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, command.Command)
	}

	if validator, ok := r.validators[command.Command]; ok {
		err := validator(command)
		if err != nil {
			return nil, err
		}
	}

	return handler(command.ctx, command)
}
