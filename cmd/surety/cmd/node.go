package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/admin/commands"
	suretycommands "github.com/onflow/flight-surety/admin/commands/surety"
	"github.com/onflow/flight-surety/contract"
	"github.com/onflow/flight-surety/engine/oracle"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module"
	"github.com/onflow/flight-surety/module/irrecoverable"
	"github.com/onflow/flight-surety/module/metrics"
	storagebadger "github.com/onflow/flight-surety/storage/badger"
)

const (
	flagAdminAddr     = "admin-addr"
	flagMetricsAddr   = "metrics-addr"
	flagProfiler      = "profiler"
	flagOraclesFile   = "oracles-file"
	flagOracle        = "oracle"
	flagOracleStatus  = "oracle-status"
	flagRandomStatus  = "random-status"
	flagPollInterval  = "poll-interval"
	flagBatchSize     = "batch-size"
	flagWorkers       = "workers"
	flagSubmitRetries = "submit-retries"
	flagStartTimeout  = "start-timeout"

	oracleAgentConsumer = "oracle_agent"
)

func (c *cli) nodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Run the oracle agent, the admin server and the metrics server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runNode(cmd.Context())
		},
	}

	defaults := oracle.DefaultConfig()
	flags := cmd.Flags()
	flags.String(flagAdminAddr, "localhost:9002", "address of the admin command server, empty to disable")
	flags.String(flagMetricsAddr, ":8080", "address of the prometheus metrics server, empty to disable")
	flags.Bool(flagProfiler, false, "serve pprof on the metrics server")
	flags.String(flagOraclesFile, "", "file with one oracle address per line")
	flags.StringSlice(flagOracle, nil, "oracle address operated by the agent (repeatable)")
	flags.String(flagOracleStatus, defaults.Status.String(), "status reported by the oracles")
	flags.Bool(flagRandomStatus, false, "report a random status per response")
	flags.Duration(flagPollInterval, defaults.PollInterval, "interval between event log polls")
	flags.Uint64(flagBatchSize, defaults.BatchSize, "maximum number of events read per poll")
	flags.Int(flagWorkers, defaults.Workers, "concurrent response submissions")
	flags.Uint64(flagSubmitRetries, defaults.SubmitRetries, "retries of a failed response submission")
	flags.Duration(flagStartTimeout, 30*time.Second, "how long to wait for components to start or stop")
	return cmd
}

func (c *cli) oracleConfig() (oracle.Config, error) {
	cfg := oracle.DefaultConfig()

	if path := c.v.GetString(flagOraclesFile); path != "" {
		addresses, err := readAddresses(path)
		if err != nil {
			return cfg, err
		}
		cfg.Oracles = append(cfg.Oracles, addresses...)
	}
	for _, hex := range c.v.GetStringSlice(flagOracle) {
		address, err := surety.HexToAddress(hex)
		if err != nil {
			return cfg, fmt.Errorf("--%s: %w", flagOracle, err)
		}
		cfg.Oracles = append(cfg.Oracles, address)
	}

	status, err := surety.ParseFlightStatus(c.v.GetString(flagOracleStatus))
	if err != nil {
		return cfg, fmt.Errorf("--%s: %w", flagOracleStatus, err)
	}
	cfg.Status = status
	cfg.RandomStatus = c.v.GetBool(flagRandomStatus)
	cfg.PollInterval = c.v.GetDuration(flagPollInterval)
	cfg.BatchSize = c.v.GetUint64(flagBatchSize)
	cfg.Workers = c.v.GetInt(flagWorkers)
	cfg.SubmitRetries = c.v.GetUint64(flagSubmitRetries)

	return cfg, cfg.Validate()
}

func (c *cli) runNode(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	params, err := c.parameters()
	if err != nil {
		return err
	}
	cfg, err := c.oracleConfig()
	if err != nil {
		return fmt.Errorf("invalid oracle config: %w", err)
	}

	db, err := c.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	cacheCollector := metrics.NewCacheCollector(registry)
	contractCollector := metrics.NewContractCollector(registry)
	agentCollector := metrics.NewOracleAgentCollector(registry)
	adminCollector := metrics.NewAdminCollector(registry)

	coord, err := contract.New(c.log, db, params, contractCollector, cacheCollector)
	if err != nil {
		return fmt.Errorf("could not initialize contract: %w", err)
	}

	var components []namedComponent

	if len(cfg.Oracles) > 0 {
		agent, err := oracle.New(c.log, cfg, coord, storagebadger.NewConsumerProgress(db, oracleAgentConsumer), agentCollector)
		if err != nil {
			return fmt.Errorf("could not initialize oracle agent: %w", err)
		}
		components = append(components, namedComponent{"oracle agent", agent})
	} else {
		c.log.Warn().Msg("no oracles configured, oracle agent disabled")
	}

	if addr := c.v.GetString(flagAdminAddr); addr != "" {
		bootstrapper := admin.NewCommandRunnerBootstrapper()
		registerAdminCommands(bootstrapper, coord)
		components = append(components, namedComponent{"admin server", bootstrapper.Bootstrap(c.log, addr, adminCollector)})
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)

	timeout := c.v.GetDuration(flagStartTimeout)
	for _, nc := range components {
		nc.component.Start(signalerCtx)
	}

	var server *metrics.Server
	if addr := c.v.GetString(flagMetricsAddr); addr != "" {
		server = metrics.NewServer(c.log, addr, registry, c.v.GetBool(flagProfiler))
		err = c.await("metrics server", server.Ready(), timeout)
		if err != nil {
			return err
		}
	}
	for _, nc := range components {
		err = c.await(nc.name, nc.component.Ready(), timeout)
		if err != nil {
			return err
		}
	}
	c.log.Info().Msg("node started")

	var g errgroup.Group
	g.Go(func() error {
		select {
		case err := <-errChan:
			cancel()
			return fmt.Errorf("irrecoverable error: %w", err)
		case <-ctx.Done():
			return nil
		}
	})
	for _, nc := range components {
		nc := nc
		g.Go(func() error {
			<-nc.component.Done()
			c.log.Info().Str("component", nc.name).Msg("component stopped")
			return nil
		})
	}
	if server != nil {
		g.Go(func() error {
			<-ctx.Done()
			return c.await("metrics server", server.Done(), timeout)
		})
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		c.log.Error().Err(err).Msg("node stopped with error")
		return err
	}
	c.log.Info().Msg("node stopped")
	return nil
}

type namedComponent struct {
	name      string
	component interface {
		module.Startable
		module.ReadyDoneAware
	}
}

func (c *cli) await(name string, ch <-chan struct{}, timeout time.Duration) error {
	select {
	case <-ch:
		c.log.Debug().Str("component", name).Msg("component ready")
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("%s did not respond within %s", name, timeout)
	}
}

func registerAdminCommands(bootstrapper *admin.CommandRunnerBootstrapper, coord *contract.Coordinator) {
	commands.Register(bootstrapper, "set-operating-status", suretycommands.NewSetOperatingStatusCommand(coord))
	commands.Register(bootstrapper, "read-airline", suretycommands.NewReadAirlineCommand(coord))
	commands.Register(bootstrapper, "read-flights", suretycommands.NewReadFlightsCommand(coord))
	commands.Register(bootstrapper, "read-status-request", suretycommands.NewReadStatusRequestCommand(coord))
	commands.Register(bootstrapper, "read-policies", suretycommands.NewReadPoliciesCommand(coord))
	commands.Register(bootstrapper, "read-events", suretycommands.NewReadEventsCommand(coord))
}
