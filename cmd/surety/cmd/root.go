package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onflow/flight-surety/contract/genesis"
)

const envPrefix = "SURETY"

const (
	flagDatadir  = "datadir"
	flagLogLevel = "loglevel"
	flagConfig   = "config"
)

// cli carries the state shared by all subcommands.
type cli struct {
	v   *viper.Viper
	log zerolog.Logger
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree. Every flag can also be set through a
// SURETY_ prefixed environment variable or a config file.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&cli{v: viper.New()})
}

func newRootCommand(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "surety",
		Short:         "Flight delay insurance contract node",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(flagDatadir, "d", "data", "directory of the contract state")
	flags.StringP(flagLogLevel, "l", "info", "level for logging output")
	flags.String(flagConfig, "", "optional YAML config file with flag values")
	addParameterFlags(flags)

	rootCmd.AddCommand(
		c.bootstrapCommand(),
		c.nodeCommand(),
		c.readCommand(),
	)
	return rootCmd
}

func (c *cli) init(cmd *cobra.Command) error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	err := c.v.BindPFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("could not bind flags: %w", err)
	}

	if path := c.v.GetString(flagConfig); path != "" {
		c.v.SetConfigFile(path)
		err = c.v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	lvl, err := zerolog.ParseLevel(strings.ToLower(c.v.GetString(flagLogLevel)))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	c.log = log.Level(lvl)
	return nil
}

// openDB opens the contract state. It fails unless the state was bootstrapped.
func (c *cli) openDB() (*badger.DB, error) {
	datadir := c.v.GetString(flagDatadir)
	db, err := initStorage(datadir)
	if err != nil {
		return nil, err
	}

	bootstrapped, err := genesis.IsBootstrapped(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if !bootstrapped {
		_ = db.Close()
		return nil, fmt.Errorf("contract state in %s is not bootstrapped, run `surety bootstrap` first", datadir)
	}
	return db, nil
}

func initStorage(datadir string) (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(datadir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("could not open key-value store at %s: %w", datadir, err)
	}
	return db, nil
}
