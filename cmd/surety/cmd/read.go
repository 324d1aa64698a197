package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/admin/commands"
	suretycommands "github.com/onflow/flight-surety/admin/commands/surety"
	"github.com/onflow/flight-surety/contract"
	"github.com/onflow/flight-surety/module/metrics"
)

const (
	flagFrom   = "from"
	flagTo     = "to"
	flagFlight = "flight"
)

func (c *cli) readCommand() *cobra.Command {
	readCmd := &cobra.Command{
		Use:   "read",
		Short: "Print contract state as JSON",
	}

	readCmd.AddCommand(
		&cobra.Command{
			Use:   "airlines",
			Short: "List airlines",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.read(cmd, func(coord *contract.Coordinator) (commands.AdminCommand, any) {
					return suretycommands.NewReadAirlineCommand(coord), nil
				})
			},
		},
		&cobra.Command{
			Use:   "flights",
			Short: "List registered flights",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.read(cmd, func(coord *contract.Coordinator) (commands.AdminCommand, any) {
					return suretycommands.NewReadFlightsCommand(coord), nil
				})
			},
		},
	)

	policiesCmd := &cobra.Command{
		Use:   "policies",
		Short: "List the insurance policies sold on a flight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := map[string]any{flagFlight: c.v.GetString(flagFlight)}
			return c.read(cmd, func(coord *contract.Coordinator) (commands.AdminCommand, any) {
				return suretycommands.NewReadPoliciesCommand(coord), data
			})
		},
	}
	policiesCmd.Flags().String(flagFlight, "", "flight code")
	readCmd.AddCommand(policiesCmd)

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "List a range of the event log, by default the most recent events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := map[string]any{}
			if cmd.Flags().Changed(flagFrom) {
				data[flagFrom] = c.v.GetString(flagFrom)
			}
			if cmd.Flags().Changed(flagTo) {
				data[flagTo] = c.v.GetString(flagTo)
			}
			return c.read(cmd, func(coord *contract.Coordinator) (commands.AdminCommand, any) {
				return suretycommands.NewReadEventsCommand(coord), data
			})
		},
	}
	eventsCmd.Flags().Uint64(flagFrom, 0, "first height")
	eventsCmd.Flags().Uint64(flagTo, 0, "last height")
	readCmd.AddCommand(eventsCmd)

	return readCmd
}

// read runs a read-only admin command against the local state and prints its output.
func (c *cli) read(cmd *cobra.Command, build func(*contract.Coordinator) (commands.AdminCommand, any)) error {
	params, err := c.parameters()
	if err != nil {
		return err
	}
	db, err := c.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	coord, err := contract.New(c.log, db, params, metrics.NewNoopCollector(), metrics.NewNoopCollector())
	if err != nil {
		return fmt.Errorf("could not initialize contract: %w", err)
	}

	command, data := build(coord)
	req := &admin.CommandRequest{Command: cmd.Name(), Data: data}
	err = command.Validator(req)
	if err != nil {
		return err
	}
	out, err := command.Handler(context.Background(), req)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
