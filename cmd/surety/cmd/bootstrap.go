package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onflow/flight-surety/contract"
	"github.com/onflow/flight-surety/contract/genesis"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/utils/logging"
	"github.com/onflow/flight-surety/utils/rand"
)

const (
	flagGenesis         = "genesis"
	flagGenerateOracles = "generate-oracles"
	flagOracleBalance   = "oracle-balance"
	flagOraclesOut      = "oracles-out"
)

func (c *cli) bootstrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Write the genesis state of the contract",
		Long: `Write the genesis state read from a YAML file: the contract owner, the first
airline and its flights, and the initial account balances. Oracle accounts can be
generated and funded on the way; their addresses are written to --oracles-out for
use with 'surety node --oracles-file'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.bootstrap()
		},
	}

	cmd.Flags().String(flagGenesis, "genesis.yml", "path to the YAML genesis file")
	cmd.Flags().Int(flagGenerateOracles, 0, "number of oracle accounts to generate and fund")
	cmd.Flags().String(flagOracleBalance, "1", "balance of each generated oracle account, in units")
	cmd.Flags().String(flagOraclesOut, "oracles.txt", "file receiving the generated oracle addresses")
	return cmd
}

func (c *cli) bootstrap() error {
	g, err := genesis.ReadFile(c.v.GetString(flagGenesis))
	if err != nil {
		return err
	}

	count := c.v.GetInt(flagGenerateOracles)
	var oracles []surety.Address
	if count > 0 {
		balance, err := surety.ParseAmount(c.v.GetString(flagOracleBalance))
		if err != nil {
			return fmt.Errorf("--%s: %w", flagOracleBalance, err)
		}
		oracles, err = generateAddresses(count)
		if err != nil {
			return err
		}
		for _, address := range oracles {
			g.Accounts = append(g.Accounts, genesis.Account{Address: address, Balance: balance})
		}
	}

	db, err := initStorage(c.v.GetString(flagDatadir))
	if err != nil {
		return err
	}
	defer db.Close()

	err = contract.Bootstrap(db, g)
	if err != nil {
		return fmt.Errorf("could not bootstrap contract state: %w", err)
	}

	if len(oracles) > 0 {
		err = writeAddresses(c.v.GetString(flagOraclesOut), oracles)
		if err != nil {
			return err
		}
	}

	c.log.Info().
		Hex("owner", logging.Address(g.Owner)).
		Hex("first_airline", logging.Address(g.FirstAirline.Address)).
		Int("flights", len(g.Flights)).
		Int("accounts", len(g.Accounts)).
		Int("oracles", len(oracles)).
		Msg("contract state bootstrapped")
	return nil
}

// generateAddresses draws distinct addresses outside the reserved range.
func generateAddresses(n int) ([]surety.Address, error) {
	seen := make(map[surety.Address]struct{}, n)
	addresses := make([]surety.Address, 0, n)
	for len(addresses) < n {
		v, err := rand.Uint64()
		if err != nil {
			return nil, fmt.Errorf("could not generate address: %w", err)
		}
		address := surety.Uint64ToAddress(v)
		if address == surety.EmptyAddress || address == surety.ContractAddress {
			continue
		}
		if _, ok := seen[address]; ok {
			continue
		}
		seen[address] = struct{}{}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

func writeAddresses(path string, addresses []surety.Address) error {
	var b strings.Builder
	for _, address := range addresses {
		b.WriteString(address.Hex())
		b.WriteByte('\n')
	}
	err := os.WriteFile(path, []byte(b.String()), 0o644)
	if err != nil {
		return fmt.Errorf("could not write addresses to %s: %w", path, err)
	}
	return nil
}

// readAddresses reads one hex address per line, skipping blank lines and # comments.
func readAddresses(path string) ([]surety.Address, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read addresses: %w", err)
	}
	var addresses []surety.Address
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		address, err := surety.HexToAddress(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}
