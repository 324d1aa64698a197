// Package genesis describes and writes the initial contract state.
package genesis

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v2"

	"github.com/onflow/flight-surety/model/surety"
)

type Airline struct {
	Address surety.Address `yaml:"address"`
	Name    string         `yaml:"name"`
}

type Flight struct {
	Code      string `yaml:"code"`
	Timestamp int64  `yaml:"timestamp"`
}

type Account struct {
	Address surety.Address `yaml:"address"`
	Balance surety.Amount  `yaml:"balance"`
}

// Genesis is the state the contract starts from: an owner who may pause the
// contract, the first airline (registered, not yet funded), flights of the
// first airline and ledger account balances.
type Genesis struct {
	Owner        surety.Address `yaml:"owner"`
	FirstAirline Airline        `yaml:"first_airline"`
	Flights      []Flight       `yaml:"flights"`
	Accounts     []Account      `yaml:"accounts"`
}

// ReadFile parses a YAML genesis file.
func ReadFile(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read genesis file: %w", err)
	}
	var g Genesis
	err = yaml.UnmarshalStrict(data, &g)
	if err != nil {
		return nil, fmt.Errorf("could not parse genesis file %s: %w", path, err)
	}
	return &g, nil
}

// WriteFile stores the genesis as YAML.
func (g *Genesis) WriteFile(path string) error {
	data, err := yaml.Marshal(g)
	if err != nil {
		return fmt.Errorf("could not encode genesis: %w", err)
	}
	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("could not write genesis file: %w", err)
	}
	return nil
}

// Validate reports every problem of the genesis at once.
func (g *Genesis) Validate() error {
	var result *multierror.Error

	if g.Owner.IsEmpty() {
		result = multierror.Append(result, fmt.Errorf("owner must be set"))
	}
	if g.FirstAirline.Address.IsEmpty() {
		result = multierror.Append(result, fmt.Errorf("first airline address must be set"))
	}
	if g.FirstAirline.Address == surety.ContractAddress || g.Owner == surety.ContractAddress {
		result = multierror.Append(result, fmt.Errorf("address %s is reserved for the contract", surety.ContractAddress))
	}

	codes := make(map[string]struct{}, len(g.Flights))
	for i, flight := range g.Flights {
		if flight.Code == "" {
			result = multierror.Append(result, fmt.Errorf("flight %d has no code", i))
			continue
		}
		if _, ok := codes[flight.Code]; ok {
			result = multierror.Append(result, fmt.Errorf("flight code %s is listed twice", flight.Code))
		}
		codes[flight.Code] = struct{}{}
	}

	accounts := make(map[surety.Address]struct{}, len(g.Accounts))
	for _, account := range g.Accounts {
		if account.Address.IsEmpty() {
			result = multierror.Append(result, fmt.Errorf("account without address"))
			continue
		}
		if _, ok := accounts[account.Address]; ok {
			result = multierror.Append(result, fmt.Errorf("account %s is listed twice", account.Address))
		}
		accounts[account.Address] = struct{}{}
	}

	return result.ErrorOrNil()
}
