package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/contract/environment"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/utils/unittest"
)

const genesisYAML = `
owner: "0000000000000a01"
first_airline:
  address: "0000000000000b01"
  name: Surety Air
flights:
  - code: SU100
    timestamp: 1700000000
  - code: SU200
    timestamp: 1700003600
accounts:
  - address: "0000000000000c01"
    balance: "2.5"
`

func execute(t *testing.T, args ...string) (string, error) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBootstrapAndRead(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		datadir := filepath.Join(dir, "data")
		genesisPath := filepath.Join(dir, "genesis.yml")
		oraclesPath := filepath.Join(dir, "oracles.txt")
		require.NoError(t, os.WriteFile(genesisPath, []byte(genesisYAML), 0o644))

		_, err := execute(t, "bootstrap",
			"--datadir", datadir,
			"--genesis", genesisPath,
			"--generate-oracles", "5",
			"--oracles-out", oraclesPath,
		)
		require.NoError(t, err)

		oracles, err := readAddresses(oraclesPath)
		require.NoError(t, err)
		assert.Len(t, oracles, 5)

		out, err := execute(t, "read", "flights", "--datadir", datadir)
		require.NoError(t, err)
		var flights []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &flights))
		require.Len(t, flights, 2)
		assert.Equal(t, "SU100", flights[0]["code"])
		assert.Equal(t, "0000000000000b01", flights[0]["airline"])

		out, err = execute(t, "read", "airlines", "--datadir", datadir)
		require.NoError(t, err)
		var airlines []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &airlines))
		require.Len(t, airlines, 1)
		assert.Equal(t, "Surety Air", airlines[0]["name"])

		out, err = execute(t, "read", "policies", "--datadir", datadir, "--flight", "SU200")
		require.NoError(t, err)
		assert.Equal(t, "[]", strings.TrimSpace(out))

		_, err = execute(t, "read", "policies", "--datadir", datadir, "--flight", "SU999")
		require.Error(t, err)

		out, err = execute(t, "read", "events", "--datadir", datadir)
		require.NoError(t, err)
		assert.Equal(t, "[]", strings.TrimSpace(out))

		// the state can only be bootstrapped once
		_, err = execute(t, "bootstrap", "--datadir", datadir, "--genesis", genesisPath)
		require.Error(t, err)
	})
}

func TestReadRequiresBootstrap(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		_, err := execute(t, "read", "airlines", "--datadir", filepath.Join(dir, "data"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not bootstrapped")
	})
}

func TestParameterFlags(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		_, err := execute(t, "read", "airlines",
			"--datadir", filepath.Join(dir, "data"),
			"--consensus-rounding", "sideways",
			"--payout-multiplier", "0.5",
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "consensus-rounding")
	})
}

func TestParametersFromEnvironment(t *testing.T) {
	t.Setenv("SURETY_MIN_RESPONSES", "5")
	t.Setenv("SURETY_CONSENSUS_ROUNDING", "down")
	t.Setenv("SURETY_INSURANCE_CAP", "2.5")

	unittest.RunWithTempDir(t, func(dir string) {
		c := &cli{v: viper.New()}
		root := newRootCommand(c)
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"read", "airlines", "--datadir", filepath.Join(dir, "data"), "--index-range", "20"})
		// the state is missing, but flags and environment are bound by then
		require.Error(t, root.Execute())

		params, err := c.parameters()
		require.NoError(t, err)
		assert.Equal(t, uint32(5), params.MinResponses)
		assert.Equal(t, environment.RoundDown, params.ConsensusRounding)
		assert.Equal(t, surety.MustParseAmount("2.5"), params.InsuranceCap)
		assert.Equal(t, uint8(20), params.IndexRange)
		assert.Equal(t, environment.DefaultParameters().RegistrationFee, params.RegistrationFee)
	})
}
