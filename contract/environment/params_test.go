package environment

import (
	"math"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/model/surety"
)

func TestRequiredVotes(t *testing.T) {
	cases := []struct {
		funded   uint32
		rounding RoundingMode
		expected uint32
	}{
		{0, RoundUp, 1},
		{1, RoundUp, 1},
		{1, RoundDown, 1},
		{4, RoundUp, 2},
		{4, RoundDown, 2},
		{5, RoundUp, 3},
		{5, RoundDown, 2},
		{7, RoundUp, 4},
		{7, RoundDown, 3},
	}

	for _, c := range cases {
		params := DefaultParameters()
		params.ConsensusRounding = c.rounding
		assert.Equal(t, c.expected, params.RequiredVotes(c.funded), "funded=%d rounding=%s", c.funded, c.rounding)
	}
}

func TestPayout(t *testing.T) {
	params := DefaultParameters()
	payout, err := params.Payout(surety.MustParseAmount("0.5"))
	require.NoError(t, err)
	assert.Equal(t, surety.MustParseAmount("0.75"), payout)

	payout, err = params.Payout(surety.Units(1))
	require.NoError(t, err)
	assert.Equal(t, surety.MustParseAmount("1.5"), payout)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultParameters().Validate())

	params := DefaultParameters()
	params.MinResponses = 0
	params.ConsensusDenominator = 0
	params.PayoutMultiplier = decimal.NewFromFloat(0.5)
	params.ConsensusRounding = "sideways"

	err := params.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
}

func TestValidatePayoutOverflow(t *testing.T) {
	params := DefaultParameters()
	params.InsuranceCap = surety.Amount(math.MaxUint64 / 2)
	params.PayoutMultiplier = decimal.NewFromInt(3)

	err := params.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payout of the insurance cap")

	params.PayoutMultiplier = decimal.NewFromInt(2)
	require.NoError(t, params.Validate())
}

func TestParseRoundingMode(t *testing.T) {
	mode, err := ParseRoundingMode("down")
	require.NoError(t, err)
	assert.Equal(t, RoundDown, mode)

	_, err = ParseRoundingMode("nearest")
	require.Error(t, err)
}
