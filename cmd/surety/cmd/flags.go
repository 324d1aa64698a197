package cmd

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/onflow/flight-surety/contract/environment"
	"github.com/onflow/flight-surety/model/surety"
)

const (
	flagAirlineFunding          = "airline-funding"
	flagRegistrationFee         = "registration-fee"
	flagInsuranceCap            = "insurance-cap"
	flagPayoutMultiplier        = "payout-multiplier"
	flagMinResponses            = "min-responses"
	flagDirectRegistrationLimit = "direct-registration-limit"
	flagConsensusNumerator      = "consensus-numerator"
	flagConsensusDenominator    = "consensus-denominator"
	flagConsensusRounding       = "consensus-rounding"
	flagIndexRange              = "index-range"
)

// addParameterFlags registers the contract parameters, defaulting to
// environment.DefaultParameters.
func addParameterFlags(flags *pflag.FlagSet) {
	p := environment.DefaultParameters()

	flags.String(flagAirlineFunding, p.AirlineFundingAmount.String(), "balance an airline must submit to become funded, in units")
	flags.String(flagRegistrationFee, p.RegistrationFee.String(), "minimal oracle registration fee, in units")
	flags.String(flagInsuranceCap, p.InsuranceCap.String(), "largest premium per policy, in units")
	flags.String(flagPayoutMultiplier, p.PayoutMultiplier.String(), "factor applied to the premium on payout")
	flags.Uint32(flagMinResponses, p.MinResponses, "matching oracle responses needed to resolve a status request")
	flags.Uint32(flagDirectRegistrationLimit, p.DirectRegistrationLimit, "registered airlines admitted without a vote")
	flags.Uint32(flagConsensusNumerator, p.ConsensusNumerator, "numerator of the share of funded airlines that must vote")
	flags.Uint32(flagConsensusDenominator, p.ConsensusDenominator, "denominator of the share of funded airlines that must vote")
	flags.String(flagConsensusRounding, string(p.ConsensusRounding), "rounding of the vote threshold: up or down")
	flags.Uint8(flagIndexRange, p.IndexRange, "number of distinct request indexes")
}

func (c *cli) parameters() (environment.Parameters, error) {
	var result *multierror.Error

	amount := func(flag string) surety.Amount {
		a, err := surety.ParseAmount(c.v.GetString(flag))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("--%s: %w", flag, err))
		}
		return a
	}

	p := environment.Parameters{
		AirlineFundingAmount:    amount(flagAirlineFunding),
		RegistrationFee:         amount(flagRegistrationFee),
		InsuranceCap:            amount(flagInsuranceCap),
		MinResponses:            c.v.GetUint32(flagMinResponses),
		DirectRegistrationLimit: c.v.GetUint32(flagDirectRegistrationLimit),
		ConsensusNumerator:      c.v.GetUint32(flagConsensusNumerator),
		ConsensusDenominator:    c.v.GetUint32(flagConsensusDenominator),
		IndexRange:              uint8(c.v.GetUint(flagIndexRange)),
	}

	multiplier, err := decimal.NewFromString(c.v.GetString(flagPayoutMultiplier))
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("--%s: %w", flagPayoutMultiplier, err))
	}
	p.PayoutMultiplier = multiplier

	rounding, err := environment.ParseRoundingMode(c.v.GetString(flagConsensusRounding))
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("--%s: %w", flagConsensusRounding, err))
	}
	p.ConsensusRounding = rounding

	if err := result.ErrorOrNil(); err != nil {
		return environment.Parameters{}, err
	}

	err = p.Validate()
	if err != nil {
		return environment.Parameters{}, fmt.Errorf("invalid contract parameters: %w", err)
	}
	return p, nil
}
