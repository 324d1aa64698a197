package environment

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"github.com/onflow/flight-surety/model/surety"
)

// RoundingMode selects how the vote threshold for airline admission is
// rounded when the funded airline count is not a multiple of the denominator.
type RoundingMode string

const (
	RoundUp   RoundingMode = "up"
	RoundDown RoundingMode = "down"
)

func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(s) {
	case RoundUp, RoundDown:
		return RoundingMode(s), nil
	default:
		return "", fmt.Errorf("unknown rounding mode %q (expected %q or %q)", s, RoundUp, RoundDown)
	}
}

// Parameters are the contract constants. They are fixed for the lifetime of a
// node.
type Parameters struct {
	// AirlineFundingAmount is the balance an airline must hold to become funded.
	AirlineFundingAmount surety.Amount
	// RegistrationFee is the minimal fee paid by an oracle on registration.
	RegistrationFee surety.Amount
	// InsuranceCap is the largest amount a passenger can pay for one policy.
	InsuranceCap surety.Amount
	// PayoutMultiplier is applied to the paid amount at purchase time.
	PayoutMultiplier decimal.Decimal

	MinResponses            uint32
	DirectRegistrationLimit uint32

	// ConsensusNumerator/ConsensusDenominator is the share of funded airlines
	// that must vote for a candidate once the direct registration limit is
	// reached.
	ConsensusNumerator   uint32
	ConsensusDenominator uint32
	ConsensusRounding    RoundingMode

	// IndexRange bounds the request indexes assigned to oracles.
	IndexRange uint8
}

func DefaultParameters() Parameters {
	return Parameters{
		AirlineFundingAmount:    surety.Units(10),
		RegistrationFee:         surety.Units(1),
		InsuranceCap:            surety.Units(1),
		PayoutMultiplier:        decimal.NewFromFloat(1.5),
		MinResponses:            3,
		DirectRegistrationLimit: 4,
		ConsensusNumerator:      1,
		ConsensusDenominator:    2,
		ConsensusRounding:       RoundUp,
		IndexRange:              10,
	}
}

// Validate checks all parameters and reports every violation at once.
func (p Parameters) Validate() error {
	var result *multierror.Error

	if p.AirlineFundingAmount == 0 {
		result = multierror.Append(result, fmt.Errorf("airline funding amount must be positive"))
	}
	if p.InsuranceCap == 0 {
		result = multierror.Append(result, fmt.Errorf("insurance cap must be positive"))
	}
	if p.PayoutMultiplier.LessThan(decimal.NewFromInt(1)) {
		result = multierror.Append(result, fmt.Errorf("payout multiplier must be at least 1, got %s", p.PayoutMultiplier))
	}
	if _, err := p.InsuranceCap.MulDecimal(p.PayoutMultiplier); err != nil {
		result = multierror.Append(result, fmt.Errorf("payout of the insurance cap: %w", err))
	}
	if p.MinResponses == 0 {
		result = multierror.Append(result, fmt.Errorf("min responses must be positive"))
	}
	if p.ConsensusDenominator == 0 {
		result = multierror.Append(result, fmt.Errorf("consensus denominator must be positive"))
	}
	if p.ConsensusNumerator > p.ConsensusDenominator {
		result = multierror.Append(result, fmt.Errorf("consensus fraction %d/%d exceeds 1", p.ConsensusNumerator, p.ConsensusDenominator))
	}
	if _, err := ParseRoundingMode(string(p.ConsensusRounding)); err != nil {
		result = multierror.Append(result, err)
	}
	if p.IndexRange == 0 {
		result = multierror.Append(result, fmt.Errorf("index range must be positive"))
	}

	return result.ErrorOrNil()
}

// RequiredVotes returns the number of votes a candidate needs once the direct
// registration limit is reached. The result is never below one.
func (p Parameters) RequiredVotes(funded uint32) uint32 {
	num := uint64(funded) * uint64(p.ConsensusNumerator)
	den := uint64(p.ConsensusDenominator)

	required := num / den
	if p.ConsensusRounding != RoundDown && num%den != 0 {
		required++
	}
	if required < 1 {
		return 1
	}
	return uint32(required)
}

// Payout returns the amount credited to a passenger whose policy pays out.
func (p Parameters) Payout(amount surety.Amount) (surety.Amount, error) {
	return amount.MulDecimal(p.PayoutMultiplier)
}
