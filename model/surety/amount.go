package surety

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative value in minor units. One unit equals 10^8 minor
// units, following the fixed point convention of UFix64.
type Amount uint64

// UnitScale is the number of decimal places of an Amount.
const UnitScale = 8

var (
	unit     = decimal.New(1, UnitScale)
	maxMinor = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)
)

// Units returns n whole units.
func Units(n uint64) Amount {
	return Amount(n) * Amount(unit.IntPart())
}

// ParseAmount parses a decimal string of units (e.g. "0.5") into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", s, err)
	}
	return AmountFromDecimal(d)
}

// MustParseAmount is ParseAmount panicking on malformed input.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AmountFromDecimal converts a unit value into minor units. Fractions below the
// smallest minor unit are rejected.
func AmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %s is negative", d)
	}
	minor := d.Mul(unit)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d, UnitScale)
	}
	if minor.GreaterThan(maxMinor) {
		return 0, fmt.Errorf("amount %s overflows", d)
	}
	return Amount(minor.BigInt().Uint64()), nil
}

// Decimal returns the amount in units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -UnitScale)
}

// MulDecimal multiplies the amount by a factor, truncating towards zero. It
// fails if the product is negative or does not fit an Amount.
func (a Amount) MulDecimal(factor decimal.Decimal) (Amount, error) {
	product := decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), 0).Mul(factor).Truncate(0)
	if product.IsNegative() || product.GreaterThan(maxMinor) {
		return 0, fmt.Errorf("amount overflow: %s * %s", a, factor)
	}
	return Amount(product.BigInt().Uint64()), nil
}

// String prints the amount in units.
func (a Amount) String() string {
	return a.Decimal().String()
}

// Add returns a+b and fails on overflow.
func (a Amount) Add(b Amount) (Amount, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("amount overflow: %d + %d", a, b)
	}
	return a + b, nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

func (a Amount) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML reads amounts written in units, e.g. `balance: "12.5"`.
func (a *Amount) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	err := unmarshal(&raw)
	if err != nil {
		return err
	}
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
