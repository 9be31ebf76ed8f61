package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ConvertAmount values an entry amount in the organization's base currency:
// amount * rate, rounded half-to-even at the base currency's precision.
// Banker's rounding keeps repeated conversions from drifting in one direction.
func ConvertAmount(amount, rate decimal.Decimal, precision int) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", amount.String())
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("exchange rate must be positive, got %s", rate.String())
	}
	return amount.Mul(rate).RoundBank(int32(precision)), nil
}

// ComputeDueAmount applies a remittance percentage to a converted total:
// total * ratePercent / 100, rounded half-to-even at the base currency's
// precision. ratePercent is expressed as 0-100.
func ComputeDueAmount(convertedTotal, ratePercent decimal.Decimal, precision int) (decimal.Decimal, error) {
	if ratePercent.LessThan(decimal.Zero) || ratePercent.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("remittance rate must be between 0 and 100, got %s", ratePercent.String())
	}
	if convertedTotal.LessThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("converted total must not be negative, got %s", convertedTotal.String())
	}
	return convertedTotal.Mul(ratePercent).Div(hundred).RoundBank(int32(precision)), nil
}
