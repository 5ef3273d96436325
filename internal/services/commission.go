package services

import (
	"mewayz/internal/models"
	"mewayz/internal/utils"
)

// CalculateCommission computes the commission for a conversion value at a
// given rate. Percentage commissions are value * rate / 100; fixed
// commissions pay the rate itself regardless of value. The result is
// clamped to the program's maximum commission when one is set, and
// rounded to cents.
func CalculateCommission(structure models.CommissionStructure, rate, value float64) float64 {
	var amount float64

	switch structure.Type {
	case models.CommissionTypeFixed:
		amount = rate
	default:
		amount = value * rate / 100
	}

	if amount < 0 {
		return 0
	}

	if structure.MaximumCommission > 0 {
		amount = utils.MinFloat64(amount, structure.MaximumCommission)
	}

	return utils.RoundMoney(amount)
}

// CalculateBreakdown distributes commission across referral tiers. The
// primary tier always earns; secondary and tertiary amounts are only
// produced when a rate is configured for that tier. The maximum
// commission caps the summed total: each lower tier is clamped against
// the headroom the tiers above it left.
func CalculateBreakdown(structure models.CommissionStructure, value float64, tiers int) models.CommissionBreakdown {
	breakdown := models.CommissionBreakdown{
		Primary: CalculateCommission(structure, structure.PrimaryRate, value),
	}

	if tiers >= 2 && structure.SecondaryRate > 0 {
		breakdown.Secondary = tierAmount(structure, structure.SecondaryRate, value, breakdown.Primary)
	}
	if tiers >= 3 && structure.TertiaryRate > 0 {
		breakdown.Tertiary = tierAmount(structure, structure.TertiaryRate, value, breakdown.Primary+breakdown.Secondary)
	}

	breakdown.Total = utils.RoundMoney(breakdown.Primary + breakdown.Secondary + breakdown.Tertiary)

	return breakdown
}

// tierAmount computes a lower tier's commission, clamped to whatever
// headroom is left under the maximum after the tiers above it earned.
func tierAmount(structure models.CommissionStructure, rate, value, earned float64) float64 {
	var amount float64

	switch structure.Type {
	case models.CommissionTypeFixed:
		amount = rate
	default:
		amount = value * rate / 100
	}

	if amount < 0 {
		return 0
	}

	if structure.MaximumCommission > 0 {
		headroom := structure.MaximumCommission - earned
		if headroom < 0 {
			headroom = 0
		}
		amount = utils.MinFloat64(amount, headroom)
	}

	return utils.RoundMoney(amount)
}
