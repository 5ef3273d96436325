package services

import (
	"testing"

	"mewayz/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCommissionPercentage(t *testing.T) {
	structure := models.CommissionStructure{
		Type:        models.CommissionTypePercentage,
		PrimaryRate: 10,
	}

	amount := CalculateCommission(structure, structure.PrimaryRate, 500)
	assert.Equal(t, 50.0, amount)
}

func TestCalculateCommissionRespectsCap(t *testing.T) {
	structure := models.CommissionStructure{
		Type:              models.CommissionTypePercentage,
		PrimaryRate:       10,
		MaximumCommission: 1000,
	}

	amount := CalculateCommission(structure, structure.PrimaryRate, 20000)
	assert.Equal(t, 1000.0, amount)
}

func TestCalculateCommissionFixed(t *testing.T) {
	structure := models.CommissionStructure{
		Type:        models.CommissionTypeFixed,
		PrimaryRate: 25,
	}

	amount := CalculateCommission(structure, structure.PrimaryRate, 9999)
	assert.Equal(t, 25.0, amount)
}

func TestCalculateCommissionNegativeValueIsZero(t *testing.T) {
	structure := models.CommissionStructure{
		Type:        models.CommissionTypePercentage,
		PrimaryRate: 10,
	}

	assert.Equal(t, 0.0, CalculateCommission(structure, structure.PrimaryRate, -100))
}

func TestCalculateCommissionRoundsToCents(t *testing.T) {
	structure := models.CommissionStructure{
		Type:        models.CommissionTypePercentage,
		PrimaryRate: 3,
	}

	// 33.33 * 3% = 0.9999 -> 1.00
	assert.Equal(t, 1.0, CalculateCommission(structure, structure.PrimaryRate, 33.33))
}

func TestCalculateBreakdownSingleTier(t *testing.T) {
	structure := models.CommissionStructure{
		Type:          models.CommissionTypePercentage,
		PrimaryRate:   10,
		SecondaryRate: 5,
		TertiaryRate:  2,
	}

	breakdown := CalculateBreakdown(structure, 500, 1)

	assert.Equal(t, 50.0, breakdown.Primary)
	assert.Equal(t, 0.0, breakdown.Secondary)
	assert.Equal(t, 0.0, breakdown.Tertiary)
	assert.Equal(t, 50.0, breakdown.Total)
}

func TestCalculateBreakdownThreeTiers(t *testing.T) {
	structure := models.CommissionStructure{
		Type:          models.CommissionTypePercentage,
		PrimaryRate:   10,
		SecondaryRate: 5,
		TertiaryRate:  2,
	}

	breakdown := CalculateBreakdown(structure, 1000, 3)

	assert.Equal(t, 100.0, breakdown.Primary)
	assert.Equal(t, 50.0, breakdown.Secondary)
	assert.Equal(t, 20.0, breakdown.Tertiary)
	assert.Equal(t, 170.0, breakdown.Total)
}

func TestCalculateBreakdownCapBoundsTotal(t *testing.T) {
	structure := models.CommissionStructure{
		Type:              models.CommissionTypePercentage,
		PrimaryRate:       50,
		SecondaryRate:     50,
		MaximumCommission: 100,
	}

	breakdown := CalculateBreakdown(structure, 1000, 2)

	// The primary tier exhausts the cap; nothing is left for the secondary.
	assert.Equal(t, 100.0, breakdown.Primary)
	assert.Equal(t, 0.0, breakdown.Secondary)
	assert.Equal(t, 100.0, breakdown.Total)
}

func TestCalculateBreakdownCapSplitsHeadroom(t *testing.T) {
	structure := models.CommissionStructure{
		Type:              models.CommissionTypePercentage,
		PrimaryRate:       50,
		SecondaryRate:     50,
		MaximumCommission: 120,
	}

	breakdown := CalculateBreakdown(structure, 1000, 2)

	assert.Equal(t, 100.0, breakdown.Primary)
	assert.Equal(t, 20.0, breakdown.Secondary)
	assert.Equal(t, 120.0, breakdown.Total)
}

func TestCalculateBreakdownSkipsUnconfiguredTiers(t *testing.T) {
	structure := models.CommissionStructure{
		Type:        models.CommissionTypePercentage,
		PrimaryRate: 10,
	}

	breakdown := CalculateBreakdown(structure, 1000, 3)

	assert.Equal(t, 100.0, breakdown.Primary)
	assert.Equal(t, 0.0, breakdown.Secondary)
	assert.Equal(t, 0.0, breakdown.Tertiary)
	assert.Equal(t, 100.0, breakdown.Total)
}
