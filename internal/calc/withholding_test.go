package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complykit/compliance-service/internal/calc"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

func TestWithholding(t *testing.T) {
	rates := map[tariff.IncomeType]float64{
		tariff.IncomeDividends: 0.20,
		tariff.IncomeRoyalties: 0.175,
	}

	got, err := calc.Withholding(rates, 10000, tariff.IncomeDividends)
	require.NoError(t, err)
	assert.InDelta(t, 2000, got, 0.001)

	got, err = calc.Withholding(rates, 10000, tariff.IncomeRoyalties)
	require.NoError(t, err)
	assert.InDelta(t, 1750, got, 0.001)

	got, err = calc.Withholding(rates, -10, tariff.IncomeDividends)
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = calc.Withholding(rates, 10000, tariff.IncomeType("capital_gains"))
	assert.Error(t, err)
}

func TestFee(t *testing.T) {
	schedule := map[tariff.FeeKey]float64{
		{FeeType: "annual_return", EntityType: models.BusinessTypeCorporation}: 6000,
	}

	assert.Equal(t, 6000.0, calc.Fee(schedule, "annual_return", models.BusinessTypeCorporation))
	// Unknown combinations owe nothing rather than failing.
	assert.Zero(t, calc.Fee(schedule, "annual_return", models.BusinessTypePartnership))
	assert.Zero(t, calc.Fee(schedule, "name_reservation", models.BusinessTypeCorporation))
}
