package calc

import (
	"fmt"

	"github.com/complykit/compliance-service/internal/tariff"
)

// Withholding computes withholding tax on a payment, with the rate
// selected by income category. Unknown categories are a configuration
// error and fail fast instead of silently computing a wrong amount.
func Withholding(rates map[tariff.IncomeType]float64, amount float64, incomeType tariff.IncomeType) (float64, error) {
	rate, ok := rates[incomeType]
	if !ok {
		return 0, fmt.Errorf("unsupported income type: %s", incomeType)
	}
	if amount <= 0 {
		return 0, nil
	}
	return amount * rate, nil
}
