package calc

import "github.com/complykit/compliance-service/internal/tariff"

// VAT computes value-added tax on an amount. For a VAT-exclusive amount
// the tax is amount × rate; for a VAT-inclusive amount the tax already
// contained in it is amount × rate / (1 + rate). Zero-rated and exempt
// categories owe nothing either way, and a non-positive amount means
// there is nothing to calculate.
func VAT(t *tariff.VAT, amount float64, category string, inclusive bool) float64 {
	if amount <= 0 {
		return 0
	}
	for _, c := range t.ZeroRated {
		if c == category {
			return 0
		}
	}
	for _, c := range t.Exempt {
		if c == category {
			return 0
		}
	}
	if inclusive {
		return amount * t.StandardRate / (1 + t.StandardRate)
	}
	return amount * t.StandardRate
}
