package calc

import "fmt"

// Convert converts an amount between two currencies by pivoting through
// the base currency of the rate table, where each rate is the value of
// one unit in base-currency terms. Converting a currency to itself
// returns the amount unchanged without a table lookup. A zero target
// rate means there is nothing meaningful to divide by, so the result is
// 0 rather than an error.
func Convert(rates map[string]float64, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := rates[from]
	if !ok {
		return 0, fmt.Errorf("no exchange rate for currency: %s", from)
	}
	toRate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("no exchange rate for currency: %s", to)
	}
	if toRate == 0 {
		return 0, nil
	}
	return amount * fromRate / toRate, nil
}
