// Package calc contains the pure tax and contribution primitives. Every
// function is deterministic given its inputs; nothing here reads a clock,
// touches storage, or keeps state between calls.
package calc

import (
	"fmt"
	"math"

	"github.com/complykit/compliance-service/internal/tariff"
)

// BracketTax is the portion of an income-tax bill owed within one bracket.
type BracketTax struct {
	Bracket       tariff.Bracket `json:"bracket"`
	TaxableAmount float64        `json:"taxable_amount"`
	Tax           float64        `json:"tax"`
}

// IncomeTaxResult is the full progressive-tax computation for one income.
type IncomeTaxResult struct {
	Income        float64      `json:"income"`
	TotalTax      float64      `json:"total_tax"`
	EffectiveRate float64      `json:"effective_rate"`
	MarginalRate  float64      `json:"marginal_rate"`
	Breakdown     []BracketTax `json:"breakdown"`
}

// IncomeTax computes progressive income tax by consuming the income
// bracket by bracket from the lowest band. The top bracket may be
// unbounded (Max = +Inf). A non-positive income yields a zero result.
func IncomeTax(brackets []tariff.Bracket, income float64) (*IncomeTaxResult, error) {
	if len(brackets) == 0 {
		return nil, fmt.Errorf("no income tax brackets configured")
	}

	result := &IncomeTaxResult{Income: income}
	if income <= 0 {
		return result, nil
	}

	remaining := income
	for _, b := range brackets {
		if remaining <= 0 {
			break
		}
		width := b.Max - b.Min
		taxable := remaining
		if !math.IsInf(width, 1) && taxable > width {
			taxable = width
		}
		tax := taxable * b.Rate
		result.TotalTax += tax
		result.MarginalRate = b.Rate
		result.Breakdown = append(result.Breakdown, BracketTax{
			Bracket:       b,
			TaxableAmount: taxable,
			Tax:           tax,
		})
		remaining -= taxable
	}

	result.EffectiveRate = result.TotalTax / income
	return result, nil
}
