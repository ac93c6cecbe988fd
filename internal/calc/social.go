package calc

import (
	"fmt"

	"github.com/complykit/compliance-service/internal/tariff"
)

// ContributionResult is one social-insurance contribution computation.
type ContributionResult struct {
	Wage              float64 `json:"wage"`
	ContributableWage float64 `json:"contributable_wage"`
	Rate              float64 `json:"rate"`
	Contribution      float64 `json:"contribution"`
}

// Contribution computes the social-insurance contribution for a wage.
// The contributable wage is the actual wage clamped to the period's
// floor and ceiling; a wage below the floor still contributes on the
// floor amount, which is the fund's stated policy rather than an edge
// case. A non-positive wage returns zero.
func Contribution(t *tariff.SocialInsurance, wage float64, class tariff.ContributorClass, period tariff.Period) (*ContributionResult, error) {
	rate, ok := t.Rates[class]
	if !ok {
		return nil, fmt.Errorf("unsupported contributor class: %s", class)
	}
	band, ok := t.Bands[period]
	if !ok {
		return nil, fmt.Errorf("unsupported contribution period: %s", period)
	}

	result := &ContributionResult{Wage: wage, Rate: rate}
	if wage <= 0 {
		return result, nil
	}

	contributable := wage
	if contributable < band.Floor {
		contributable = band.Floor
	}
	if band.Ceiling > 0 && contributable > band.Ceiling {
		contributable = band.Ceiling
	}
	result.ContributableWage = contributable
	result.Contribution = contributable * rate
	return result, nil
}
