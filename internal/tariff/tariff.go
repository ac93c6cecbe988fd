// Package tariff holds the versioned constant tables the calculation
// primitives depend on. Every table lives inside a Set keyed by an
// effective date range, so a prior tax year can be recomputed with the
// rates that applied back then and tests can pass fixture sets instead
// of touching global state.
package tariff

import (
	"fmt"
	"time"

	"github.com/complykit/compliance-service/internal/models"
)

// ContributorClass selects the social-insurance rate that applies.
type ContributorClass string

const (
	ClassEmployee     ContributorClass = "employee"
	ClassEmployer     ContributorClass = "employer"
	ClassSelfEmployed ContributorClass = "self_employed"
)

// Period selects the wage floor/ceiling pair for a contribution.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// IncomeType keys the withholding-tax rate table.
type IncomeType string

const (
	IncomeDividends         IncomeType = "dividends"
	IncomeInterest          IncomeType = "interest"
	IncomeRoyalties         IncomeType = "royalties"
	IncomeManagementFees    IncomeType = "management_fees"
	IncomeTechnicalServices IncomeType = "technical_services"
)

// Bracket is one progressive income-tax band. An unbounded top band is
// expressed with Max = +Inf.
type Bracket struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Rate float64 `json:"rate"`
}

// VAT holds the standard rate plus the categories it never applies to.
type VAT struct {
	StandardRate float64  `json:"standard_rate"`
	ZeroRated    []string `json:"zero_rated"`
	Exempt       []string `json:"exempt"`
}

// WageBand clamps the contributable wage for one period type.
type WageBand struct {
	Floor   float64 `json:"floor"`
	Ceiling float64 `json:"ceiling"`
}

// SocialInsurance bundles contribution rates per class with the wage
// bands per period.
type SocialInsurance struct {
	Rates map[ContributorClass]float64 `json:"rates"`
	Bands map[Period]WageBand          `json:"bands"`
}

// FeeKey addresses one fixed fee in the schedule.
type FeeKey struct {
	FeeType    string
	EntityType models.BusinessType
}

// PenaltyRule describes how one agency's late penalties accrue.
// MonthlyRate drives the percentage formula, DailyRate the flat one;
// an agency uses whichever is non-zero. MaxPenalty of 0 means uncapped.
type PenaltyRule struct {
	MonthlyRate float64 `json:"monthly_rate"`
	DailyRate   float64 `json:"daily_rate"`
	MaxPenalty  float64 `json:"max_penalty"`
}

// Set is one complete tariff version. EffectiveTo of zero means the set
// is still open-ended.
type Set struct {
	Name          string    `json:"name"`
	EffectiveFrom time.Time `json:"effective_from"`
	EffectiveTo   time.Time `json:"effective_to"`

	IncomeTaxBrackets []Bracket                     `json:"income_tax_brackets"`
	VAT               VAT                           `json:"vat"`
	SocialInsurance   SocialInsurance               `json:"social_insurance"`
	WithholdingRates  map[IncomeType]float64        `json:"withholding_rates"`
	FeeSchedule       map[FeeKey]float64            `json:"-"`
	Penalties         map[models.Agency]PenaltyRule `json:"penalties"`
	FilingIntervals   map[models.Agency]int         `json:"filing_intervals"`

	BaseCurrency  string             `json:"base_currency"`
	ExchangeRates map[string]float64 `json:"exchange_rates"`

	VATRegistrationThreshold  float64  `json:"vat_registration_threshold"`
	IncentiveRevenueThreshold float64  `json:"incentive_revenue_threshold"`
	HighImpactSectors         []string `json:"high_impact_sectors"`
}

// Covers reports whether the set is in effect at t.
func (s *Set) Covers(t time.Time) bool {
	if t.Before(s.EffectiveFrom) {
		return false
	}
	if s.EffectiveTo.IsZero() {
		return true
	}
	return t.Before(s.EffectiveTo)
}

// FilingInterval returns the recurrence interval in months for an
// agency's periodic filing, or 0 when the agency has none.
func (s *Set) FilingInterval(agency models.Agency) int {
	return s.FilingIntervals[agency]
}

// HighImpactSector reports whether a sector is on the high-impact list.
func (s *Set) HighImpactSector(sector string) bool {
	for _, hs := range s.HighImpactSectors {
		if hs == sector {
			return true
		}
	}
	return false
}

// Schedule is an ordered list of tariff sets covering successive
// effective ranges.
type Schedule []*Set

// ForDate returns the set in effect at t. Later entries win when ranges
// overlap, so an amended set can be appended without editing history.
func (sch Schedule) ForDate(t time.Time) (*Set, error) {
	for i := len(sch) - 1; i >= 0; i-- {
		if sch[i].Covers(t) {
			return sch[i], nil
		}
	}
	return nil, fmt.Errorf("no tariff set in effect at %s", t.Format("2006-01-02"))
}
