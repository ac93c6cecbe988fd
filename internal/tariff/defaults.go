package tariff

import (
	"math"
	"time"

	"github.com/complykit/compliance-service/internal/models"
)

// Default returns the compiled-in tariff schedule. It seeds a fresh
// deployment; production installs replace or extend it from the rates
// service before the first assessment run.
func Default() Schedule {
	return Schedule{defaultSet2020()}
}

func defaultSet2020() *Set {
	return &Set{
		Name:          "standard-2020",
		EffectiveFrom: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),

		IncomeTaxBrackets: []Bracket{
			{Min: 0, Max: 780000, Rate: 0},
			{Min: 780000, Max: 1560000, Rate: 0.28},
			{Min: 1560000, Max: math.Inf(1), Rate: 0.40},
		},

		VAT: VAT{
			StandardRate: 0.14,
			ZeroRated:    []string{"basic_foodstuffs", "medical_supplies", "educational_materials", "exports"},
			Exempt:       []string{"financial_services", "residential_rent", "insurance"},
		},

		SocialInsurance: SocialInsurance{
			Rates: map[ContributorClass]float64{
				ClassEmployee:     0.056,
				ClassEmployer:     0.072,
				ClassSelfEmployed: 0.125,
			},
			Bands: map[Period]WageBand{
				PeriodWeekly:  {Floor: 10000, Ceiling: 120000},
				PeriodMonthly: {Floor: 43333, Ceiling: 520000},
			},
		},

		WithholdingRates: map[IncomeType]float64{
			IncomeDividends:         0.20,
			IncomeInterest:          0.20,
			IncomeRoyalties:         0.175,
			IncomeManagementFees:    0.175,
			IncomeTechnicalServices: 0.10,
		},

		FeeSchedule: map[FeeKey]float64{
			{FeeType: "annual_return", EntityType: models.BusinessTypeCorporation}: 6000,
			{FeeType: "annual_return", EntityType: models.BusinessTypePartnership}: 4000,
			{FeeType: "annual_return", EntityType: models.BusinessTypeBranch}:      8000,
			{FeeType: "annual_return", EntityType: models.BusinessTypeSubsidiary}:  6000,
			{FeeType: "name_reservation", EntityType: models.BusinessTypeCorporation}: 1000,
			{FeeType: "incorporation", EntityType: models.BusinessTypeCorporation}:    25000,
			{FeeType: "incorporation", EntityType: models.BusinessTypeSubsidiary}:     25000,
			{FeeType: "registration", EntityType: models.BusinessTypeSoleProprietorship}: 5000,
			{FeeType: "registration", EntityType: models.BusinessTypePartnership}:        7500,
		},

		Penalties: map[models.Agency]PenaltyRule{
			models.AgencyTaxAuthority:    {MonthlyRate: 0.02},
			models.AgencySocialInsurance: {MonthlyRate: 0.05, MaxPenalty: 500000},
			models.AgencyCompanyRegistry: {DailyRate: 1000, MaxPenalty: 150000},
		},

		FilingIntervals: map[models.Agency]int{
			models.AgencyCompanyRegistry: 12,
			models.AgencyTaxAuthority:    12,
			models.AgencySocialInsurance: 1,
		},

		BaseCurrency: "USD",
		ExchangeRates: map[string]float64{
			"USD": 1,
			"EUR": 1.08,
			"GBP": 1.27,
			"CAD": 0.73,
			"GYD": 0.0048,
			"TTD": 0.147,
		},

		VATRegistrationThreshold:  15000000,
		IncentiveRevenueThreshold: 500000000,
		HighImpactSectors:         []string{"mining", "forestry", "oil_and_gas", "chemicals", "large_scale_manufacturing"},
	}
}
