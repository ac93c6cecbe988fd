package assess

import (
	"fmt"
	"time"

	"github.com/complykit/compliance-service/internal/calc"
	"github.com/complykit/compliance-service/internal/deadline"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

const (
	incomeTaxFiling = "income_tax_return"
	vatFiling       = "vat_return"

	// VAT returns are filed monthly by every VAT-registered business.
	vatIntervalMonths = 1
)

// TaxAuthorityAssessor evaluates income-tax and VAT filing compliance
// and doubles as the calculation front-end for the tax primitives, so
// callers can request one-off estimates against the tariff set in
// effect at a given date.
type TaxAuthorityAssessor struct {
	tariffs tariff.Schedule
}

// NewTaxAuthorityAssessor creates the tax-authority assessor.
func NewTaxAuthorityAssessor(tariffs tariff.Schedule) *TaxAuthorityAssessor {
	return &TaxAuthorityAssessor{tariffs: tariffs}
}

// Agency implements Assessor.
func (a *TaxAuthorityAssessor) Agency() models.Agency {
	return models.AgencyTaxAuthority
}

// Assess checks the annual income-tax return and, for VAT-registered
// businesses, the monthly VAT return. Severity follows the obligation
// that is furthest past due.
func (a *TaxAuthorityAssessor) Assess(profile *models.BusinessProfile, history []models.FilingRecord, now time.Time) (*models.ComplianceResult, error) {
	result := &models.ComplianceResult{
		RequirementID: fmt.Sprintf("%s:%s", models.AgencyTaxAuthority, incomeTaxFiling),
		Agency:        models.AgencyTaxAuthority,
	}

	if profile.TaxID == "" {
		result.Score = 0
		result.Level = models.LevelCritical
		result.Notes = append(result.Notes, "business has no tax identifier; register with the tax authority")
		return result, nil
	}
	if profile.RegistrationDate == nil {
		result.Score = 0
		result.Level = models.LevelCritical
		result.Notes = append(result.Notes, "business has no registration date on record")
		return result, nil
	}

	set, err := a.tariffs.ForDate(now)
	if err != nil {
		return nil, err
	}

	lastIncomeTax := latestFiling(history, models.AgencyTaxAuthority, incomeTaxFiling)
	incomeOcc, err := deadline.Compute(*profile.RegistrationDate, set.FilingInterval(models.AgencyTaxAuthority), lastIncomeTax, now)
	if err != nil {
		return nil, err
	}

	worst := incomeOcc
	result.LastFiledDate = lastIncomeTax
	if incomeOcc.DaysOverdue > 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("income tax return is %d days overdue", incomeOcc.DaysOverdue))
	}

	if profile.VATRegistered {
		lastVAT := latestFiling(history, models.AgencyTaxAuthority, vatFiling)
		vatOcc, err := deadline.Compute(*profile.RegistrationDate, vatIntervalMonths, lastVAT, now)
		if err != nil {
			return nil, err
		}
		if vatOcc.DaysOverdue > 0 {
			result.Notes = append(result.Notes, fmt.Sprintf("VAT return is %d days overdue", vatOcc.DaysOverdue))
		}
		if vatOcc.DaysOverdue > worst.DaysOverdue {
			worst = vatOcc
		}
	}

	due := worst.NextDue
	result.DueDate = &due
	result.DaysOverdue = worst.DaysOverdue

	// Percentage penalties need a base amount; estimate the annual tax
	// bill from reported revenue since the engine never sees returns.
	estimate, err := calc.IncomeTax(set.IncomeTaxBrackets, profile.AnnualRevenue)
	if err != nil {
		return nil, err
	}
	rule := set.Penalties[models.AgencyTaxAuthority]
	result.AccruedPenalty = calc.PercentagePenalty(estimate.TotalTax, rule.MonthlyRate, worst.DaysOverdue)

	switch {
	case worst.DaysOverdue > 180:
		result.Score = 0
		result.Level = models.LevelCritical
	case worst.DaysOverdue > 90:
		result.Score = 30
		result.Level = models.LevelCritical
	case worst.DaysOverdue > 30:
		result.Score = 60
		result.Level = models.LevelMajorIssues
	case worst.DaysOverdue > 0:
		result.Score = 80
		result.Level = models.LevelMinorIssues
	default:
		result.Score = 100
		result.Level = models.LevelCompliant
		if worst.DaysUntilDue <= 30 {
			result.Notes = append(result.Notes, fmt.Sprintf("next tax filing due in %d days", worst.DaysUntilDue))
		}
	}

	return result, nil
}

// ComputeDeadlines implements DeadlineProducer for the annual income-tax
// return and, where applicable, the monthly VAT return.
func (a *TaxAuthorityAssessor) ComputeDeadlines(profile *models.BusinessProfile, now time.Time) ([]models.FilingDeadline, error) {
	if profile.RegistrationDate == nil {
		return nil, nil
	}

	set, err := a.tariffs.ForDate(now)
	if err != nil {
		return nil, err
	}

	var deadlines []models.FilingDeadline

	incomeOcc, err := deadline.Compute(*profile.RegistrationDate, set.FilingInterval(models.AgencyTaxAuthority), nil, now)
	if err != nil {
		return nil, err
	}
	deadlines = append(deadlines, models.FilingDeadline{
		Agency:       models.AgencyTaxAuthority,
		FilingType:   incomeTaxFiling,
		DueDate:      incomeOcc.NextDue,
		Description:  "annual income tax return",
		IsOverdue:    incomeOcc.IsOverdue(),
		DaysUntilDue: incomeOcc.DaysUntilDue,
	})

	if profile.VATRegistered {
		vatOcc, err := deadline.Compute(*profile.RegistrationDate, vatIntervalMonths, nil, now)
		if err != nil {
			return nil, err
		}
		deadlines = append(deadlines, models.FilingDeadline{
			Agency:       models.AgencyTaxAuthority,
			FilingType:   vatFiling,
			DueDate:      vatOcc.NextDue,
			Description:  "monthly VAT return",
			IsOverdue:    vatOcc.IsOverdue(),
			DaysUntilDue: vatOcc.DaysUntilDue,
		})
	}

	return deadlines, nil
}

// EstimateIncomeTax computes the progressive income tax owed on an
// annual income under the tariff set in effect at asOf.
func (a *TaxAuthorityAssessor) EstimateIncomeTax(income float64, asOf time.Time) (*calc.IncomeTaxResult, error) {
	set, err := a.tariffs.ForDate(asOf)
	if err != nil {
		return nil, err
	}
	return calc.IncomeTax(set.IncomeTaxBrackets, income)
}

// EstimateVAT computes the VAT on an amount under the tariff set in
// effect at asOf.
func (a *TaxAuthorityAssessor) EstimateVAT(amount float64, category string, inclusive bool, asOf time.Time) (float64, error) {
	set, err := a.tariffs.ForDate(asOf)
	if err != nil {
		return 0, err
	}
	return calc.VAT(&set.VAT, amount, category, inclusive), nil
}

// EstimateWithholding computes withholding tax for an income type under
// the tariff set in effect at asOf.
func (a *TaxAuthorityAssessor) EstimateWithholding(amount float64, incomeType tariff.IncomeType, asOf time.Time) (float64, error) {
	set, err := a.tariffs.ForDate(asOf)
	if err != nil {
		return 0, err
	}
	return calc.Withholding(set.WithholdingRates, amount, incomeType)
}
