package assess

import (
	"fmt"
	"time"

	"github.com/complykit/compliance-service/internal/calc"
	"github.com/complykit/compliance-service/internal/deadline"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

const contributionFiling = "contribution_schedule"

// SocialInsuranceAssessor checks the monthly contribution schedule for
// employers with staff. Businesses without employees have nothing to
// remit and are compliant by definition.
type SocialInsuranceAssessor struct {
	tariffs tariff.Schedule
}

// NewSocialInsuranceAssessor creates the social-insurance assessor.
func NewSocialInsuranceAssessor(tariffs tariff.Schedule) *SocialInsuranceAssessor {
	return &SocialInsuranceAssessor{tariffs: tariffs}
}

// Agency implements Assessor.
func (a *SocialInsuranceAssessor) Agency() models.Agency {
	return models.AgencySocialInsurance
}

// Assess evaluates contribution filing compliance and quotes the
// minimum monthly employer and employee shares per worker using the
// wage-clamped contribution formula.
func (a *SocialInsuranceAssessor) Assess(profile *models.BusinessProfile, history []models.FilingRecord, now time.Time) (*models.ComplianceResult, error) {
	result := &models.ComplianceResult{
		RequirementID: fmt.Sprintf("%s:%s", models.AgencySocialInsurance, contributionFiling),
		Agency:        models.AgencySocialInsurance,
	}

	if profile.EmployeeCount == 0 {
		result.Score = 100
		result.Level = models.LevelCompliant
		result.Notes = append(result.Notes, "no employees on record; no contribution obligations")
		return result, nil
	}

	if profile.SocialInsuranceID == "" {
		result.Score = 0
		result.Level = models.LevelCritical
		result.Notes = append(result.Notes, "business employs staff but is not registered with the social-insurance fund")
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

	lastFiled := latestFiling(history, models.AgencySocialInsurance, contributionFiling)
	occ, err := deadline.Compute(*profile.RegistrationDate, set.FilingInterval(models.AgencySocialInsurance), lastFiled, now)
	if err != nil {
		return nil, err
	}

	result.LastFiledDate = lastFiled
	due := occ.NextDue
	result.DueDate = &due
	result.DaysOverdue = occ.DaysOverdue

	// The engine never sees payroll, so the floor wage gives the lowest
	// defensible contribution base for penalties and quotes.
	floorWage := set.SocialInsurance.Bands[tariff.PeriodMonthly].Floor
	employee, err := calc.Contribution(&set.SocialInsurance, floorWage, tariff.ClassEmployee, tariff.PeriodMonthly)
	if err != nil {
		return nil, err
	}
	employer, err := calc.Contribution(&set.SocialInsurance, floorWage, tariff.ClassEmployer, tariff.PeriodMonthly)
	if err != nil {
		return nil, err
	}
	minMonthlyBill := (employee.Contribution + employer.Contribution) * float64(profile.EmployeeCount)
	result.Notes = append(result.Notes, fmt.Sprintf(
		"minimum monthly contributions for %d employees: %.2f (employee share %.2f, employer share %.2f per worker)",
		profile.EmployeeCount, minMonthlyBill, employee.Contribution, employer.Contribution))

	rule := set.Penalties[models.AgencySocialInsurance]
	result.AccruedPenalty = calc.PercentagePenalty(minMonthlyBill, rule.MonthlyRate, occ.DaysOverdue)
	if rule.MaxPenalty > 0 && result.AccruedPenalty > rule.MaxPenalty {
		result.AccruedPenalty = rule.MaxPenalty
	}

	switch {
	case occ.DaysOverdue > 90:
		result.Score = 20
		result.Level = models.LevelCritical
		result.Notes = append(result.Notes, fmt.Sprintf("contribution schedule is %d days overdue", occ.DaysOverdue))
	case occ.DaysOverdue > 30:
		result.Score = 50
		result.Level = models.LevelMajorIssues
		result.Notes = append(result.Notes, fmt.Sprintf("contribution schedule is %d days overdue", occ.DaysOverdue))
	case occ.DaysOverdue > 0:
		result.Score = 75
		result.Level = models.LevelMinorIssues
		result.Notes = append(result.Notes, fmt.Sprintf("contribution schedule is %d days overdue", occ.DaysOverdue))
	default:
		result.Score = 100
		result.Level = models.LevelCompliant
	}

	return result, nil
}

// ComputeDeadlines implements DeadlineProducer for the monthly
// contribution schedule. Businesses without staff produce none.
func (a *SocialInsuranceAssessor) ComputeDeadlines(profile *models.BusinessProfile, now time.Time) ([]models.FilingDeadline, error) {
	if profile.EmployeeCount == 0 || profile.RegistrationDate == nil {
		return nil, nil
	}

	set, err := a.tariffs.ForDate(now)
	if err != nil {
		return nil, err
	}

	occ, err := deadline.Compute(*profile.RegistrationDate, set.FilingInterval(models.AgencySocialInsurance), nil, now)
	if err != nil {
		return nil, err
	}

	return []models.FilingDeadline{{
		Agency:       models.AgencySocialInsurance,
		FilingType:   contributionFiling,
		DueDate:      occ.NextDue,
		Description:  "monthly social-insurance contribution schedule",
		IsOverdue:    occ.IsOverdue(),
		DaysUntilDue: occ.DaysUntilDue,
	}}, nil
}
