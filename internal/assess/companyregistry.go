package assess

import (
	"fmt"
	"time"

	"github.com/complykit/compliance-service/internal/calc"
	"github.com/complykit/compliance-service/internal/deadline"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

const annualReturnFiling = "annual_return"

// CompanyRegistryAssessor checks the single recurring obligation the
// registry imposes: the annual return.
type CompanyRegistryAssessor struct {
	tariffs tariff.Schedule
}

// NewCompanyRegistryAssessor creates the company-registry assessor.
func NewCompanyRegistryAssessor(tariffs tariff.Schedule) *CompanyRegistryAssessor {
	return &CompanyRegistryAssessor{tariffs: tariffs}
}

// Agency implements Assessor.
func (a *CompanyRegistryAssessor) Agency() models.Agency {
	return models.AgencyCompanyRegistry
}

// Assess bands severity by how far past the annual-return due date the
// business is. An unregistered business scores zero outright and gets
// no deadline math at all.
func (a *CompanyRegistryAssessor) Assess(profile *models.BusinessProfile, history []models.FilingRecord, now time.Time) (*models.ComplianceResult, error) {
	result := &models.ComplianceResult{
		RequirementID: fmt.Sprintf("%s:%s", models.AgencyCompanyRegistry, annualReturnFiling),
		Agency:        models.AgencyCompanyRegistry,
	}

	if profile.RegistrationDate == nil {
		result.Score = 0
		result.Level = models.LevelCritical
		result.Notes = append(result.Notes, "business is not registered with the company registry")
		return result, nil
	}

	set, err := a.tariffs.ForDate(now)
	if err != nil {
		return nil, err
	}

	lastFiled := latestFiling(history, models.AgencyCompanyRegistry, annualReturnFiling)
	occ, err := deadline.Compute(*profile.RegistrationDate, set.FilingInterval(models.AgencyCompanyRegistry), lastFiled, now)
	if err != nil {
		return nil, err
	}

	result.LastFiledDate = lastFiled
	due := occ.NextDue
	result.DueDate = &due
	result.DaysOverdue = occ.DaysOverdue

	rule := set.Penalties[models.AgencyCompanyRegistry]
	result.AccruedPenalty = calc.FlatPenalty(rule.DailyRate, rule.MaxPenalty, occ.DaysOverdue)

	switch {
	case occ.DaysOverdue > 365:
		result.Score = 0
		result.Level = models.LevelCritical
		result.Notes = append(result.Notes, "annual return is more than 1 year overdue")
	case occ.DaysOverdue > 180:
		result.Score = 20
		result.Level = models.LevelCritical
		result.Notes = append(result.Notes, fmt.Sprintf("annual return is %d days overdue", occ.DaysOverdue))
	case occ.DaysOverdue > 90:
		result.Score = 50
		result.Level = models.LevelMajorIssues
		result.Notes = append(result.Notes, fmt.Sprintf("annual return is %d days overdue", occ.DaysOverdue))
	case occ.DaysOverdue > 0:
		result.Score = 75
		result.Level = models.LevelMinorIssues
		result.Notes = append(result.Notes, fmt.Sprintf("annual return is %d days overdue", occ.DaysOverdue))
	default:
		result.Score = 100
		result.Level = models.LevelCompliant
		if occ.DaysUntilDue <= 30 {
			result.Notes = append(result.Notes, fmt.Sprintf("annual return due in %d days", occ.DaysUntilDue))
		}
	}

	return result, nil
}

// ComputeDeadlines implements DeadlineProducer for the annual return.
func (a *CompanyRegistryAssessor) ComputeDeadlines(profile *models.BusinessProfile, now time.Time) ([]models.FilingDeadline, error) {
	if profile.RegistrationDate == nil {
		return nil, nil
	}

	set, err := a.tariffs.ForDate(now)
	if err != nil {
		return nil, err
	}

	occ, err := deadline.Compute(*profile.RegistrationDate, set.FilingInterval(models.AgencyCompanyRegistry), nil, now)
	if err != nil {
		return nil, err
	}

	rule := set.Penalties[models.AgencyCompanyRegistry]
	return []models.FilingDeadline{{
		Agency:           models.AgencyCompanyRegistry,
		FilingType:       annualReturnFiling,
		DueDate:          occ.NextDue,
		Description:      "annual return filing with the company registry",
		IsOverdue:        occ.IsOverdue(),
		DaysUntilDue:     occ.DaysUntilDue,
		DailyPenaltyRate: rule.DailyRate,
		MaxPenalty:       rule.MaxPenalty,
		AccruedPenalty:   calc.FlatPenalty(rule.DailyRate, rule.MaxPenalty, occ.DaysOverdue),
	}}, nil
}
