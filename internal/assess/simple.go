package assess

import (
	"fmt"
	"time"

	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

// The three assessors below cover agencies with no recurring filings.
// They default to fully compliant and only degrade when one specific
// attribute of the business crosses a threshold, which is why none of
// them implements DeadlineProducer.

// InvestmentOfficeAssessor flags businesses whose revenue puts their
// investment-incentive agreements up for review.
type InvestmentOfficeAssessor struct {
	tariffs tariff.Schedule
}

// NewInvestmentOfficeAssessor creates the investment-office assessor.
func NewInvestmentOfficeAssessor(tariffs tariff.Schedule) *InvestmentOfficeAssessor {
	return &InvestmentOfficeAssessor{tariffs: tariffs}
}

// Agency implements Assessor.
func (a *InvestmentOfficeAssessor) Agency() models.Agency {
	return models.AgencyInvestmentOffice
}

// Assess implements Assessor.
func (a *InvestmentOfficeAssessor) Assess(profile *models.BusinessProfile, _ []models.FilingRecord, now time.Time) (*models.ComplianceResult, error) {
	result := &models.ComplianceResult{
		RequirementID: fmt.Sprintf("%s:incentive_review", models.AgencyInvestmentOffice),
		Agency:        models.AgencyInvestmentOffice,
		Score:         100,
		Level:         models.LevelCompliant,
	}

	set, err := a.tariffs.ForDate(now)
	if err != nil {
		return nil, err
	}

	if profile.AnnualRevenue > set.IncentiveRevenueThreshold {
		result.Score = 90
		result.Level = models.LevelMinorIssues
		result.Notes = append(result.Notes, "annual revenue exceeds the investment-incentive threshold; incentive agreement review is due")
	}

	return result, nil
}

// EnvironmentalAssessor reduces the score for sectors on the
// high-impact list, which require permits and annual audits.
type EnvironmentalAssessor struct {
	tariffs tariff.Schedule
}

// NewEnvironmentalAssessor creates the environmental-regulator assessor.
func NewEnvironmentalAssessor(tariffs tariff.Schedule) *EnvironmentalAssessor {
	return &EnvironmentalAssessor{tariffs: tariffs}
}

// Agency implements Assessor.
func (a *EnvironmentalAssessor) Agency() models.Agency {
	return models.AgencyEnvironmental
}

// Assess implements Assessor.
func (a *EnvironmentalAssessor) Assess(profile *models.BusinessProfile, _ []models.FilingRecord, now time.Time) (*models.ComplianceResult, error) {
	result := &models.ComplianceResult{
		RequirementID: fmt.Sprintf("%s:impact_classification", models.AgencyEnvironmental),
		Agency:        models.AgencyEnvironmental,
		Score:         100,
		Level:         models.LevelCompliant,
	}

	set, err := a.tariffs.ForDate(now)
	if err != nil {
		return nil, err
	}

	if set.HighImpactSector(profile.Sector) {
		result.Score = 50
		result.Level = models.LevelMajorIssues
		result.Notes = append(result.Notes, fmt.Sprintf("sector %q is classified as high environmental impact; an environmental permit and annual audit are required", profile.Sector))
	}

	return result, nil
}

// ImmigrationAssessor flags foreign-owned structures that typically
// employ non-citizen staff needing work permits.
type ImmigrationAssessor struct{}

// NewImmigrationAssessor creates the immigration-authority assessor.
func NewImmigrationAssessor() *ImmigrationAssessor {
	return &ImmigrationAssessor{}
}

// Agency implements Assessor.
func (a *ImmigrationAssessor) Agency() models.Agency {
	return models.AgencyImmigration
}

// Assess implements Assessor.
func (a *ImmigrationAssessor) Assess(profile *models.BusinessProfile, _ []models.FilingRecord, _ time.Time) (*models.ComplianceResult, error) {
	result := &models.ComplianceResult{
		RequirementID: fmt.Sprintf("%s:work_permits", models.AgencyImmigration),
		Agency:        models.AgencyImmigration,
		Score:         100,
		Level:         models.LevelCompliant,
	}

	if profile.BusinessType == models.BusinessTypeBranch || profile.BusinessType == models.BusinessTypeSubsidiary {
		result.Score = 90
		result.Level = models.LevelMinorIssues
		result.Notes = append(result.Notes, "foreign-owned structure; verify work permits are current for all non-citizen staff")
	}

	return result, nil
}
