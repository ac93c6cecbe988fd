package engine

import (
	"time"

	"github.com/complykit/compliance-service/internal/models"
)

// ValidateSetup checks the registration requirements a business must
// meet before any scoring makes sense. The checks are deliberately
// independent of the assessors: a business can score zero everywhere
// and still have a complete setup.
func (e *Engine) ValidateSetup(profile *models.BusinessProfile, now time.Time) (*models.SetupValidation, error) {
	set, err := e.tariffs.ForDate(now)
	if err != nil {
		return nil, err
	}

	v := &models.SetupValidation{}
	missing := func(requirement, nextStep string) {
		v.MissingRequirements = append(v.MissingRequirements, requirement)
		v.NextSteps = append(v.NextSteps, nextStep)
	}

	if profile.RegistrationDate == nil {
		missing("registration date", "register the business with the company registry")
	}
	if profile.TaxID == "" {
		missing("tax identifier", "apply for a tax identifier with the tax authority")
	}
	if profile.EmployeeCount > 0 && profile.SocialInsuranceID == "" {
		missing("social-insurance identifier", "register as an employer with the social-insurance fund")
	}
	if profile.AnnualRevenue > set.VATRegistrationThreshold && !profile.VATRegistered {
		missing("VAT registration", "register for VAT; annual revenue exceeds the registration threshold")
	}

	v.Valid = len(v.MissingRequirements) == 0
	return v, nil
}
