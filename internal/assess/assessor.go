// Package assess holds the per-agency compliance assessors. Each agency
// is one Assessor implementation registered in a Registry; the
// orchestrator only ever talks to the interface, so adding an agency
// means registering a new implementation, not editing a switch.
package assess

import (
	"fmt"
	"time"

	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

// Assessor evaluates one agency's compliance state for a business.
// Implementations are pure: the same profile, history, and "now" always
// produce the same result, and nothing is read from a system clock.
type Assessor interface {
	Agency() models.Agency
	Assess(profile *models.BusinessProfile, history []models.FilingRecord, now time.Time) (*models.ComplianceResult, error)
}

// DeadlineProducer is the optional capability for agencies with
// recurring filing obligations. Assessors without recurring filings
// simply do not implement it.
type DeadlineProducer interface {
	ComputeDeadlines(profile *models.BusinessProfile, now time.Time) ([]models.FilingDeadline, error)
}

// Registry maps agency identifiers to their assessor, preserving
// registration order for deterministic iteration.
type Registry struct {
	order     []models.Agency
	assessors map[models.Agency]Assessor
}

// NewRegistry creates an empty assessor registry.
func NewRegistry() *Registry {
	return &Registry{assessors: make(map[models.Agency]Assessor)}
}

// Register adds an assessor. Registering the same agency twice is a
// wiring mistake and fails.
func (r *Registry) Register(a Assessor) error {
	agency := a.Agency()
	if _, exists := r.assessors[agency]; exists {
		return fmt.Errorf("assessor already registered for agency: %s", agency)
	}
	r.assessors[agency] = a
	r.order = append(r.order, agency)
	return nil
}

// Get returns the assessor for an agency.
func (r *Registry) Get(agency models.Agency) (Assessor, bool) {
	a, ok := r.assessors[agency]
	return a, ok
}

// All returns every registered assessor in registration order.
func (r *Registry) All() []Assessor {
	out := make([]Assessor, 0, len(r.order))
	for _, agency := range r.order {
		out = append(out, r.assessors[agency])
	}
	return out
}

// Default builds the registry covering all six supported agencies.
func Default(tariffs tariff.Schedule) (*Registry, error) {
	r := NewRegistry()
	for _, a := range []Assessor{
		NewTaxAuthorityAssessor(tariffs),
		NewSocialInsuranceAssessor(tariffs),
		NewCompanyRegistryAssessor(tariffs),
		NewInvestmentOfficeAssessor(tariffs),
		NewEnvironmentalAssessor(tariffs),
		NewImmigrationAssessor(),
	} {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// latestFiling returns the most recent filing of a given type with an
// agency, relying on the most-recent-first convention of histories.
func latestFiling(history []models.FilingRecord, agency models.Agency, filingType string) *time.Time {
	for i := range history {
		if history[i].Agency == agency && history[i].FilingType == filingType {
			filed := history[i].FiledDate
			return &filed
		}
	}
	return nil
}
