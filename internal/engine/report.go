package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/complykit/compliance-service/internal/models"
)

// GenerateReport composes the score, deadline calendar, action plan,
// and setup validation into one document. The four views are
// independent and read-only, so they run concurrently. A failing
// assessor removes only its own contribution; the failed agencies are
// listed on the report instead of failing it.
func (e *Engine) GenerateReport(profile *models.BusinessProfile, history []models.FilingRecord, now time.Time) (*models.ComplianceReport, error) {
	report := &models.ComplianceReport{
		ID:          uuid.NewString(),
		BusinessID:  profile.ID,
		GeneratedAt: now,
	}

	var wg sync.WaitGroup
	wg.Add(4)

	var scoreErr error
	go func() {
		defer wg.Done()
		results, errs := e.AllResults(profile, history, now)
		for agency := range errs {
			report.FailedAgencies = append(report.FailedAgencies, string(agency))
		}
		sort.Strings(report.FailedAgencies)
		report.Score, scoreErr = e.scoreFrom(results, errs, now)
	}()

	go func() {
		defer wg.Done()
		report.Deadlines = e.UpcomingDeadlines(profile, now)
	}()

	var planErr error
	go func() {
		defer wg.Done()
		report.ActionPlan, planErr = e.ActionPlan(profile, history, now)
	}()

	var setupErr error
	go func() {
		defer wg.Done()
		report.Setup, setupErr = e.ValidateSetup(profile, now)
	}()

	wg.Wait()

	for _, err := range []error{scoreErr, planErr, setupErr} {
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}
