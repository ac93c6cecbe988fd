// Package engine orchestrates the per-agency assessors into weighted
// scores, merged deadlines, action plans, and composed reports. The
// engine is pure: it owns no storage, reads no clock, and every method
// is safe for concurrent use across businesses and tenants.
package engine

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/complykit/compliance-service/internal/assess"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

const weightTolerance = 1e-9

// DefaultWeights returns the fixed per-agency weights. The tax
// authority and social-insurance fund carry the most weight because
// their penalties dominate real exposure.
func DefaultWeights() map[models.Agency]float64 {
	return map[models.Agency]float64{
		models.AgencyTaxAuthority:     0.30,
		models.AgencySocialInsurance:  0.25,
		models.AgencyCompanyRegistry:  0.20,
		models.AgencyInvestmentOffice: 0.10,
		models.AgencyEnvironmental:    0.10,
		models.AgencyImmigration:      0.05,
	}
}

// Engine runs every registered assessor and aggregates their output.
type Engine struct {
	registry *assess.Registry
	tariffs  tariff.Schedule
	weights  map[models.Agency]float64
	log      *logrus.Logger
}

// New validates the weight table against the registry and builds an
// engine. Every registered agency needs a weight and the weights must
// sum to 1.0 within floating-point tolerance.
func New(registry *assess.Registry, tariffs tariff.Schedule, weights map[models.Agency]float64, log *logrus.Logger) (*Engine, error) {
	sum := 0.0
	for _, a := range registry.All() {
		w, ok := weights[a.Agency()]
		if !ok {
			return nil, fmt.Errorf("no weight configured for agency: %s", a.Agency())
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return nil, fmt.Errorf("agency weights must sum to 1.0, got %v", sum)
	}
	return &Engine{registry: registry, tariffs: tariffs, weights: weights, log: log}, nil
}

// AllResults fans out to every registered assessor concurrently and
// fans their results back in, in registration order. A failing assessor
// never hides the others: its error is returned in the map keyed by
// agency while the remaining results come back normally.
func (e *Engine) AllResults(profile *models.BusinessProfile, history []models.FilingRecord, now time.Time) ([]models.ComplianceResult, map[models.Agency]error) {
	assessors := e.registry.All()
	results := make([]*models.ComplianceResult, len(assessors))
	errs := make(map[models.Agency]error)

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i, a := range assessors {
		wg.Add(1)
		go func(i int, a assess.Assessor) {
			defer wg.Done()
			result, err := a.Assess(profile, history, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[a.Agency()] = err
				return
			}
			results[i] = result
		}(i, a)
	}
	wg.Wait()

	out := make([]models.ComplianceResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	for agency, err := range errs {
		e.log.WithField("agency", agency).Errorf("assessment failed: %v", err)
	}
	return out, errs
}

// ComplianceScore computes the weighted overall score across all
// agencies. Any Critical result forces the overall level to Critical
// regardless of the weighted number.
func (e *Engine) ComplianceScore(profile *models.BusinessProfile, history []models.FilingRecord, now time.Time) (*models.ComplianceScore, error) {
	results, errs := e.AllResults(profile, history, now)
	return e.scoreFrom(results, errs, now)
}

// scoreFrom aggregates already-computed results. When some assessors
// failed their weights are renormalized over the successful set, so a
// single broken agency does not drag the score toward zero for the
// wrong reason.
func (e *Engine) scoreFrom(results []models.ComplianceResult, errs map[models.Agency]error, now time.Time) (*models.ComplianceScore, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no assessments completed: %d agencies failed", len(errs))
	}

	weightSum := 0.0
	for _, r := range results {
		weightSum += e.weights[r.Agency]
	}

	score := &models.ComplianceScore{
		ByAgency:   make(map[models.Agency]float64, len(results)),
		ComputedAt: now,
	}

	weighted := 0.0
	anyCritical := false
	for _, r := range results {
		score.ByAgency[r.Agency] = r.Score
		weighted += r.Score * (e.weights[r.Agency] / weightSum)
		if r.Level == models.LevelCritical {
			anyCritical = true
			score.CriticalIssues++
		}
	}
	score.Overall = int(math.Round(weighted))

	switch {
	case anyCritical:
		score.Level = models.LevelCritical
	case weighted < 70:
		score.Level = models.LevelMajorIssues
	case weighted < 85:
		score.Level = models.LevelMinorIssues
	default:
		score.Level = models.LevelCompliant
	}
	return score, nil
}

// UpcomingDeadlines merges the deadlines of every assessor that
// produces them, ascending by due date. Producers that fail are logged
// and skipped so one agency cannot blank the whole calendar.
func (e *Engine) UpcomingDeadlines(profile *models.BusinessProfile, now time.Time) []models.FilingDeadline {
	var deadlines []models.FilingDeadline
	for _, a := range e.registry.All() {
		producer, ok := a.(assess.DeadlineProducer)
		if !ok {
			continue
		}
		ds, err := producer.ComputeDeadlines(profile, now)
		if err != nil {
			e.log.WithField("agency", a.Agency()).Errorf("deadline computation failed: %v", err)
			continue
		}
		deadlines = append(deadlines, ds...)
	}
	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DueDate.Before(deadlines[j].DueDate)
	})
	return deadlines
}

// ActionPlan partitions assessor notes by severity, folds near-term
// deadlines into recommendations, and totals the accrued penalties into
// an estimated cost of inaction.
func (e *Engine) ActionPlan(profile *models.BusinessProfile, history []models.FilingRecord, now time.Time) (*models.ActionPlan, error) {
	results, _ := e.AllResults(profile, history, now)

	plan := &models.ActionPlan{}
	for _, r := range results {
		switch r.Level {
		case models.LevelCritical:
			plan.CriticalActions = append(plan.CriticalActions, r.Notes...)
		case models.LevelMajorIssues:
			plan.Recommendations = append(plan.Recommendations, r.Notes...)
		}
		plan.EstimatedCosts += r.AccruedPenalty
	}

	for _, d := range e.UpcomingDeadlines(profile, now) {
		if d.DaysUntilDue <= 30 {
			plan.Recommendations = append(plan.Recommendations, fmt.Sprintf(
				"file %s with %s within %d days", d.FilingType, d.Agency, d.DaysUntilDue))
		}
		if d.DaysUntilDue <= 60 {
			plan.UpcomingDeadlines = append(plan.UpcomingDeadlines, d)
		}
	}

	return plan, nil
}
