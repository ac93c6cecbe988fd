package engine_test

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complykit/compliance-service/internal/assess"
	"github.com/complykit/compliance-service/internal/engine"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

var now = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

// stubAssessor returns a canned result, or fails, and can optionally
// produce canned deadlines.
type stubAssessor struct {
	agency    models.Agency
	score     float64
	level     models.ComplianceLevel
	notes     []string
	penalty   float64
	err       error
	deadlines []models.FilingDeadline
}

func (s *stubAssessor) Agency() models.Agency { return s.agency }

func (s *stubAssessor) Assess(_ *models.BusinessProfile, _ []models.FilingRecord, _ time.Time) (*models.ComplianceResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ComplianceResult{
		RequirementID:  fmt.Sprintf("%s:stub", s.agency),
		Agency:         s.agency,
		Level:          s.level,
		Score:          s.score,
		Notes:          s.notes,
		AccruedPenalty: s.penalty,
	}, nil
}

func (s *stubAssessor) ComputeDeadlines(_ *models.BusinessProfile, _ time.Time) ([]models.FilingDeadline, error) {
	return s.deadlines, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEngine(t *testing.T, weights map[models.Agency]float64, stubs ...*stubAssessor) *engine.Engine {
	t.Helper()
	r := assess.NewRegistry()
	for _, s := range stubs {
		require.NoError(t, r.Register(s))
	}
	eng, err := engine.New(r, tariff.Default(), weights, testLogger())
	require.NoError(t, err)
	return eng
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range engine.DefaultWeights() {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestNewRejectsBadWeights(t *testing.T) {
	r := assess.NewRegistry()
	require.NoError(t, r.Register(&stubAssessor{agency: models.AgencyTaxAuthority}))
	require.NoError(t, r.Register(&stubAssessor{agency: models.AgencyImmigration}))

	_, err := engine.New(r, tariff.Default(), map[models.Agency]float64{
		models.AgencyTaxAuthority: 0.6,
		models.AgencyImmigration:  0.3,
	}, testLogger())
	assert.Error(t, err, "weights not summing to 1.0 must be rejected")

	_, err = engine.New(r, tariff.Default(), map[models.Agency]float64{
		models.AgencyTaxAuthority: 1.0,
	}, testLogger())
	assert.Error(t, err, "a registered agency without a weight must be rejected")
}

func TestComplianceScoreWeightedSum(t *testing.T) {
	eng := newTestEngine(t,
		map[models.Agency]float64{
			models.AgencyTaxAuthority:    0.5,
			models.AgencySocialInsurance: 0.3,
			models.AgencyCompanyRegistry: 0.2,
		},
		&stubAssessor{agency: models.AgencyTaxAuthority, score: 100, level: models.LevelCompliant},
		&stubAssessor{agency: models.AgencySocialInsurance, score: 50, level: models.LevelMajorIssues},
		&stubAssessor{agency: models.AgencyCompanyRegistry, score: 80, level: models.LevelMinorIssues},
	)

	score, err := eng.ComplianceScore(&models.BusinessProfile{ID: 1}, nil, now)
	require.NoError(t, err)

	// round(100×0.5 + 50×0.3 + 80×0.2) = round(81)
	assert.Equal(t, 81, score.Overall)
	assert.Equal(t, models.LevelMinorIssues, score.Level)
	assert.Zero(t, score.CriticalIssues)
	assert.Equal(t, now, score.ComputedAt)
	assert.Equal(t, 100.0, score.ByAgency[models.AgencyTaxAuthority])
	assert.Equal(t, 50.0, score.ByAgency[models.AgencySocialInsurance])
}

func TestComplianceScoreCriticalOverride(t *testing.T) {
	eng := newTestEngine(t,
		map[models.Agency]float64{
			models.AgencyTaxAuthority:    0.9,
			models.AgencyCompanyRegistry: 0.1,
		},
		&stubAssessor{agency: models.AgencyTaxAuthority, score: 100, level: models.LevelCompliant},
		&stubAssessor{agency: models.AgencyCompanyRegistry, score: 100, level: models.LevelCritical},
	)

	score, err := eng.ComplianceScore(&models.BusinessProfile{ID: 1}, nil, now)
	require.NoError(t, err)

	// The weighted number is high but one Critical result wins.
	assert.Equal(t, 100, score.Overall)
	assert.Equal(t, models.LevelCritical, score.Level)
	assert.Equal(t, 1, score.CriticalIssues)
}

func TestComplianceScoreLevelThresholds(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected models.ComplianceLevel
	}{
		{name: "below seventy is major", score: 69, expected: models.LevelMajorIssues},
		{name: "seventy is minor", score: 70, expected: models.LevelMinorIssues},
		{name: "below eighty-five is minor", score: 84, expected: models.LevelMinorIssues},
		{name: "eighty-five is compliant", score: 85, expected: models.LevelCompliant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(t,
				map[models.Agency]float64{models.AgencyTaxAuthority: 1.0},
				&stubAssessor{agency: models.AgencyTaxAuthority, score: tt.score, level: models.LevelMinorIssues},
			)
			score, err := eng.ComplianceScore(&models.BusinessProfile{ID: 1}, nil, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, score.Level)
		})
	}
}

func TestAllResultsIsolatesFailures(t *testing.T) {
	eng := newTestEngine(t,
		map[models.Agency]float64{
			models.AgencyTaxAuthority:    0.5,
			models.AgencySocialInsurance: 0.3,
			models.AgencyCompanyRegistry: 0.2,
		},
		&stubAssessor{agency: models.AgencyTaxAuthority, score: 100, level: models.LevelCompliant},
		&stubAssessor{agency: models.AgencySocialInsurance, err: fmt.Errorf("fund registry unavailable")},
		&stubAssessor{agency: models.AgencyCompanyRegistry, score: 50, level: models.LevelMajorIssues},
	)

	results, errs := eng.AllResults(&models.BusinessProfile{ID: 1}, nil, now)
	assert.Len(t, results, 2)
	require.Len(t, errs, 1)
	assert.Error(t, errs[models.AgencySocialInsurance])

	// The score still computes from the agencies that responded, with
	// their weights renormalized: (100×0.5 + 50×0.2) / 0.7 ≈ 85.7.
	score, err := eng.ComplianceScore(&models.BusinessProfile{ID: 1}, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 86, score.Overall)
}

func TestComplianceScoreAllAssessorsFailed(t *testing.T) {
	eng := newTestEngine(t,
		map[models.Agency]float64{models.AgencyTaxAuthority: 1.0},
		&stubAssessor{agency: models.AgencyTaxAuthority, err: fmt.Errorf("boom")},
	)

	_, err := eng.ComplianceScore(&models.BusinessProfile{ID: 1}, nil, now)
	assert.Error(t, err)
}

func TestUpcomingDeadlinesMergedAndSorted(t *testing.T) {
	eng := newTestEngine(t,
		map[models.Agency]float64{
			models.AgencyTaxAuthority:    0.5,
			models.AgencyCompanyRegistry: 0.5,
		},
		&stubAssessor{agency: models.AgencyTaxAuthority, level: models.LevelCompliant, deadlines: []models.FilingDeadline{
			{Agency: models.AgencyTaxAuthority, FilingType: "vat_return", DueDate: now.AddDate(0, 0, 45), DaysUntilDue: 45},
			{Agency: models.AgencyTaxAuthority, FilingType: "income_tax_return", DueDate: now.AddDate(0, 2, 0), DaysUntilDue: 61},
		}},
		&stubAssessor{agency: models.AgencyCompanyRegistry, level: models.LevelCompliant, deadlines: []models.FilingDeadline{
			{Agency: models.AgencyCompanyRegistry, FilingType: "annual_return", DueDate: now.AddDate(0, 0, 10), DaysUntilDue: 10},
		}},
	)

	deadlines := eng.UpcomingDeadlines(&models.BusinessProfile{ID: 1}, now)
	require.Len(t, deadlines, 3)
	for i := 1; i < len(deadlines); i++ {
		assert.False(t, deadlines[i].DueDate.Before(deadlines[i-1].DueDate), "deadlines must be ascending by due date")
	}
	assert.Equal(t, "annual_return", deadlines[0].FilingType)
}

func TestActionPlan(t *testing.T) {
	eng := newTestEngine(t,
		map[models.Agency]float64{
			models.AgencyTaxAuthority:    0.4,
			models.AgencySocialInsurance: 0.3,
			models.AgencyCompanyRegistry: 0.3,
		},
		&stubAssessor{
			agency: models.AgencyTaxAuthority, score: 0, level: models.LevelCritical,
			notes: []string{"income tax return is 200 days overdue"}, penalty: 12000,
		},
		&stubAssessor{
			agency: models.AgencySocialInsurance, score: 50, level: models.LevelMajorIssues,
			notes: []string{"contribution schedule is 45 days overdue"}, penalty: 3000,
		},
		&stubAssessor{
			agency: models.AgencyCompanyRegistry, score: 100, level: models.LevelCompliant,
			deadlines: []models.FilingDeadline{
				{Agency: models.AgencyCompanyRegistry, FilingType: "annual_return", DueDate: now.AddDate(0, 0, 10), DaysUntilDue: 10},
				{Agency: models.AgencyCompanyRegistry, FilingType: "beneficial_ownership", DueDate: now.AddDate(0, 0, 45), DaysUntilDue: 45},
				{Agency: models.AgencyCompanyRegistry, FilingType: "director_update", DueDate: now.AddDate(0, 3, 0), DaysUntilDue: 91},
			},
		},
	)

	plan, err := eng.ActionPlan(&models.BusinessProfile{ID: 1}, nil, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"income tax return is 200 days overdue"}, plan.CriticalActions)
	assert.InDelta(t, 15000, plan.EstimatedCosts, 0.001)

	// Major-issue notes plus a reminder for the deadline within 30 days.
	require.Len(t, plan.Recommendations, 2)
	assert.Equal(t, "contribution schedule is 45 days overdue", plan.Recommendations[0])
	assert.Contains(t, plan.Recommendations[1], "annual_return")

	// Deadlines within 60 days surface; the 91-day one does not.
	require.Len(t, plan.UpcomingDeadlines, 2)
	assert.Equal(t, "annual_return", plan.UpcomingDeadlines[0].FilingType)
	assert.Equal(t, "beneficial_ownership", plan.UpcomingDeadlines[1].FilingType)
}
