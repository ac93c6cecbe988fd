package engine_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complykit/compliance-service/internal/models"
)

func TestGenerateReport(t *testing.T) {
	eng := newDefaultEngine(t)

	registeredAt := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	profile := &models.BusinessProfile{
		ID:               42,
		Name:             "Overdue Holdings Inc",
		BusinessType:     models.BusinessTypeCorporation,
		Sector:           "retail",
		RegistrationDate: &registeredAt,
		TaxID:            "TIN-042",
	}

	report, err := eng.GenerateReport(profile, nil, now)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, int64(42), report.BusinessID)
	assert.Equal(t, now, report.GeneratedAt)
	assert.Empty(t, report.FailedAgencies)

	require.NotNil(t, report.Score)
	assert.Len(t, report.Score.ByAgency, 6)
	require.NotNil(t, report.ActionPlan)
	require.NotNil(t, report.Setup)
	assert.NotEmpty(t, report.Deadlines)
}

func TestGenerateReportDeterministic(t *testing.T) {
	// Same profile, history, and "now" must reproduce the same numbers.
	eng := newDefaultEngine(t)

	registeredAt := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	profile := &models.BusinessProfile{
		ID:               7,
		BusinessType:     models.BusinessTypeCorporation,
		Sector:           "mining",
		RegistrationDate: &registeredAt,
		TaxID:            "TIN-007",
	}

	first, err := eng.GenerateReport(profile, nil, now)
	require.NoError(t, err)
	second, err := eng.GenerateReport(profile, nil, now)
	require.NoError(t, err)

	assert.Equal(t, first.Score.Overall, second.Score.Overall)
	assert.Equal(t, first.Score.ByAgency, second.Score.ByAgency)
	assert.Equal(t, first.ActionPlan.EstimatedCosts, second.ActionPlan.EstimatedCosts)
	assert.Equal(t, first.Deadlines, second.Deadlines)
}

func TestGenerateReportPartialFailure(t *testing.T) {
	eng := newTestEngine(t,
		map[models.Agency]float64{
			models.AgencyTaxAuthority:    0.6,
			models.AgencySocialInsurance: 0.4,
		},
		&stubAssessor{agency: models.AgencyTaxAuthority, score: 100, level: models.LevelCompliant},
		&stubAssessor{agency: models.AgencySocialInsurance, err: fmt.Errorf("fund registry unavailable")},
	)

	report, err := eng.GenerateReport(&models.BusinessProfile{ID: 9}, nil, now)
	require.NoError(t, err)

	assert.Equal(t, []string{string(models.AgencySocialInsurance)}, report.FailedAgencies)
	require.NotNil(t, report.Score, "surviving agencies still produce a score")
	assert.Equal(t, 100, report.Score.Overall)
}
