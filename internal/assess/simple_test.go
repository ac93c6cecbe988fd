package assess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complykit/compliance-service/internal/assess"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

func TestInvestmentOfficeAssessor(t *testing.T) {
	a := assess.NewInvestmentOfficeAssessor(tariff.Default())

	result, err := a.Assess(&models.BusinessProfile{AnnualRevenue: 1000000}, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, models.LevelCompliant, result.Level)

	result, err = a.Assess(&models.BusinessProfile{AnnualRevenue: 600000000}, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 90.0, result.Score)
	assert.Equal(t, models.LevelMinorIssues, result.Level)
	assert.NotEmpty(t, result.Notes)
}

func TestEnvironmentalAssessor(t *testing.T) {
	a := assess.NewEnvironmentalAssessor(tariff.Default())

	result, err := a.Assess(&models.BusinessProfile{Sector: "retail"}, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)

	result, err = a.Assess(&models.BusinessProfile{Sector: "mining"}, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, models.LevelMajorIssues, result.Level)
}

func TestImmigrationAssessor(t *testing.T) {
	a := assess.NewImmigrationAssessor()

	result, err := a.Assess(&models.BusinessProfile{BusinessType: models.BusinessTypeCorporation}, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)

	result, err = a.Assess(&models.BusinessProfile{BusinessType: models.BusinessTypeBranch}, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 90.0, result.Score)
	assert.Equal(t, models.LevelMinorIssues, result.Level)
}

func TestSimpleAssessorsProduceNoDeadlines(t *testing.T) {
	tariffs := tariff.Default()
	for _, a := range []assess.Assessor{
		assess.NewInvestmentOfficeAssessor(tariffs),
		assess.NewEnvironmentalAssessor(tariffs),
		assess.NewImmigrationAssessor(),
	} {
		_, ok := a.(assess.DeadlineProducer)
		assert.False(t, ok, "agency %s should not produce deadlines", a.Agency())
	}
}

func TestRegistry(t *testing.T) {
	r := assess.NewRegistry()
	require.NoError(t, r.Register(assess.NewImmigrationAssessor()))

	err := r.Register(assess.NewImmigrationAssessor())
	assert.Error(t, err, "duplicate registration must fail")

	got, ok := r.Get(models.AgencyImmigration)
	assert.True(t, ok)
	assert.Equal(t, models.AgencyImmigration, got.Agency())

	_, ok = r.Get(models.AgencyTaxAuthority)
	assert.False(t, ok)
}

func TestDefaultRegistryCoversAllAgencies(t *testing.T) {
	r, err := assess.Default(tariff.Default())
	require.NoError(t, err)

	agencies := make(map[models.Agency]bool)
	for _, a := range r.All() {
		agencies[a.Agency()] = true
	}
	assert.Len(t, agencies, 6)
}
