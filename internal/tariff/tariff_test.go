package tariff_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

func TestScheduleForDate(t *testing.T) {
	older := &tariff.Set{
		Name:          "2018",
		EffectiveFrom: time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTo:   time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	current := &tariff.Set{
		Name:          "2020",
		EffectiveFrom: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	schedule := tariff.Schedule{older, current}

	got, err := schedule.ForDate(time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2018", got.Name)

	got, err = schedule.ForDate(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2020", got.Name)

	_, err = schedule.ForDate(time.Date(2017, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err, "dates before any effective range must fail")
}

func TestScheduleLaterSetWinsOverlap(t *testing.T) {
	base := &tariff.Set{
		Name:          "base",
		EffectiveFrom: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	amendment := &tariff.Set{
		Name:          "amendment",
		EffectiveFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	schedule := tariff.Schedule{base, amendment}

	got, err := schedule.ForDate(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "amendment", got.Name)

	got, err = schedule.ForDate(time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "base", got.Name)
}

func TestDefaultSchedule(t *testing.T) {
	schedule := tariff.Default()

	set, err := schedule.ForDate(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.NotEmpty(t, set.IncomeTaxBrackets)
	assert.Equal(t, 12, set.FilingInterval(models.AgencyCompanyRegistry))
	assert.Equal(t, 1, set.FilingInterval(models.AgencySocialInsurance))
	assert.Zero(t, set.FilingInterval(models.AgencyImmigration))
	assert.True(t, set.HighImpactSector("mining"))
	assert.False(t, set.HighImpactSector("retail"))
	assert.Equal(t, 1.0, set.ExchangeRates[set.BaseCurrency])
}
