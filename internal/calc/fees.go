package calc

import (
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/tariff"
)

// Fee looks up the fixed fee for a (feeType, entityType) pair. Not every
// entity type owes every fee, so an unknown combination is 0 rather than
// an error.
func Fee(schedule map[tariff.FeeKey]float64, feeType string, entityType models.BusinessType) float64 {
	return schedule[tariff.FeeKey{FeeType: feeType, EntityType: entityType}]
}
