package detection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/settings"
)

func TestScoreConfidence(t *testing.T) {
	inactive, active := false, true
	tests := []struct {
		name      string
		certainty Certainty
		complete  bool
		active    *bool
		want      models.Confidence
	}{
		{"exact complete", Exact, true, nil, models.ConfidenceHigh},
		{"exact active customer", Exact, true, &active, models.ConfidenceHigh},
		{"exact incomplete", Exact, false, nil, models.ConfidenceMedium},
		{"heuristic complete", Heuristic, true, nil, models.ConfidenceMedium},
		{"heuristic incomplete", Heuristic, false, nil, models.ConfidenceLow},
		{"exact inactive customer", Exact, true, &inactive, models.ConfidenceMedium},
		{"heuristic incomplete inactive", Heuristic, false, &inactive, models.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreConfidence(tt.certainty, tt.complete, tt.active))
		})
	}
}

func TestScoreImpact(t *testing.T) {
	cfg := settings.Defaults()

	monthly, annual := ScoreImpact(models.CategoryDuplicateCharge, decimal.RequireFromString("-12.345"), cfg, false)
	assert.Equal(t, "12.35", monthly.StringFixed(2))
	assert.True(t, monthly.Equal(annual))

	monthly, annual = ScoreImpact(models.CategoryUnbilledUsage, decimal.NewFromInt(10), cfg, false)
	assert.Equal(t, "10.00", monthly.StringFixed(2))
	assert.Equal(t, "120.00", annual.StringFixed(2))

	cfg.AnnualizationMonths = 6
	_, annual = ScoreImpact(models.CategoryFeeDiscrepancy, decimal.NewFromInt(2), cfg, true)
	assert.Equal(t, "12.00", annual.StringFixed(2))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(models.CategoryMissingInProcessor, "ledger:1")
	assert.Len(t, a, 32)
	assert.Equal(t, a, Fingerprint(models.CategoryMissingInProcessor, "ledger:1"))
	assert.NotEqual(t, a, Fingerprint(models.CategoryUnbilledUsage, "ledger:1"))
	assert.NotEqual(t, a, Fingerprint(models.CategoryMissingInProcessor, "ledger:2"))
}
