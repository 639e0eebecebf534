package detection

import (
	"github.com/shopspring/decimal"

	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/settings"
)

// Certainty is how strongly a rule's trigger implies a real discrepancy.
type Certainty int

const (
	// Heuristic rules fire on thresholds or patterns.
	Heuristic Certainty = iota
	// Exact rules fire on a definite key miss or a field contradiction.
	Exact
)

// ScoreConfidence derives the confidence tier. Exact rules start high and
// heuristics medium; incomplete records lose a tier, as does a counterpart
// customer that is no longer active. Never below low.
func ScoreConfidence(c Certainty, complete bool, customerActive *bool) models.Confidence {
	rank := 2
	if c == Exact {
		rank = 3
	}
	if !complete {
		rank--
	}
	if customerActive != nil && !*customerActive {
		rank--
	}

	switch {
	case rank >= 3:
		return models.ConfidenceHigh
	case rank == 2:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// ScoreImpact returns the monthly and annual revenue at risk. Recurring
// categories, or candidates flagged recurring, are multiplied by the
// annualization months; everything else has annual equal to monthly.
func ScoreImpact(category models.Category, base decimal.Decimal, cfg settings.Config, recurring bool) (monthly, annual decimal.Decimal) {
	monthly = base.Abs().Round(2)
	if category.Recurring() || recurring {
		return monthly, monthly.Mul(decimal.NewFromInt(int64(cfg.AnnualizationMonths)))
	}
	return monthly, monthly
}
