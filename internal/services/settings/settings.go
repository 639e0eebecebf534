// Package settings resolves the reconciliation parameters used by one audit:
// engine defaults, then a named preset, then organization overrides.
package settings

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	apperrors "revenue-reconciliation-backend/internal/errors"
)

// Config holds resolved reconciliation parameters. It is read-only once resolved.
type Config struct {
	PayoutGraceDays              int     `mapstructure:"payoutGraceDays" json:"payoutGraceDays"`
	UnreconciledRiskPct          float64 `mapstructure:"unreconciledRiskPct" json:"unreconciledRiskPct"`
	FeeDiscrepancyThresholdCents int64   `mapstructure:"feeDiscrepancyThresholdCents" json:"feeDiscrepancyThresholdCents"`
	TimingMismatchDays           int     `mapstructure:"timingMismatchDays" json:"timingMismatchDays"`
	PayoutGroupMinTransactions   int     `mapstructure:"payoutGroupMinTransactions" json:"payoutGroupMinTransactions"`
	GrossDiffThresholdCents      int64   `mapstructure:"grossDiffThresholdCents" json:"grossDiffThresholdCents"`
	AnnualizationMonths          int     `mapstructure:"annualizationMonths" json:"annualizationMonths"`
	ChargebackFeeAmount          float64 `mapstructure:"chargebackFeeAmount" json:"chargebackFeeAmount"`
	CurrencyCode                 string  `mapstructure:"currencyCode" json:"currencyCode,omitempty"`
	AmountMismatchPct            float64 `mapstructure:"amountMismatchPct" json:"amountMismatchPct"`
	MaxFindingsPerDetector       int     `mapstructure:"maxFindingsPerDetector" json:"maxFindingsPerDetector"`
	AnnualizeFeeDiscrepancies    bool    `mapstructure:"annualizeFeeDiscrepancies" json:"annualizeFeeDiscrepancies"`
}

// Preset names.
const (
	PresetStartup    = "startup"
	PresetScale      = "scale"
	PresetEnterprise = "enterprise"
)

// Defaults returns the engine defaults.
func Defaults() Config {
	return Config{
		PayoutGraceDays:              4,
		UnreconciledRiskPct:          0.05,
		FeeDiscrepancyThresholdCents: 100,
		TimingMismatchDays:           1,
		PayoutGroupMinTransactions:   3,
		GrossDiffThresholdCents:      100,
		AnnualizationMonths:          12,
		ChargebackFeeAmount:          15,
		AmountMismatchPct:            0.05,
		MaxFindingsPerDetector:       30,
	}
}

var presets = map[string]map[string]any{
	PresetStartup: {
		"payoutGraceDays":              3,
		"feeDiscrepancyThresholdCents": 50,
		"grossDiffThresholdCents":      50,
		"payoutGroupMinTransactions":   2,
	},
	PresetScale: {},
	PresetEnterprise: {
		"payoutGraceDays":              7,
		"unreconciledRiskPct":          0.02,
		"feeDiscrepancyThresholdCents": 500,
		"timingMismatchDays":           2,
		"payoutGroupMinTransactions":   5,
		"grossDiffThresholdCents":      1000,
		"chargebackFeeAmount":          25,
		"maxFindingsPerDetector":       100,
	},
}

// Presets returns the known preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges defaults, the named preset (empty means none) and overrides.
// Unknown presets, unknown keys and out-of-range values are validation errors.
func Resolve(preset string, overrides map[string]any) (Config, error) {
	v := viper.New()
	for key, value := range defaultsMap() {
		v.SetDefault(key, value)
	}

	preset = strings.ToLower(strings.TrimSpace(preset))
	if preset != "" {
		values, ok := presets[preset]
		if !ok {
			return Config{}, apperrors.NewValidationError("preset", preset, "unknown preset, expected one of "+strings.Join(Presets(), ", "))
		}
		if err := v.MergeConfigMap(copyMap(values)); err != nil {
			return Config{}, err
		}
	}
	if len(overrides) > 0 {
		if err := v.MergeConfigMap(copyMap(overrides)); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, apperrors.NewValidationError("overrides", overrides, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.PayoutGraceDays < 0:
		return apperrors.NewValidationError("payoutGraceDays", c.PayoutGraceDays, "must be >= 0")
	case c.UnreconciledRiskPct < 0 || c.UnreconciledRiskPct > 1:
		return apperrors.NewValidationError("unreconciledRiskPct", c.UnreconciledRiskPct, "must be within [0, 1]")
	case c.FeeDiscrepancyThresholdCents < 0:
		return apperrors.NewValidationError("feeDiscrepancyThresholdCents", c.FeeDiscrepancyThresholdCents, "must be >= 0")
	case c.TimingMismatchDays < 0:
		return apperrors.NewValidationError("timingMismatchDays", c.TimingMismatchDays, "must be >= 0")
	case c.PayoutGroupMinTransactions < 1:
		return apperrors.NewValidationError("payoutGroupMinTransactions", c.PayoutGroupMinTransactions, "must be >= 1")
	case c.GrossDiffThresholdCents < 0:
		return apperrors.NewValidationError("grossDiffThresholdCents", c.GrossDiffThresholdCents, "must be >= 0")
	case c.AnnualizationMonths < 1:
		return apperrors.NewValidationError("annualizationMonths", c.AnnualizationMonths, "must be >= 1")
	case c.ChargebackFeeAmount < 0:
		return apperrors.NewValidationError("chargebackFeeAmount", c.ChargebackFeeAmount, "must be >= 0")
	case c.AmountMismatchPct < 0:
		return apperrors.NewValidationError("amountMismatchPct", c.AmountMismatchPct, "must be >= 0")
	case c.MaxFindingsPerDetector < 0:
		return apperrors.NewValidationError("maxFindingsPerDetector", c.MaxFindingsPerDetector, "must be >= 0")
	}
	return nil
}

// FeeThreshold returns the fee threshold in major currency units.
func (c Config) FeeThreshold() decimal.Decimal {
	return decimal.New(c.FeeDiscrepancyThresholdCents, -2)
}

// GrossDiffThreshold returns the gross amount threshold in major currency units.
func (c Config) GrossDiffThreshold() decimal.Decimal {
	return decimal.New(c.GrossDiffThresholdCents, -2)
}

// ChargebackFee returns the per-dispute fee as a decimal.
func (c Config) ChargebackFee() decimal.Decimal {
	return decimal.NewFromFloat(c.ChargebackFeeAmount)
}

func defaultsMap() map[string]any {
	d := Defaults()
	return map[string]any{
		"payoutGraceDays":              d.PayoutGraceDays,
		"unreconciledRiskPct":          d.UnreconciledRiskPct,
		"feeDiscrepancyThresholdCents": d.FeeDiscrepancyThresholdCents,
		"timingMismatchDays":           d.TimingMismatchDays,
		"payoutGroupMinTransactions":   d.PayoutGroupMinTransactions,
		"grossDiffThresholdCents":      d.GrossDiffThresholdCents,
		"annualizationMonths":          d.AnnualizationMonths,
		"chargebackFeeAmount":          d.ChargebackFeeAmount,
		"currencyCode":                 d.CurrencyCode,
		"amountMismatchPct":            d.AmountMismatchPct,
		"maxFindingsPerDetector":       d.MaxFindingsPerDetector,
		"annualizeFeeDiscrepancies":    d.AnnualizeFeeDiscrepancies,
	}
}

// copyMap protects callers' maps from viper's in-place key lowercasing.
func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
