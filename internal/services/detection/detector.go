// Package detection turns two normalized ledgers into scored anomalies.
//
// Detectors are pure functions over an Input. Each one only emits for rows (or
// customers) owned by the Input's row ranges, so running the registry over
// disjoint chunks and concatenating the results equals one full pass.
package detection

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/ingest"
	"revenue-reconciliation-backend/internal/services/matching"
	"revenue-reconciliation-backend/internal/services/settings"
)

// Input is everything a detector may read.
type Input struct {
	Ledger         []ingest.Record
	Processor      []ingest.Record
	LedgerIndex    *matching.Index
	ProcessorIndex *matching.Index
	Config         settings.Config
	LedgerRange    models.RowRange
	ProcessorRange models.RowRange

	customerOwner map[string]int
}

// NewInput indexes both sides. Ranges select the rows this run owns.
func NewInput(ledger, processor []ingest.Record, cfg settings.Config, ledgerRange, processorRange models.RowRange) *Input {
	in := &Input{
		Ledger:         ledger,
		Processor:      processor,
		LedgerIndex:    matching.Build(ledger),
		ProcessorIndex: matching.Build(processor),
		Config:         cfg,
		LedgerRange:    ledgerRange,
		ProcessorRange: processorRange,
		customerOwner:  make(map[string]int),
	}
	for _, c := range in.LedgerIndex.Customers() {
		in.customerOwner[c] = in.LedgerIndex.ForCustomer(c)[0].Row
	}
	return in
}

// WithRanges returns a copy of in that owns the given row ranges. Indexes are
// shared with in.
func (in *Input) WithRanges(ledgerRange, processorRange models.RowRange) *Input {
	out := *in
	out.LedgerRange = ledgerRange
	out.ProcessorRange = processorRange
	return &out
}

// FullRange covers every row of a dataset with n rows.
func FullRange(n int) models.RowRange {
	return models.RowRange{Start: 0, End: n}
}

// ownsCustomer reports whether the customer's first ledger row is in range.
func (in *Input) ownsCustomer(customerID string) bool {
	row, ok := in.customerOwner[customerID]
	return ok && in.LedgerRange.Contains(row)
}

// ownedLedger calls fn for every ledger record inside the ledger range.
func (in *Input) ownedLedger(fn func(r *ingest.Record)) {
	for i := range in.Ledger {
		if in.LedgerRange.Contains(in.Ledger[i].Row) {
			fn(&in.Ledger[i])
		}
	}
}

// ownedProcessor calls fn for every processor record inside the processor range.
func (in *Input) ownedProcessor(fn func(r *ingest.Record)) {
	for i := range in.Processor {
		if in.ProcessorRange.Contains(in.Processor[i].Row) {
			fn(&in.Processor[i])
		}
	}
}

// ownedCustomers returns ledger customers owned by this run, in first-seen order.
func (in *Input) ownedCustomers() []string {
	var out []string
	for _, c := range in.LedgerIndex.Customers() {
		if in.ownsCustomer(c) {
			out = append(out, c)
		}
	}
	return out
}

// customerActive reports whether the customer's latest ledger status is not
// a cancellation. Nil when the ledger says nothing about the customer.
func (in *Input) customerActive(customerID string) *bool {
	latest := latestRecord(in.LedgerIndex.ForCustomer(customerID))
	if latest == nil || latest.Status == "" {
		return nil
	}
	active := !isCancelled(latest.Status)
	return &active
}

// pairWindow is the timestamp skew tolerated when pairing two records.
func (in *Input) pairWindow() time.Duration {
	return time.Duration(in.Config.TimingMismatchDays+1) * 24 * time.Hour
}

// Candidate is an unscored finding.
type Candidate struct {
	Category       models.Category
	CustomerID     string
	Base           decimal.Decimal
	Certainty      Certainty
	Complete       bool
	CustomerActive *bool
	Recurring      bool
	Anchor         string
	Description    string
	RootCause      string
	Recommendation string
	Metadata       map[string]any
}

// Detector evaluates one rule.
type Detector struct {
	Category models.Category
	Detect   func(in *Input) []Candidate
}

// Registry is the ordered detector set run for every chunk.
var Registry = []Detector{
	{models.CategoryMissingInProcessor, detectMissingInProcessor},
	{models.CategoryMissingInLedger, detectMissingInLedger},
	{models.CategoryAmountMismatch, detectAmountMismatch},
	{models.CategoryDuplicateCharge, detectDuplicateCharges},
	{models.CategoryZombieSubscription, detectZombieSubscriptions},
	{models.CategoryUnbilledUsage, detectUnbilledUsage},
	{models.CategoryPricingMismatch, detectPricingMismatch},
	{models.CategoryFailedPayment, detectFailedPayments},
	{models.CategoryDisputedCharge, detectDisputedCharges},
	{models.CategoryFeeDiscrepancy, detectFeeDiscrepancies},
	{models.CategoryOther, detectUnrecordedRefunds},
}

// Result is the outcome of one registry run.
type Result struct {
	Findings    []models.Anomaly
	Truncated   int
	TruncatedBy map[models.Category]int
}

// Run evaluates every detector, applies the per-detector emission cap and
// scores the survivors.
func Run(in *Input, auditID uuid.UUID, chunkIndex int, detectedAt time.Time) Result {
	res := Result{TruncatedBy: make(map[models.Category]int)}
	limit := in.Config.MaxFindingsPerDetector

	for _, d := range Registry {
		candidates := d.Detect(in)
		if limit > 0 && len(candidates) > limit {
			res.TruncatedBy[d.Category] = len(candidates) - limit
			res.Truncated += len(candidates) - limit
			candidates = candidates[:limit]
		}
		for _, c := range candidates {
			res.Findings = append(res.Findings, newAnomaly(c, in.Config, auditID, chunkIndex, detectedAt))
		}
	}
	return res
}

func newAnomaly(c Candidate, cfg settings.Config, auditID uuid.UUID, chunkIndex int, detectedAt time.Time) models.Anomaly {
	monthly, annual := ScoreImpact(c.Category, c.Base, cfg, c.Recurring || c.Metadata["recurring"] == true)
	fp := Fingerprint(c.Category, c.Anchor)

	a := models.Anomaly{
		ID:             uuid.NewSHA1(auditID, []byte(fp)),
		AuditID:        auditID,
		Fingerprint:    fp,
		ChunkIndex:     chunkIndex,
		Category:       c.Category,
		Status:         models.AnomalyDetected,
		Confidence:     ScoreConfidence(c.Certainty, c.Complete, c.CustomerActive),
		MonthlyImpact:  monthly,
		AnnualImpact:   annual,
		Description:    c.Description,
		RootCause:      c.RootCause,
		Recommendation: c.Recommendation,
		Metadata:       c.Metadata,
		DetectedAt:     detectedAt,
	}
	if c.CustomerID != "" {
		customer := c.CustomerID
		a.CustomerID = &customer
	}
	return a
}

// Fingerprint identifies a finding independently of the run that produced it.
func Fingerprint(category models.Category, anchor string) string {
	sum := sha256.Sum256([]byte(string(category) + "|" + anchor))
	return hex.EncodeToString(sum[:16])
}
