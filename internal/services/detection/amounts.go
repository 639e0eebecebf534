package detection

import (
	"fmt"

	"github.com/shopspring/decimal"

	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/ingest"
	"revenue-reconciliation-backend/internal/services/matching"
)

var minimumDifference = decimal.New(1, -2)

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// customerTotals sums billable ledger amounts and successful processor
// amounts for one customer.
func (in *Input) customerTotals(customerID string) (ledger, processor decimal.Decimal, complete bool) {
	complete = true
	for _, r := range in.LedgerIndex.ForCustomer(customerID) {
		if r.HasAmount && r.Amount.IsPositive() && ledgerBillable(r.Status) {
			ledger = ledger.Add(r.Amount)
			complete = complete && r.Complete()
		}
	}
	for _, r := range in.ProcessorIndex.ForCustomer(customerID) {
		if r.HasAmount && r.Amount.IsPositive() && processorSucceeded(r.Status) {
			processor = processor.Add(r.Amount)
		}
	}
	return ledger, processor, complete
}

// detectAmountMismatch compares per-customer totals. Both the absolute and
// the relative difference must exceed their thresholds.
func detectAmountMismatch(in *Input) []Candidate {
	var out []Candidate
	gross := in.Config.GrossDiffThreshold()
	pct := decimalFromFloat(in.Config.AmountMismatchPct)

	for _, c := range in.ownedCustomers() {
		ledgerTotal, processorTotal, complete := in.customerTotals(c)
		if ledgerTotal.IsZero() || processorTotal.IsZero() {
			continue
		}
		diff := ledgerTotal.Sub(processorTotal)
		abs := diff.Abs()
		if abs.LessThanOrEqual(gross) || abs.LessThanOrEqual(minimumDifference) {
			continue
		}
		if abs.Div(ledgerTotal).LessThanOrEqual(pct) {
			continue
		}

		direction := "undercollected"
		if diff.IsNegative() {
			direction = "overcollected"
		}
		out = append(out, Candidate{
			Category:       models.CategoryAmountMismatch,
			CustomerID:     c,
			Base:           abs,
			Certainty:      Heuristic,
			Complete:       complete,
			CustomerActive: in.customerActive(c),
			Anchor:         "customer:" + c,
			Description: fmt.Sprintf("Customer %s was billed %s but the processor collected %s",
				c, ledgerTotal.StringFixed(2), processorTotal.StringFixed(2)),
			RootCause:      "Invoiced and collected totals diverge beyond tolerance.",
			Recommendation: "Compare the customer's invoices against processor charges line by line.",
			Metadata: map[string]any{
				"ledger_total":    ledgerTotal.StringFixed(2),
				"processor_total": processorTotal.StringFixed(2),
				"difference":      diff.StringFixed(2),
				"direction":       direction,
			},
		})
	}
	return out
}

// modalAmount returns the most frequent positive amount among records
// accepted by keep. Ties go to the amount seen first.
func modalAmount(records []*ingest.Record, keep func(*ingest.Record) bool) (decimal.Decimal, int) {
	counts := make(map[string]int)
	var order []decimal.Decimal
	for _, r := range records {
		if !r.HasAmount || !r.Amount.IsPositive() || !keep(r) {
			continue
		}
		k := r.Amount.StringFixed(2)
		if counts[k] == 0 {
			order = append(order, r.Amount)
		}
		counts[k]++
	}

	var best decimal.Decimal
	bestCount := 0
	for _, amt := range order {
		if n := counts[amt.StringFixed(2)]; n > bestCount {
			best, bestCount = amt, n
		}
	}
	return best, bestCount
}

// detectPricingMismatch flags customers whose recurring processor price sits
// below the recurring ledger price.
func detectPricingMismatch(in *Input) []Candidate {
	var out []Candidate
	gross := in.Config.GrossDiffThreshold()

	for _, c := range in.ownedCustomers() {
		ledgerPrice, ledgerCount := modalAmount(in.LedgerIndex.ForCustomer(c), func(r *ingest.Record) bool {
			return ledgerBillable(r.Status)
		})
		processorPrice, processorCount := modalAmount(in.ProcessorIndex.ForCustomer(c), func(r *ingest.Record) bool {
			return processorSucceeded(r.Status)
		})
		if ledgerCount < 2 || processorCount < 2 || ledgerCount+processorCount < in.Config.PayoutGroupMinTransactions {
			continue
		}
		diff := ledgerPrice.Sub(processorPrice)
		if diff.LessThanOrEqual(gross) {
			continue
		}

		out = append(out, Candidate{
			Category:       models.CategoryPricingMismatch,
			CustomerID:     c,
			Base:           diff,
			Certainty:      Heuristic,
			Complete:       true,
			CustomerActive: in.customerActive(c),
			Recurring:      true,
			Anchor:         "customer:" + c,
			Description: fmt.Sprintf("Customer %s is charged %s per period against a list price of %s",
				c, processorPrice.StringFixed(2), ledgerPrice.StringFixed(2)),
			RootCause:      "The processor subscription price drifted from the contracted price.",
			Recommendation: "Update the processor subscription to the contracted price.",
			Metadata: map[string]any{
				"ledger_price":      ledgerPrice.StringFixed(2),
				"processor_price":   processorPrice.StringFixed(2),
				"ledger_periods":    ledgerCount,
				"processor_periods": processorCount,
			},
		})
	}
	return out
}

// detectFeeDiscrepancies compares the fee booked in the ledger with the fee
// the processor charged on the paired transaction.
func detectFeeDiscrepancies(in *Input) []Candidate {
	var out []Candidate
	threshold := in.Config.FeeThreshold()
	window := in.pairWindow()

	in.ownedLedger(func(r *ingest.Record) {
		if !r.HasFee {
			return
		}
		p, ok := in.ProcessorIndex.Pair(r, window)
		if !ok || !p.HasFee {
			return
		}
		delta := r.Fee.Sub(p.Fee).Abs()
		if !delta.GreaterThan(threshold) {
			return
		}

		certainty := Heuristic
		if matching.PairedByID(r, p) {
			certainty = Exact
		}
		out = append(out, Candidate{
			Category:   models.CategoryFeeDiscrepancy,
			CustomerID: r.CustomerID,
			Base:       delta,
			Certainty:  certainty,
			Complete:   r.Complete() && p.Complete(),
			Recurring:  in.Config.AnnualizeFeeDiscrepancies,
			Anchor:     fmt.Sprintf("ledger:%d", r.Row),
			Description: fmt.Sprintf("Processor fee %s differs from booked fee %s by %s",
				p.Fee.StringFixed(2), r.Fee.StringFixed(2), delta.StringFixed(2)),
			RootCause:      "Processing fees were charged at a different rate than expected.",
			Recommendation: "Review the processor fee schedule against the negotiated rate.",
			Metadata: map[string]any{
				"ledger_row":    r.Row,
				"processor_row": p.Row,
				"ledger_fee":    r.Fee.StringFixed(2),
				"processor_fee": p.Fee.StringFixed(2),
			},
		})
	})
	return out
}
