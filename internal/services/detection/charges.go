package detection

import (
	"fmt"

	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/ingest"
	"revenue-reconciliation-backend/internal/services/matching"
)

// detectDuplicateCharges flags successful processor charges repeated for the
// same customer, amount and day beyond what the ledger billed. The first
// charge of a group is never flagged.
func detectDuplicateCharges(in *Input) []Candidate {
	var out []Candidate
	in.ownedProcessor(func(r *ingest.Record) {
		if r.CustomerID == "" || !r.HasAmount || !r.Amount.IsPositive() || !r.HasTimestamp || !processorSucceeded(r.Status) {
			return
		}

		var group []*ingest.Record
		for _, g := range in.ProcessorIndex.SameDay(r) {
			if processorSucceeded(g.Status) {
				group = append(group, g)
			}
		}
		position := -1
		for i, g := range group {
			if g.Row == r.Row {
				position = i
				break
			}
		}

		billed := 0
		for _, l := range in.LedgerIndex.SameDay(r) {
			if ledgerBillable(l.Status) {
				billed++
			}
		}
		if position < max(1, billed) {
			return
		}

		first := group[0]
		out = append(out, Candidate{
			Category:       models.CategoryDuplicateCharge,
			CustomerID:     r.CustomerID,
			Base:           r.Amount,
			Certainty:      Exact,
			Complete:       r.Complete(),
			CustomerActive: in.customerActive(r.CustomerID),
			Anchor:         fmt.Sprintf("processor:%d", r.Row),
			Description: fmt.Sprintf("Customer %s was charged %s %d times on %s",
				r.CustomerID, r.Amount.StringFixed(2), len(group), r.Day()),
			RootCause:      "A retry or integration fault submitted the same charge more than once.",
			Recommendation: "Refund the duplicate charge and check idempotency keys on charge creation.",
			Metadata: map[string]any{
				"processor_row":      r.Row,
				"processor_id":       r.ID,
				"first_charge_row":   first.Row,
				"first_charge_id":    first.ID,
				"occurrences":        len(group),
				"ledger_occurrences": billed,
				"day":                r.Day(),
			},
		})
	})
	return out
}

// detectFailedPayments flags processor charges that did not succeed.
func detectFailedPayments(in *Input) []Candidate {
	var out []Candidate
	in.ownedProcessor(func(r *ingest.Record) {
		if !r.HasAmount || !r.Amount.IsPositive() || !isFailed(r.Status) {
			return
		}
		out = append(out, Candidate{
			Category:       models.CategoryFailedPayment,
			CustomerID:     r.CustomerID,
			Base:           r.Amount,
			Certainty:      Exact,
			Complete:       r.Complete(),
			CustomerActive: in.customerActive(r.CustomerID),
			Anchor:         fmt.Sprintf("processor:%d", r.Row),
			Description: fmt.Sprintf("Processor charge of %s ended with status %q",
				r.Amount.StringFixed(2), r.Status),
			RootCause:      "The payment attempt failed and no successful retry was recorded.",
			Recommendation: "Run dunning for the customer or update their payment method.",
			Metadata: map[string]any{
				"processor_row":    r.Row,
				"processor_id":     r.ID,
				"amount":           r.Amount.StringFixed(2),
				"processor_status": r.Status,
			},
		})
	})
	return out
}

// detectDisputedCharges flags paired transactions disputed on one side only.
func detectDisputedCharges(in *Input) []Candidate {
	var out []Candidate
	fee := in.Config.ChargebackFee()
	window := in.pairWindow()

	in.ownedLedger(func(r *ingest.Record) {
		if !r.HasAmount || !r.Amount.IsPositive() {
			return
		}
		p, ok := in.ProcessorIndex.Pair(r, window)
		if !ok {
			return
		}
		ledgerSide, processorSide := recordDisputed(r), recordDisputed(p)
		if ledgerSide == processorSide {
			return
		}

		certainty := Heuristic
		if matching.PairedByID(r, p) {
			certainty = Exact
		}
		disputedBy := "ledger"
		if processorSide {
			disputedBy = "processor"
		}
		out = append(out, Candidate{
			Category:       models.CategoryDisputedCharge,
			CustomerID:     r.CustomerID,
			Base:           r.Amount.Add(fee),
			Certainty:      certainty,
			Complete:       r.Complete() && p.Complete(),
			CustomerActive: in.customerActive(r.CustomerID),
			Anchor:         fmt.Sprintf("ledger:%d", r.Row),
			Description: fmt.Sprintf("Charge of %s for customer %s is disputed in the %s only",
				r.Amount.StringFixed(2), r.CustomerID, disputedBy),
			RootCause:      "Dispute status is not synchronized between the processor and the ledger.",
			Recommendation: "Respond to the dispute and align the dispute status in both systems.",
			Metadata: map[string]any{
				"ledger_row":     r.Row,
				"processor_row":  p.Row,
				"disputed_by":    disputedBy,
				"amount":         r.Amount.StringFixed(2),
				"chargeback_fee": fee.StringFixed(2),
			},
		})
	})
	return out
}

// detectUnrecordedRefunds flags processor refunds whose ledger counterpart
// still reads as paid.
func detectUnrecordedRefunds(in *Input) []Candidate {
	var out []Candidate
	window := in.pairWindow()

	in.ownedProcessor(func(r *ingest.Record) {
		if !r.HasAmount || !isRefunded(r.Status) {
			return
		}
		l, ok := in.LedgerIndex.Pair(r, window)
		if !ok || !ledgerPaid(l.Status) {
			return
		}
		out = append(out, Candidate{
			Category:       models.CategoryOther,
			CustomerID:     r.CustomerID,
			Base:           r.Amount,
			Certainty:      Heuristic,
			Complete:       r.Complete() && l.Complete(),
			CustomerActive: in.customerActive(r.CustomerID),
			Anchor:         fmt.Sprintf("refund:%d", r.Row),
			Description: fmt.Sprintf("Processor refunded %s to customer %s but the ledger still shows %q",
				r.Amount.Abs().StringFixed(2), r.CustomerID, l.Status),
			RootCause:      "Refunds issued at the processor are not written back to the ledger.",
			Recommendation: "Post the refund to the ledger and reverse the recognized revenue.",
			Metadata: map[string]any{
				"processor_row":    r.Row,
				"ledger_row":       l.Row,
				"processor_status": r.Status,
				"ledger_status":    l.Status,
			},
		})
	})
	return out
}
