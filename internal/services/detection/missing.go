package detection

import (
	"fmt"

	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/ingest"
)

// detectMissingInProcessor flags billable ledger charges with no processor
// transaction for the same customer and amount. Charges newer than the
// processor export minus the payout grace period are not yet due. The rule
// needs only the match key, so that alone makes a finding complete.
func detectMissingInProcessor(in *Input) []Candidate {
	var out []Candidate
	latest := in.ProcessorIndex.Latest()
	graceCutoff := latest.AddDate(0, 0, -in.Config.PayoutGraceDays)

	in.ownedLedger(func(r *ingest.Record) {
		if r.CustomerID == "" || !r.HasAmount || !r.Amount.IsPositive() || !ledgerBillable(r.Status) {
			return
		}
		if r.HasTimestamp && !latest.IsZero() && r.Timestamp.After(graceCutoff) {
			return
		}
		if in.ProcessorIndex.Has(r.CustomerID, r.Amount) {
			return
		}
		if _, ok := in.ProcessorIndex.ByID(r.ID); ok {
			return
		}

		out = append(out, Candidate{
			Category:       models.CategoryMissingInProcessor,
			CustomerID:     r.CustomerID,
			Base:           r.Amount,
			Certainty:      Exact,
			Complete:       r.HasKey(),
			CustomerActive: in.customerActive(r.CustomerID),
			Anchor:         fmt.Sprintf("ledger:%d", r.Row),
			Description: fmt.Sprintf("Ledger charge of %s for customer %s has no matching processor transaction",
				r.Amount.StringFixed(2), r.CustomerID),
			RootCause:      "The charge was recorded internally but never reached the payment processor.",
			Recommendation: "Confirm the invoice was submitted for collection and retry the charge.",
			Metadata: map[string]any{
				"ledger_row":    r.Row,
				"ledger_id":     r.ID,
				"amount":        r.Amount.StringFixed(2),
				"ledger_status": r.Status,
			},
		})
	})
	return out
}

// detectMissingInLedger flags successful processor charges the ledger has no
// record of. Only a share of the amount is treated as at risk.
func detectMissingInLedger(in *Input) []Candidate {
	var out []Candidate
	risk := decimalFromFloat(in.Config.UnreconciledRiskPct)

	in.ownedProcessor(func(r *ingest.Record) {
		if r.CustomerID == "" || !r.HasAmount || !r.Amount.IsPositive() || !processorSucceeded(r.Status) {
			return
		}
		if in.LedgerIndex.Has(r.CustomerID, r.Amount) {
			return
		}
		if _, ok := in.LedgerIndex.ByID(r.ID); ok {
			return
		}

		out = append(out, Candidate{
			Category:   models.CategoryMissingInLedger,
			CustomerID: r.CustomerID,
			Base:       r.Amount.Mul(risk),
			Certainty:  Exact,
			Complete:   r.HasKey(),
			Anchor:     fmt.Sprintf("processor:%d", r.Row),
			Description: fmt.Sprintf("Processor collected %s from customer %s with no ledger entry",
				r.Amount.StringFixed(2), r.CustomerID),
			RootCause:      "Money was collected outside the billing system or the ledger entry was lost.",
			Recommendation: "Record the transaction in the ledger or refund it if it was collected in error.",
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

// detectUnbilledUsage flags ledger usage that was never invoiced or collected.
func detectUnbilledUsage(in *Input) []Candidate {
	var out []Candidate
	in.ownedLedger(func(r *ingest.Record) {
		if r.CustomerID == "" || !r.HasAmount || !r.Amount.IsPositive() || !isUnbilled(r.Status) {
			return
		}
		if in.ProcessorIndex.Has(r.CustomerID, r.Amount) {
			return
		}

		certainty := Heuristic
		if !in.ProcessorIndex.HasCustomer(r.CustomerID) {
			certainty = Exact
		}
		out = append(out, Candidate{
			Category:   models.CategoryUnbilledUsage,
			CustomerID: r.CustomerID,
			Base:       r.Amount,
			Certainty:  certainty,
			Complete:   r.Complete(),
			Recurring:  true,
			Anchor:     fmt.Sprintf("ledger:%d", r.Row),
			Description: fmt.Sprintf("Usage of %s for customer %s is marked %q and was never billed",
				r.Amount.StringFixed(2), r.CustomerID, r.Status),
			RootCause:      "Metered usage is recorded but not flowing into invoices.",
			Recommendation: "Invoice the outstanding usage and check the usage-to-invoice sync.",
			Metadata: map[string]any{
				"ledger_row":    r.Row,
				"ledger_id":     r.ID,
				"amount":        r.Amount.StringFixed(2),
				"ledger_status": r.Status,
			},
		})
	})
	return out
}
