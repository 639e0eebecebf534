package detection

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"revenue-reconciliation-backend/internal/models"
)

// detectZombieSubscriptions flags customers cancelled in the ledger who keep
// getting charged by the processor after the cancellation.
func detectZombieSubscriptions(in *Input) []Candidate {
	var out []Candidate
	skew := time.Duration(in.Config.TimingMismatchDays) * 24 * time.Hour

	for _, c := range in.ownedCustomers() {
		latest := latestRecord(in.LedgerIndex.ForCustomer(c))
		if latest == nil || !latest.HasTimestamp || !isCancelled(latest.Status) {
			continue
		}
		cutoff := latest.Timestamp.Add(skew)

		var (
			count int
			total decimal.Decimal
			last  time.Time
			base  decimal.Decimal
		)
		for _, p := range in.ProcessorIndex.ForCustomer(c) {
			if !p.HasTimestamp || !p.HasAmount || !p.Amount.IsPositive() || !processorSucceeded(p.Status) {
				continue
			}
			if !p.Timestamp.After(cutoff) {
				continue
			}
			count++
			total = total.Add(p.Amount)
			if !p.Timestamp.Before(last) {
				last, base = p.Timestamp, p.Amount
			}
		}
		if count == 0 {
			continue
		}

		certainty := Heuristic
		if count >= 2 {
			certainty = Exact
		}
		out = append(out, Candidate{
			Category:   models.CategoryZombieSubscription,
			CustomerID: c,
			Base:       base,
			Certainty:  certainty,
			Complete:   latest.Complete(),
			Recurring:  true,
			Anchor:     "customer:" + c,
			Description: fmt.Sprintf("Customer %s cancelled on %s but was charged %d times afterwards",
				c, latest.Timestamp.UTC().Format(time.DateOnly), count),
			RootCause:      "The processor subscription was not cancelled together with the account.",
			Recommendation: "Cancel the processor subscription and refund the post-cancellation charges.",
			Metadata: map[string]any{
				"cancelled_at":       latest.Timestamp.UTC().Format(time.RFC3339),
				"charges_after":      count,
				"total_after":        total.StringFixed(2),
				"last_charge_at":     last.UTC().Format(time.RFC3339),
				"last_charge_amount": base.StringFixed(2),
			},
		})
	}
	return out
}
