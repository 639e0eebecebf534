package detection

import (
	"strings"

	"revenue-reconciliation-backend/internal/services/ingest"
)

var (
	failedStatuses    = []string{"failed", "incomplete", "canceled", "cancelled", "declined"}
	cancelledStatuses = []string{"canceled", "cancelled", "churned", "inactive", "ended", "terminated", "expired"}
	unbilledStatuses  = []string{"unbilled", "uninvoiced", "not_billed", "pending_invoice", "usage"}
	voidStatuses      = []string{"void", "draft", "refund", "failed", "uncollectible", "written_off"}
	pendingStatuses   = []string{"pending", "requires_", "processing"}
	paidStatuses      = []string{"paid", "succeeded", "success", "complete", "captured", "settled", "active"}
)

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func isFailed(status string) bool {
	return containsAny(status, failedStatuses)
}

func isCancelled(status string) bool {
	return containsAny(status, cancelledStatuses)
}

func isUnbilled(status string) bool {
	return containsAny(status, unbilledStatuses)
}

func isRefunded(status string) bool {
	return strings.Contains(status, "refund")
}

// ledgerBillable reports whether a ledger row represents money that should
// reach the processor. Unknown statuses count as billable.
func ledgerBillable(status string) bool {
	return !containsAny(status, voidStatuses) && !isCancelled(status) && !isUnbilled(status)
}

// ledgerPaid reports whether the ledger believes the charge was collected.
func ledgerPaid(status string) bool {
	return !isFailed(status) && !isRefunded(status) && containsAny(status, paidStatuses)
}

// processorSucceeded reports whether the processor collected the money. A
// missing status column reads as success.
func processorSucceeded(status string) bool {
	if status == "" {
		return true
	}
	if isFailed(status) || isRefunded(status) || containsAny(status, pendingStatuses) || disputedStatus(status) {
		return false
	}
	return true
}

func disputedStatus(status string) bool {
	return strings.Contains(status, "disput") || strings.Contains(status, "chargeback")
}

func recordDisputed(r *ingest.Record) bool {
	return (r.HasDisputed && r.Disputed) || disputedStatus(r.Status)
}

// latestRecord returns the record with the newest timestamp, or the last one
// when none carry timestamps.
func latestRecord(records []*ingest.Record) *ingest.Record {
	var latest *ingest.Record
	for _, r := range records {
		switch {
		case latest == nil:
			latest = r
		case r.HasTimestamp && (!latest.HasTimestamp || !r.Timestamp.Before(latest.Timestamp)):
			latest = r
		case !r.HasTimestamp && !latest.HasTimestamp:
			latest = r
		}
	}
	return latest
}
