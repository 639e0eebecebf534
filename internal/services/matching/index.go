// Package matching builds lookup structures over normalized records so every
// detector can query a dataset without rescanning it.
package matching

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"revenue-reconciliation-backend/internal/services/ingest"
)

// Key is the primary composite match key.
type Key struct {
	CustomerID string
	Amount     string
}

// NewKey builds a key with the amount fixed to two decimals so 500 and 500.00
// collide.
func NewKey(customerID string, amount decimal.Decimal) Key {
	return Key{CustomerID: customerID, Amount: amount.StringFixed(2)}
}

// DayKey groups records charged to the same customer for the same amount on
// the same UTC day.
type DayKey struct {
	Key
	Day string
}

// Index is an immutable view over one side's records.
type Index struct {
	records    []ingest.Record
	byKey      map[Key][]*ingest.Record
	byDay      map[DayKey][]*ingest.Record
	byCustomer map[string][]*ingest.Record
	byID       map[string]*ingest.Record
	customers  []string
	latest     time.Time
}

// Build indexes records by key, day bucket, customer and ID. Records keep
// their input order inside every bucket.
func Build(records []ingest.Record) *Index {
	idx := &Index{
		records:    records,
		byKey:      make(map[Key][]*ingest.Record),
		byDay:      make(map[DayKey][]*ingest.Record),
		byCustomer: make(map[string][]*ingest.Record),
		byID:       make(map[string]*ingest.Record),
	}

	for i := range records {
		rec := &records[i]
		if rec.ID != "" {
			if _, exists := idx.byID[rec.ID]; !exists {
				idx.byID[rec.ID] = rec
			}
		}
		if rec.HasTimestamp && rec.Timestamp.After(idx.latest) {
			idx.latest = rec.Timestamp
		}
		if rec.CustomerID == "" {
			continue
		}
		if _, seen := idx.byCustomer[rec.CustomerID]; !seen {
			idx.customers = append(idx.customers, rec.CustomerID)
		}
		idx.byCustomer[rec.CustomerID] = append(idx.byCustomer[rec.CustomerID], rec)

		if !rec.HasAmount {
			continue
		}
		key := NewKey(rec.CustomerID, rec.Amount)
		idx.byKey[key] = append(idx.byKey[key], rec)
		if day := rec.Day(); day != "" {
			dk := DayKey{Key: key, Day: day}
			idx.byDay[dk] = append(idx.byDay[dk], rec)
		}
	}
	return idx
}

// Records returns every indexed record in input order.
func (idx *Index) Records() []ingest.Record {
	return idx.records
}

// Lookup returns the records sharing customer and amount.
func (idx *Index) Lookup(customerID string, amount decimal.Decimal) []*ingest.Record {
	return idx.byKey[NewKey(customerID, amount)]
}

// Has reports whether any record shares customer and amount.
func (idx *Index) Has(customerID string, amount decimal.Decimal) bool {
	return len(idx.Lookup(customerID, amount)) > 0
}

// SameDay returns the records sharing customer, amount and UTC day with rec.
func (idx *Index) SameDay(rec *ingest.Record) []*ingest.Record {
	if !rec.HasTimestamp || rec.CustomerID == "" {
		return nil
	}
	return idx.byDay[DayKey{Key: NewKey(rec.CustomerID, rec.Amount), Day: rec.Day()}]
}

// DayGroups calls fn for every day bucket holding more than one record, in a
// stable order.
func (idx *Index) DayGroups(fn func(key DayKey, group []*ingest.Record)) {
	keys := make([]DayKey, 0)
	for k, g := range idx.byDay {
		if len(g) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return idx.byDay[keys[i]][0].Row < idx.byDay[keys[j]][0].Row
	})
	for _, k := range keys {
		fn(k, idx.byDay[k])
	}
}

// ForCustomer returns a customer's records in input order.
func (idx *Index) ForCustomer(customerID string) []*ingest.Record {
	return idx.byCustomer[customerID]
}

// HasCustomer reports whether the customer appears at all.
func (idx *Index) HasCustomer(customerID string) bool {
	return len(idx.byCustomer[customerID]) > 0
}

// ByID returns the first record carrying id.
func (idx *Index) ByID(id string) (*ingest.Record, bool) {
	if id == "" {
		return nil, false
	}
	rec, ok := idx.byID[id]
	return rec, ok
}

// Customers returns customer IDs in first-seen order.
func (idx *Index) Customers() []string {
	return idx.customers
}

// Latest returns the newest timestamp in the dataset (zero if none).
func (idx *Index) Latest() time.Time {
	return idx.latest
}

// Pair finds the counterpart of rec in this index: a record with the same ID
// first, otherwise the same customer and amount with the nearest timestamp
// within window. A zero window disables the time check.
func (idx *Index) Pair(rec *ingest.Record, window time.Duration) (*ingest.Record, bool) {
	if match, ok := idx.ByID(rec.ID); ok {
		return match, true
	}
	if rec.CustomerID == "" || !rec.HasAmount {
		return nil, false
	}

	var (
		best     *ingest.Record
		bestDiff time.Duration
	)
	for _, candidate := range idx.Lookup(rec.CustomerID, rec.Amount) {
		if !rec.HasTimestamp || !candidate.HasTimestamp {
			if best == nil {
				best = candidate
				bestDiff = -1
			}
			continue
		}
		diff := absDuration(candidate.Timestamp.Sub(rec.Timestamp))
		if window > 0 && diff > window {
			continue
		}
		if best == nil || bestDiff < 0 || diff < bestDiff {
			best, bestDiff = candidate, diff
		}
	}
	return best, best != nil
}

// PairedByID reports whether a and b were paired through a shared ID.
func PairedByID(a, b *ingest.Record) bool {
	return a.ID != "" && a.ID == b.ID
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
