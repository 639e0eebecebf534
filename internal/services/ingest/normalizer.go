package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one data row keyed by header, as read from a dataset. Values are
// never coerced.
type RawRow map[string]string

// Dataset is a tabular input with its header order preserved.
type Dataset struct {
	Path    string
	Headers []string
	Rows    []RawRow
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Record is a row projected onto the canonical schema. Row is the index of the
// source data row, which chunk ranges refer to.
type Record struct {
	Row          int
	ID           string
	CustomerID   string
	Amount       decimal.Decimal
	HasAmount    bool
	Status       string
	Timestamp    time.Time
	HasTimestamp bool
	Fee          decimal.Decimal
	HasFee       bool
	Disputed     bool
	HasDisputed  bool
	Description  string
	Currency     string
}

// Complete reports whether every field the detectors rely on is present.
func (r *Record) Complete() bool {
	return r.CustomerID != "" && r.HasAmount && r.Status != "" && r.HasTimestamp
}

// HasKey reports whether the record carries the (customer, amount) match key.
func (r *Record) HasKey() bool {
	return r.CustomerID != "" && r.HasAmount
}

// Day returns the UTC calendar day of the record, or "" without a timestamp.
func (r *Record) Day() string {
	if !r.HasTimestamp {
		return ""
	}
	return r.Timestamp.UTC().Format(time.DateOnly)
}

// Normalize projects every row of ds through m. Rows with no mapped field
// populated are dropped; malformed cells fall back to safe defaults.
func Normalize(ds *Dataset, m ColumnMapping) []Record {
	records := make([]Record, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		if blankRow(row, m) {
			continue
		}

		rec := Record{
			Row:         i,
			ID:          cell(row, m, FieldID),
			CustomerID:  cell(row, m, FieldCustomerID),
			Status:      strings.ToLower(cell(row, m, FieldStatus)),
			Description: cell(row, m, FieldDescription),
			Currency:    strings.ToUpper(cell(row, m, FieldCurrency)),
		}
		if raw := cell(row, m, FieldAmount); raw != "" {
			rec.Amount = ParseAmount(raw)
			rec.HasAmount = true
		}
		if raw := cell(row, m, FieldFeeAmount); raw != "" {
			rec.Fee = ParseAmount(raw)
			rec.HasFee = true
		}
		if raw := cell(row, m, FieldDisputed); raw != "" {
			rec.Disputed = ParseBool(raw)
			rec.HasDisputed = true
		}
		if ts, ok := ParseTimestamp(cell(row, m, FieldCreatedAt)); ok {
			rec.Timestamp = ts
			rec.HasTimestamp = true
		}
		records = append(records, rec)
	}
	return records
}

func cell(row RawRow, m ColumnMapping, f Field) string {
	h, ok := m.Header(f)
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[h])
}

func blankRow(row RawRow, m ColumnMapping) bool {
	for _, h := range m.headers {
		if strings.TrimSpace(row[h]) != "" {
			return false
		}
	}
	return true
}

// ParseAmount keeps digits, '.' and '-' and parses the rest as a decimal.
// Anything unparseable yields zero.
func ParseAmount(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseBool accepts "true" in any case and "1".
func ParseBool(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"01/02/2006 15:04",
	"01/02/2006",
	"02-01-2006",
}

// ParseTimestamp parses the date formats seen in billing and processor exports,
// including unix seconds. Results are in UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), true
	}
	return time.Time{}, false
}
