package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"500", "500"},
		{"$1,234.56", "1234.56"},
		{"-12.50 USD", "-12.5"},
		{"", "0"},
		{"n/a", "0"},
		{"1.2.3", "0"},
		{"-", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, ParseAmount(tt.in).Equal(decimal.RequireFromString(tt.want)), "got %s", ParseAmount(tt.in))
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, in := range []string{"true", "TRUE", "True", "1", " 1 "} {
		assert.True(t, ParseBool(in), in)
	}
	for _, in := range []string{"false", "0", "", "yes", "t"} {
		assert.False(t, ParseBool(in), in)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-03-04", "2025-03-04T00:00:00Z", "03/04/2025", "04-03-2025", "1741046400"} {
		got, ok := ParseTimestamp(in)
		require.True(t, ok, in)
		assert.True(t, want.Equal(got), "%s parsed to %s", in, got)
	}
	_, ok := ParseTimestamp("yesterday")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	ds, err := FromTable("ledger.csv", [][]string{
		{"invoice_id", "customer", "amount", "status", "date", "fee", "disputed", "internal_flag"},
		{"inv_1", "c1", "$500.00", "Paid", "2025-01-05", "1.50", "TRUE", ""},
		{"", "", "", "", "", "", "", "x"},
		{"inv_2", "c2", "abc", "paid", "garbage", "", "0", ""},
	})
	require.NoError(t, err)

	records := Normalize(ds, MapColumns(ds.Headers, LedgerHints))
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, "inv_1", first.ID)
	assert.Equal(t, "c1", first.CustomerID)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "paid", first.Status)
	assert.True(t, first.HasFee)
	assert.True(t, first.Fee.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, first.Disputed)
	assert.Equal(t, "2025-01-05", first.Day())
	assert.True(t, first.Complete())

	second := records[1]
	assert.Equal(t, 2, second.Row, "source row index survives dropped blank rows")
	assert.True(t, second.HasAmount)
	assert.True(t, second.Amount.IsZero(), "malformed amount coerces to zero")
	assert.False(t, second.HasTimestamp)
	assert.False(t, second.Complete())
	assert.False(t, second.Disputed)
}
