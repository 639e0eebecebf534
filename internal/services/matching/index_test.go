package matching

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revenue-reconciliation-backend/internal/services/ingest"
)

func rec(row int, id, customer, amount, day string) ingest.Record {
	r := ingest.Record{Row: row, ID: id, CustomerID: customer, Status: "succeeded"}
	if amount != "" {
		r.Amount = decimal.RequireFromString(amount)
		r.HasAmount = true
	}
	if day != "" {
		r.Timestamp, r.HasTimestamp = ingest.ParseTimestamp(day)
	}
	return r
}

func TestIndex_Lookup(t *testing.T) {
	idx := Build([]ingest.Record{
		rec(0, "ch_1", "c1", "299", "2025-01-01"),
		rec(1, "ch_2", "c1", "299.00", "2025-01-01"),
		rec(2, "ch_3", "c2", "50", "2025-01-02"),
		rec(3, "ch_4", "", "10", "2025-01-03"),
	})

	assert.Len(t, idx.Lookup("c1", decimal.NewFromInt(299)), 2)
	assert.True(t, idx.Has("c2", decimal.RequireFromString("50.00")))
	assert.False(t, idx.Has("c2", decimal.NewFromInt(51)))
	assert.Equal(t, []string{"c1", "c2"}, idx.Customers())
	assert.True(t, idx.HasCustomer("c1"))
	assert.False(t, idx.HasCustomer(""))

	got, ok := idx.ByID("ch_4")
	require.True(t, ok)
	assert.Equal(t, 3, got.Row)

	assert.Equal(t, "2025-01-03", idx.Latest().Format(time.DateOnly))
}

func TestIndex_DayGroups(t *testing.T) {
	idx := Build([]ingest.Record{
		rec(0, "a", "c1", "299", "2025-01-01"),
		rec(1, "b", "c2", "10", "2025-01-01"),
		rec(2, "c", "c1", "299", "2025-01-01"),
		rec(3, "d", "c1", "299", "2025-01-02"),
	})

	var groups [][]int
	idx.DayGroups(func(_ DayKey, group []*ingest.Record) {
		var rows []int
		for _, r := range group {
			rows = append(rows, r.Row)
		}
		groups = append(groups, rows)
	})
	assert.Equal(t, [][]int{{0, 2}}, groups)

	query := rec(9, "", "c1", "299", "2025-01-01")
	assert.Len(t, idx.SameDay(&query), 2)
}

func TestIndex_Pair(t *testing.T) {
	idx := Build([]ingest.Record{
		rec(0, "ch_1", "c1", "100", "2025-01-01"),
		rec(1, "ch_2", "c1", "100", "2025-01-10"),
		rec(2, "inv_9", "c3", "75", "2025-02-01"),
	})

	tests := []struct {
		name    string
		query   ingest.Record
		window  time.Duration
		wantRow int
		wantOK  bool
	}{
		{"by id wins", rec(5, "inv_9", "other", "1", ""), 0, 2, true},
		{"nearest timestamp", rec(5, "", "c1", "100", "2025-01-09"), 0, 1, true},
		{"outside window", rec(5, "", "c1", "100", "2025-01-05"), 24 * time.Hour, 0, false},
		{"no timestamp takes first", rec(5, "", "c1", "100", ""), 0, 0, true},
		{"unknown key", rec(5, "", "c2", "100", "2025-01-01"), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Pair(&tt.query, tt.window)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRow, got.Row)
			}
		})
	}
}
