package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		table   HintTable
		want    map[Field]string
	}{
		{
			name:    "exact matches ignore case",
			headers: []string{"ID", "Customer_ID", "Amount", "Status", "Created_At"},
			table:   LedgerHints,
			want: map[Field]string{
				FieldID:         "ID",
				FieldCustomerID: "Customer_ID",
				FieldAmount:     "Amount",
				FieldStatus:     "Status",
				FieldCreatedAt:  "Created_At",
			},
		},
		{
			name:    "exact match beats earlier substring",
			headers: []string{"customer_name", "customer", "total"},
			table:   LedgerHints,
			want: map[Field]string{
				FieldCustomerID: "customer",
				FieldAmount:     "total",
			},
		},
		{
			name:    "substring fallback follows hint priority",
			headers: []string{"Billing Account ID", "Gross Amount (USD)", "Charge Date"},
			table:   ProcessorHints,
			want: map[Field]string{
				FieldCustomerID: "Billing Account ID",
				FieldAmount:     "Gross Amount (USD)",
				FieldCreatedAt:  "Charge Date",
			},
		},
		{
			name:    "fee column is not taken as amount",
			headers: []string{"charge_id", "customer", "fee_amount", "amount", "paid_at", "disputed"},
			table:   ProcessorHints,
			want: map[Field]string{
				FieldID:         "charge_id",
				FieldCustomerID: "customer",
				FieldFeeAmount:  "fee_amount",
				FieldAmount:     "amount",
				FieldCreatedAt:  "paid_at",
				FieldDisputed:   "disputed",
			},
		},
		{
			name:    "nothing matches",
			headers: []string{"foo", "bar"},
			table:   LedgerHints,
			want:    map[Field]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapColumns(tt.headers, tt.table)
			assert.Equal(t, tt.want, got.Fields())
		})
	}
}

func TestMapColumns_Deterministic(t *testing.T) {
	headers := []string{"cust", "amount_due", "fee", "state", "date", "txn_id", "memo", "dispute"}
	first := MapColumns(headers, LedgerHints)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Fields(), MapColumns(headers, LedgerHints).Fields())
	}
}

func TestColumnMapping_Missing(t *testing.T) {
	m := MapColumns([]string{"customer_id", "amount"}, LedgerHints)
	assert.True(t, m.Has(FieldAmount))
	assert.Equal(t, []Field{FieldStatus, FieldCreatedAt}, m.Missing(FieldCustomerID, FieldStatus, FieldCreatedAt))
}
