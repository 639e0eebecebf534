package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "revenue-reconciliation-backend/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_Load(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		rows    int
		headers []string
	}{
		{
			name:    "comma separated",
			file:    "ledger.csv",
			content: "customer_id,amount\nc1,500\nc2,300\n",
			rows:    2,
			headers: []string{"customer_id", "amount"},
		},
		{
			name:    "tab separated with BOM",
			file:    "export.tsv",
			content: "\ufeffcustomer\tamount\tstatus\nc1\t1,200.00\tsucceeded\n",
			rows:    1,
			headers: []string{"customer", "amount", "status"},
		},
		{
			name:    "semicolon separated short row",
			file:    "eu.csv",
			content: "customer;amount;status\nc1;12,50\n",
			rows:    1,
			headers: []string{"customer", "amount", "status"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewFileSource().Load(context.Background(), writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.headers, ds.Headers)
			assert.Equal(t, tt.rows, ds.Len())
		})
	}
}

func TestFileSource_Workbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"customer_id", "amount", "status"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"c1", "299", "succeeded"}))
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))

	ds, err := NewFileSource().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "299", ds.Rows[0]["amount"])
}

func TestFileSource_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"empty path", func(t *testing.T) string { return "" }},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") }},
		{"empty file", func(t *testing.T) string { return writeFile(t, "empty.csv", "") }},
		{"broken quoting", func(t *testing.T) string { return writeFile(t, "bad.csv", "a,b\n\"x\"y\"z,1\n") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileSource().Load(context.Background(), tt.path(t))
			require.Error(t, err)
			var inputErr *apperrors.InputError
			assert.True(t, apperrors.As(err, &inputErr))
		})
	}
}
