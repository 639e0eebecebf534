package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "revenue-reconciliation-backend/internal/errors"
)

// FileSource loads datasets from local file paths. CSV/TSV and .xlsx are supported.
type FileSource struct{}

// NewFileSource creates a new file-backed dataset source.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Load reads the whole dataset at path. Missing files and unreadable
// structure are returned as InputError.
func (s *FileSource) Load(ctx context.Context, path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return nil, apperrors.NewInputError(path, "file path is required", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		table [][]string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = readWorkbook(path)
	default:
		table, err = readDelimited(path)
	}
	if err != nil {
		return nil, err
	}
	return FromTable(path, table)
}

// FromTable builds a dataset from a header row followed by data rows.
func FromTable(path string, table [][]string) (*Dataset, error) {
	if len(table) == 0 || len(table[0]) == 0 {
		return nil, apperrors.NewInputError(path, "missing header row", nil)
	}

	headers := make([]string, len(table[0]))
	for i, h := range table[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	ds := &Dataset{Path: path, Headers: headers, Rows: make([]RawRow, 0, len(table)-1)}
	for _, record := range table[1:] {
		row := make(RawRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func readDelimited(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewInputError(path, "cannot open file", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	sample, _ := br.Peek(1024)

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.Comma = sniffDelimiter(sample)

	var table [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewInputError(path, "unparseable CSV structure", err)
		}
		table = append(table, record)
	}
	return table, nil
}

// sniffDelimiter picks the delimiter that appears most in the first line.
func sniffDelimiter(sample []byte) rune {
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}
	best, bestCount := ',', bytes.Count(sample, []byte{','})
	for _, candidate := range []rune{'\t', ';', '|'} {
		if n := bytes.Count(sample, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewInputError(path, "cannot open workbook", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewInputError(path, "cannot read sheet "+sheet, err)
	}
	return rows, nil
}
