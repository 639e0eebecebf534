package ingest

import "strings"

// ColumnMapping maps canonical fields to the source header chosen for them.
// It is computed once per dataset and never modified.
type ColumnMapping struct {
	headers map[Field]string
}

// MapColumns infers canonical field roles from arbitrary headers. For each
// field it first looks for an exact case-insensitive match over the hints in
// priority order, then for substring containment in the same order. A header
// already claimed by an earlier field is skipped.
func MapColumns(headers []string, table HintTable) ColumnMapping {
	m := ColumnMapping{headers: make(map[Field]string, len(table))}
	claimed := make(map[int]bool, len(headers))

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	for _, fh := range table {
		if idx := findHeader(normalized, claimed, fh.Hints, exactMatch); idx >= 0 {
			m.headers[fh.Field] = headers[idx]
			claimed[idx] = true
			continue
		}
		if idx := findHeader(normalized, claimed, fh.Hints, strings.Contains); idx >= 0 {
			m.headers[fh.Field] = headers[idx]
			claimed[idx] = true
		}
	}
	return m
}

func exactMatch(header, hint string) bool {
	return header == hint
}

func findHeader(headers []string, claimed map[int]bool, hints []string, match func(header, hint string) bool) int {
	for _, hint := range hints {
		for i, h := range headers {
			if !claimed[i] && h != "" && match(h, hint) {
				return i
			}
		}
	}
	return -1
}

// normalizeHeader lowercases and folds spaces and dashes to underscores so
// "Customer ID" and "customer-id" both read as customer_id.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// Header returns the source header mapped to f.
func (m ColumnMapping) Header(f Field) (string, bool) {
	h, ok := m.headers[f]
	return h, ok
}

// Has reports whether f was mapped.
func (m ColumnMapping) Has(f Field) bool {
	_, ok := m.headers[f]
	return ok
}

// Missing returns the fields in fs that have no header.
func (m ColumnMapping) Missing(fs ...Field) []Field {
	var out []Field
	for _, f := range fs {
		if !m.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Fields returns a copy of the mapping.
func (m ColumnMapping) Fields() map[Field]string {
	out := make(map[Field]string, len(m.headers))
	for k, v := range m.headers {
		out[k] = v
	}
	return out
}
