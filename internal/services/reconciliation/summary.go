package reconciliation

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"revenue-reconciliation-backend/internal/models"
)

var (
	titleCaser = cases.Title(language.English)
	printer    = message.NewPrinter(language.English)
)

// CategoryLabel renders a category for people, e.g. "Missing In Processor".
func CategoryLabel(c models.Category) string {
	return titleCaser.String(strings.ReplaceAll(string(c), "_", " "))
}

// Summarize writes the one-paragraph audit summary.
func Summarize(totals models.FindingTotals, truncated int, currency string) string {
	if totals.Count == 0 {
		return "No revenue anomalies found."
	}

	symbol := "$"
	if currency != "" {
		symbol = strings.ToUpper(currency) + " "
	}

	var b strings.Builder
	noun := "anomalies"
	if totals.Count == 1 {
		noun = "anomaly"
	}
	b.WriteString(printer.Sprintf("Found %d %s with %s%.2f in annual revenue at risk.",
		totals.Count, noun, symbol, totals.AnnualAtRisk.InexactFloat64()))

	type entry struct {
		category models.Category
		count    int64
	}
	entries := make([]entry, 0, len(totals.ByCategory))
	for c, n := range totals.ByCategory {
		if n > 0 {
			entries = append(entries, entry{c, n})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].category < entries[j].category
	})
	if len(entries) > 3 {
		entries = entries[:3]
	}
	if len(entries) > 0 {
		parts := make([]string, len(entries))
		for i, e := range entries {
			parts[i] = printer.Sprintf("%s (%d)", CategoryLabel(e.category), e.count)
		}
		b.WriteString(" Top categories: ")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(".")
	}
	if truncated > 0 {
		b.WriteString(printer.Sprintf(" %d further findings were not recorded because a detector hit its limit.", truncated))
	}
	return b.String()
}
