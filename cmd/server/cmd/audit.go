package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/repository/memstore"
	"revenue-reconciliation-backend/internal/services/ingest"
	service "revenue-reconciliation-backend/internal/services/reconciliation"
)

var auditFlags struct {
	ledger    string
	processor string
	preset    string
	overrides string
	chunkSize int
	output    string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a one-shot audit over two local files",
	Long: `Run an audit in process without a database and print the findings.

Overrides are read from a YAML file of reconciliation parameters, e.g.

  payoutGraceDays: 5
  feeDiscrepancyThresholdCents: 40`,
	Example: `  reconcile audit --ledger invoices.csv --processor charges.xlsx --preset startup`,
	RunE:    runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.StringVar(&auditFlags.ledger, "ledger", "", "ledger export (csv, tsv or xlsx)")
	f.StringVar(&auditFlags.processor, "processor", "", "processor export (csv, tsv or xlsx)")
	f.StringVar(&auditFlags.preset, "preset", "", "configuration preset (startup, scale, enterprise)")
	f.StringVar(&auditFlags.overrides, "overrides", "", "YAML file with configuration overrides")
	f.IntVar(&auditFlags.chunkSize, "chunk-size", 0, "rows per chunk (default from CHUNK_SIZE)")
	f.StringVarP(&auditFlags.output, "output", "o", "table", "output format (table, json)")
	_ = auditCmd.MarkFlagRequired("ledger")
	_ = auditCmd.MarkFlagRequired("processor")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	overrides, err := readOverrides(auditFlags.overrides)
	if err != nil {
		return err
	}

	chunkSize := auditFlags.chunkSize
	if chunkSize <= 0 {
		chunkSize = settings.ChunkSize
	}
	store := memstore.New()
	svc := service.NewReconciliationService(store, store, store, store, ingest.NewFileSource(), service.Options{
		ChunkSize: chunkSize,
		// The run is synchronous; a slow file must not time it out.
		AuditTimeout: 0,
	})

	audit, err := svc.CreateAudit(ctx, service.CreateAuditRequest{
		LedgerPath:    auditFlags.ledger,
		ProcessorPath: auditFlags.processor,
		Preset:        auditFlags.preset,
		Overrides:     overrides,
	})
	if err != nil {
		return err
	}
	if audit.Status == models.AuditError {
		return fmt.Errorf("audit failed: %s", audit.ErrorMessage)
	}

	audit, err = svc.RunToCompletion(ctx, audit.ID)
	if err != nil {
		return err
	}
	if audit.Status == models.AuditError {
		return fmt.Errorf("audit failed: %s", audit.ErrorMessage)
	}

	var findings []models.Anomaly
	filter := models.AnomalyFilter{Limit: 500}
	for {
		page, next, more, err := svc.ListAnomalies(ctx, audit.ID, filter)
		if err != nil {
			return err
		}
		findings = append(findings, page...)
		if !more {
			break
		}
		filter.Cursor = next
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(auditFlags.output) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"audit": audit, "anomalies": findings})
	case "table", "":
		if err := renderFindings(out, findings); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, audit.Summary)
		return err
	default:
		return fmt.Errorf("unknown output format %q", auditFlags.output)
	}
}

func readOverrides(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	var overrides map[string]any
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}
	return overrides, nil
}

func renderFindings(w io.Writer, findings []models.Anomaly) error {
	table := tablewriter.NewTable(w)
	table.Header("Category", "Customer", "Confidence", "Monthly", "Annual", "Description")
	for _, f := range findings {
		customer := "-"
		if f.CustomerID != nil {
			customer = *f.CustomerID
		}
		if err := table.Append(
			service.CategoryLabel(f.Category),
			customer,
			string(f.Confidence),
			f.MonthlyImpact.StringFixed(2),
			f.AnnualImpact.StringFixed(2),
			f.Description,
		); err != nil {
			return err
		}
	}
	return table.Render()
}
