// Package reconciliation runs audits: it plans chunk tasks over two datasets,
// executes them through the detection pipeline and finalizes the results.
package reconciliation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	apperrors "revenue-reconciliation-backend/internal/errors"
	"revenue-reconciliation-backend/internal/logging"
	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/detection"
	"revenue-reconciliation-backend/internal/services/ingest"
	"revenue-reconciliation-backend/internal/services/settings"
)

const (
	DefaultChunkSize    = 5000
	DefaultStaleAfter   = 2 * time.Minute
	DefaultAuditTimeout = 15 * time.Minute

	defaultPageSize = 50
	maxPageSize     = 500
)

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	ChunkSize    int
	StaleAfter   time.Duration
	AuditTimeout time.Duration
	Now          func() time.Time
}

type ReconciliationService struct {
	audits   AuditStore
	queue    ChunkQueue
	findings FindingStore
	orgs     SettingsStore
	source   DatasetSource
	trigger  Trigger

	chunkSize    int
	staleAfter   time.Duration
	auditTimeout time.Duration
	now          func() time.Time

	// auditID -> *auditData
	datasets sync.Map
}

// auditData is the prepared pipeline input shared by every chunk of an audit.
type auditData struct {
	input         *detection.Input
	ledgerRows    int
	processorRows int
}

func NewReconciliationService(
	audits AuditStore,
	queue ChunkQueue,
	findings FindingStore,
	orgs SettingsStore,
	source DatasetSource,
	opts Options,
) *ReconciliationService {
	s := &ReconciliationService{
		audits:       audits,
		queue:        queue,
		findings:     findings,
		orgs:         orgs,
		source:       source,
		trigger:      noopTrigger{},
		chunkSize:    opts.ChunkSize,
		staleAfter:   opts.StaleAfter,
		auditTimeout: opts.AuditTimeout,
		now:          opts.Now,
	}
	if s.chunkSize <= 0 {
		s.chunkSize = DefaultChunkSize
	}
	if s.staleAfter <= 0 {
		s.staleAfter = DefaultStaleAfter
	}
	if s.auditTimeout < 0 {
		s.auditTimeout = 0
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SetTrigger installs the trigger used to chain chunk executions.
func (s *ReconciliationService) SetTrigger(t Trigger) {
	if t == nil {
		t = noopTrigger{}
	}
	s.trigger = t
}

type noopTrigger struct{}

func (noopTrigger) Enqueue(uuid.UUID) {}

// CreateAuditRequest starts an audit over two input files.
type CreateAuditRequest struct {
	OrganizationID uuid.UUID      `json:"organization_id"`
	LedgerPath     string         `json:"ledger_path"`
	ProcessorPath  string         `json:"processor_path"`
	Preset         string         `json:"preset"`
	Overrides      map[string]any `json:"overrides"`
}

// CreateAudit resolves the configuration, loads both inputs and plans the
// chunk tasks. Input errors leave the audit in error without tasks.
func (s *ReconciliationService) CreateAudit(ctx context.Context, req CreateAuditRequest) (*models.Audit, error) {
	if strings.TrimSpace(req.LedgerPath) == "" {
		return nil, apperrors.NewValidationError("ledger_path", req.LedgerPath, "is required")
	}
	if strings.TrimSpace(req.ProcessorPath) == "" {
		return nil, apperrors.NewValidationError("processor_path", req.ProcessorPath, "is required")
	}

	cfg, err := s.ResolveConfig(ctx, req.OrganizationID, req.Preset, req.Overrides)
	if err != nil {
		return nil, err
	}
	snapshot, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("snapshot config: %w", err)
	}

	now := s.now()
	audit := &models.Audit{
		ID:             uuid.New(),
		OrganizationID: req.OrganizationID,
		LedgerPath:     req.LedgerPath,
		ProcessorPath:  req.ProcessorPath,
		Status:         models.AuditProcessing,
		Config:         datatypes.JSON(snapshot),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	log := logging.FromContext(ctx).With().Str("audit_id", audit.ID.String()).Logger()

	data, err := s.prepare(ctx, req.LedgerPath, req.ProcessorPath, cfg)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrInvalidInput) {
			return nil, err
		}
		audit.Status = models.AuditError
		audit.ErrorMessage = err.Error()
		if cerr := s.audits.CreateAudit(ctx, audit); cerr != nil {
			return nil, fmt.Errorf("create audit: %w", cerr)
		}
		log.Warn().Err(err).Msg("audit inputs rejected")
		return audit, nil
	}

	tasks := PlanTasks(audit.ID, data.ledgerRows, data.processorRows, s.chunkSize, now)
	audit.ChunksTotal = len(tasks)
	if err := s.audits.CreateAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("create audit: %w", err)
	}
	if err := s.queue.Enqueue(ctx, tasks); err != nil {
		return nil, fmt.Errorf("enqueue chunks: %w", err)
	}
	s.datasets.Store(audit.ID, data)

	log.Info().
		Int("ledger_rows", data.ledgerRows).
		Int("processor_rows", data.processorRows).
		Int("chunks", len(tasks)).
		Msg("audit created")

	s.trigger.Enqueue(audit.ID)
	return audit, nil
}

// PlanTasks splits both datasets into aligned row ranges. There is always at
// least one task.
func PlanTasks(auditID uuid.UUID, ledgerRows, processorRows, size int, now time.Time) []models.ChunkTask {
	if size <= 0 {
		size = DefaultChunkSize
	}
	total := max(ceilDiv(ledgerRows, size), ceilDiv(processorRows, size), 1)

	tasks := make([]models.ChunkTask, total)
	for i := range tasks {
		tasks[i] = models.ChunkTask{
			ID:             uuid.New(),
			AuditID:        auditID,
			ChunkIndex:     i,
			TotalChunks:    total,
			LedgerStart:    min(i*size, ledgerRows),
			LedgerEnd:      min((i+1)*size, ledgerRows),
			ProcessorStart: min(i*size, processorRows),
			ProcessorEnd:   min((i+1)*size, processorRows),
			Status:         models.ChunkPending,
			// Distinct timestamps keep creation order stable in every store.
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
		}
	}
	return tasks
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// prepare loads, maps and normalizes both inputs and builds their indexes.
func (s *ReconciliationService) prepare(ctx context.Context, ledgerPath, processorPath string, cfg settings.Config) (*auditData, error) {
	ledgerDS, err := s.source.Load(ctx, ledgerPath)
	if err != nil {
		return nil, err
	}
	processorDS, err := s.source.Load(ctx, processorPath)
	if err != nil {
		return nil, err
	}

	ledgerMap := ingest.MapColumns(ledgerDS.Headers, ingest.LedgerHints)
	processorMap := ingest.MapColumns(processorDS.Headers, ingest.ProcessorHints)
	log := logging.FromContext(ctx)
	if missing := ledgerMap.Missing(ingest.FieldCustomerID, ingest.FieldAmount); len(missing) > 0 {
		log.Warn().Str("path", ledgerPath).Interface("missing", missing).Msg("ledger columns not mapped")
	}
	if missing := processorMap.Missing(ingest.FieldCustomerID, ingest.FieldAmount); len(missing) > 0 {
		log.Warn().Str("path", processorPath).Interface("missing", missing).Msg("processor columns not mapped")
	}

	input := detection.NewInput(
		ingest.Normalize(ledgerDS, ledgerMap),
		ingest.Normalize(processorDS, processorMap),
		cfg,
		models.RowRange{},
		models.RowRange{},
	)
	return &auditData{
		input:         input,
		ledgerRows:    ledgerDS.Len(),
		processorRows: processorDS.Len(),
	}, nil
}

// dataset returns the cached pipeline input for an audit, rebuilding it from
// the audit's paths and config snapshot after a restart.
func (s *ReconciliationService) dataset(ctx context.Context, audit *models.Audit) (*auditData, error) {
	if v, ok := s.datasets.Load(audit.ID); ok {
		return v.(*auditData), nil
	}

	cfg, err := AuditConfig(audit)
	if err != nil {
		return nil, err
	}
	data, err := s.prepare(ctx, audit.LedgerPath, audit.ProcessorPath, cfg)
	if err != nil {
		return nil, err
	}
	v, _ := s.datasets.LoadOrStore(audit.ID, data)
	return v.(*auditData), nil
}

func (s *ReconciliationService) evict(auditID uuid.UUID) {
	s.datasets.Delete(auditID)
}

// AuditConfig decodes the configuration snapshot stored on an audit.
func AuditConfig(audit *models.Audit) (settings.Config, error) {
	cfg := settings.Defaults()
	if len(audit.Config) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(audit.Config, &cfg); err != nil {
		return cfg, fmt.Errorf("decode audit config: %w", err)
	}
	return cfg, nil
}

// ResolveConfig merges engine defaults, the preset and overrides. An empty
// preset falls back to the organization's stored preset; request overrides
// win over stored ones.
func (s *ReconciliationService) ResolveConfig(ctx context.Context, orgID uuid.UUID, preset string, overrides map[string]any) (settings.Config, error) {
	merged := make(map[string]any)
	if orgID != uuid.Nil && s.orgs != nil {
		stored, err := s.orgs.GetOrganizationSettings(ctx, orgID)
		switch {
		case err == nil:
			if preset == "" {
				preset = stored.Preset
			}
			for k, v := range stored.Overrides {
				merged[k] = v
			}
		case !apperrors.Is(err, apperrors.ErrNotFound):
			return settings.Config{}, fmt.Errorf("load organization settings: %w", err)
		}
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return settings.Resolve(preset, merged)
}

func (s *ReconciliationService) GetAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	return s.audits.GetAudit(ctx, id)
}

// ListAnomalies pages through an audit's findings.
func (s *ReconciliationService) ListAnomalies(ctx context.Context, auditID uuid.UUID, filter models.AnomalyFilter) ([]models.Anomaly, string, bool, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, "", false, apperrors.NewValidationError("category", filter.Category, "unknown category")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, "", false, apperrors.NewValidationError("status", filter.Status, "unknown status")
	}
	if filter.Cursor != "" {
		if _, err := uuid.Parse(filter.Cursor); err != nil {
			return nil, "", false, apperrors.NewValidationError("cursor", filter.Cursor, "invalid cursor")
		}
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultPageSize
	case filter.Limit > maxPageSize:
		filter.Limit = maxPageSize
	}

	if _, err := s.audits.GetAudit(ctx, auditID); err != nil {
		return nil, "", false, err
	}
	return s.findings.ListFindings(ctx, auditID, filter)
}

// UpdateAnomalyStatus records a reviewer decision on a finding.
func (s *ReconciliationService) UpdateAnomalyStatus(ctx context.Context, id uuid.UUID, status models.AnomalyStatus, performedBy, reason string) (*models.Anomaly, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", status, "unknown status")
	}
	anomaly, err := s.findings.UpdateFindingStatus(ctx, id, status, performedBy, reason, s.now())
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().
		Str("anomaly_id", id.String()).
		Str("status", string(status)).
		Str("performed_by", performedBy).
		Msg("anomaly status updated")
	return anomaly, nil
}

// PublishAudit moves a reviewed audit to published.
func (s *ReconciliationService) PublishAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	ok, err := s.audits.Publish(ctx, id, s.now())
	if err != nil {
		return nil, err
	}
	audit, err := s.audits.GetAudit(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewConflictError("audit", string(audit.Status), "only audits in review can be published")
	}
	return audit, nil
}

// DeleteAudit removes an audit with its tasks and findings.
func (s *ReconciliationService) DeleteAudit(ctx context.Context, id uuid.UUID) error {
	if _, err := s.audits.GetAudit(ctx, id); err != nil {
		return err
	}
	if err := s.queue.DeleteTasks(ctx, id); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := s.findings.DeleteFindings(ctx, id); err != nil {
		return fmt.Errorf("delete anomalies: %w", err)
	}
	if err := s.audits.DeleteAudit(ctx, id); err != nil {
		return fmt.Errorf("delete audit: %w", err)
	}
	s.evict(id)
	return nil
}

// OrganizationSettings returns an organization's stored settings and the
// configuration they resolve to.
func (s *ReconciliationService) OrganizationSettings(ctx context.Context, orgID uuid.UUID) (*models.OrganizationSettings, settings.Config, error) {
	stored, err := s.orgs.GetOrganizationSettings(ctx, orgID)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, settings.Config{}, err
		}
		stored = &models.OrganizationSettings{OrganizationID: orgID, Preset: settings.PresetScale}
	}
	cfg, err := settings.Resolve(stored.Preset, stored.Overrides)
	if err != nil {
		return nil, settings.Config{}, err
	}
	return stored, cfg, nil
}

// SaveOrganizationSettings validates and stores an organization's preset and
// overrides.
func (s *ReconciliationService) SaveOrganizationSettings(ctx context.Context, orgID uuid.UUID, preset string, overrides map[string]any) (*models.OrganizationSettings, settings.Config, error) {
	cfg, err := settings.Resolve(preset, overrides)
	if err != nil {
		return nil, settings.Config{}, err
	}
	stored := &models.OrganizationSettings{
		OrganizationID: orgID,
		Preset:         preset,
		Overrides:      datatypes.JSONMap(overrides),
		UpdatedAt:      s.now(),
	}
	if err := s.orgs.SaveOrganizationSettings(ctx, stored); err != nil {
		return nil, settings.Config{}, fmt.Errorf("save organization settings: %w", err)
	}
	return stored, cfg, nil
}
