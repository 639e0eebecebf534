// Package memstore is an in-memory implementation of the audit, chunk queue,
// finding and settings stores. It backs single-process runs and tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "revenue-reconciliation-backend/internal/errors"
	"revenue-reconciliation-backend/internal/models"
)

type fingerprintKey struct {
	auditID     uuid.UUID
	fingerprint string
}

// Store keeps every record in memory behind one mutex. Chunk tasks live in an
// arena indexed by status.
type Store struct {
	mu sync.Mutex

	audits map[uuid.UUID]*models.Audit

	tasks    []*models.ChunkTask
	byStatus map[models.ChunkStatus]map[int]struct{}

	findings     map[uuid.UUID]*models.Anomaly
	fingerprints map[fingerprintKey]uuid.UUID
	reviewLogs   []models.AnomalyReviewLog

	orgs map[uuid.UUID]*models.OrganizationSettings
}

func New() *Store {
	return &Store{
		audits: make(map[uuid.UUID]*models.Audit),
		byStatus: map[models.ChunkStatus]map[int]struct{}{
			models.ChunkPending:    {},
			models.ChunkProcessing: {},
			models.ChunkCompleted:  {},
			models.ChunkError:      {},
		},
		findings:     make(map[uuid.UUID]*models.Anomaly),
		fingerprints: make(map[fingerprintKey]uuid.UUID),
		orgs:         make(map[uuid.UUID]*models.OrganizationSettings),
	}
}

// Audits

func (s *Store) CreateAudit(_ context.Context, audit *models.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.audits[audit.ID]; exists {
		return apperrors.NewConflictError("audit", string(audit.Status), "audit already exists")
	}
	cp := *audit
	s.audits[audit.ID] = &cp
	return nil
}

func (s *Store) GetAudit(_ context.Context, id uuid.UUID) (*models.Audit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.audits[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("audit", id.String())
	}
	cp := *a
	return &cp, nil
}

func (s *Store) UpdateProgress(_ context.Context, id uuid.UUID, completed int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.audits[id]
	if !ok {
		return apperrors.NewNotFoundError("audit", id.String())
	}
	a.ChunksCompleted = completed
	a.UpdatedAt = at
	return nil
}

func (s *Store) MarkError(_ context.Context, id uuid.UUID, message string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.audits[id]
	if !ok {
		return apperrors.NewNotFoundError("audit", id.String())
	}
	if a.Status != models.AuditProcessing {
		return nil
	}
	a.Status = models.AuditError
	a.ErrorMessage = message
	a.UpdatedAt = at
	return nil
}

func (s *Store) Finalize(_ context.Context, id uuid.UUID, result models.AuditResult) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.audits[id]
	if !ok {
		return false, apperrors.NewNotFoundError("audit", id.String())
	}
	if a.Status != models.AuditProcessing {
		return false, nil
	}
	completedAt := result.CompletedAt
	a.Status = models.AuditReview
	a.TotalAnomalies = result.TotalAnomalies
	a.AnnualRevenueAtRisk = result.AnnualRevenueAtRisk
	a.FindingsTruncated = result.FindingsTruncated
	a.Summary = result.Summary
	a.CompletedAt = &completedAt
	a.UpdatedAt = completedAt
	return true, nil
}

func (s *Store) Publish(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.audits[id]
	if !ok {
		return false, apperrors.NewNotFoundError("audit", id.String())
	}
	if a.Status != models.AuditReview {
		return false, nil
	}
	a.Status = models.AuditPublished
	a.PublishedAt = &at
	a.UpdatedAt = at
	return true, nil
}

func (s *Store) DeleteAudit(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.audits, id)
	return nil
}

// Chunk queue

func (s *Store) Enqueue(_ context.Context, tasks []models.ChunkTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range tasks {
		t := tasks[i]
		if t.Status == "" {
			t.Status = models.ChunkPending
		}
		s.tasks = append(s.tasks, &t)
		s.byStatus[t.Status][len(s.tasks)-1] = struct{}{}
	}
	return nil
}

func (s *Store) setStatus(slot int, status models.ChunkStatus) {
	t := s.tasks[slot]
	delete(s.byStatus[t.Status], slot)
	t.Status = status
	s.byStatus[status][slot] = struct{}{}
}

func (s *Store) ResetStale(_ context.Context, auditID uuid.UUID, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for slot := range s.byStatus[models.ChunkProcessing] {
		t := s.tasks[slot]
		if t.AuditID != auditID || t.StartedAt == nil || !t.StartedAt.Before(cutoff) {
			continue
		}
		s.setStatus(slot, models.ChunkPending)
		t.ClaimToken = nil
		n++
	}
	return n, nil
}

func (s *Store) ClaimNext(_ context.Context, auditID uuid.UUID, now time.Time) (*models.ChunkTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := -1
	for slot := range s.byStatus[models.ChunkPending] {
		t := s.tasks[slot]
		if t.AuditID != auditID {
			continue
		}
		if best < 0 || claimsBefore(t, s.tasks[best]) {
			best = slot
		}
	}
	if best < 0 {
		return nil, nil
	}

	t := s.tasks[best]
	token := uuid.New()
	started := now
	s.setStatus(best, models.ChunkProcessing)
	t.ClaimToken = &token
	t.StartedAt = &started
	t.Attempts++

	cp := *t
	return &cp, nil
}

func claimsBefore(a, b *models.ChunkTask) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ChunkIndex < b.ChunkIndex
}

// claimed returns the arena slot of task if it still holds its claim token.
func (s *Store) claimed(task *models.ChunkTask) (int, bool) {
	if task.ClaimToken == nil {
		return -1, false
	}
	for slot := range s.byStatus[models.ChunkProcessing] {
		t := s.tasks[slot]
		if t.ID == task.ID && t.ClaimToken != nil && *t.ClaimToken == *task.ClaimToken {
			return slot, true
		}
	}
	return -1, false
}

func (s *Store) Complete(_ context.Context, task *models.ChunkTask, result models.ChunkResult, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.claimed(task)
	if !ok {
		return false, nil
	}
	t := s.tasks[slot]
	completed := now
	s.setStatus(slot, models.ChunkCompleted)
	t.ClaimToken = nil
	t.AnomaliesFound = result.AnomaliesFound
	t.Truncated = result.Truncated
	t.CompletedAt = &completed
	return true, nil
}

func (s *Store) Fail(_ context.Context, task *models.ChunkTask, message string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.claimed(task)
	if !ok {
		return nil
	}
	t := s.tasks[slot]
	completed := now
	s.setStatus(slot, models.ChunkError)
	t.ClaimToken = nil
	t.ErrorMessage = message
	t.CompletedAt = &completed
	return nil
}

func (s *Store) Counts(_ context.Context, auditID uuid.UUID) (models.ChunkCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(models.ChunkCounts)
	for status, slots := range s.byStatus {
		for slot := range slots {
			if s.tasks[slot].AuditID == auditID {
				counts[status]++
			}
		}
	}
	return counts, nil
}

func (s *Store) Truncated(_ context.Context, auditID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for slot := range s.byStatus[models.ChunkCompleted] {
		if t := s.tasks[slot]; t.AuditID == auditID {
			n += t.Truncated
		}
	}
	return n, nil
}

func (s *Store) FirstFailure(_ context.Context, auditID uuid.UUID) (*models.ChunkTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var first *models.ChunkTask
	for slot := range s.byStatus[models.ChunkError] {
		t := s.tasks[slot]
		if t.AuditID == auditID && (first == nil || t.ChunkIndex < first.ChunkIndex) {
			first = t
		}
	}
	if first == nil {
		return nil, nil
	}
	cp := *first
	return &cp, nil
}

// Tasks returns copies of an audit's tasks ordered by chunk index.
func (s *Store) Tasks(auditID uuid.UUID) []models.ChunkTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.ChunkTask
	for _, t := range s.tasks {
		if t != nil && t.AuditID == auditID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkIndex < out[j].ChunkIndex })
	return out
}

func (s *Store) DeleteTasks(_ context.Context, auditID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for slot, t := range s.tasks {
		if t == nil || t.AuditID != auditID {
			continue
		}
		delete(s.byStatus[t.Status], slot)
		s.tasks[slot] = nil
	}
	return nil
}

// Findings

func (s *Store) InsertFindings(_ context.Context, findings []models.Anomaly) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for i := range findings {
		f := findings[i]
		key := fingerprintKey{f.AuditID, f.Fingerprint}
		if _, dup := s.fingerprints[key]; dup {
			continue
		}
		if _, dup := s.findings[f.ID]; dup {
			continue
		}
		s.findings[f.ID] = &f
		s.fingerprints[key] = f.ID
		n++
	}
	return n, nil
}

func (s *Store) Totals(_ context.Context, auditID uuid.UUID) (models.FindingTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := models.FindingTotals{
		AnnualAtRisk: decimal.Zero,
		ByCategory:   make(map[models.Category]int64),
	}
	for _, f := range s.findings {
		if f.AuditID != auditID {
			continue
		}
		totals.Count++
		totals.AnnualAtRisk = totals.AnnualAtRisk.Add(f.AnnualImpact)
		totals.ByCategory[f.Category]++
	}
	return totals, nil
}

func (s *Store) ListFindings(_ context.Context, auditID uuid.UUID, filter models.AnomalyFilter) ([]models.Anomaly, string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.Anomaly
	for _, f := range s.findings {
		switch {
		case f.AuditID != auditID:
		case filter.Category != "" && f.Category != filter.Category:
		case filter.Status != "" && f.Status != filter.Status:
		case filter.Cursor != "" && f.ID.String() <= filter.Cursor:
		default:
			items = append(items, *f)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID.String() < items[j].ID.String() })

	limit := filter.Limit
	if limit <= 0 {
		limit = len(items)
	}
	if len(items) > limit {
		return items[:limit], items[limit-1].ID.String(), true, nil
	}
	return items, "", false, nil
}

func (s *Store) GetFinding(_ context.Context, id uuid.UUID) (*models.Anomaly, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.findings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("anomaly", id.String())
	}
	cp := *f
	return &cp, nil
}

func (s *Store) UpdateFindingStatus(_ context.Context, id uuid.UUID, status models.AnomalyStatus, performedBy, reason string, at time.Time) (*models.Anomaly, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.findings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("anomaly", id.String())
	}
	s.reviewLogs = append(s.reviewLogs, models.AnomalyReviewLog{
		ID:             uuid.New(),
		AnomalyID:      id,
		PreviousStatus: f.Status,
		NewStatus:      status,
		PerformedBy:    performedBy,
		Reason:         reason,
		CreatedAt:      at,
	})
	f.Status = status
	cp := *f
	return &cp, nil
}

// ReviewLogs returns the review history of one anomaly.
func (s *Store) ReviewLogs(anomalyID uuid.UUID) []models.AnomalyReviewLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AnomalyReviewLog
	for _, l := range s.reviewLogs {
		if l.AnomalyID == anomalyID {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) DeleteFindings(_ context.Context, auditID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, f := range s.findings {
		if f.AuditID != auditID {
			continue
		}
		delete(s.fingerprints, fingerprintKey{f.AuditID, f.Fingerprint})
		delete(s.findings, id)
	}
	return nil
}

// Organization settings

func (s *Store) GetOrganizationSettings(_ context.Context, orgID uuid.UUID) (*models.OrganizationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orgs[orgID]
	if !ok {
		return nil, apperrors.NewNotFoundError("organization settings", orgID.String())
	}
	cp := *o
	return &cp, nil
}

func (s *Store) SaveOrganizationSettings(_ context.Context, settings *models.OrganizationSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *settings
	s.orgs[settings.OrganizationID] = &cp
	return nil
}
