package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "revenue-reconciliation-backend/internal/errors"
	"revenue-reconciliation-backend/internal/logging"
	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/detection"
)

// ErrStalled is returned by RunToCompletion when no task can be claimed but
// the audit is still processing.
var ErrStalled = errors.New("audit stalled")

// Step describes one ProcessNext invocation.
type Step struct {
	Audit      *models.Audit
	Claimed    bool
	ChunkIndex int
	Findings   int64
	Finalized  bool
}

// ProcessNext advances an audit by at most one chunk: it recovers stale
// tasks, enforces the audit timeout, claims the oldest pending task, runs it
// and then chains the next step or settles the audit. A failed chunk does not
// stop its siblings; the audit moves to error once none are left to run.
func (s *ReconciliationService) ProcessNext(ctx context.Context, auditID uuid.UUID) (*Step, error) {
	audit, err := s.audits.GetAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}
	step := &Step{Audit: audit, ChunkIndex: -1}
	if audit.Status != models.AuditProcessing {
		return step, nil
	}

	log := logging.FromContext(ctx).With().Str("audit_id", auditID.String()).Logger()
	now := s.now()

	reset, err := s.queue.ResetStale(ctx, auditID, now.Add(-s.staleAfter))
	if err != nil {
		return nil, fmt.Errorf("reset stale chunks: %w", err)
	}
	if reset > 0 {
		log.Warn().Int64("chunks", reset).Msg("stale chunks returned to pending")
	}

	if s.auditTimeout > 0 && now.Sub(audit.UpdatedAt) > s.auditTimeout {
		msg := fmt.Sprintf("audit timed out: no progress for %s", s.auditTimeout)
		if err := s.audits.MarkError(ctx, auditID, msg, now); err != nil {
			return nil, fmt.Errorf("mark audit error: %w", err)
		}
		s.evict(auditID)
		log.Error().Dur("timeout", s.auditTimeout).Msg("audit timed out")
		return s.refresh(ctx, step)
	}

	task, err := s.queue.ClaimNext(ctx, auditID, now)
	if err != nil {
		return nil, fmt.Errorf("claim chunk: %w", err)
	}
	if task == nil {
		return s.settle(ctx, step)
	}
	step.Claimed = true
	step.ChunkIndex = task.ChunkIndex
	log = log.With().Int("chunk_index", task.ChunkIndex).Logger()

	res, err := s.runChunk(ctx, audit, task, now)
	if err != nil {
		if !isChunkError(err) {
			return nil, err
		}
		if ferr := s.queue.Fail(ctx, task, err.Error(), s.now()); ferr != nil {
			return nil, fmt.Errorf("fail chunk: %w", ferr)
		}
		log.Error().Err(err).Msg("chunk failed")
		return s.settle(ctx, step)
	}

	inserted, err := s.findings.InsertFindings(ctx, res.Findings)
	if err != nil {
		// The task stays processing; stale recovery retries it.
		return nil, fmt.Errorf("insert anomalies: %w", err)
	}
	step.Findings = inserted
	if res.Truncated > 0 {
		ev := log.Warn().Int("truncated", res.Truncated)
		for category, n := range res.TruncatedBy {
			ev = ev.Int(string(category), n)
		}
		ev.Msg("detector emission cap reached")
	}

	done := s.now()
	ok, err := s.queue.Complete(ctx, task, models.ChunkResult{
		AnomaliesFound: len(res.Findings),
		Truncated:      res.Truncated,
	}, done)
	if err != nil {
		return nil, fmt.Errorf("complete chunk: %w", err)
	}
	if !ok {
		log.Warn().Msg("chunk claim lost, result discarded")
		return s.refresh(ctx, step)
	}

	counts, err := s.queue.Counts(ctx, auditID)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	if err := s.audits.UpdateProgress(ctx, auditID, counts[models.ChunkCompleted], done); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	log.Info().
		Int("anomalies", len(res.Findings)).
		Int64("inserted", inserted).
		Int("completed", counts[models.ChunkCompleted]).
		Int("total", counts.Total()).
		Msg("chunk completed")

	return s.settle(ctx, step)
}

// chunkError marks failures of the chunk itself, as opposed to storage.
type chunkError struct {
	err error
}

func (e *chunkError) Error() string { return e.err.Error() }
func (e *chunkError) Unwrap() error { return e.err }

func isChunkError(err error) bool {
	var ce *chunkError
	return errors.As(err, &ce)
}

// runChunk executes the detection pipeline for one task. Input failures and
// panics become chunk errors.
func (s *ReconciliationService) runChunk(ctx context.Context, audit *models.Audit, task *models.ChunkTask, now time.Time) (res detection.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &chunkError{fmt.Errorf("pipeline panic: %v", r)}
		}
	}()

	data, err := s.dataset(ctx, audit)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			return res, &chunkError{err}
		}
		return res, err
	}

	in := data.input.WithRanges(task.LedgerRange(), task.ProcessorRange())
	return detection.Run(in, audit.ID, task.ChunkIndex, now), nil
}

// settle decides what follows a step: chain the next pending task, wait for
// tasks still in flight, fail the audit when a chunk errored, or finalize
// once every task has completed.
func (s *ReconciliationService) settle(ctx context.Context, step *Step) (*Step, error) {
	auditID := step.Audit.ID
	counts, err := s.queue.Counts(ctx, auditID)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}

	switch total := counts.Total(); {
	case counts[models.ChunkPending] > 0:
		s.trigger.Enqueue(auditID)
	case counts[models.ChunkProcessing] > 0:
	case counts[models.ChunkError] > 0:
		if err := s.failAudit(ctx, auditID, counts[models.ChunkError]); err != nil {
			return nil, err
		}
	case total > 0 && counts[models.ChunkCompleted] == total:
		finalized, err := s.Finalize(ctx, auditID)
		if err != nil {
			return nil, err
		}
		step.Finalized = finalized
	}
	return s.refresh(ctx, step)
}

// failAudit surfaces the lowest failed chunk on the audit.
func (s *ReconciliationService) failAudit(ctx context.Context, auditID uuid.UUID, failed int) error {
	first, err := s.queue.FirstFailure(ctx, auditID)
	if err != nil {
		return fmt.Errorf("load failed chunk: %w", err)
	}
	msg := fmt.Sprintf("%d chunks failed", failed)
	if first != nil {
		msg = fmt.Sprintf("chunk %d: %s", first.ChunkIndex, first.ErrorMessage)
		if failed > 1 {
			msg += fmt.Sprintf(" (%d more chunks failed)", failed-1)
		}
	}
	if err := s.audits.MarkError(ctx, auditID, msg, s.now()); err != nil {
		return fmt.Errorf("mark audit error: %w", err)
	}
	s.evict(auditID)
	logging.FromContext(ctx).Error().
		Str("audit_id", auditID.String()).
		Int("failed_chunks", failed).
		Msg("audit failed")
	return nil
}

// Finalize aggregates an audit's findings and moves it to review. It reports
// false when another caller finalized first.
func (s *ReconciliationService) Finalize(ctx context.Context, auditID uuid.UUID) (bool, error) {
	totals, err := s.findings.Totals(ctx, auditID)
	if err != nil {
		return false, fmt.Errorf("aggregate anomalies: %w", err)
	}
	truncated, err := s.queue.Truncated(ctx, auditID)
	if err != nil {
		return false, fmt.Errorf("aggregate truncation: %w", err)
	}

	audit, err := s.audits.GetAudit(ctx, auditID)
	if err != nil {
		return false, err
	}
	cfg, err := AuditConfig(audit)
	if err != nil {
		return false, err
	}

	ok, err := s.audits.Finalize(ctx, auditID, models.AuditResult{
		TotalAnomalies:      totals.Count,
		AnnualRevenueAtRisk: totals.AnnualAtRisk,
		FindingsTruncated:   truncated,
		Summary:             Summarize(totals, truncated, cfg.CurrencyCode),
		CompletedAt:         s.now(),
	})
	if err != nil {
		return false, fmt.Errorf("finalize audit: %w", err)
	}
	if ok {
		s.evict(auditID)
		logging.FromContext(ctx).Info().
			Str("audit_id", auditID.String()).
			Int64("anomalies", totals.Count).
			Str("annual_revenue_at_risk", totals.AnnualAtRisk.StringFixed(2)).
			Msg("audit finalized")
	}
	return ok, nil
}

func (s *ReconciliationService) refresh(ctx context.Context, step *Step) (*Step, error) {
	audit, err := s.audits.GetAudit(ctx, step.Audit.ID)
	if err != nil {
		return nil, err
	}
	step.Audit = audit
	return step, nil
}

// RunToCompletion drives an audit synchronously until it leaves processing.
func (s *ReconciliationService) RunToCompletion(ctx context.Context, auditID uuid.UUID) (*models.Audit, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step, err := s.ProcessNext(ctx, auditID)
		if err != nil {
			return nil, err
		}
		if step.Audit.Status != models.AuditProcessing {
			return step.Audit, nil
		}
		if !step.Claimed {
			return step.Audit, ErrStalled
		}
	}
}
