package models

import (
	"time"

	"github.com/google/uuid"
)

type ChunkStatus string

const (
	ChunkPending    ChunkStatus = "pending"
	ChunkProcessing ChunkStatus = "processing"
	ChunkCompleted  ChunkStatus = "completed"
	ChunkError      ChunkStatus = "error"
)

// RowRange is a half-open range [Start, End) of data-row indexes.
type RowRange struct {
	Start int
	End   int
}

// Contains reports whether row i falls inside the range.
func (r RowRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// ChunkTask is one unit of chunked audit work.
type ChunkTask struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	AuditID        uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_chunk_audit_index,priority:1" json:"audit_id"`
	ChunkIndex     int         `gorm:"uniqueIndex:idx_chunk_audit_index,priority:2" json:"chunk_index"`
	TotalChunks    int         `json:"total_chunks"`
	LedgerStart    int         `json:"ledger_start"`
	LedgerEnd      int         `json:"ledger_end"`
	ProcessorStart int         `json:"processor_start"`
	ProcessorEnd   int         `json:"processor_end"`
	Status         ChunkStatus `gorm:"size:16;index" json:"status"`
	ClaimToken     *uuid.UUID  `gorm:"type:uuid" json:"-"`
	Attempts       int         `json:"attempts"`
	AnomaliesFound int         `json:"anomalies_found"`
	Truncated      int         `json:"truncated"`
	ErrorMessage   string      `json:"error_message"`
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`
	StartedAt      *time.Time  `json:"started_at"`
	CompletedAt    *time.Time  `json:"completed_at"`
}

// LedgerRange returns the ledger row range of the task.
func (t *ChunkTask) LedgerRange() RowRange {
	return RowRange{Start: t.LedgerStart, End: t.LedgerEnd}
}

// ProcessorRange returns the processor row range of the task.
func (t *ChunkTask) ProcessorRange() RowRange {
	return RowRange{Start: t.ProcessorStart, End: t.ProcessorEnd}
}

// ChunkResult is recorded when a task completes.
type ChunkResult struct {
	AnomaliesFound int
	Truncated      int
}

// ChunkCounts tallies an audit's tasks by status.
type ChunkCounts map[ChunkStatus]int

// Total returns the number of tasks across all statuses.
func (c ChunkCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}
