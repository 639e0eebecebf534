package reconciliation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"revenue-reconciliation-backend/internal/logging"
)

// Stepper runs one scheduling step for an audit.
type Stepper interface {
	ProcessNext(ctx context.Context, auditID uuid.UUID) (*Step, error)
}

// Dispatcher is the in-process Trigger: a buffered channel drained by one
// worker goroutine. Enqueue never blocks; triggers are dropped when the
// buffer is full and the next poll picks the audit up again.
type Dispatcher struct {
	stepper Stepper
	queue   chan uuid.UUID
	wg      sync.WaitGroup
	once    sync.Once
}

func NewDispatcher(stepper Stepper, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	return &Dispatcher{
		stepper: stepper,
		queue:   make(chan uuid.UUID, buffer),
	}
}

// Enqueue schedules a step for auditID.
func (d *Dispatcher) Enqueue(auditID uuid.UUID) {
	select {
	case d.queue <- auditID:
	default:
		logging.Warn().Str("audit_id", auditID.String()).Msg("dispatch queue full, trigger dropped")
	}
}

// Start runs the worker until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.once.Do(func() {
		d.wg.Add(1)
		go d.run(ctx)
	})
}

// Wait blocks until the worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-d.queue:
			if _, err := d.stepper.ProcessNext(ctx, id); err != nil {
				logging.Error().Err(err).Str("audit_id", id.String()).Msg("chunk step failed")
			}
		}
	}
}
