// Package audit is the fire-and-forget side-channel for security- and
// data-relevant events. Recording never blocks a request and a failed write
// never fails the action that triggered it.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
)

const (
	channelBuffer = 256
	writeTimeout  = 5 * time.Second
)

// Recorder buffers events on a channel drained by a single worker goroutine.
type Recorder struct {
	events chan domain.AuditEvent
	repo   domain.AuditRepository
	log    zerolog.Logger
	done   chan struct{}
}

func NewRecorder(repo domain.AuditRepository, log zerolog.Logger) *Recorder {
	return &Recorder{
		events: make(chan domain.AuditEvent, channelBuffer),
		repo:   repo,
		log:    log,
		done:   make(chan struct{}),
	}
}

// Start launches the worker. The worker drains remaining events after ctx is
// cancelled, then exits.
func (r *Recorder) Start(ctx context.Context) {
	go r.run(ctx)
}

// Record enqueues an event without blocking. When the queue is full the event
// is dropped and the drop is logged for the operator.
func (r *Recorder) Record(event domain.AuditEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	select {
	case r.events <- event:
	default:
		r.log.Warn().
			Str("action", event.Action).
			Str("actor_user_id", event.ActorUserID).
			Msg("audit queue full, event dropped")
	}
}

// Close stops intake and waits for the worker to drain the queue.
func (r *Recorder) Close() {
	close(r.events)
	<-r.done
}

func (r *Recorder) run(ctx context.Context) {
	defer close(r.done)
	for event, ok := <-r.events; ok; event, ok = <-r.events {
		r.write(ctx, event)
	}
}

func (r *Recorder) write(ctx context.Context, event domain.AuditEvent) {
	// Detach from request-scoped cancellation; the audit write outlives the
	// request that produced it.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := r.repo.Insert(writeCtx, &event); err != nil {
		r.log.Error().
			Err(err).
			Str("action", event.Action).
			Str("actor_user_id", event.ActorUserID).
			Msg("audit event write failed")
	}
}
