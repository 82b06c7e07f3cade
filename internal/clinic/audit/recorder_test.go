package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
)

type captureRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	err    error
}

func (r *captureRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *captureRepo) List(context.Context, int) ([]domain.AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...), nil
}

func TestRecorder_WritesQueuedEvents(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo, zerolog.Nop())
	rec.Start(context.Background())

	rec.Record(domain.AuditEvent{ActorUserID: "u1", Action: domain.AuditSlotBooked})
	rec.Record(domain.AuditEvent{ActorUserID: "u2", Action: domain.AuditLoginFailure})
	rec.Close()

	events, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "u1", events[0].ActorUserID)
	assert.Equal(t, "u2", events[1].ActorUserID)
}

func TestRecorder_FillsIDAndTimestamp(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo, zerolog.Nop())
	rec.Start(context.Background())

	rec.Record(domain.AuditEvent{Action: domain.AuditUserRegistered})
	rec.Close()

	events, _ := repo.List(context.Background(), 1)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].CreatedAt.IsZero())
}

func TestRecorder_KeepsCallerValues(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo, zerolog.Nop())
	rec.Start(context.Background())

	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rec.Record(domain.AuditEvent{ID: "fixed", Action: domain.AuditClearSuccess, CreatedAt: at})
	rec.Close()

	events, _ := repo.List(context.Background(), 1)
	require.Len(t, events, 1)
	assert.Equal(t, "fixed", events[0].ID)
	assert.True(t, events[0].CreatedAt.Equal(at))
}

func TestRecorder_WriteFailureDoesNotBlock(t *testing.T) {
	repo := &captureRepo{err: errors.New("db down")}
	rec := NewRecorder(repo, zerolog.Nop())
	rec.Start(context.Background())

	rec.Record(domain.AuditEvent{Action: domain.AuditSlotBooked})
	rec.Close()

	events, _ := repo.List(context.Background(), 10)
	assert.Empty(t, events)
}

func TestRecorder_RecordNeverBlocksWhenFull(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo, zerolog.Nop())
	// No Start: nothing drains the channel, so it fills up.

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+10; i++ {
			rec.Record(domain.AuditEvent{Action: domain.AuditSlotBooked})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}
}
