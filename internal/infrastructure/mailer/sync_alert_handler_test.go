package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinehillfarm/backend/internal/domain/channel"
)

// recordingMailer captures sent messages
type recordingMailer struct {
	subjects []string
	bodies   []string
	err      error
}

func (m *recordingMailer) Send(_ context.Context, subject, plainBody, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, plainBody)
	return nil
}

func newSyncRunEvent(t *testing.T, status channel.SyncStatus, failed int) *channel.SyncCompletedEvent {
	t.Helper()
	run, err := channel.NewSyncRun(uuid.New(), channel.PlatformClover, channel.SyncTriggerScheduled,
		time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	run.Status = status
	run.Total = 10
	run.Failed = failed
	if failed > 0 {
		run.LastError = "clover: HTTP 500"
	}
	return channel.NewSyncCompletedEvent(run)
}

func TestSyncAlertHandler_SendsOnFailure(t *testing.T) {
	recorder := &recordingMailer{}
	handler := NewSyncAlertHandler(recorder, nil)

	event := newSyncRunEvent(t, channel.SyncStatusFailed, 10)
	require.NoError(t, handler.Handle(context.Background(), event))

	require.Len(t, recorder.subjects, 1)
	assert.Contains(t, recorder.subjects[0], "clover")
	assert.Contains(t, recorder.bodies[0], "clover: HTTP 500")
}

func TestSyncAlertHandler_SendsOnPartialFailure(t *testing.T) {
	recorder := &recordingMailer{}
	handler := NewSyncAlertHandler(recorder, nil)

	event := newSyncRunEvent(t, channel.SyncStatusPartial, 2)
	require.NoError(t, handler.Handle(context.Background(), event))
	assert.Len(t, recorder.subjects, 1)
}

func TestSyncAlertHandler_IgnoresSuccess(t *testing.T) {
	recorder := &recordingMailer{}
	handler := NewSyncAlertHandler(recorder, nil)

	event := newSyncRunEvent(t, channel.SyncStatusSuccess, 0)
	require.NoError(t, handler.Handle(context.Background(), event))
	assert.Empty(t, recorder.subjects)
}

func TestSyncAlertHandler_SwallowsDisabledMailer(t *testing.T) {
	recorder := &recordingMailer{err: ErrMailerDisabled}
	handler := NewSyncAlertHandler(recorder, nil)

	event := newSyncRunEvent(t, channel.SyncStatusFailed, 10)
	assert.NoError(t, handler.Handle(context.Background(), event))
}

func TestSyncAlertHandler_EventTypes(t *testing.T) {
	handler := NewSyncAlertHandler(&recordingMailer{}, nil)
	assert.Equal(t, []string{channel.EventTypeSyncCompleted}, handler.EventTypes())
}
