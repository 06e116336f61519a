package mailer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// SyncAlertHandler emails the configured recipients when a channel sync run
// finishes with failures. Successful runs are ignored.
type SyncAlertHandler struct {
	mailer Mailer
	logger *zap.Logger
}

// NewSyncAlertHandler creates a handler bound to the given mailer
func NewSyncAlertHandler(mailer Mailer, logger *zap.Logger) *SyncAlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncAlertHandler{mailer: mailer, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *SyncAlertHandler) EventTypes() []string {
	return []string{channel.EventTypeSyncCompleted}
}

// Handle sends an alert email for failed or partially failed sync runs
func (h *SyncAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*channel.SyncCompletedEvent)
	if !ok {
		return nil
	}
	if completed.Status != channel.SyncStatusFailed && completed.Failed == 0 {
		return nil
	}

	subject := fmt.Sprintf("[Pine Hill] %s sync %s: %d of %d orders failed",
		completed.Platform, completed.Status, completed.Failed, completed.Total)

	body := fmt.Sprintf(
		"Sync run %s\n\nPlatform:  %s\nTrigger:   %s\nStatus:    %s\nStarted:   %s\nFinished:  %s\n\nTotal:     %d\nCreated:   %d\nUpdated:   %d\nFailed:    %d\n",
		completed.AggregateID(),
		completed.Platform,
		completed.Trigger,
		completed.Status,
		completed.StartedAt.Format("2006-01-02 15:04:05 MST"),
		completed.FinishedAt.Format("2006-01-02 15:04:05 MST"),
		completed.Total,
		completed.Created,
		completed.Updated,
		completed.Failed,
	)
	if completed.LastError != "" {
		body += "\nLast error:\n" + completed.LastError + "\n"
	}

	if err := h.mailer.Send(ctx, subject, body, ""); err != nil {
		if errors.Is(err, ErrMailerDisabled) {
			h.logger.Debug("sync alert suppressed, mailer disabled",
				zap.String("platform", string(completed.Platform)))
			return nil
		}
		h.logger.Error("failed to send sync alert",
			zap.String("platform", string(completed.Platform)),
			zap.Error(err))
		return err
	}

	h.logger.Info("sync alert sent",
		zap.String("platform", string(completed.Platform)),
		zap.Int("failed", completed.Failed))
	return nil
}

// Ensure SyncAlertHandler implements shared.EventHandler
var _ shared.EventHandler = (*SyncAlertHandler)(nil)
