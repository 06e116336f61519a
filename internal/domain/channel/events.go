package channel

import (
	"time"

	"github.com/pinehillfarm/backend/internal/domain/shared"
)

const AggregateTypeSyncRun = "SyncRun"

const EventTypeSyncCompleted = "SyncCompleted"

// SyncCompletedEvent is published when a sync run finishes, whatever the
// outcome. The alert mailer subscribes to it.
type SyncCompletedEvent struct {
	shared.BaseDomainEvent
	Platform   PlatformCode `json:"platform"`
	Trigger    SyncTrigger  `json:"trigger"`
	Status     SyncStatus   `json:"status"`
	Total      int          `json:"total"`
	Created    int          `json:"created"`
	Updated    int          `json:"updated"`
	Failed     int          `json:"failed"`
	LastError  string       `json:"last_error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

// NewSyncCompletedEvent creates a new SyncCompletedEvent
func NewSyncCompletedEvent(r *SyncRun) *SyncCompletedEvent {
	finished := time.Now()
	if r.FinishedAt != nil {
		finished = *r.FinishedAt
	}
	return &SyncCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSyncCompleted, AggregateTypeSyncRun, r.ID, r.TenantID),
		Platform:        r.Platform,
		Trigger:         r.Trigger,
		Status:          r.Status,
		Total:           r.Total,
		Created:         r.Created,
		Updated:         r.Updated,
		Failed:          r.Failed,
		LastError:       r.LastError,
		StartedAt:       r.StartedAt,
		FinishedAt:      finished,
	}
}
