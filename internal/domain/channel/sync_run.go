package channel

import (
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// SyncTrigger says what started a sync run
type SyncTrigger string

const (
	SyncTriggerManual    SyncTrigger = "manual"
	SyncTriggerScheduled SyncTrigger = "scheduled"
)

// SyncStatus is the lifecycle of a sync run
type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial" // Finished with some failed orders
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncRun is the summary row written for every sync, manual or scheduled.
type SyncRun struct {
	shared.TenantAggregateRoot
	Platform   PlatformCode
	Trigger    SyncTrigger
	WindowFrom time.Time
	WindowTo   time.Time
	Status     SyncStatus
	Total      int
	Created    int
	Updated    int
	Failed     int
	LastError  string
	StartedAt  time.Time
	FinishedAt *time.Time

	// truncated is set when the pull hit the page cap; it only affects
	// the status chosen by Complete and is not persisted on its own
	truncated bool
}

// NewSyncRun starts a sync run in running status
func NewSyncRun(tenantID uuid.UUID, platform PlatformCode, trigger SyncTrigger, from, to time.Time) (*SyncRun, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown sales channel")
	}
	if trigger != SyncTriggerManual && trigger != SyncTriggerScheduled {
		return nil, shared.NewDomainError("INVALID_TRIGGER", "Unknown sync trigger")
	}

	return &SyncRun{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Platform:            platform,
		Trigger:             trigger,
		WindowFrom:          from,
		WindowTo:            to,
		Status:              SyncStatusRunning,
		StartedAt:           time.Now(),
	}, nil
}

// RecordCreated counts a newly ingested order
func (r *SyncRun) RecordCreated() {
	r.Total++
	r.Created++
}

// RecordUpdated counts an order refreshed in place
func (r *SyncRun) RecordUpdated() {
	r.Total++
	r.Updated++
}

// RecordFailure counts an order that could not be ingested
func (r *SyncRun) RecordFailure(err error) {
	r.Total++
	r.Failed++
	if err != nil {
		r.LastError = err.Error()
	}
}

// MarkTruncated notes that the pull stopped at the page cap with more
// orders still available. A truncated run never completes as success.
func (r *SyncRun) MarkTruncated(note string) {
	r.truncated = true
	if note != "" {
		r.LastError = note
	}
}

// Complete finishes the run. Status depends on the failure count.
func (r *SyncRun) Complete() error {
	if r.Status != SyncStatusRunning {
		return shared.ErrInvalidState
	}

	now := time.Now()
	r.FinishedAt = &now
	switch {
	case r.Failed == 0 && !r.truncated:
		r.Status = SyncStatusSuccess
	case r.Total > 0 && r.Failed == r.Total:
		r.Status = SyncStatusFailed
	default:
		r.Status = SyncStatusPartial
	}
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewSyncCompletedEvent(r))

	return nil
}

// Fail aborts the run with an error before any orders were processed
func (r *SyncRun) Fail(err error) error {
	if r.Status != SyncStatusRunning {
		return shared.ErrInvalidState
	}

	now := time.Now()
	r.FinishedAt = &now
	r.Status = SyncStatusFailed
	if err != nil {
		r.LastError = err.Error()
	}
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewSyncCompletedEvent(r))

	return nil
}

// Succeeded reports whether the run finished without failures
func (r *SyncRun) Succeeded() bool {
	return r.Status == SyncStatusSuccess
}

// Duration returns how long the run took, zero while still running
func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
