package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShift(t *testing.T) {
	tenantID := uuid.New()
	employeeID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("creates shift with valid times", func(t *testing.T) {
		start := day.Add(9 * time.Hour)
		end := day.Add(17 * time.Hour)

		shift, err := NewShift(tenantID, employeeID, day, start, end, "Register")

		require.NoError(t, err)
		assert.Equal(t, employeeID, shift.EmployeeID)
		assert.Equal(t, "Register", shift.Position)
		assert.Equal(t, 8*time.Hour, shift.Duration())
		assert.False(t, shift.Published)

		events := shift.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*ShiftCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("fails when end is not after start", func(t *testing.T) {
		start := day.Add(9 * time.Hour)

		_, err := NewShift(tenantID, employeeID, day, start, start, "Register")
		assert.Error(t, err)

		_, err = NewShift(tenantID, employeeID, day, start, start.Add(-time.Hour), "Register")
		assert.Error(t, err)
	})

	t.Run("fails when longer than a day", func(t *testing.T) {
		start := day.Add(9 * time.Hour)
		_, err := NewShift(tenantID, employeeID, day, start, start.Add(25*time.Hour), "Register")
		assert.Error(t, err)
	})

	t.Run("fails with empty employee", func(t *testing.T) {
		start := day.Add(9 * time.Hour)
		_, err := NewShift(tenantID, uuid.Nil, day, start, start.Add(time.Hour), "Register")
		assert.Error(t, err)
	})
}

func TestShiftOverlaps(t *testing.T) {
	tenantID := uuid.New()
	employeeID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mk := func(t *testing.T, emp uuid.UUID, startHour, endHour int) *Shift {
		s, err := NewShift(tenantID, emp, day, day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour), "")
		require.NoError(t, err)
		return s
	}

	t.Run("intersecting ranges overlap", func(t *testing.T) {
		a := mk(t, employeeID, 9, 17)
		b := mk(t, employeeID, 16, 20)
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("touching boundaries do not overlap", func(t *testing.T) {
		a := mk(t, employeeID, 9, 13)
		b := mk(t, employeeID, 13, 17)
		assert.False(t, a.Overlaps(b))
	})

	t.Run("different employees never overlap", func(t *testing.T) {
		a := mk(t, employeeID, 9, 17)
		b := mk(t, uuid.New(), 10, 12)
		assert.False(t, a.Overlaps(b))
	})
}

func TestTimeOffRequest(t *testing.T) {
	tenantID := uuid.New()
	employeeID := uuid.New()
	reviewerID := uuid.New()
	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4)

	t.Run("new request is pending", func(t *testing.T) {
		req, err := NewTimeOffRequest(tenantID, employeeID, start, end, "family trip")

		require.NoError(t, err)
		assert.Equal(t, TimeOffStatusPending, req.Status)
		assert.Nil(t, req.ReviewedBy)
	})

	t.Run("fails when end before start", func(t *testing.T) {
		_, err := NewTimeOffRequest(tenantID, employeeID, end, start, "")
		assert.Error(t, err)
	})

	t.Run("approve records reviewer and timestamp", func(t *testing.T) {
		req, err := NewTimeOffRequest(tenantID, employeeID, start, end, "")
		require.NoError(t, err)

		require.NoError(t, req.Approve(reviewerID, "ok"))
		assert.Equal(t, TimeOffStatusApproved, req.Status)
		require.NotNil(t, req.ReviewedBy)
		assert.Equal(t, reviewerID, *req.ReviewedBy)
		assert.NotNil(t, req.ReviewedAt)
	})

	t.Run("approve is only legal from pending", func(t *testing.T) {
		req, err := NewTimeOffRequest(tenantID, employeeID, start, end, "")
		require.NoError(t, err)
		require.NoError(t, req.Deny(reviewerID, "short staffed"))

		assert.Error(t, req.Approve(reviewerID, ""))
		assert.Equal(t, TimeOffStatusDenied, req.Status)
	})

	t.Run("employee can cancel own pending request", func(t *testing.T) {
		req, err := NewTimeOffRequest(tenantID, employeeID, start, end, "")
		require.NoError(t, err)

		assert.Error(t, req.Cancel(uuid.New()))
		require.NoError(t, req.Cancel(employeeID))
		assert.Equal(t, TimeOffStatusCancelled, req.Status)
	})

	t.Run("covers range is inclusive", func(t *testing.T) {
		req, err := NewTimeOffRequest(tenantID, employeeID, start, end, "")
		require.NoError(t, err)

		assert.True(t, req.Covers(start))
		assert.True(t, req.Covers(end))
		assert.True(t, req.Covers(start.AddDate(0, 0, 2)))
		assert.False(t, req.Covers(start.AddDate(0, 0, -1)))
		assert.False(t, req.Covers(end.AddDate(0, 0, 1)))
	})
}
