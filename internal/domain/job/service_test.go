package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyakarta/karyakarta-api/internal/docstore"
)

func newTestService() *Service {
	return NewService(NewRepository(docstore.NewMemoryStore()))
}

func TestCreateDefaultsToRequested(t *testing.T) {
	svc := newTestService()

	j, err := svc.Create(context.Background(), &CreateJobRequest{
		CustomerName: "Anita Sharma",
		Category:     "electrical",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusRequested, j.Status)
	assert.NotEmpty(t, j.ID)
}

func TestScheduledAtRoundTrip(t *testing.T) {
	svc := newTestService()

	scheduled := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	j, err := svc.Create(context.Background(), &CreateJobRequest{
		CustomerName: "Anita Sharma",
		Category:     "cleaning",
		ScheduledAt:  scheduled.UnixMilli(),
	})
	require.NoError(t, err)
	assert.True(t, j.ScheduledAt.Equal(scheduled))
}

func TestStatusProgression(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	j, err := svc.Create(ctx, &CreateJobRequest{CustomerName: "Anita Sharma", Category: "plumbing"})
	require.NoError(t, err)

	for _, next := range []string{"assigned", "in_progress", "completed"} {
		j2, err := svc.Update(ctx, &UpdateJobRequest{ID: j.ID, Status: &next})
		require.NoError(t, err)
		assert.Equal(t, Status(next), j2.Status)
	}
}

func TestTerminalJobsRejectStatusChange(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cancelled := "cancelled"
	j, err := svc.Create(ctx, &CreateJobRequest{CustomerName: "Anita Sharma", Category: "plumbing", Status: cancelled})
	require.NoError(t, err)

	reopen := "requested"
	_, err = svc.Update(ctx, &UpdateJobRequest{ID: j.ID, Status: &reopen})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Non-status fields remain editable.
	notes := "customer rescheduled"
	j2, err := svc.Update(ctx, &UpdateJobRequest{ID: j.ID, Description: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, j2.Description)
}

func TestListFiltersByStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, status := range []string{"requested", "assigned", "requested"} {
		_, err := svc.Create(ctx, &CreateJobRequest{CustomerName: "Customer X", Category: "other", Status: status})
		require.NoError(t, err)
	}

	requested := StatusRequested
	jobs, err := svc.List(ctx, &requested, 0)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}
