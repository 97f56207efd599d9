package controller

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord struct {
	ID     string
	Name   string
	Status string
}

func (r fakeRecord) RecordID() string    { return r.ID }
func (r fakeRecord) SearchText() string  { return r.Name }
func (r fakeRecord) StatusValue() string { return r.Status }

type fakeClient struct {
	records []fakeRecord

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	listErr   error
	failIDs   map[string]error
	createErr error
	onList    func()
}

func (f *fakeClient) List(ctx context.Context, params ListParams) ([]fakeRecord, error) {
	f.listCalls++
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]fakeRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeClient) Create(ctx context.Context, record fakeRecord) (fakeRecord, error) {
	f.createCalls++
	if f.createErr != nil {
		return fakeRecord{}, f.createErr
	}
	record.ID = fmt.Sprintf("r%d", len(f.records)+1)
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeClient) Update(ctx context.Context, id string, patch map[string]interface{}) (fakeRecord, error) {
	f.updateCalls++
	if err := f.failIDs[id]; err != nil {
		return fakeRecord{}, err
	}
	for i, r := range f.records {
		if r.ID == id {
			if s, ok := patch["status"].(string); ok {
				f.records[i].Status = s
			}
			return f.records[i], nil
		}
	}
	return fakeRecord{}, errors.New("not found")
}

func (f *fakeClient) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	if err := f.failIDs[id]; err != nil {
		return err
	}
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func seeded() *fakeClient {
	return &fakeClient{records: []fakeRecord{
		{ID: "r1", Name: "Ravi plumber", Status: "pending"},
		{ID: "r2", Name: "Meena cleaner", Status: "completed"},
		{ID: "r3", Name: "Arjun electrician", Status: "pending"},
	}}
}

func newController(client *fakeClient) *Controller[fakeRecord] {
	return New(Config[fakeRecord]{Client: client})
}

func TestRefreshLoadsRecords(t *testing.T) {
	client := seeded()
	c := newController(client)

	assert.Equal(t, PhaseIdle, c.Phase())
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Len(t, c.Records(), 3)
}

func TestRefreshShowsLoadingFromEveryPhase(t *testing.T) {
	client := seeded()
	c := newController(client)
	ctx := context.Background()

	var observed []Phase
	client.onList = func() { observed = append(observed, c.Phase()) }

	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, PhaseLoaded, c.Phase())

	// A refresh from Loaded still reports Loading while in flight.
	require.NoError(t, c.Refresh(ctx))

	client.listErr = errors.New("boom")
	require.Error(t, c.Refresh(ctx))
	assert.Equal(t, PhaseError, c.Phase())

	// And so does a refresh from Error.
	client.listErr = nil
	require.NoError(t, c.Refresh(ctx))

	assert.Equal(t, []Phase{PhaseLoading, PhaseLoading, PhaseLoading, PhaseLoading}, observed)
}

func TestStartAutoRefreshRunsOneLoop(t *testing.T) {
	client := seeded()
	c := New(Config[fakeRecord]{Client: client, RefreshInterval: 5 * time.Millisecond})
	ctx := context.Background()

	// A second start must not spawn a second loop; with two loops, Close
	// would double-close the done channel and panic.
	c.StartAutoRefresh(ctx)
	c.StartAutoRefresh(ctx)

	time.Sleep(25 * time.Millisecond)
	c.Close()
	c.Close()

	select {
	case <-c.done:
	case <-time.After(time.Second):
		t.Fatal("auto-refresh loop did not stop")
	}
	assert.GreaterOrEqual(t, client.listCalls, 1)
}

func TestRefreshIsIdempotentAgainstStableBackend(t *testing.T) {
	c := newController(seeded())
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	first := c.Visible()
	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, first, c.Visible())
}

func TestFailedRefreshKeepsLastGoodRecords(t *testing.T) {
	client := seeded()
	c := newController(client)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))

	client.listErr = errors.New("boom")
	err := c.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, PhaseError, c.Phase())
	assert.Len(t, c.Records(), 3, "stale records beat a blank view")

	client.listErr = nil
	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.NoError(t, c.Err())
}

func TestCreateValidationNeverReachesNetwork(t *testing.T) {
	client := seeded()
	c := New(Config[fakeRecord]{
		Client: client,
		ValidateCreate: func(r fakeRecord) error {
			if r.Name == "" {
				return errors.New("name required")
			}
			return nil
		},
	})

	err := c.Create(context.Background(), fakeRecord{})
	require.Error(t, err)
	assert.Equal(t, 0, client.createCalls)
	assert.Equal(t, 0, client.listCalls)

	require.NoError(t, c.Create(context.Background(), fakeRecord{Name: "New guy", Status: "pending"}))
	assert.Equal(t, 1, client.createCalls)
	assert.Len(t, c.Records(), 4)
}

func TestSetFilterClearsSelection(t *testing.T) {
	c := newController(seeded())
	require.NoError(t, c.Refresh(context.Background()))

	c.ToggleSelect("r1")
	c.ToggleSelect("r2")
	assert.Len(t, c.SelectedIDs(), 2)

	c.SetFilter(Filter{Status: "pending"})
	assert.Empty(t, c.SelectedIDs())
	assert.Len(t, c.Visible(), 2)
}

func TestToggleSelectAllVisibleTriState(t *testing.T) {
	c := newController(seeded())
	require.NoError(t, c.Refresh(context.Background()))
	c.SetFilter(Filter{Status: "pending"})

	// none -> all visible
	c.ToggleSelectAllVisible()
	assert.ElementsMatch(t, []string{"r1", "r3"}, c.SelectedIDs())

	// partial -> all visible
	c.ToggleSelect("r1")
	c.ToggleSelectAllVisible()
	assert.ElementsMatch(t, []string{"r1", "r3"}, c.SelectedIDs())

	// all -> none
	c.ToggleSelectAllVisible()
	assert.Empty(t, c.SelectedIDs())
}

func TestBulkDeletePartialFailure(t *testing.T) {
	client := seeded()
	client.failIDs = map[string]error{"r2": errors.New("still referenced")}
	c := newController(client)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	c.ToggleSelect("r1")
	c.ToggleSelect("r2")
	c.ToggleSelect("r3")

	listCallsBefore := client.listCalls
	result, err := c.BulkDelete(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, client.deleteCalls, "one delete per selected id")
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors["r2"], "still referenced")
	assert.Equal(t, listCallsBefore+1, client.listCalls, "exactly one refresh after the bulk")
	assert.Empty(t, c.SelectedIDs(), "selection cleared by the post-bulk refresh")
}

func TestBulkUpdateStatus(t *testing.T) {
	client := seeded()
	c := newController(client)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	c.SetFilter(Filter{Status: "pending"})
	c.ToggleSelectAllVisible()

	result, err := c.BulkUpdateStatus(ctx, "completed")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 2, client.updateCalls)

	for _, r := range client.records {
		assert.Equal(t, "completed", r.Status)
	}
}

func TestBulkRequiresSelection(t *testing.T) {
	c := newController(seeded())
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.BulkDelete(context.Background())
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestConfirmRemoveStateMachine(t *testing.T) {
	client := seeded()
	c := newController(client)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	// Confirm with nothing staged is an error.
	err := c.ConfirmRemove(ctx)
	assert.ErrorIs(t, err, ErrNoPendingRemove)

	// Cancel leaves the record alone.
	c.RequestRemove("r1")
	assert.Equal(t, "r1", c.PendingRemove())
	c.CancelRemove()
	assert.Empty(t, c.PendingRemove())
	assert.Equal(t, 0, client.deleteCalls)

	// Confirm deletes and refreshes.
	c.RequestRemove("r1")
	require.NoError(t, c.ConfirmRemove(ctx))
	assert.Equal(t, 1, client.deleteCalls)
	assert.Len(t, c.Records(), 2)
	assert.Empty(t, c.PendingRemove())
}
