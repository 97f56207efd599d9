package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Phase is the load state of the collection
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

var (
	ErrBulkInFlight    = errors.New("bulk operation already in flight")
	ErrNothingSelected = errors.New("no records selected")
	ErrNoPendingRemove = errors.New("no removal pending")
)

// Record is the minimal shape the controller needs from a resource.
type Record interface {
	RecordID() string
	SearchText() string
	StatusValue() string
}

// ListParams narrows a list call server-side.
type ListParams struct {
	Limit  int
	Status string
}

// ResourceClient is the transport the controller drives.
type ResourceClient[R Record] interface {
	List(ctx context.Context, params ListParams) ([]R, error)
	Create(ctx context.Context, record R) (R, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (R, error)
	Delete(ctx context.Context, id string) error
}

// BulkResult reports the outcome of a bulk mutation. Partial failure is
// normal: succeeded mutations stay applied and failures are reported per id.
type BulkResult struct {
	Succeeded int
	Failed    int
	Errors    map[string]string
}

// Config tunes a controller
type Config[R Record] struct {
	Client ResourceClient[R]
	// ListLimit caps refresh fetches. Defaults to 200.
	ListLimit int
	// ValidateCreate rejects a record before any network call. Optional.
	ValidateCreate func(R) error
	// RefreshInterval drives auto-refresh. Defaults to 10s.
	RefreshInterval time.Duration
	Logger          *zerolog.Logger
}

// Controller owns one admin resource collection: load state, the filtered
// view, row selection, two-step removal and bulk mutations. All methods are
// safe for concurrent use.
type Controller[R Record] struct {
	client         ResourceClient[R]
	listLimit      int
	validateCreate func(R) error
	interval       time.Duration
	logger         zerolog.Logger

	mu            sync.Mutex
	phase         Phase
	records       []R
	filter        Filter
	selected      map[string]struct{}
	pendingRemove string
	lastRefresh   time.Time
	lastErr       error
	refreshing    bool
	bulkInFlight  bool

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// New creates a controller around the given client.
func New[R Record](cfg Config[R]) *Controller[R] {
	limit := cfg.ListLimit
	if limit <= 0 {
		limit = 200
	}
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Controller[R]{
		client:         cfg.Client,
		listLimit:      limit,
		validateCreate: cfg.ValidateCreate,
		interval:       interval,
		logger:         logger,
		phase:          PhaseIdle,
		selected:       make(map[string]struct{}),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Phase returns the current load phase.
func (c *Controller[R]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Err returns the last refresh or mutation error, if any.
func (c *Controller[R]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// LastRefresh returns when the collection last loaded successfully.
func (c *Controller[R]) LastRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefresh
}

// Records returns the full unfiltered collection from the last good refresh.
func (c *Controller[R]) Records() []R {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]R, len(c.records))
	copy(out, c.records)
	return out
}

// Visible returns the collection narrowed by the current filter.
func (c *Controller[R]) Visible() []R {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Apply(c.records, c.filter)
}

// Filter returns the active filter.
func (c *Controller[R]) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter replaces the filter and clears the selection, which may otherwise
// reference rows no longer visible.
func (c *Controller[R]) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	c.selected = make(map[string]struct{})
}

// Refresh reloads the collection. A failed refresh keeps the last good
// records so the view never blanks out under transient errors.
func (c *Controller[R]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		c.mu.Unlock()
		return nil
	}
	c.refreshing = true
	c.phase = PhaseLoading
	limit := c.listLimit
	c.mu.Unlock()

	records, err := c.client.List(ctx, ListParams{Limit: limit})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing = false
	if err != nil {
		c.phase = PhaseError
		c.lastErr = err
		c.logger.Warn().Err(err).Msg("refresh failed, keeping last good records")
		return err
	}
	c.phase = PhaseLoaded
	c.lastErr = nil
	c.lastRefresh = time.Now()
	c.records = records
	c.selected = make(map[string]struct{})
	c.pendingRemove = ""
	return nil
}

// Create validates locally, then creates on the server and refreshes.
// Validation failures never reach the network.
func (c *Controller[R]) Create(ctx context.Context, record R) error {
	if c.validateCreate != nil {
		if err := c.validateCreate(record); err != nil {
			return err
		}
	}
	if _, err := c.client.Create(ctx, record); err != nil {
		c.setErr(err)
		return err
	}
	return c.Refresh(ctx)
}

// Update patches one record on the server and refreshes.
func (c *Controller[R]) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	if _, err := c.client.Update(ctx, id, patch); err != nil {
		c.setErr(err)
		return err
	}
	return c.Refresh(ctx)
}

// RequestRemove stages a record for deletion. Nothing is deleted until
// ConfirmRemove.
func (c *Controller[R]) RequestRemove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingRemove = id
}

// PendingRemove returns the staged record id, or empty.
func (c *Controller[R]) PendingRemove() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingRemove
}

// CancelRemove clears the staged deletion.
func (c *Controller[R]) CancelRemove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingRemove = ""
}

// ConfirmRemove deletes the staged record and refreshes.
func (c *Controller[R]) ConfirmRemove(ctx context.Context) error {
	c.mu.Lock()
	id := c.pendingRemove
	c.pendingRemove = ""
	c.mu.Unlock()
	if id == "" {
		return ErrNoPendingRemove
	}

	if err := c.client.Delete(ctx, id); err != nil {
		c.setErr(err)
		return err
	}
	return c.Refresh(ctx)
}

// ToggleSelect flips one row's selection.
func (c *Controller[R]) ToggleSelect(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

// ToggleSelectAllVisible selects every visible row, or clears the selection
// when every visible row is already selected.
func (c *Controller[R]) ToggleSelectAllVisible() {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := Apply(c.records, c.filter)
	allSelected := len(visible) > 0
	for _, r := range visible {
		if _, ok := c.selected[r.RecordID()]; !ok {
			allSelected = false
			break
		}
	}

	if allSelected {
		c.selected = make(map[string]struct{})
		return
	}
	for _, r := range visible {
		c.selected[r.RecordID()] = struct{}{}
	}
}

// SelectedIDs returns the selected row ids in visible order.
func (c *Controller[R]) SelectedIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedIDsLocked()
}

func (c *Controller[R]) selectedIDsLocked() []string {
	ids := make([]string, 0, len(c.selected))
	for _, r := range Apply(c.records, c.filter) {
		if _, ok := c.selected[r.RecordID()]; ok {
			ids = append(ids, r.RecordID())
		}
	}
	return ids
}

// ClearSelection deselects every row.
func (c *Controller[R]) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = make(map[string]struct{})
}

// BulkUpdateStatus patches every selected record to the given status. One
// bulk operation runs at a time.
func (c *Controller[R]) BulkUpdateStatus(ctx context.Context, status string) (*BulkResult, error) {
	return c.bulk(ctx, func(id string) error {
		_, err := c.client.Update(ctx, id, map[string]interface{}{"status": status})
		return err
	})
}

// BulkDelete removes every selected record.
func (c *Controller[R]) BulkDelete(ctx context.Context) (*BulkResult, error) {
	return c.bulk(ctx, func(id string) error {
		return c.client.Delete(ctx, id)
	})
}

func (c *Controller[R]) bulk(ctx context.Context, op func(id string) error) (*BulkResult, error) {
	c.mu.Lock()
	if c.bulkInFlight {
		c.mu.Unlock()
		return nil, ErrBulkInFlight
	}
	ids := c.selectedIDsLocked()
	if len(ids) == 0 {
		c.mu.Unlock()
		return nil, ErrNothingSelected
	}
	c.bulkInFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.bulkInFlight = false
		c.mu.Unlock()
	}()

	result := &BulkResult{Errors: make(map[string]string)}
	for _, id := range ids {
		if err := op(id); err != nil {
			result.Failed++
			result.Errors[id] = err.Error()
			c.logger.Warn().Err(err).Str("id", id).Msg("bulk operation failed for record")
			continue
		}
		result.Succeeded++
	}

	// One refresh regardless of how many mutations ran.
	if err := c.Refresh(ctx); err != nil {
		return result, err
	}
	return result, nil
}

// StartAutoRefresh refreshes on a fixed interval until Close. Ticks that
// arrive while a refresh is still running are dropped, not queued. Repeat
// calls are no-ops; one ticker loop runs per controller.
func (c *Controller[R]) StartAutoRefresh(ctx context.Context) {
	c.startOnce.Do(func() { go c.autoRefreshLoop(ctx) })
}

func (c *Controller[R]) autoRefreshLoop(ctx context.Context) {
	defer close(c.done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				c.logger.Debug().Err(err).Msg("auto-refresh failed")
			}
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Close stops auto-refresh. Safe to call more than once.
func (c *Controller[R]) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Controller[R]) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}
