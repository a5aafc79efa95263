// Package submission runs the add-airport workflow: form editing, validation, the create
// call held on screen for a minimum duration, and reconciliation of the list afterwards.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/notify"
)

const (
	DefaultMinDisplay  = 3 * time.Second
	DefaultSuccessHold = 1500 * time.Millisecond
)

type State string

const (
	StateEditing     State = "editing"
	StateValidating  State = "validating"
	StateSubmitting  State = "submitting"
	StateReconciling State = "reconciling"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// Creator is the remote create endpoint.
type Creator interface {
	Create(ctx context.Context, in models.AirportInput) (models.Airport, error)
}

// Refresher re-fetches the visible list page.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Config struct {
	Creator   Creator
	Refresher Refresher
	Notifier  notify.Sink
	Logger    *slog.Logger
	// MinDisplay is the shortest time the loading indicator stays up.
	MinDisplay time.Duration
	// SuccessHold is how long the success affordance shows before the form resets.
	SuccessHold time.Duration
}

// Snapshot is a read-only view of the workflow for rendering.
type Snapshot struct {
	State       State
	Open        bool
	Tab         Tab
	Draft       Draft
	Errors      FieldErrors
	Submitting  bool
	ShowSuccess bool
	Err         error
}

type Controller struct {
	creator     Creator
	refresher   Refresher
	sink        notify.Sink
	logger      *slog.Logger
	changes     *notify.Broadcaster
	minDisplay  time.Duration
	successHold time.Duration

	mu          sync.Mutex
	state       State
	open        bool
	tab         Tab
	draft       Draft
	errors      FieldErrors
	submitting  bool
	showSuccess bool
	lastErr     error
}

func New(cfg Config) *Controller {
	sink := cfg.Notifier
	if sink == nil {
		sink = notify.Discard{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	minDisplay := cfg.MinDisplay
	if minDisplay <= 0 {
		minDisplay = DefaultMinDisplay
	}
	hold := cfg.SuccessHold
	if hold <= 0 {
		hold = DefaultSuccessHold
	}
	return &Controller{
		creator:     cfg.Creator,
		refresher:   cfg.Refresher,
		sink:        sink,
		logger:      logger,
		changes:     notify.NewBroadcaster(),
		minDisplay:  minDisplay,
		successHold: hold,
		state:       StateEditing,
		tab:         TabBasic,
		draft:       NewDraft(),
		errors:      FieldErrors{},
	}
}

func (c *Controller) Changes() *notify.Broadcaster {
	return c.changes
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:       c.state,
		Open:        c.open,
		Tab:         c.tab,
		Draft:       c.draft,
		Errors:      c.errors.clone(),
		Submitting:  c.submitting,
		ShowSuccess: c.showSuccess,
		Err:         c.lastErr,
	}
}

func (c *Controller) busy() bool {
	switch c.state {
	case StateValidating, StateSubmitting, StateReconciling, StateSucceeded:
		return true
	}
	return false
}

// OpenForm shows the form. A draft kept from a failed submission is shown again.
func (c *Controller) OpenForm() error {
	c.mu.Lock()
	if c.busy() {
		c.mu.Unlock()
		return models.ErrSubmitInProgress
	}
	c.open = true
	c.state = StateEditing
	c.mu.Unlock()
	c.changes.Broadcast()
	return nil
}

// CloseForm cancels the form and discards the draft.
func (c *Controller) CloseForm() error {
	c.mu.Lock()
	if c.busy() {
		c.mu.Unlock()
		return models.ErrSubmitInProgress
	}
	c.open = false
	c.draft = NewDraft()
	c.errors = FieldErrors{}
	c.tab = TabBasic
	c.mu.Unlock()
	c.changes.Broadcast()
	return nil
}

func (c *Controller) SetTab(tab Tab) error {
	if tab != TabBasic && tab != TabDetails {
		return fmt.Errorf("unknown form tab %q", tab)
	}
	c.mu.Lock()
	if c.busy() {
		c.mu.Unlock()
		return models.ErrSubmitInProgress
	}
	c.tab = tab
	c.mu.Unlock()
	c.changes.Broadcast()
	return nil
}

// EditField stores raw text for a field and clears that field's error.
func (c *Controller) EditField(f Field, value string) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return models.ErrFormClosed
	}
	if c.busy() {
		c.mu.Unlock()
		return models.ErrSubmitInProgress
	}
	if err := c.draft.set(f, value); err != nil {
		c.mu.Unlock()
		return err
	}
	delete(c.errors, f)
	c.mu.Unlock()
	c.changes.Broadcast()
	return nil
}

// Submit validates the draft and, when it is valid, closes the form, creates the airport
// and reconciles the list. It returns a *ValidationFailure without touching the network
// when validation fails, and the create error when the call fails; the draft is kept then.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return models.ErrFormClosed
	}
	if c.busy() {
		c.mu.Unlock()
		return models.ErrSubmitInProgress
	}
	c.state = StateValidating
	draft := c.draft
	c.mu.Unlock()

	if errs := Validate(draft); len(errs) > 0 {
		c.mu.Lock()
		c.errors = errs
		c.tab = TabFor(errs)
		c.state = StateEditing
		c.mu.Unlock()
		c.changes.Broadcast()

		c.logger.Debug("airport draft rejected", "fields", len(errs))
		return &ValidationFailure{Errors: errs.clone()}
	}

	c.mu.Lock()
	c.errors = FieldErrors{}
	c.open = false
	c.submitting = true
	c.lastErr = nil
	c.state = StateSubmitting
	c.mu.Unlock()
	c.changes.Broadcast()

	created, err := c.createWithMinimumDisplay(ctx, draft.Input())
	if err != nil {
		c.mu.Lock()
		c.submitting = false
		c.lastErr = err
		c.state = StateFailed
		c.mu.Unlock()
		c.changes.Broadcast()

		c.logger.Error("create airport failed", "key", draft.Key, "err", err)
		c.sink.Notify(notify.New(notify.KindError, "Could not add airport", failureReason(err)))

		c.mu.Lock()
		c.state = StateEditing
		c.mu.Unlock()
		c.changes.Broadcast()
		return err
	}

	c.mu.Lock()
	c.submitting = false
	c.state = StateReconciling
	c.mu.Unlock()
	c.changes.Broadcast()

	if err := c.refresher.Refresh(ctx); err != nil {
		// the list controller reports its own fetch failures
		c.logger.Warn("list refresh after create failed", "err", err)
	}
	c.sink.Notify(notify.New(notify.KindSuccess, "Airport added",
		fmt.Sprintf("%s (%s) was added to the catalog", created.Name, created.Key)))

	c.mu.Lock()
	c.showSuccess = true
	c.state = StateSucceeded
	c.mu.Unlock()
	c.changes.Broadcast()

	sleep(ctx, c.successHold)

	c.mu.Lock()
	c.showSuccess = false
	c.draft = NewDraft()
	c.tab = TabBasic
	c.state = StateEditing
	c.mu.Unlock()
	c.changes.Broadcast()
	return nil
}

// createWithMinimumDisplay returns only after both the create call and the minimum
// display timer are done, whichever is later.
func (c *Controller) createWithMinimumDisplay(ctx context.Context, in models.AirportInput) (models.Airport, error) {
	var (
		g       errgroup.Group
		created models.Airport
	)
	g.Go(func() error {
		var err error
		created, err = c.creator.Create(ctx, in)
		return err
	})
	g.Go(func() error {
		sleep(ctx, c.minDisplay)
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Airport{}, err
	}
	return created, nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func failureReason(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Something went wrong while adding the airport. Please try again."
}
