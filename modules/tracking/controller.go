package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/mailtrack/pkg/logger"
	"github.com/dmitrymomot/mailtrack/pkg/validator"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

// Backend is the part of the tracker client the controller needs.
type Backend interface {
	ListTracking(ctx context.Context, page int, search string) (*tracker.TrackingPage, error)
	TrackingDetails(ctx context.Context, trackingID string) (*tracker.TrackingDetails, error)
	ClearDatabase(ctx context.Context, confirmation string) (string, error)
}

// State is the position of the table.
type State struct {
	CurrentPage   int
	TotalPages    int
	CurrentSearch string
}

// Outcome is the last load result that reached the table.
type Outcome struct {
	Page *tracker.TrackingPage
	Err  error
}

// ClearResult is a successful clear followed by the reload of page 1.
// Reload carries the reload outcome, with Err set when it failed or went stale.
type ClearResult struct {
	Message string
	Reload  Outcome
}

// Controller owns the table state of one page load. It is safe for
// concurrent use: the user and the background refresh share it.
// Only user loads take a generation, so a background refresh never
// supersedes a user action.
type Controller struct {
	api Backend
	log *slog.Logger

	mu      sync.Mutex
	state   State
	issued  uint64
	pending int
	latest  Outcome
}

type ControllerOption func(*Controller)

func WithControllerLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController starts on page 1 of 1 with no search.
func NewController(api Backend, opts ...ControllerOption) *Controller {
	c := &Controller{
		api:   api,
		log:   slog.Default(),
		state: State{CurrentPage: 1, TotalPages: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Latest returns the outcome of the most recent applied load. settled is
// false while a user load is still in flight.
func (c *Controller) Latest() (out Outcome, settled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest, c.pending == 0
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	c.pending++
	return c.issued
}

func (c *Controller) apply(result *tracker.TrackingPage, search string) {
	c.state = State{
		CurrentPage:   max(result.CurrentPage, 1),
		TotalPages:    max(result.Pages, 1),
		CurrentSearch: search,
	}
	c.latest = Outcome{Page: result}
}

// LoadPage fetches page of the list filtered by search. On success the
// state moves to the page reported by the backend. On failure the state is
// left untouched. Either result is replaced by ErrStaleResponse when a newer
// load started in the meantime.
func (c *Controller) LoadPage(ctx context.Context, page int, search string) (*tracker.TrackingPage, error) {
	if page < 1 {
		page = 1
	}
	gen := c.begin()

	result, err := c.api.ListTracking(ctx, page, search)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--
	if gen != c.issued {
		c.log.DebugContext(ctx, "discarding stale tracking page",
			logger.Component("tracking"),
			logger.Page(page),
			logger.Search(search),
			slog.Uint64("generation", gen),
			slog.Uint64("latest", c.issued),
		)
		return nil, ErrStaleResponse
	}
	if err != nil {
		c.latest = Outcome{Err: err}
		return nil, err
	}

	c.apply(result, search)
	return result, nil
}

// CanGoTo reports whether page is a valid move from the current page.
func (c *Controller) CanGoTo(page int) bool {
	st := c.State()
	return page >= 1 && page <= st.TotalPages && page != st.CurrentPage
}

// GoToPage loads page with the current search. Pages outside 1..TotalPages
// and the current page fail with ErrNavigationIgnored without a request.
func (c *Controller) GoToPage(ctx context.Context, page int) (*tracker.TrackingPage, error) {
	if !c.CanGoTo(page) {
		return nil, ErrNavigationIgnored
	}
	return c.LoadPage(ctx, page, c.State().CurrentSearch)
}

// Search loads the first page filtered by the trimmed term.
func (c *Controller) Search(ctx context.Context, term string) (*tracker.TrackingPage, error) {
	return c.LoadPage(ctx, 1, strings.TrimSpace(term))
}

// ClearSearch loads the first page without a filter.
func (c *Controller) ClearSearch(ctx context.Context) (*tracker.TrackingPage, error) {
	return c.LoadPage(ctx, 1, "")
}

// Refresh reloads the current page and search.
func (c *Controller) Refresh(ctx context.Context) (*tracker.TrackingPage, error) {
	st := c.State()
	return c.LoadPage(ctx, st.CurrentPage, st.CurrentSearch)
}

// BackgroundRefresh reloads the current page and search without taking a
// generation. It is skipped with ErrStaleResponse while a user load is in
// flight, and its result is dropped when a user load started meanwhile.
// A failure leaves state and the latest outcome untouched.
func (c *Controller) BackgroundRefresh(ctx context.Context) (*tracker.TrackingPage, error) {
	c.mu.Lock()
	if c.pending > 0 {
		c.mu.Unlock()
		return nil, ErrStaleResponse
	}
	st, gen := c.state, c.issued
	c.mu.Unlock()

	result, err := c.api.ListTracking(ctx, st.CurrentPage, st.CurrentSearch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.issued || c.pending > 0 {
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}
	c.apply(result, st.CurrentSearch)
	return result, nil
}

// Details fetches a record with its open history.
func (c *Controller) Details(ctx context.Context, trackingID string) (*tracker.TrackingDetails, error) {
	if strings.TrimSpace(trackingID) == "" {
		return nil, ErrMissingTrackingID
	}
	return c.api.TrackingDetails(ctx, trackingID)
}

// ClearDatabase deletes all tracking data once confirmation matches
// tracker.ClearConfirmation exactly, then reloads the first unfiltered page.
// A mismatch is a validation error and sends nothing. The returned error
// covers only the clear itself; a reload failure is reported in the result.
func (c *Controller) ClearDatabase(ctx context.Context, confirmation string) (ClearResult, error) {
	if err := validator.Apply(
		validator.Equals("confirmation", confirmation, tracker.ClearConfirmation).
			WithMessage(fmt.Sprintf("Please type %q to confirm", tracker.ClearConfirmation)),
	); err != nil {
		return ClearResult{}, err
	}

	msg, err := c.api.ClearDatabase(ctx, confirmation)
	if err != nil {
		return ClearResult{}, err
	}
	c.log.InfoContext(ctx, "tracking data cleared", logger.Component("tracking"), logger.Event("clear_database"))

	page, err := c.LoadPage(ctx, 1, "")
	return ClearResult{Message: msg, Reload: Outcome{Page: page, Err: err}}, nil
}
