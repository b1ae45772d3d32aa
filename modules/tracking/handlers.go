package tracking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailtrack/handler"
	"github.com/dmitrymomot/mailtrack/modules/ui"
	"github.com/dmitrymomot/mailtrack/pkg/binder"
	"github.com/dmitrymomot/mailtrack/pkg/cache"
	"github.com/dmitrymomot/mailtrack/pkg/logger"
	"github.com/dmitrymomot/mailtrack/pkg/session"
	"github.com/dmitrymomot/mailtrack/pkg/validator"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

// DefaultRefreshInterval is how often the open admin page reloads its table.
const DefaultRefreshInterval = 30 * time.Second

// Handlers serves the admin tracking page and its actions.
type Handlers struct {
	api          Backend
	controllers  *cache.Registry[*Controller]
	log          *slog.Logger
	prefix       string
	interval     time.Duration
	nav          []ui.NavItem
	now          func() time.Time
	errorHandler handler.ErrorHandler[handler.Context]
}

type Option func(*Handlers)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handlers) {
		if l != nil {
			h.log = l
		}
	}
}

// WithPrefix sets the path the routes are mounted under. Defaults to "/admin".
func WithPrefix(prefix string) Option {
	return func(h *Handlers) { h.prefix = prefix }
}

// WithRefreshInterval sets the background refresh period. Non-positive values are ignored.
func WithRefreshInterval(d time.Duration) Option {
	return func(h *Handlers) {
		if d > 0 {
			h.interval = d
		}
	}
}

func WithNav(items ...ui.NavItem) Option {
	return func(h *Handlers) { h.nav = items }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		if now != nil {
			h.now = now
		}
	}
}

func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) Option {
	return func(h *Handlers) {
		if eh != nil {
			h.errorHandler = eh
		}
	}
}

// NewHandlers keeps one Controller per browser session in controllers.
func NewHandlers(api Backend, controllers *cache.Registry[*Controller], opts ...Option) *Handlers {
	h := &Handlers{
		api:         api,
		controllers: controllers,
		log:         slog.Default(),
		prefix:      "/admin",
		interval:    DefaultRefreshInterval,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.errorHandler == nil {
		h.errorHandler = handler.NewErrorHandler(h.log, ui.ErrorHandlerConfig())
	}
	return h
}

func (h *Handlers) newController() *Controller {
	return NewController(h.api, WithControllerLogger(h.log))
}

// controller returns the session's controller. Requests without a session
// get a throwaway one.
func (h *Handlers) controller(ctx context.Context) *Controller {
	id := session.IDFromContext(ctx)
	if id == "" {
		return h.newController()
	}
	return h.controllers.GetOrCreate(id, h.newController)
}

// Routes returns the admin router.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	binders := []handler.Bind{binder.Signals(), binder.Form(), binder.Query(), binder.Path(chi.URLParam)}

	r.Get("/", wrap(h.page, h.errorHandler))
	r.Get("/tracking", wrap(h.load, h.errorHandler, binders...))
	r.Get("/tracking/page/{page}", wrap(h.goToPage, h.errorHandler, binders...))
	r.Post("/tracking/search", wrap(h.search, h.errorHandler, binders...))
	r.Post("/tracking/search/clear", wrap(h.clearSearch, h.errorHandler))
	r.Post("/tracking/refresh", wrap(h.refresh, h.errorHandler))
	r.Get("/tracking/stream", wrap(h.stream, h.errorHandler))
	r.Get("/tracking/{id}/details", wrap(h.details, h.errorHandler, binders...))
	r.Get("/clear-database", wrap(h.clearDatabaseDialog, h.errorHandler))
	r.Post("/clear-database", wrap(h.clearDatabase, h.errorHandler, binders...))

	return r
}

func wrap[R any](fn handler.HandlerFunc[handler.Context, R], eh handler.ErrorHandler[handler.Context], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](eh),
	)
}

type (
	noRequest   struct{}
	loadRequest struct {
		Page   int    `query:"page"`
		Search string `query:"search"`
	}
	pageRequest struct {
		Page int `path:"page"`
	}
	searchRequest struct {
		Search string `json:"search" form:"search"`
	}
	detailsRequest struct {
		ID    string `path:"id"`
		Email string `query:"email"`
	}
	clearRequest struct {
		Confirmation string `json:"confirmation" form:"confirmation"`
	}
)

// page renders the admin document and starts a fresh table state for this page load.
func (h *Handlers) page(ctx handler.Context, _ noRequest) handler.Response {
	if id := session.IDFromContext(ctx); id != "" {
		h.controllers.Put(id, h.newController())
	}
	return handler.Templ(AdminPage(h.prefix, h.nav))
}

// streamLoad shows the loading row, runs load and patches its outcome.
// A stale load re-renders the latest outcome once no newer user load is
// pending, so the loading row is always replaced.
func (h *Handlers) streamLoad(ctrl *Controller, load func(ctx context.Context) (*tracker.TrackingPage, error), after ...handler.TemplPatch) handler.Response {
	return handler.SSE(func(stream handler.StreamContext) error {
		if err := stream.SendComponent(LoadingBody(), handler.WithTarget("#"+TableBodyID), handler.WithPatchMode(handler.PatchOuter)); err != nil {
			return err
		}

		page, err := load(stream)
		if errors.Is(err, ErrStaleResponse) {
			patches := h.settledPatches(ctrl)
			if len(patches) == 0 {
				return nil
			}
			return stream.SendMultiple(patches...)
		}
		if err != nil {
			h.log.WarnContext(stream, "failed to load tracking data", logger.Error(err), logger.Component("tracking"))
			return stream.SendMultiple(errorPatch(err))
		}

		return stream.SendMultiple(append(ListPatches(h.prefix, page), after...)...)
	})
}

// settledPatches renders the latest applied outcome. It returns nothing while
// a user load is still in flight, since that load patches the table itself.
func (h *Handlers) settledPatches(ctrl *Controller) []handler.TemplPatch {
	out, settled := ctrl.Latest()
	switch {
	case !settled:
		return nil
	case out.Err != nil:
		return []handler.TemplPatch{errorPatch(out.Err)}
	case out.Page != nil:
		return ListPatches(h.prefix, out.Page)
	}
	return nil
}

func errorPatch(err error) handler.TemplPatch {
	return handler.Patch(ErrorBody(tracker.Message(err)), handler.WithTarget("#"+TableBodyID), handler.WithPatchMode(handler.PatchOuter))
}

func (h *Handlers) load(ctx handler.Context, req loadRequest) handler.Response {
	ctrl := h.controller(ctx)
	return h.streamLoad(ctrl, func(c context.Context) (*tracker.TrackingPage, error) {
		return ctrl.LoadPage(c, req.Page, req.Search)
	})
}

func (h *Handlers) goToPage(ctx handler.Context, req pageRequest) handler.Response {
	ctrl := h.controller(ctx)
	if !ctrl.CanGoTo(req.Page) {
		return handler.TemplMulti()
	}
	return h.streamLoad(ctrl, func(c context.Context) (*tracker.TrackingPage, error) {
		return ctrl.GoToPage(c, req.Page)
	})
}

func (h *Handlers) search(ctx handler.Context, req searchRequest) handler.Response {
	ctrl := h.controller(ctx)
	return h.streamLoad(ctrl, func(c context.Context) (*tracker.TrackingPage, error) {
		return ctrl.Search(c, req.Search)
	})
}

func (h *Handlers) clearSearch(ctx handler.Context, _ noRequest) handler.Response {
	ctrl := h.controller(ctx)
	return h.streamLoad(ctrl, func(c context.Context) (*tracker.TrackingPage, error) {
		return ctrl.ClearSearch(c)
	}, handler.Signals(map[string]any{"search": ""}))
}

func (h *Handlers) refresh(ctx handler.Context, _ noRequest) handler.Response {
	ctrl := h.controller(ctx)
	return h.streamLoad(ctrl, func(c context.Context) (*tracker.TrackingPage, error) {
		return ctrl.Refresh(c)
	}, ui.Notify(ui.LevelSuccess, "Data refreshed successfully!"))
}

// stream reloads the current page every interval until the client leaves.
// Failures are logged only; the table keeps its last good content.
func (h *Handlers) stream(_ handler.Context, _ noRequest) handler.Response {
	return handler.SSE(func(stream handler.StreamContext) error {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stream.Done():
				return nil
			case <-ticker.C:
				page, err := h.controller(stream).BackgroundRefresh(stream)
				switch {
				case errors.Is(err, ErrStaleResponse):
					continue
				case err != nil:
					h.log.WarnContext(stream, "background refresh failed",
						logger.Error(err),
						logger.Component("tracking"),
						logger.Event("background_refresh"),
					)
					continue
				}
				if err := stream.SendMultiple(ListPatches(h.prefix, page)...); err != nil {
					return err
				}
			}
		}
	})
}

func (h *Handlers) details(ctx handler.Context, req detailsRequest) handler.Response {
	ctrl := h.controller(ctx)
	return handler.SSE(func(stream handler.StreamContext) error {
		if err := stream.SendMultiple(DetailsLoading()); err != nil {
			return err
		}

		d, err := ctrl.Details(stream, req.ID)
		if err != nil {
			h.log.WarnContext(stream, "failed to load tracking details",
				logger.Error(err),
				logger.TrackingID(req.ID),
				logger.Component("tracking"),
			)
			return stream.SendMultiple(ui.ModalBody(DetailsModalID, DetailsError(tracker.Message(err))))
		}
		return stream.SendMultiple(ui.ModalBody(DetailsModalID, DetailsBody(d, req.Email, h.now())))
	})
}

func (h *Handlers) clearDatabaseDialog(_ handler.Context, _ noRequest) handler.Response {
	return handler.TemplMulti(ClearDatabaseModal(h.prefix))
}

func (h *Handlers) clearDatabase(ctx handler.Context, req clearRequest) handler.Response {
	res, err := h.controller(ctx).ClearDatabase(ctx, req.Confirmation)
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return handler.TemplMulti(ui.Notify(ui.LevelError, verrs.Get("confirmation")[0]))
	}
	if err != nil {
		return handler.TemplMulti(ui.Notify(ui.LevelError, "Failed to clear database: "+tracker.Message(err)))
	}

	patches := []handler.TemplPatch{ui.CloseModal(ClearModalID)}
	switch {
	case errors.Is(res.Reload.Err, ErrStaleResponse):
		patches = append(patches, h.settledPatches(h.controller(ctx))...)
	case res.Reload.Err != nil:
		h.log.WarnContext(ctx, "failed to reload tracking data after clear", logger.Error(res.Reload.Err), logger.Component("tracking"))
		patches = append(patches, errorPatch(res.Reload.Err))
	default:
		patches = append(patches, ListPatches(h.prefix, res.Reload.Page)...)
	}
	patches = append(patches, ui.Notify(ui.LevelSuccess, "All tracking data has been deleted"))
	return handler.TemplMulti(patches...)
}
