// Package query owns the filter and pagination state for a product listing
// view. It keeps that state synchronized with a shareable URL and drives
// fetches against the catalog, suppressing stale responses.
package query

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	"github.com/marves/pcpartstore/pkg/pagination"
)

// DefaultPageSize is the product grid page size.
const DefaultPageSize = 9

// Lister is the catalog operation the controller drives. The catalog
// service satisfies it.
type Lister interface {
	ListProducts(ctx context.Context, filter repository.Filter) (*pagination.Result[domain.Product], error)
}

// Navigator abstracts the shareable URL. Push replaces the current query
// string; Current reads it back.
type Navigator interface {
	Push(query url.Values)
	Current() url.Values
}

// Snapshot is an immutable view of the controller state handed to
// subscribers. Result is nil until the first fetch completes.
type Snapshot struct {
	Filter  FilterState
	Result  *pagination.Result[domain.Product]
	Loading bool
	Err     error
}

// Controller reconciles three inputs through one state reducer: local
// intent (SetFilter, SetPage), external navigation events
// (HandleNavigation), and fetch completions. Each input is guarded by an
// equality check so the URL/state sync can never loop: local changes push
// the URL only when the canonical query string differs, and navigation
// events update state only when the decoded filter differs.
type Controller struct {
	lister    Lister
	navigator Navigator
	pageSize  int
	logger    *slog.Logger

	mu      sync.Mutex
	filter  FilterState
	result  *pagination.Result[domain.Product]
	loading bool
	err     error
	seq     uint64
	cancel  context.CancelFunc
	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates a controller. pageSize <= 0 selects DefaultPageSize.
func New(lister Lister, navigator Navigator, pageSize int, logger *slog.Logger) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		lister:    lister,
		navigator: navigator,
		pageSize:  pageSize,
		logger:    logger,
		filter:    DefaultFilterState(),
		subs:      make(map[int]func(Snapshot)),
	}
}

// Start derives the initial filter state from the current URL and triggers
// the first fetch.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.filter = Decode(c.navigator.Current())
	c.startFetchLocked(ctx)
	subs, snap := c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// SetFilter merges a partial filter change into the current state. Any
// actual change resets the page to 1, pushes the canonical URL, and
// triggers a fetch. A patch that changes nothing is a complete no-op.
func (c *Controller) SetFilter(ctx context.Context, patch Patch) {
	c.mu.Lock()
	next := patch.apply(c.filter)
	if next == c.filter {
		c.mu.Unlock()
		return
	}
	next.Page = 1
	c.filter = next
	c.pushURLLocked()
	c.startFetchLocked(ctx)
	subs, snap := c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// SetPage changes the current page. The page is clamped to the range of
// the last known result; setting the current page again is a no-op.
func (c *Controller) SetPage(ctx context.Context, page int) {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	if c.result != nil {
		page = pagination.ClampPage(page, c.result.TotalPages)
	}
	if page == c.filter.Page {
		c.mu.Unlock()
		return
	}
	c.filter.Page = page
	c.pushURLLocked()
	c.startFetchLocked(ctx)
	subs, snap := c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// HandleNavigation feeds an externally-observed URL change (back/forward,
// shared link) into the reducer. The state is updated only when the decoded
// filter differs from the current one, and the URL is never pushed back,
// so a navigation event can never echo.
func (c *Controller) HandleNavigation(ctx context.Context, q url.Values) {
	decoded := Decode(q)
	c.mu.Lock()
	if decoded == c.filter {
		c.mu.Unlock()
		return
	}
	c.filter = decoded
	c.startFetchLocked(ctx)
	subs, snap := c.subscribersLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// Subscribe registers a callback invoked after every state change. The
// returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// State returns the current snapshot.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// CacheKey identifies the current request tuple for downstream
// deduplication.
func (c *Controller) CacheKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.CacheKey(c.pageSize)
}

// pushURLLocked emits the canonical query string, but only when it differs
// from what the navigator already shows.
func (c *Controller) pushURLLocked() {
	encoded := c.filter.Encode()
	if encoded.Encode() == c.navigator.Current().Encode() {
		return
	}
	c.navigator.Push(encoded)
}

// startFetchLocked supersedes any in-flight fetch and starts a new one for
// the current filter. A fetch that finishes after a newer one has started
// is discarded, so the latest request always wins.
func (c *Controller) startFetchLocked(ctx context.Context) {
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.seq++
	seq := c.seq
	c.loading = true
	c.err = nil
	filter := c.filter

	go func() {
		result, err := c.lister.ListProducts(fetchCtx, filter.repositoryFilter(c.pageSize))

		c.mu.Lock()
		if seq != c.seq {
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err != nil {
			c.err = err
			if c.logger != nil {
				c.logger.ErrorContext(fetchCtx, "product fetch failed",
					slog.String("cache_key", filter.CacheKey(c.pageSize)),
					slog.String("error", err.Error()),
				)
			}
		} else {
			c.result = result
			// The catalog clamps pages past the end; adopt the served
			// page and re-canonicalize the URL.
			if result.Page != c.filter.Page {
				c.filter.Page = result.Page
				c.pushURLLocked()
			}
		}
		subs, snap := c.subscribersLocked()
		c.mu.Unlock()
		notify(subs, snap)
	}()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Filter:  c.filter,
		Result:  c.result,
		Loading: c.loading,
		Err:     c.err,
	}
}

func (c *Controller) subscribersLocked() ([]func(Snapshot), Snapshot) {
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs, c.snapshotLocked()
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
