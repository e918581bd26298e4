package console

import (
	"context"
	"log/slog"
	"sync"

	apierrors "gold-ledger/internal/errors"
	"gold-ledger/internal/models"
	"gold-ledger/internal/pagination"
)

// Metrics receives list controller events
type Metrics interface {
	IncrementCounter(name string, labels map[string]string)
}

type fetchFunc[T any] func(ctx context.Context, clauses []models.FilterClause, page pagination.PageRequest) (*models.PageResult[T], error)

// request is one issued list query. It is kept so Retry can send it again unchanged.
type request struct {
	seq     uint64
	clauses []models.FilterClause
	page    pagination.PageRequest
}

// controller applies the shared list rules: one fetch per change, last request wins,
// unauthorized ends the session, other failures are kept for display with a retry.
type controller[T any] struct {
	name    string
	fetch   fetchFunc[T]
	session Session
	nav     Navigator
	logger  *slog.Logger
	metrics Metrics

	mu      sync.Mutex
	page    pagination.PageRequest
	seq     uint64
	last    *request
	result  *models.PageResult[T]
	failure *apierrors.Failure
	loading bool
}

func newController[T any](name string, fetch fetchFunc[T], session Session, nav Navigator, pageSize int, opts []Option) *controller[T] {
	c := &controller[T]{
		name:    name,
		fetch:   fetch,
		session: session,
		nav:     nav,
		logger:  slog.Default(),
		page:    pagination.First(pageSize),
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		c.logger = o.logger
	}
	c.metrics = o.metrics
	return c
}

// issue records req as the latest request and runs it
func (c *controller[T]) issue(ctx context.Context, req request) error {
	return c.complete(ctx, c.begin(req))
}

// begin stamps req as the latest request
func (c *controller[T]) begin(req request) request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked(req)
}

// beginCurrent stamps a request for the current page. Reading the page and taking the
// sequence number under one lock keeps the latest request on the latest page.
func (c *controller[T]) beginCurrent(clauses []models.FilterClause) request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked(request{clauses: clauses, page: c.page})
}

func (c *controller[T]) beginLocked(req request) request {
	c.seq++
	req.seq = c.seq
	c.last = &req
	c.loading = true
	return req
}

// complete runs a stamped request. A response that is no longer the latest when it
// arrives is dropped without touching state.
func (c *controller[T]) complete(ctx context.Context, req request) error {
	result, err := c.fetch(ctx, req.clauses, req.page)

	c.mu.Lock()
	if req.seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale list response", "list", c.name, "seq", req.seq)
		c.count("console.stale_response", "discarded")
		return nil
	}
	c.loading = false

	if err == nil {
		if result == nil {
			result = &models.PageResult[T]{}
		}
		c.result = result
		c.failure = nil
		c.mu.Unlock()
		c.count("console.list_query", "success")
		return nil
	}

	failure := apierrors.AsFailure(err)
	c.failure = failure
	c.mu.Unlock()

	c.count("console.list_query", failure.Kind.String())
	if failure.Kind == apierrors.KindUnauthorized {
		c.logger.Warn("Session rejected, returning to login", "list", c.name)
		c.session.Clear()
		c.nav.ToLogin()
	} else {
		c.logger.Error("Failed to load list", "list", c.name, "error", failure)
	}
	return failure
}

// retry re-sends the last issued request with its original clauses and page
func (c *controller[T]) retry(ctx context.Context) error {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()
	if last == nil {
		return nil
	}
	return c.issue(ctx, request{clauses: last.clauses, page: last.page})
}

// setPage reports whether the page changed
func (c *controller[T]) setPage(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 0 || page == c.page.Page {
		return false
	}
	c.page = c.page.WithPage(page)
	return true
}

func (c *controller[T]) setPageSize(size int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size <= 0 || size == c.page.Size {
		return false
	}
	c.page = pagination.ReducePageSize(c.page, size)
	return true
}

func (c *controller[T]) snapshot() PageView[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := PageView[T]{
		Page:    c.page,
		Loading: c.loading,
		Failure: c.failure,
	}
	if c.result != nil {
		v.Items = append([]T(nil), c.result.Items...)
		v.TotalCount = c.result.TotalCount
	}
	v.TotalPages = pagination.TotalPages(v.TotalCount, c.page.Size)
	v.PageWindow = pagination.Window(c.page.Page, v.TotalPages, pagination.WindowSpan)
	v.Retryable = c.failure != nil && c.failure.Retryable()
	return v
}

func (c *controller[T]) count(name, status string) {
	if c.metrics == nil {
		return
	}
	c.metrics.IncrementCounter(name, map[string]string{"list": c.name, "status": status})
}

// PageView is a point-in-time copy of a list's state for rendering
type PageView[T any] struct {
	Items      []T
	TotalCount int64
	TotalPages int
	Page       pagination.PageRequest
	PageWindow []int
	Loading    bool
	Failure    *apierrors.Failure
	Retryable  bool
}

type options struct {
	logger  *slog.Logger
	metrics Metrics
}

// Option configures a list or dashboard view
type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithMetrics(metrics Metrics) Option {
	return func(o *options) { o.metrics = metrics }
}
