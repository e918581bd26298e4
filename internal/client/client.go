// Package client talks to the ledger API on behalf of the admin console.
// Every failed call returns an *errors.Failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/errors"
	"gold-ledger/internal/models"
	"gold-ledger/internal/pagination"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 15 * time.Second
	traceIDHeader  = "X-Trace-ID"
)

type traceKey struct{}

// WithTraceID makes every request sent with ctx carry id as its X-Trace-ID.
// The API keeps it in its logs and error bodies.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// traceTransport stamps every request with a JSON content type and a trace ID,
// taken from the context when WithTraceID set one
type traceTransport struct {
	base http.RoundTripper
}

func (t *traceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get(traceIDHeader) == "" {
		id, _ := req.Context().Value(traceKey{}).(string)
		if id == "" {
			id = uuid.NewString()
		}
		req.Header.Set(traceIDHeader, id)
	}

	return t.base.RoundTrip(req)
}

// envelope is the success body every endpoint answers with
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// Client is a cookie-session API client. The session cookie set by Login or
// Register is replayed on every later call.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *breaker
	logger  *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBreaker replaces the default circuit breaker settings
func WithBreaker(cfg BreakerConfig) Option {
	return func(c *Client) { c.breaker = newBreaker(cfg) }
}

// New creates a client for the API at baseURL
func New(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &traceTransport{base: http.DefaultTransport},
			Jar:       jar,
			Timeout:   timeout,
		},
		breaker: newBreaker(DefaultBreakerConfig()),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) buildRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

// call sends one request and decodes the data member of a 2xx body into out.
// out may be nil when the caller only needs the status.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.buildRequest(ctx, method, path, query, body)
	if err != nil {
		return errors.NetworkFailure(err)
	}

	if !c.breaker.allow() {
		return errors.NetworkFailure(ErrAPIUnavailable)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			c.breaker.abandon()
			return errors.NetworkFailure(err)
		}
		c.logger.Warn("API request failed",
			"method", method,
			"path", path,
			"error", err,
		)
		c.recordFailure()
		return errors.NetworkFailure(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return errors.NetworkFailure(fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode >= 500 {
		c.recordFailure()
	} else {
		c.breaker.recordSuccess()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failure := errors.FailureFromResponse(resp.StatusCode, payload)
		if failure.TraceID == "" {
			failure.TraceID = resp.Header.Get(traceIDHeader)
		}
		c.logger.Debug("API request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"kind", failure.Kind.String(),
			"code", failure.Code,
			"trace_id", failure.TraceID,
		)
		return failure
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.NetworkFailure(fmt.Errorf("decode %s %s response: %w", method, path, err))
	}
	return nil
}

func (c *Client) recordFailure() {
	if c.breaker.recordFailure() {
		c.logger.Warn("API circuit opened", "reset_after", c.breaker.cfg.ResetTimeout)
	}
}

func pageQuery(page pagination.PageRequest) url.Values {
	return url.Values{
		"page": []string{strconv.Itoa(page.Page)},
		"size": []string{strconv.Itoa(page.Size)},
	}
}

// Login signs in and keeps the session cookie
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp envelope[dto.AuthResponse]
	if err := c.call(ctx, http.MethodPost, "/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Register creates an admin and keeps the new session cookie
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var resp envelope[dto.AuthResponse]
	if err := c.call(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Logout revokes the session on the server. The cookie jar drops the cleared cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me returns the signed-in admin
func (c *Client) Me(ctx context.Context) (*models.AdminProfile, error) {
	var resp envelope[models.AdminProfile]
	if err := c.call(ctx, http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// QueryTransactions runs a compiled filter against one page of transactions
func (c *Client) QueryTransactions(ctx context.Context, clauses []models.FilterClause, page pagination.PageRequest) (*models.PageResult[models.Transaction], error) {
	if clauses == nil {
		clauses = []models.FilterClause{}
	}

	var resp envelope[dto.TransactionPage]
	if err := c.call(ctx, http.MethodPost, "/transactions/filter", pageQuery(page), clauses, &resp); err != nil {
		return nil, err
	}
	return &models.PageResult[models.Transaction]{Items: resp.Data.Transactions, TotalCount: resp.Data.Count}, nil
}

func (c *Client) ListStores(ctx context.Context, page pagination.PageRequest) (*models.PageResult[models.Store], error) {
	var resp envelope[dto.StorePage]
	if err := c.call(ctx, http.MethodGet, "/stores/", pageQuery(page), nil, &resp); err != nil {
		return nil, err
	}
	return &models.PageResult[models.Store]{Items: resp.Data.Stores, TotalCount: resp.Data.Count}, nil
}

func (c *Client) ListCustomers(ctx context.Context, page pagination.PageRequest) (*models.PageResult[models.Customer], error) {
	var resp envelope[dto.CustomerPage]
	if err := c.call(ctx, http.MethodGet, "/customers/", pageQuery(page), nil, &resp); err != nil {
		return nil, err
	}
	return &models.PageResult[models.Customer]{Items: resp.Data.Customers, TotalCount: resp.Data.Count}, nil
}

// Aggregate fetches the dashboard totals for the last windowDays days
func (c *Client) Aggregate(ctx context.Context, windowDays int) (*models.WindowReport, error) {
	query := url.Values{"duration": []string{strconv.Itoa(windowDays)}}

	var resp envelope[models.WindowReport]
	if err := c.call(ctx, http.MethodGet, "/dashboard/", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	var resp envelope[models.Transaction]
	if err := c.call(ctx, http.MethodPost, "/transactions/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) CreateStore(ctx context.Context, req dto.CreateStoreRequest) (*models.Store, error) {
	var resp envelope[models.Store]
	if err := c.call(ctx, http.MethodPost, "/stores", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*models.Customer, error) {
	var resp envelope[models.Customer]
	if err := c.call(ctx, http.MethodPost, "/customers/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
