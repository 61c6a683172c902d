package dataapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/dmitrijs2005/neoportfolio/internal/common"
	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/metrics"
)

const maxErrorBody = 512

// BreakerSettings tune the circuit breaker in front of the remote API.
type BreakerSettings struct {
	MinRequests      uint32
	FailureThreshold float64
	Interval         time.Duration
	Timeout          time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MinRequests:      5,
		FailureThreshold: 0.8,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
	}
}

// HTTPClient implements Client over net/http behind a gobreaker breaker.
type HTTPClient struct {
	http    *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Collector
	log     logging.Logger
}

type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	breaker    BreakerSettings
	metrics    *metrics.Collector
	log        logging.Logger
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.httpClient = c } }

// WithTimeout bounds each call; zero means no timeout.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

func WithBreaker(s BreakerSettings) Option { return func(o *options) { o.breaker = s } }

func WithMetrics(m *metrics.Collector) Option { return func(o *options) { o.metrics = m } }

func WithLogger(l logging.Logger) Option { return func(o *options) { o.log = l } }

func NewHTTPClient(opts ...Option) *HTTPClient {
	o := options{
		httpClient: http.DefaultClient,
		breaker:    DefaultBreakerSettings(),
		log:        logging.Nop{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &HTTPClient{
		http:    o.httpClient,
		timeout: o.timeout,
		metrics: o.metrics,
		log:     o.log.With("component", "dataapi"),
	}

	s := o.breaker
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "dataapi",
		Interval: s.Interval,
		Timeout:  s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn(context.Background(), "circuit breaker state changed", "from", from.String(), "to", to.String())
			c.metrics.SetBreakerOpen(to == gobreaker.StateOpen)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return c
}

func (c *HTTPClient) Find(ctx context.Context, t Target, filter, sort any) ([]json.RawMessage, error) {
	body := map[string]any{}
	if filter != nil {
		body["filter"] = filter
	}
	if sort != nil {
		body["sort"] = sort
	}

	var resp struct {
		Documents []json.RawMessage `json:"documents"`
	}
	if err := c.call(ctx, ActionFind, t, body, &resp); err != nil {
		return nil, err
	}
	if resp.Documents == nil {
		return []json.RawMessage{}, nil
	}
	return resp.Documents, nil
}

func (c *HTTPClient) FindOne(ctx context.Context, t Target, filter any) (json.RawMessage, bool, error) {
	var resp struct {
		Document json.RawMessage `json:"document"`
	}
	if err := c.call(ctx, ActionFindOne, t, map[string]any{"filter": filter}, &resp); err != nil {
		return nil, false, err
	}
	if len(resp.Document) == 0 || string(resp.Document) == "null" {
		return nil, false, nil
	}
	return resp.Document, true, nil
}

func (c *HTTPClient) InsertOne(ctx context.Context, t Target, document any) error {
	return c.call(ctx, ActionInsertOne, t, map[string]any{"document": document}, nil)
}

func (c *HTTPClient) UpdateOne(ctx context.Context, t Target, filter, update any) error {
	return c.call(ctx, ActionUpdateOne, t, map[string]any{"filter": filter, "update": update}, nil)
}

func (c *HTTPClient) DeleteOne(ctx context.Context, t Target, filter any) error {
	return c.call(ctx, ActionDeleteOne, t, map[string]any{"filter": filter}, nil)
}

// call posts body (plus the target fields) to the action endpoint and
// decodes the response into out when out is not nil.
func (c *HTTPClient) call(ctx context.Context, action string, t Target, body map[string]any, out any) error {
	started := time.Now()

	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.do(ctx, action, t, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%s: %w: %w", action, ErrUnavailable, err)
	}

	c.metrics.ObserveRemote(action, err, time.Since(started))
	if err != nil {
		c.log.Debug(ctx, "remote call failed", "action", action, "collection", t.Collection, "error", err)
	}
	return err
}

func (c *HTTPClient) do(ctx context.Context, action string, t Target, body map[string]any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body["collection"] = t.Collection
	body["database"] = t.Database
	body["dataSource"] = t.DataSource

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", action, err)
	}

	url := strings.TrimRight(t.URL, "/") + "/action/" + action
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w: %w", action, ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Access-Control-Request-Headers", "*")
	req.Header.Set(common.APIKeyHeaderName, t.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", action, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s: %w: %d %s", action, ErrBadStatus, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %w", action, ErrMalformedResponse, err)
	}
	return nil
}
