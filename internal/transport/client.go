// Package transport fetches HTML fragments and swaps them into a document
// the way htmx does: requests carry HX-Request and HX-Target headers, the
// response body replaces the target's content, and lifecycle events are
// dispatched around the swap.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gocolly/colly"
	"github.com/jaki95/songripper/internal/dom"
	"github.com/jaki95/songripper/internal/events"
	"github.com/jaki95/songripper/internal/render"
)

// Request headers sent with fragment requests.
const (
	HeaderRequest = "HX-Request"
	HeaderTarget  = "HX-Target"
)

// Runner executes fn where the document may be touched and waits for it.
type Runner func(ctx context.Context, fn func()) error

// TriggerFunc handles a named trigger sent by the server.
type TriggerFunc func(ctx context.Context) error

// Client swaps server fragments into a bound document.
type Client struct {
	baseURL   *url.URL
	timeout   time.Duration
	userAgent string
	run       Runner
	failure   func(error) string
	logger    *slog.Logger

	doc        *dom.Document
	dispatcher *events.Dispatcher

	mu       sync.RWMutex
	triggers map[string][]TriggerFunc
}

type Option func(*Client)

// WithBaseURL resolves relative request URLs against base.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if u, err := url.Parse(base); err == nil {
			c.baseURL = u
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRunner sets where document work runs. The default runs it inline.
func WithRunner(run Runner) Option {
	return func(c *Client) { c.run = run }
}

// WithFailureRenderer sets how a failed request is rendered for RequestFailed.
func WithFailureRenderer(fn func(error) string) Option {
	return func(c *Client) { c.failure = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a transport client.
func New(opts ...Option) *Client {
	c := &Client{
		timeout:  30 * time.Second,
		run:      runInline,
		failure:  defaultFailure,
		logger:   slog.Default(),
		triggers: make(map[string][]TriggerFunc),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func runInline(_ context.Context, fn func()) error {
	fn()
	return nil
}

func defaultFailure(err error) string {
	return render.ErrorAlert("Request failed: " + err.Error())
}

// Bind sets the document swaps are applied to and the dispatcher lifecycle
// events are delivered to.
func (c *Client) Bind(doc *dom.Document, d *events.Dispatcher) {
	c.doc = doc
	c.dispatcher = d
}

// OnTrigger registers fn for the named trigger.
func (c *Client) OnTrigger(name string, fn TriggerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.triggers[name] = append(c.triggers[name], fn)
}

// Load fetches and parses a full page.
func (c *Client) Load(ctx context.Context, rawURL string) (*dom.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := c.resolve(rawURL)
	if err != nil {
		return nil, err
	}

	res, err := c.fetch(http.MethodGet, u, "", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrRequestFailed, u, err)
	}
	if res.status >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: GET %s: %d", ErrUnexpectedStatus, u, res.status)
	}
	return dom.ParseString(string(res.body))
}

// Get requests rawURL and swaps the response into the element with id targetID.
func (c *Client) Get(ctx context.Context, targetID, rawURL string) error {
	return c.do(ctx, http.MethodGet, targetID, rawURL, nil)
}

// Post submits form to rawURL and swaps the response into the element with id targetID.
func (c *Client) Post(ctx context.Context, targetID, rawURL string, form map[string]string) error {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	return c.PostForm(ctx, targetID, rawURL, values)
}

// PostForm is Post for forms with repeated fields, such as several checked
// checkboxes sharing a name.
func (c *Client) PostForm(ctx context.Context, targetID, rawURL string, form url.Values) error {
	if form == nil {
		form = url.Values{}
	}
	return c.do(ctx, http.MethodPost, targetID, rawURL, form)
}

func (c *Client) do(ctx context.Context, method, targetID, rawURL string, form url.Values) error {
	if c.doc == nil || c.dispatcher == nil {
		return ErrNoDocument
	}
	u, err := c.resolve(rawURL)
	if err != nil {
		return err
	}

	found := false
	if err := c.run(ctx, func() {
		target := c.doc.ByID(targetID)
		if target == nil {
			return
		}
		found = true
		c.dispatcher.Dispatch(events.Event{Type: events.BeforeRequest, Target: target})
	}); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: #%s", ErrTargetNotFound, targetID)
	}

	res, fetchErr := c.fetch(method, u, targetID, form)
	if fetchErr == nil && res.status >= http.StatusBadRequest && len(res.body) == 0 {
		fetchErr = fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, res.status, http.StatusText(res.status))
	}

	if fetchErr != nil {
		c.logger.Warn("Request failed", "method", method, "url", u, "target", targetID, "error", fetchErr)
		payload := c.failure(fetchErr)
		if err := c.run(ctx, func() {
			c.dispatcher.Dispatch(events.Event{Type: events.RequestFailed, Payload: payload})
			c.afterRequest(targetID, 0)
		}); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, u, fetchErr)
	}

	if err := c.run(ctx, func() {
		c.swap(targetID, res)
		c.afterRequest(targetID, res.status)
	}); err != nil {
		return err
	}

	return c.fire(ctx, responseTriggers(res.headers))
}

// swap replaces the target's content with the response body. A 204
// response leaves the document unchanged.
func (c *Client) swap(targetID string, res *response) {
	target := c.doc.ByID(targetID)
	if target == nil {
		c.logger.Warn("Swap target disappeared", "target", targetID)
		return
	}
	if res.status == http.StatusNoContent {
		return
	}

	c.dispatcher.Dispatch(events.Event{Type: events.BeforeSwap, Target: target, Status: res.status})
	target.SetInnerHTML(string(res.body))
	c.dispatcher.Dispatch(events.Event{Type: events.AfterSwap, Target: target, Status: res.status})

	c.logger.Debug("Swapped fragment", "target", targetID, "status", res.status, "bytes", len(res.body))
}

func (c *Client) afterRequest(targetID string, status int) {
	c.dispatcher.Dispatch(events.Event{Type: events.AfterRequest, Target: c.doc.ByID(targetID), Status: status})
}

// fire runs the handlers of every named trigger in order.
func (c *Client) fire(ctx context.Context, names []string) error {
	var errs []error
	for _, name := range names {
		c.mu.RLock()
		handlers := c.triggers[name]
		c.mu.RUnlock()

		if len(handlers) == 0 {
			c.logger.Debug("No handler for trigger", "trigger", name)
			continue
		}
		for _, fn := range handlers {
			if err := fn(ctx); err != nil {
				errs = append(errs, fmt.Errorf("trigger %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Client) resolve(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid url %q: %v", ErrRequestFailed, rawURL, err)
	}
	if c.baseURL != nil {
		u = c.baseURL.ResolveReference(u)
	}
	return u.String(), nil
}

type response struct {
	status  int
	body    []byte
	headers http.Header
}

func newResponse(r *colly.Response) *response {
	res := &response{status: r.StatusCode, body: r.Body, headers: http.Header{}}
	if r.Headers != nil {
		res.headers = *r.Headers
	}
	return res
}

// fetch performs a single request. Any response received from the server,
// whatever its status, is returned; an error means there was none.
func (c *Client) fetch(method, u, targetID string, form url.Values) (*response, error) {
	col := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.Async(false),
	)
	if c.userAgent != "" {
		col.UserAgent = c.userAgent
	}
	col.SetRequestTimeout(c.timeout)

	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html")
		if targetID != "" {
			r.Headers.Set(HeaderRequest, "true")
			r.Headers.Set(HeaderTarget, targetID)
		}
	})

	var res *response
	var fetchErr error
	col.OnResponse(func(r *colly.Response) {
		res = newResponse(r)
	})
	// Non-2xx responses arrive here with their status and body
	col.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			res = newResponse(r)
			return
		}
		fetchErr = err
	})

	var err error
	if method == http.MethodPost {
		// colly sets the urlencoded content type on POST bodies
		err = col.PostRaw(u, []byte(form.Encode()))
	} else {
		err = col.Visit(u)
	}

	switch {
	case res != nil:
		return res, nil
	case fetchErr != nil:
		return nil, fetchErr
	case err != nil:
		return nil, err
	}
	return nil, fmt.Errorf("no response from %s", u)
}
