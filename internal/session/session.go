// Package session drives a staging page without a browser. It loads the
// page over HTTP, binds the staging controller, and applies user actions
// read as line commands. All document work runs on a single event loop;
// requests block the caller, not the loop.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/jaki95/songripper/config"
	"github.com/jaki95/songripper/internal/dom"
	"github.com/jaki95/songripper/internal/eventloop"
	"github.com/jaki95/songripper/internal/events"
	"github.com/jaki95/songripper/internal/staging"
	"github.com/jaki95/songripper/internal/transport"
)

// Server paths the session talks to.
const (
	PagePath     = "/"
	StagingPath  = "/staging"
	DeletePath   = "/delete"
	BulkEditPath = "/bulk-edit"

	TriggerRefresh = "refreshStaging"
)

// Session is a headless staging page.
type Session struct {
	cfg       *config.Config
	loop      *eventloop.Loop
	client    *transport.Client
	indicator *indicator
	out       io.Writer
	logger    *slog.Logger

	page *Page
}

type Option func(*Session)

// WithOutput sets where command output is written.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithIndicatorOutput sets where the request spinner is drawn.
func WithIndicatorOutput(w io.Writer) Option {
	return func(s *Session) { s.indicator = newIndicator(w) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// New creates a session for the server at cfg.Server.BaseURL.
func New(cfg *config.Config, opts ...Option) *Session {
	s := &Session{
		cfg:       cfg,
		loop:      eventloop.New(eventloop.DefaultQueueSize),
		indicator: newIndicator(io.Discard),
		out:       io.Discard,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = transport.New(
		transport.WithBaseURL(cfg.Server.BaseURL),
		transport.WithTimeout(cfg.Transport.Timeout),
		transport.WithUserAgent(cfg.Transport.UserAgent),
		transport.WithRunner(s.loop.Do),
		transport.WithLogger(s.logger),
	)
	s.client.OnTrigger(TriggerRefresh, s.Refresh)
	return s
}

// Start runs the event loop until ctx is done, loads the page and fires
// its load event.
func (s *Session) Start(ctx context.Context) error {
	go func() {
		if err := s.loop.Run(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Event loop stopped", "error", err)
		}
	}()

	doc, err := s.client.Load(ctx, PagePath)
	if err != nil {
		return fmt.Errorf("failed to load page: %w", err)
	}

	var bindErr error
	if err := s.loop.Do(ctx, func() {
		bindErr = s.bind(doc)
	}); err != nil {
		return err
	}
	if bindErr != nil {
		return bindErr
	}

	s.logger.Info("Staging page loaded", "url", s.cfg.Server.BaseURL)
	return nil
}

func (s *Session) bind(doc *dom.Document) error {
	page, err := NewPage(doc, s.loop, s.cfg.Markup,
		staging.WithClearAfter(s.cfg.Alerts.ClearAfter),
		staging.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}

	d := page.Dispatcher()
	d.SetLogger(s.logger)
	if err := d.On(events.BeforeRequest, "", func(_ events.Event, target *dom.Element) {
		if target != nil {
			s.indicator.start(target.ID())
		}
	}); err != nil {
		return err
	}
	if err := d.On(events.AfterRequest, "", func(events.Event, *dom.Element) {
		s.indicator.stop()
	}); err != nil {
		return err
	}
	doc.OnScroll(func(el *dom.Element) {
		s.logger.Debug("Scrolled into view", "element", el.ID())
	})

	s.client.Bind(doc, d)
	page.Loaded()
	s.page = page
	return nil
}

// Do runs fn with the page on the event loop and waits for it.
func (s *Session) Do(ctx context.Context, fn func(p *Page) error) error {
	var fnErr error
	if err := s.loop.Do(ctx, func() {
		if s.page == nil {
			fnErr = ErrNotStarted
			return
		}
		fnErr = fn(s.page)
	}); err != nil {
		return err
	}
	return fnErr
}

// Refresh reloads the staging table.
func (s *Session) Refresh(ctx context.Context) error {
	return s.client.Get(ctx, s.cfg.Markup.StagingList, StagingPath)
}

// Delete clears staging on the server and shows the result in the alerts.
func (s *Session) Delete(ctx context.Context) error {
	return s.client.Post(ctx, s.cfg.Markup.Alerts, DeletePath, nil)
}

// Apply submits the bulk-edit form for the selected rows and shows the
// result in the alerts. The server asks for a table refresh when tracks
// were updated.
func (s *Session) Apply(ctx context.Context) error {
	var form url.Values
	if err := s.Do(ctx, func(p *Page) error {
		if p.State().BulkSubmitDisabled {
			return fmt.Errorf("%w: #%s, select rows first", ErrDisabled, s.cfg.Markup.BulkEditSubmit)
		}
		form = p.BulkEditValues()
		return nil
	}); err != nil {
		return err
	}
	return s.client.PostForm(ctx, s.cfg.Markup.Alerts, BulkEditPath, form)
}
