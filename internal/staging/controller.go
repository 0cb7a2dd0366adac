package staging

import (
	"log/slog"
	"time"

	"github.com/jaki95/songripper/config"
	"github.com/jaki95/songripper/internal/dom"
	"golang.org/x/net/html"
)

// FieldAttr carries the field name of an editable table cell.
const FieldAttr = "data-field"

// Scheduler runs fn once after d. Implementations must run fn on the same
// goroutine that drives the controller.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Controller keeps derived view state consistent with a staging document.
type Controller struct {
	doc        *dom.Document
	timers     Scheduler
	markup     config.Markup
	clearAfter time.Duration
	logger     *slog.Logger

	// alertGen counts arms per alert container; a clear only applies when
	// no later arm happened.
	alertGen map[*html.Node]uint64
}

type Option func(*Controller)

func WithMarkup(m config.Markup) Option {
	return func(c *Controller) { c.markup = m }
}

func WithClearAfter(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.clearAfter = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// New creates a controller for doc. Alert clears are scheduled on timers.
func New(doc *dom.Document, timers Scheduler, opts ...Option) *Controller {
	c := &Controller{
		doc:        doc,
		timers:     timers,
		markup:     config.DefaultMarkup(),
		clearAfter: config.DefaultClearAfter,
		logger:     slog.Default(),
		alertGen:   make(map[*html.Node]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Loaded initializes derived state once the document has been parsed.
func (c *Controller) Loaded() {
	c.ArmAlerts(c.doc.ByID(c.markup.Alerts))
	c.UpdateActionState()
	c.SyncSelectAll()
}
