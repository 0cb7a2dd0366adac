package events

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jaki95/songripper/internal/dom"
)

// Handler receives an event together with the element that satisfied the
// registration selector. For selector-less registrations matched is the
// event target, which may be nil.
type Handler func(ev Event, matched *dom.Element)

type binding struct {
	typ      Type
	selector string
	matcher  dom.Matcher
	handler  Handler
}

// Dispatcher is a delegation table bound once at the document root. A
// handler runs when the event target, or one of its ancestors, matches the
// handler's selector, so elements inserted by later swaps need no wiring.
type Dispatcher struct {
	mu       sync.RWMutex
	bindings []binding
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatch table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		bindings: make([]binding, 0),
		logger:   slog.Default(),
	}
}

// SetLogger replaces the logger used for dispatch tracing.
func (d *Dispatcher) SetLogger(logger *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// On registers h for events of type typ whose target lies within an element
// matching selector. An empty selector matches every event of that type.
func (d *Dispatcher) On(typ Type, selector string, h Handler) error {
	if h == nil {
		return fmt.Errorf("%w: %s %q", ErrNilHandler, typ, selector)
	}

	b := binding{typ: typ, selector: selector, handler: h}
	if selector != "" {
		m, err := dom.Compile(selector)
		if err != nil {
			return err
		}
		b.matcher = m
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.bindings = append(d.bindings, b)
	return nil
}

// Dispatch runs every matching handler in registration order and returns
// how many ran.
func (d *Dispatcher) Dispatch(ev Event) int {
	d.mu.RLock()
	bindings := make([]binding, len(d.bindings))
	copy(bindings, d.bindings)
	logger := d.logger
	d.mu.RUnlock()

	handled := 0
	for _, b := range bindings {
		if b.typ != ev.Type {
			continue
		}

		matched := ev.Target
		if b.matcher != nil {
			if ev.Target == nil {
				continue
			}
			matched = ev.Target.ClosestMatch(b.matcher)
			if matched == nil {
				continue
			}
		}

		b.handler(ev, matched)
		handled++
	}

	logger.Debug("Event dispatched", "type", ev.Type, "handlers", handled)
	return handled
}
