package staging

import (
	"fmt"

	"github.com/jaki95/songripper/internal/dom"
	"github.com/jaki95/songripper/internal/events"
)

// Bind registers the controller's handlers on d. It is called once per
// document; handlers reach swapped-in elements through delegation.
func (c *Controller) Bind(d *events.Dispatcher) error {
	bindings := []struct {
		typ      events.Type
		selector string
		handler  events.Handler
	}{
		{events.Loaded, "", func(events.Event, *dom.Element) {
			c.Loaded()
		}},
		{events.Change, dom.IDSelector(c.markup.SelectAll), func(_ events.Event, selectAll *dom.Element) {
			// Propagate down before recomputing, so buttons see the final selection
			c.ToggleAll(selectAll.Checked())
			c.UpdateActionState()
			c.SyncSelectAll()
		}},
		{events.Change, c.RowCheckboxSelector(), func(events.Event, *dom.Element) {
			c.SyncSelectAll()
			c.UpdateActionState()
		}},
		{events.Click, fmt.Sprintf("td[%s]", FieldAttr), func(ev events.Event, _ *dom.Element) {
			c.ProjectCellToForm(ev.Target)
		}},
		{events.Click, "." + c.markup.ArtworkClass, func(ev events.Event, _ *dom.Element) {
			c.ProjectArtworkToForm(ev.Target)
		}},
		{events.AfterSwap, "", func(ev events.Event, target *dom.Element) {
			if target == nil {
				return
			}
			c.FragmentReplaced(target.ID())
			c.FragmentReplacedWithStatus(target.ID(), ev.Status)
		}},
		{events.RequestFailed, "", func(ev events.Event, _ *dom.Element) {
			c.TransportError(ev.Payload)
		}},
	}

	for _, b := range bindings {
		if err := d.On(b.typ, b.selector, b.handler); err != nil {
			return fmt.Errorf("failed to bind %s handler: %w", b.typ, err)
		}
	}
	return nil
}
