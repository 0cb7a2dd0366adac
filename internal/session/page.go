package session

import (
	"fmt"
	"net/url"

	"github.com/jaki95/songripper/config"
	"github.com/jaki95/songripper/internal/dom"
	"github.com/jaki95/songripper/internal/domain"
	"github.com/jaki95/songripper/internal/events"
	"github.com/jaki95/songripper/internal/staging"
)

// Page is a loaded staging document with its controller bound through a
// delegated dispatcher. Page methods must run on the goroutine that owns
// the document.
type Page struct {
	doc        *dom.Document
	dispatcher *events.Dispatcher
	ctrl       *staging.Controller
	markup     config.Markup
}

// NewPage binds a staging controller to doc. Call Loaded once the page is
// ready to initialize derived state.
func NewPage(doc *dom.Document, timers staging.Scheduler, markup config.Markup, opts ...staging.Option) (*Page, error) {
	opts = append([]staging.Option{staging.WithMarkup(markup)}, opts...)
	p := &Page{
		doc:        doc,
		dispatcher: events.NewDispatcher(),
		ctrl:       staging.New(doc, timers, opts...),
		markup:     markup,
	}
	if err := p.ctrl.Bind(p.dispatcher); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Page) Document() *dom.Document { return p.doc }
func (p *Page) Dispatcher() *events.Dispatcher { return p.dispatcher }

// Loaded fires the document load event.
func (p *Page) Loaded() {
	p.dispatcher.Dispatch(events.Event{Type: events.Loaded})
}

// Click delivers a click on el. Clicking a checkbox toggles it and then
// fires change, as a browser does.
func (p *Page) Click(el *dom.Element) {
	if el == nil {
		return
	}
	if el.IsCheckbox() && !el.Disabled() {
		el.SetChecked(!el.Checked())
		p.dispatcher.Dispatch(events.Event{Type: events.Click, Target: el})
		p.dispatcher.Dispatch(events.Event{Type: events.Change, Target: el})
		return
	}
	p.dispatcher.Dispatch(events.Event{Type: events.Click, Target: el})
}

// SetChecked clicks the checkbox el if its state differs from checked.
func (p *Page) SetChecked(el *dom.Element, checked bool) {
	if el == nil || el.Checked() == checked {
		return
	}
	p.Click(el)
}

// Rows returns the staged rows in table order.
func (p *Page) Rows() []*dom.Element {
	return p.doc.QueryAll(dom.IDSelector(p.markup.StagingList) + " tbody tr")
}

// Row returns the n-th staged row, counting from 1.
func (p *Page) Row(n int) (*dom.Element, error) {
	rows := p.Rows()
	if n < 1 || n > len(rows) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoSuchRow, n, len(rows))
	}
	return rows[n-1], nil
}

// RowCheckbox returns the selection checkbox of the n-th row.
func (p *Page) RowCheckbox(n int) (*dom.Element, error) {
	row, err := p.Row(n)
	if err != nil {
		return nil, err
	}
	box := row.Find(fmt.Sprintf("input[name=%q]", p.markup.RowCheckbox))
	if box == nil {
		return nil, fmt.Errorf("%w: checkbox of row %d", ErrNoSuchElement, n)
	}
	return box, nil
}

// SelectAll returns the aggregate checkbox, or nil.
func (p *Page) SelectAll() *dom.Element {
	return p.doc.ByID(p.markup.SelectAll)
}

// FormValue returns the value of the bulk-edit input with the given name.
func (p *Page) FormValue(name string) string {
	form := p.doc.ByID(p.markup.BulkEditForm)
	if form == nil {
		return ""
	}
	if input := form.Find(fmt.Sprintf("input[name=%q]", name)); input != nil {
		return input.Value()
	}
	return ""
}

// SetFormValue types value into the bulk-edit input name and checks the
// field's enable flag, the way a user fills in one field of the form.
func (p *Page) SetFormValue(field, value string) error {
	form := p.doc.ByID(p.markup.BulkEditForm)
	if form == nil {
		return fmt.Errorf("%w: #%s", ErrNoSuchElement, p.markup.BulkEditForm)
	}
	input := form.Find(fmt.Sprintf("input[name=%q]", domain.ValueInput(field)))
	enable := form.Find(fmt.Sprintf("input[name=%q]", domain.EnableInput(field)))
	if input == nil || enable == nil {
		return fmt.Errorf("%w: %s inputs", ErrNoSuchElement, field)
	}
	input.SetValue(value)
	p.SetChecked(enable, true)
	return nil
}

// BulkEditValues returns what submitting the bulk-edit form sends: the
// form's named inputs, checkboxes only when checked, and the checked row
// checkboxes.
func (p *Page) BulkEditValues() url.Values {
	values := url.Values{}
	for _, box := range p.doc.QueryAll(p.ctrl.RowCheckboxSelector()) {
		if box.Checked() {
			values.Add(p.markup.RowCheckbox, box.Value())
		}
	}

	form := p.doc.ByID(p.markup.BulkEditForm)
	if form == nil {
		return values
	}
	for _, input := range form.FindAll("input[name]") {
		name, _ := input.Attr("name")
		if !input.IsCheckbox() {
			values.Add(name, input.Value())
			continue
		}
		if input.Checked() {
			value := input.Value()
			if value == "" {
				value = "on"
			}
			values.Add(name, value)
		}
	}
	return values
}

// Alerts returns the alert container, or nil.
func (p *Page) Alerts() *dom.Element {
	return p.doc.ByID(p.markup.Alerts)
}

// State reads the derived view state.
func (p *Page) State() staging.ViewState {
	return p.ctrl.State()
}
