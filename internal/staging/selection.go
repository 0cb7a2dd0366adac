package staging

import (
	"fmt"

	"github.com/jaki95/songripper/internal/dom"
)

// SyncSelectAll checks the aggregate checkbox iff at least one row exists
// and every row checkbox is checked.
func (c *Controller) SyncSelectAll() {
	selectAll := c.doc.ByID(c.markup.SelectAll)
	if selectAll == nil {
		return
	}

	boxes := c.rowCheckboxes()
	all := len(boxes) > 0
	for _, box := range boxes {
		if !box.Checked() {
			all = false
			break
		}
	}
	selectAll.SetChecked(all)
}

// ToggleAll sets every row checkbox to checked.
func (c *Controller) ToggleAll(checked bool) {
	for _, box := range c.rowCheckboxes() {
		box.SetChecked(checked)
	}
}

// selectRow checks the selection checkbox of the row containing el and
// recomputes derived state if that changed anything.
func (c *Controller) selectRow(el *dom.Element) {
	row := el.Closest("tr")
	if row == nil {
		return
	}
	box := row.Find(c.checkboxSelector())
	if box == nil || box.Checked() {
		return
	}

	box.SetChecked(true)
	c.SyncSelectAll()
	c.UpdateActionState()
}

func (c *Controller) rows() []*dom.Element {
	return c.doc.QueryAll(dom.IDSelector(c.markup.StagingList) + " tbody tr")
}

func (c *Controller) rowCheckboxes() []*dom.Element {
	return c.doc.QueryAll(c.RowCheckboxSelector())
}

func (c *Controller) selectedCount() int {
	selected := 0
	for _, box := range c.rowCheckboxes() {
		if box.Checked() {
			selected++
		}
	}
	return selected
}

func (c *Controller) checkboxSelector() string {
	return fmt.Sprintf("input[name=%q]", c.markup.RowCheckbox)
}

// RowCheckboxSelector matches the selection checkbox of every staged row.
func (c *Controller) RowCheckboxSelector() string {
	return dom.IDSelector(c.markup.StagingList) + " " + c.checkboxSelector()
}
