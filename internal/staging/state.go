package staging

// ViewState is a snapshot of the derived state currently shown by the document.
type ViewState struct {
	Rows     int
	Selected int

	SelectAll               bool
	ApproveAllDisabled      bool
	ApproveSelectedDisabled bool
	BulkSubmitDisabled      bool
}

// State reads the derived state back from the document. Absent controls
// read as unchecked and enabled.
func (c *Controller) State() ViewState {
	state := ViewState{
		Rows:     len(c.rows()),
		Selected: c.selectedCount(),
	}
	if el := c.doc.ByID(c.markup.SelectAll); el != nil {
		state.SelectAll = el.Checked()
	}
	if el := c.doc.ByID(c.markup.ApproveAll); el != nil {
		state.ApproveAllDisabled = el.Disabled()
	}
	if el := c.doc.ByID(c.markup.ApproveSelected); el != nil {
		state.ApproveSelectedDisabled = el.Disabled()
	}
	if el := c.doc.ByID(c.markup.BulkEditSubmit); el != nil {
		state.BulkSubmitDisabled = el.Disabled()
	}
	return state
}
