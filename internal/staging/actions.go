package staging

// UpdateActionState enables or disables the action buttons from the current
// table: approve-all needs at least one row, approve-selected and the
// bulk-edit submit need at least one selected row.
func (c *Controller) UpdateActionState() {
	rows := len(c.rows())
	selected := c.selectedCount()

	c.setDisabled(c.markup.ApproveAll, rows == 0)
	c.setDisabled(c.markup.ApproveSelected, selected == 0)
	c.setDisabled(c.markup.BulkEditSubmit, selected == 0)

	c.logger.Debug("Updated action state", "rows", rows, "selected", selected)
}

func (c *Controller) setDisabled(id string, disabled bool) {
	if btn := c.doc.ByID(id); btn != nil {
		btn.SetDisabled(disabled)
	}
}
