package staging

import "net/http"

// FragmentReplaced recomputes derived state after the transport replaced
// the content of the element with the given id.
func (c *Controller) FragmentReplaced(targetID string) {
	switch targetID {
	case c.markup.Alerts:
		c.ArmAlerts(c.doc.ByID(targetID))
	case c.markup.StagingList:
		// Row count first, then selection-derived state
		c.UpdateActionState()
		c.SyncSelectAll()
	}
}

// FragmentReplacedWithStatus scrolls a region swapped from a failed response
// into view so the inline error it now shows is visible.
func (c *Controller) FragmentReplacedWithStatus(targetID string, status int) {
	if status < http.StatusBadRequest {
		return
	}
	if el := c.doc.ByID(targetID); el != nil {
		c.logger.Debug("Swapped error response", "target", targetID, "status", status)
		el.ScrollIntoView()
	}
}

// TransportError renders a failed request's payload into the alert
// container and schedules it to be cleared.
func (c *Controller) TransportError(payload string) {
	alerts := c.doc.ByID(c.markup.Alerts)
	if alerts == nil {
		return
	}
	alerts.SetInnerHTML(payload)
	alerts.ScrollIntoView()
	c.ArmAlerts(alerts)
}
