package staging

import (
	"strings"

	"github.com/jaki95/songripper/internal/dom"
)

// ArmAlerts schedules container to be emptied after the clear delay when it
// holds non-blank content. Arming again before the timer fires supersedes
// the earlier arm, so content written in between is never erased early.
func (c *Controller) ArmAlerts(container *dom.Element) {
	if container == nil || strings.TrimSpace(container.InnerHTML()) == "" {
		return
	}

	node := container.Node()
	c.alertGen[node]++
	gen := c.alertGen[node]

	c.timers.AfterFunc(c.clearAfter, func() {
		if c.alertGen[node] != gen {
			c.logger.Debug("Skipping superseded alert clear", "container", container.ID(), "generation", gen)
			return
		}
		container.Clear()
		c.logger.Debug("Cleared alerts", "container", container.ID())
	})
}
