package staging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArmAlertsClearsAfterDelay(t *testing.T) {
	f := newFixture(t, pageMarkup(`<div class="alert">Files deleted</div>`))
	alerts := f.doc.ByID("alerts")

	f.ctrl.ArmAlerts(alerts)
	assert.Equal(t, 1, f.clock.Pending())

	f.clock.Advance(3999 * time.Millisecond)
	assert.Contains(t, alerts.InnerHTML(), "Files deleted")

	f.clock.Advance(time.Millisecond)
	assert.Equal(t, "", alerts.InnerHTML())
}

func TestArmAlertsIgnoresBlankContainers(t *testing.T) {
	f := newFixture(t, pageMarkup("  \n\t "))

	f.ctrl.ArmAlerts(f.doc.ByID("alerts"))
	f.ctrl.ArmAlerts(nil)

	assert.Equal(t, 0, f.clock.Pending())
}

func TestArmAlertsRepopulatedBeforeClear(t *testing.T) {
	f := newFixture(t, pageMarkup(`<p>first</p>`))
	alerts := f.doc.ByID("alerts")

	f.ctrl.ArmAlerts(alerts)
	f.clock.Advance(2 * time.Second)

	// A swap writes new content and re-arms
	alerts.SetInnerHTML(`<p>second</p>`)
	f.ctrl.FragmentReplaced("alerts")

	// The first timer fires but must not erase the newer content
	f.clock.Advance(2 * time.Second)
	assert.Contains(t, alerts.InnerHTML(), "second")

	f.clock.Advance(2 * time.Second)
	assert.Equal(t, "", alerts.InnerHTML())
	assert.Equal(t, 0, f.clock.Pending())
}

func TestArmAlertsClearedInBetween(t *testing.T) {
	f := newFixture(t, pageMarkup(`<p>first</p>`))
	alerts := f.doc.ByID("alerts")

	f.ctrl.ArmAlerts(alerts)
	alerts.Clear()

	// Firing on already cleared content is harmless
	f.clock.Advance(5 * time.Second)
	assert.Equal(t, "", alerts.InnerHTML())
}

func TestArmAlertsOverlappingSequence(t *testing.T) {
	f := newFixture(t, pageMarkup(""))
	alerts := f.doc.ByID("alerts")

	for i, msg := range []string{"one", "two", "three"} {
		alerts.SetInnerHTML("<p>" + msg + "</p>")
		f.ctrl.ArmAlerts(alerts)
		if i < 2 {
			f.clock.Advance(time.Second)
		}
	}

	f.clock.Advance(3 * time.Second)
	assert.Contains(t, alerts.InnerHTML(), "three")

	f.clock.Advance(time.Second)
	assert.Equal(t, "", alerts.InnerHTML())
}

func TestClearAfterOption(t *testing.T) {
	f := newFixture(t, pageMarkup(`<p>hi</p>`))
	ctrl := New(f.doc, f.clock, WithClearAfter(500*time.Millisecond))

	ctrl.ArmAlerts(f.doc.ByID("alerts"))
	f.clock.Advance(500 * time.Millisecond)

	assert.Equal(t, "", f.doc.ByID("alerts").InnerHTML())
}
