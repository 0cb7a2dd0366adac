package staging

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentReplacedStagingList(t *testing.T) {
	f := newFixture(t, pageMarkup(""))
	f.ctrl.Loaded()
	require.True(t, f.ctrl.State().ApproveAllDisabled)

	rows := threeRows()
	for i := range rows {
		rows[i].checked = true
	}
	_, err := f.doc.Replace("staging-list", rowsMarkup(rows...))
	require.NoError(t, err)

	f.ctrl.FragmentReplaced("staging-list")

	assert.Equal(t, ViewState{Rows: 3, Selected: 3, SelectAll: true}, f.ctrl.State())
}

func TestFragmentReplacedEmptiedList(t *testing.T) {
	rows := threeRows()
	rows[0].checked = true
	f := newFixture(t, pageMarkup("", rows...))
	f.ctrl.Loaded()

	_, err := f.doc.Replace("staging-list", `<p>No staged tracks</p>`)
	require.NoError(t, err)
	f.ctrl.FragmentReplaced("staging-list")

	assert.Equal(t, ViewState{
		ApproveAllDisabled:      true,
		ApproveSelectedDisabled: true,
		BulkSubmitDisabled:      true,
	}, f.ctrl.State())
}

func TestFragmentReplacedAlerts(t *testing.T) {
	f := newFixture(t, pageMarkup(""))

	_, err := f.doc.Replace("alerts", `<div class="alert">Files deleted</div>`)
	require.NoError(t, err)
	f.ctrl.FragmentReplaced("alerts")

	require.Equal(t, 1, f.clock.Pending())
	f.clock.Advance(4 * time.Second)
	assert.Equal(t, "", f.doc.ByID("alerts").InnerHTML())
}

func TestFragmentReplacedOtherTarget(t *testing.T) {
	f := newFixture(t, pageMarkup("<p>keep</p>", threeRows()...))

	f.ctrl.FragmentReplaced("bulk-edit-form")
	f.ctrl.FragmentReplaced("missing")

	assert.Equal(t, 0, f.clock.Pending())
	assert.False(t, f.ctrl.State().ApproveSelectedDisabled)
}

func TestFragmentReplacedWithStatus(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		status   int
		scrolled []string
	}{
		{"success", "staging-list", http.StatusOK, nil},
		{"redirect", "staging-list", http.StatusSeeOther, nil},
		{"client error", "staging-list", http.StatusBadRequest, []string{"staging-list"}},
		{"server error", "alerts", http.StatusInternalServerError, []string{"alerts"}},
		{"missing target", "nope", http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, pageMarkup("", threeRows()...))
			f.ctrl.FragmentReplacedWithStatus(tt.target, tt.status)
			assert.Equal(t, tt.scrolled, f.scrolled)
		})
	}
}

func TestTransportError(t *testing.T) {
	f := newFixture(t, pageMarkup("", threeRows()...))

	f.ctrl.TransportError(`<div class="alert alert-error">Request failed</div>`)

	alerts := f.doc.ByID("alerts")
	assert.Contains(t, alerts.Text(), "Request failed")
	assert.Equal(t, []string{"alerts"}, f.scrolled)

	f.clock.Advance(4 * time.Second)
	assert.Equal(t, "", alerts.InnerHTML())
}

func TestTransportErrorWithoutAlerts(t *testing.T) {
	f := newFixture(t, `<html><body><div id="staging-list"></div></body></html>`)

	f.ctrl.TransportError("<p>boom</p>")

	assert.Empty(t, f.scrolled)
	assert.Equal(t, 0, f.clock.Pending())
}
