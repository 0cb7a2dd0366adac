package staging

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jaki95/songripper/internal/dom"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manual Scheduler: callbacks run synchronously from Advance.
type fakeClock struct {
	now    time.Duration
	timers []fakeTimer
}

type fakeTimer struct {
	at time.Duration
	fn func()
}

func (f *fakeClock) AfterFunc(d time.Duration, fn func()) {
	f.timers = append(f.timers, fakeTimer{at: f.now + d, fn: fn})
}

// Advance moves time forward by d and fires every timer that became due.
func (f *fakeClock) Advance(d time.Duration) {
	f.now += d
	sort.SliceStable(f.timers, func(i, j int) bool { return f.timers[i].at < f.timers[j].at })
	for len(f.timers) > 0 && f.timers[0].at <= f.now {
		next := f.timers[0]
		f.timers = f.timers[1:]
		next.fn()
	}
}

func (f *fakeClock) Pending() int { return len(f.timers) }

type row struct {
	artist, album, title, filepath string
	checked                        bool
}

func rowsMarkup(rows ...row) string {
	var b strings.Builder
	b.WriteString(`<table><thead><tr><th><input type="checkbox" id="select-all"></th><th></th><th>Artist</th><th>Album</th><th>Title</th></tr></thead><tbody>`)
	for _, r := range rows {
		checked := ""
		if r.checked {
			checked = " checked"
		}
		fmt.Fprintf(&b, `<tr data-artist=%q data-album=%q data-filepath=%q>`, r.artist, r.album, r.filepath)
		fmt.Fprintf(&b, `<td><input type="checkbox" name="track" value=%q%s></td>`, r.filepath, checked)
		b.WriteString(`<td><img class="artwork" src="/cover.jpg" alt="cover"></td>`)
		fmt.Fprintf(&b, `<td data-field="artist"> %s </td><td data-field="album">%s</td><td data-field="title">%s</td>`, r.artist, r.album, r.title)
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func pageMarkup(alerts string, rows ...row) string {
	return `<!DOCTYPE html><html><body>
<div id="alerts">` + alerts + `</div>
<button id="approve-btn">Approve all</button>
<button id="approve-selected-btn">Approve selected</button>
<form id="bulk-edit-form">
  <input type="checkbox" name="artist_enable"><input type="text" name="artist_value">
  <input type="checkbox" name="album_enable"><input type="text" name="album_value">
  <input type="checkbox" name="title_enable"><input type="text" name="title_value">
  <section id="artwork-lookup" hidden>
    <h3 id="artwork-lookup-title"></h3>
    <input type="text" name="artwork_artist">
    <input type="text" name="artwork_album">
    <input type="hidden" name="artwork_filepath">
    <button id="artwork-search-btn" type="button" disabled>Search</button>
  </section>
  <input type="checkbox" name="artwork_enable">
  <button id="bulk-edit-submit" type="submit">Apply</button>
</form>
<div id="staging-list">` + rowsMarkup(rows...) + `</div>
</body></html>`
}

func threeRows() []row {
	return []row{
		{artist: "Radiohead", album: "OK Computer", title: "Airbag", filepath: "/staging/Radiohead/OK Computer/01 Airbag.m4a"},
		{artist: "Portishead", album: "Dummy", title: "Roads", filepath: "/staging/Portishead/Dummy/06 Roads.m4a"},
		{artist: "Massive Attack", album: "Mezzanine", title: "Teardrop", filepath: "/staging/Massive Attack/Mezzanine/03 Teardrop.m4a"},
	}
}

type fixture struct {
	doc      *dom.Document
	clock    *fakeClock
	ctrl     *Controller
	scrolled []string
}

func newFixture(t *testing.T, markup string) *fixture {
	t.Helper()
	doc, err := dom.ParseString(markup)
	require.NoError(t, err)

	f := &fixture{doc: doc, clock: &fakeClock{}}
	doc.OnScroll(func(el *dom.Element) { f.scrolled = append(f.scrolled, el.ID()) })
	f.ctrl = New(doc, f.clock)
	return f
}

func (f *fixture) rowBox(t *testing.T, n int) *dom.Element {
	t.Helper()
	boxes := f.doc.QueryAll(`#staging-list input[name="track"]`)
	require.Greater(t, len(boxes), n-1, "row %d", n)
	return boxes[n-1]
}

func (f *fixture) input(t *testing.T, name string) *dom.Element {
	t.Helper()
	el := f.doc.Query(fmt.Sprintf("input[name=%q]", name))
	require.NotNil(t, el, name)
	return el
}
