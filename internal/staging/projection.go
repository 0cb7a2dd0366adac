package staging

import (
	"fmt"
	"strings"

	"github.com/jaki95/songripper/internal/domain"
	"github.com/jaki95/songripper/internal/dom"
)

// ProjectCellToForm copies the text of the editable cell containing target
// into the matching bulk-edit input and includes that field in the edit.
// The cell's row is selected as well, since the form only applies to
// selected rows.
func (c *Controller) ProjectCellToForm(target *dom.Element) {
	if target == nil {
		return
	}
	cell := target.Closest(fmt.Sprintf("td[%s]", FieldAttr))
	if cell == nil {
		return
	}
	field, _ := cell.Attr(FieldAttr)
	if field == "" {
		return
	}

	form := c.doc.ByID(c.markup.BulkEditForm)
	if form == nil {
		return
	}

	value := strings.TrimSpace(cell.Text())
	if input := c.formInput(form, domain.ValueInput(field)); input != nil {
		input.SetValue(value)
	}
	if enable := c.formInput(form, domain.EnableInput(field)); enable != nil {
		enable.SetChecked(true)
	}
	form.ScrollIntoView()

	c.logger.Debug("Projected cell to form", "field", field, "value", value)
	c.selectRow(cell)
}

// ProjectArtworkToForm opens the artwork lookup panel for the row whose
// artwork was clicked, pre-filled from the row's data attributes.
func (c *Controller) ProjectArtworkToForm(target *dom.Element) {
	if target == nil {
		return
	}
	art := target.Closest("." + c.markup.ArtworkClass)
	if art == nil {
		return
	}

	form := c.doc.ByID(c.markup.BulkEditForm)
	if form == nil {
		return
	}

	var artist, album, filepath string
	if row := art.Closest("tr"); row != nil {
		artist = row.Data("artist")
		album = row.Data("album")
		filepath = row.Data("filepath")
	}

	if section := c.doc.ByID(c.markup.ArtworkLookup); section != nil {
		section.SetHidden(false)
	}
	if search := c.doc.ByID(c.markup.ArtworkSearch); search != nil {
		search.SetDisabled(false)
	}
	for name, value := range map[string]string{
		domain.ArtworkArtistInput:   artist,
		domain.ArtworkAlbumInput:    album,
		domain.ArtworkFilepathInput: filepath,
	} {
		if input := c.formInput(form, name); input != nil {
			input.SetValue(value)
		}
	}
	if title := c.doc.ByID(c.markup.ArtworkLookupTitle); title != nil {
		title.SetText(domain.DisplayTitle(artist, album))
	}
	if enable := c.formInput(form, domain.ArtworkEnableInput); enable != nil {
		enable.SetChecked(true)
	}
	form.ScrollIntoView()

	c.logger.Debug("Projected artwork to form", "artist", artist, "album", album, "filepath", filepath)
	c.selectRow(art)
}

func (c *Controller) formInput(form *dom.Element, name string) *dom.Element {
	return form.Find(fmt.Sprintf("input[name=%q]", name))
}
