// Package render renders the staging page and its fragments. The markup
// follows the contract the staging controller reads: ids from
// config.Markup, data attributes on rows and cells, and the bulk-edit
// form's {field}_value and {field}_enable inputs.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/jaki95/songripper/config"
	"github.com/jaki95/songripper/internal/dom"
	"github.com/jaki95/songripper/internal/domain"
)

// Template names
const (
	PageTemplate    = "page"
	StagingTemplate = "staging"
	MessageTemplate = "message"
	ErrorTemplate   = "error"
	CellTemplate    = "cell"
	EditTemplate    = "edit_cell"
)

// EditPath is where cells fetch their inline editor and submit edits.
const EditPath = "/edit"

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.New("songripper").Funcs(template.FuncMap{
	"valueInput":  domain.ValueInput,
	"enableInput": domain.EnableInput,
	"coverURL":    coverURL,
	"editURL":     editURL,
	"idSelector":  dom.IDSelector,
	"checkedRows": checkedRows,
	"cell":        NewCellData,
}).ParseFS(files, "templates/*.html"))

// Templates returns the parsed template set, for use with gin's HTML renderer.
func Templates() *template.Template {
	return templates
}

// LookupInputs names the inputs of the artwork lookup section.
type LookupInputs struct {
	Artist   string
	Album    string
	Filepath string
	Enable   string
}

// StagingData is the data of the staging table fragment.
type StagingData struct {
	Markup config.Markup
	Tracks []domain.StagedTrack
}

// PageData is the data of the full staging page.
type PageData struct {
	Markup  config.Markup
	Message string
	Fields  []string
	Lookup  LookupInputs
	Staging StagingData

	// HasFiles enables the delete button.
	HasFiles bool
}

// CellData is one editable cell of the staging table.
type CellData struct {
	Field    string
	Filepath string
	Value    string
}

// NewCellData builds the cell showing field of track. Unknown fields render
// an empty cell.
func NewCellData(track domain.StagedTrack, field string) CellData {
	value, _ := track.Value(field)
	return CellData{Field: field, Filepath: track.Filepath, Value: value}
}

// NewStagingData builds the table fragment data.
func NewStagingData(markup config.Markup, tracks []domain.StagedTrack) StagingData {
	return StagingData{Markup: markup, Tracks: tracks}
}

// NewPageData builds the page data with an optional message shown in the
// alert container.
func NewPageData(markup config.Markup, message string, tracks []domain.StagedTrack) PageData {
	return PageData{
		Markup:  markup,
		Message: message,
		Fields:  domain.EditableFields,
		Lookup: LookupInputs{
			Artist:   domain.ArtworkArtistInput,
			Album:    domain.ArtworkAlbumInput,
			Filepath: domain.ArtworkFilepathInput,
			Enable:   domain.ArtworkEnableInput,
		},
		Staging:  NewStagingData(markup, tracks),
		HasFiles: len(tracks) > 0,
	}
}

// Execute renders the named template to w.
func Execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return nil
}

// ErrorAlert renders msg as an error alert fragment.
func ErrorAlert(msg string) string {
	var b strings.Builder
	if err := Execute(&b, ErrorTemplate, msg); err != nil {
		return template.HTMLEscapeString(msg)
	}
	return b.String()
}

// editURL is the URL of the inline editor for field of the track at filepath.
func editURL(filepath, field string) string {
	return EditPath + "?" + url.Values{"filepath": {filepath}, "field": {field}}.Encode()
}

// checkedRows selects the checked row checkboxes, for hx-include.
func checkedRows(m config.Markup) string {
	return fmt.Sprintf("%s input[name=%q]:checked", dom.IDSelector(m.StagingList), m.RowCheckbox)
}

// coverURL passes through image data URIs and http(s) URLs and drops
// anything else.
func coverURL(cover string) template.URL {
	switch {
	case strings.HasPrefix(cover, "data:image/"),
		strings.HasPrefix(cover, "https://"),
		strings.HasPrefix(cover, "http://"):
		return template.URL(cover)
	}
	return ""
}
