package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/jaki95/songripper/internal/domain"
	"github.com/jaki95/songripper/internal/render"
	"github.com/jaki95/songripper/internal/storage"
)

const (
	msgNoSelection = "No tracks selected"
	msgNoFields    = "No fields selected"
)

// fieldEdit is one enabled field of a bulk edit.
type fieldEdit struct {
	field string
	value string
}

// editForm renders the inline editor for one cell of the staging table
func (s *Server) editForm(c *gin.Context) {
	track, err := s.store.Track(c.Request.Context(), c.Query("filepath"))
	if err != nil {
		s.editFailed(c, err)
		return
	}
	field := c.Query("field")
	if !domain.IsEditable(field) {
		s.editFailed(c, fmt.Errorf("%w: %q", domain.ErrUnknownField, field))
		return
	}

	c.HTML(http.StatusOK, render.EditTemplate, render.NewCellData(track, field))
}

// editTrack applies an inline edit and returns the updated cell. The table
// is refreshed because the edit may have moved the track.
func (s *Server) editTrack(c *gin.Context) {
	field := c.PostForm("field")
	track, err := s.store.UpdateTrack(c.Request.Context(), c.PostForm("filepath"), field, c.PostForm("value"))
	if err != nil {
		s.editFailed(c, err)
		return
	}

	c.Header(headerTrigger, triggerRefresh)
	c.HTML(http.StatusOK, render.CellTemplate, render.NewCellData(track, field))
}

// bulkEdit applies every enabled {field}_value of the bulk-edit form to each
// selected track.
func (s *Server) bulkEdit(c *gin.Context) {
	paths := c.PostFormArray(s.cfg.Markup.RowCheckbox)
	edits := enabledEdits(c)
	switch {
	case len(paths) == 0:
		s.reply(c, http.StatusBadRequest, render.ErrorTemplate, msgNoSelection)
		return
	case len(edits) == 0:
		s.reply(c, http.StatusBadRequest, render.ErrorTemplate, msgNoFields)
		return
	}

	updated, failed := 0, 0
	for _, path := range paths {
		if err := s.applyEdits(c, path, edits); err != nil {
			slog.Error("Failed to edit track", "filepath", path, "error", fmt.Errorf("%w: %v", ErrUpdateTrack, err))
			failed++
			continue
		}
		updated++
	}

	msg := fmt.Sprintf("Updated %d track(s)", updated)
	if failed > 0 {
		msg += fmt.Sprintf(", %d failed", failed)
	}
	if updated > 0 {
		c.Header(headerTrigger, triggerRefresh)
	}

	switch {
	case updated == 0:
		s.reply(c, http.StatusInternalServerError, render.ErrorTemplate, msg)
	case failed > 0:
		s.reply(c, http.StatusOK, render.ErrorTemplate, msg)
	default:
		s.reply(c, http.StatusOK, render.MessageTemplate, msg)
	}
}

// applyEdits applies edits in order, following the track as it moves.
func (s *Server) applyEdits(c *gin.Context, path string, edits []fieldEdit) error {
	for _, edit := range edits {
		track, err := s.store.UpdateTrack(c.Request.Context(), path, edit.field, edit.value)
		if err != nil {
			return err
		}
		path = track.Filepath
	}
	return nil
}

func enabledEdits(c *gin.Context) []fieldEdit {
	var edits []fieldEdit
	for _, field := range domain.EditableFields {
		if c.PostForm(domain.EnableInput(field)) == "" {
			continue
		}
		edits = append(edits, fieldEdit{field: field, value: c.PostForm(domain.ValueInput(field))})
	}
	return edits
}

// reply sends msg as a fragment to htmx requests and as a redirect back to
// the page otherwise.
func (s *Server) reply(c *gin.Context, status int, template, msg string) {
	if isHTMX(c) {
		c.HTML(status, template, msg)
		return
	}
	c.Redirect(http.StatusSeeOther, "/?msg="+url.QueryEscape(msg))
}

func (s *Server) editFailed(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrTrackNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrTrackExists):
		status = http.StatusConflict
	case errors.Is(err, storage.ErrNotStaged),
		errors.Is(err, storage.ErrInvalidValue),
		errors.Is(err, domain.ErrUnknownField):
		status = http.StatusBadRequest
	}

	slog.Error("Failed to edit track", "status", status, "error", fmt.Errorf("%w: %v", ErrUpdateTrack, err))
	c.HTML(status, render.ErrorTemplate, fmt.Sprintf("Could not update track: %v", err))
}
