package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/jaki95/songripper/internal/domain"
	"github.com/jaki95/songripper/internal/render"
)

const (
	msgFilesDeleted = "Files deleted"
	msgNoFiles      = "No files in staging"
	msgListFailed   = "Could not list staged tracks"
	msgClearFailed  = "Could not delete staged tracks"

	triggerRefresh  = "refreshStaging"
	headerHXRequest = "HX-Request"
	headerTrigger   = "HX-Trigger"
	headerAfterSwap = "HX-Trigger-After-Swap"
)

// index renders the full staging page. An optional msg query parameter is
// shown in the alert container.
func (s *Server) index(c *gin.Context) {
	msg := c.Query("msg")

	tracks, err := s.store.ListTracks(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list staged tracks", "error", fmt.Errorf("%w: %v", ErrListTracks, err))
		tracks = []domain.StagedTrack{}
		msg = msgListFailed
	}

	data := render.NewPageData(s.cfg.Markup, msg, tracks)
	if hasFiles, err := s.store.HasFiles(c.Request.Context()); err != nil {
		slog.Warn("Failed to check staging for files", "error", err)
	} else {
		data.HasFiles = hasFiles
	}

	c.HTML(http.StatusOK, render.PageTemplate, data)
}

// staging renders the staging table fragment
func (s *Server) staging(c *gin.Context) {
	tracks, err := s.store.ListTracks(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list staged tracks", "error", fmt.Errorf("%w: %v", ErrListTracks, err))
		c.HTML(http.StatusInternalServerError, render.ErrorTemplate, msgListFailed)
		return
	}

	c.HTML(http.StatusOK, render.StagingTemplate, render.NewStagingData(s.cfg.Markup, tracks))
}

// deleteStaging removes everything in staging. htmx requests get a message
// fragment and, when files were removed, a trigger to reload the table.
// Plain form posts are redirected back to the page.
func (s *Server) deleteStaging(c *gin.Context) {
	deleted, err := s.store.Clear(c.Request.Context())
	if err != nil {
		slog.Error("Failed to delete staging", "error", fmt.Errorf("%w: %v", ErrClearStaging, err))
		if isHTMX(c) {
			c.HTML(http.StatusInternalServerError, render.ErrorTemplate, msgClearFailed)
			return
		}
		c.Redirect(http.StatusSeeOther, "/?msg="+url.QueryEscape(msgClearFailed))
		return
	}

	msg := msgNoFiles
	if deleted {
		msg = msgFilesDeleted
	}

	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/?msg="+url.QueryEscape(msg))
		return
	}
	if deleted {
		c.Header(headerAfterSwap, triggerRefresh)
	}
	c.HTML(http.StatusOK, render.MessageTemplate, msg)
}

// health handles health check requests
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
