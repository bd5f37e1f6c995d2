package history

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankbot/core/internal/middleware"
	"github.com/bankbot/core/internal/pkg/response"
)

const sessionNotFoundMessage = "Session not found."

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(group *gin.RouterGroup, auth gin.HandlerFunc) {
	g := group.Group("/history", auth)
	g.GET("/sessions", h.listSessions)
	g.GET("/sessions/:id", h.sessionEntries)
	g.GET("/sessions/:id/export", h.exportSession)
	g.DELETE("/sessions/:id", h.deleteSession)
}

func (h *Handler) listSessions(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	summaries, err := h.service.ListSessions(c.Request.Context(), claims.UserID())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"sessions": summaries})
}

func (h *Handler) sessionEntries(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	entries, err := h.service.Entries(c.Request.Context(), claims.UserID(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if len(entries) == 0 {
		response.NotFoundMsg(c, sessionNotFoundMessage)
		return
	}

	items := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		items = append(items, EntryResponse{
			ID:           entry.ID,
			SessionID:    entry.SessionID,
			Route:        entry.Route,
			QueryText:    entry.QueryText,
			ResponseText: entry.ResponseText,
			IPAddress:    entry.IPAddress,
			CreatedAt:    entry.CreatedAt,
		})
	}
	response.OK(c, gin.H{"entries": items})
}

func (h *Handler) exportSession(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	sessionID := c.Param("id")
	entries, err := h.service.Entries(c.Request.Context(), claims.UserID(), sessionID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if len(entries) == 0 {
		response.NotFoundMsg(c, sessionNotFoundMessage)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderTranscript(sessionID, entries))
}

func (h *Handler) deleteSession(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if err := h.service.DeleteSession(c.Request.Context(), claims.UserID(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
