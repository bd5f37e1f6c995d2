package rag

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bankbot/core/internal/middleware"
	"github.com/bankbot/core/internal/modules/ai"
	"github.com/bankbot/core/internal/modules/audit"
	"github.com/bankbot/core/internal/modules/policy"
	"github.com/bankbot/core/internal/pkg/response"
)

const (
	forbiddenMessage  = "You do not have permission to access the relevant information."
	notFoundMessage   = "No relevant documents found."
	badGatewayMessage = "The model provider is unavailable, please retry later."
	badRequestMessage = "A non-empty query is required."
)

type Handler struct {
	service *Service
	audit   *audit.Service
}

func NewHandler(service *Service, auditService *audit.Service) *Handler {
	return &Handler{service: service, audit: auditService}
}

func (h *Handler) RegisterRoutes(group *gin.RouterGroup, auth gin.HandlerFunc) {
	g := group.Group("/rag", auth)
	g.POST("/retrieve", h.retrieve)
	g.POST("/answer", h.answer)
}

func (h *Handler) retrieve(c *gin.Context) {
	h.handle(c, "retrieve", func(c *gin.Context, caller Caller, req QueryRequest) (policy.DisclosureTier, int, error) {
		resp, err := h.service.Retrieve(c.Request.Context(), caller, req)
		if err != nil {
			return policy.TierNone, 0, err
		}
		response.OK(c, resp)
		return resp.GrantedTier, 200, nil
	})
}

func (h *Handler) answer(c *gin.Context) {
	h.handle(c, "answer", func(c *gin.Context, caller Caller, req QueryRequest) (policy.DisclosureTier, int, error) {
		resp, err := h.service.Answer(c.Request.Context(), caller, req)
		if err != nil {
			return policy.TierNone, 0, err
		}
		response.OK(c, resp)
		return resp.GrantedTier, 200, nil
	})
}

type routeFunc func(c *gin.Context, caller Caller, req QueryRequest) (policy.DisclosureTier, int, error)

// handle factors the per-route boilerplate: request binding, caller
// identity, error mapping and the audit trail entry.
func (h *Handler) handle(c *gin.Context, action string, run routeFunc) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, badRequestMessage)
		return
	}

	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Unauthorized(c)
		return
	}
	caller := Caller{
		UserID:   claims.UserID(),
		Username: claims.Username,
		Level:    policy.ClearanceLevel(claims.AccessLevel),
		IP:       c.ClientIP(),
	}

	start := time.Now()
	tier, status, err := run(c, caller, req)
	if err != nil {
		status = h.fail(c, err)
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		UserID:          caller.UserID,
		Action:          action,
		UserAccessLevel: int(caller.Level),
		TierGranted:     tier.String(),
		QueryText:       req.Query,
		IPAddress:       caller.IP,
		UserAgent:       c.Request.UserAgent(),
		ResponseTimeMs:  time.Since(start).Milliseconds(),
		StatusCode:      status,
	})
}

// fail maps a pipeline error to its HTTP status and returns the status
// for the audit entry.
func (h *Handler) fail(c *gin.Context, err error) int {
	var providerErr *ai.ProviderError
	switch {
	case errors.Is(err, ErrForbidden):
		response.ForbiddenMsg(c, forbiddenMessage)
		return 403
	case errors.Is(err, ErrNotFound):
		response.NotFoundMsg(c, notFoundMessage)
		return 404
	case errors.As(err, &providerErr):
		response.BadGateway(c, badGatewayMessage)
		return 502
	default:
		response.InternalError(c, err)
		return 500
	}
}
