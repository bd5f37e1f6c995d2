package archive

import (
	"github.com/gin-gonic/gin"

	"github.com/bankbot/core/internal/middleware"
	"github.com/bankbot/core/internal/modules/policy"
	"github.com/bankbot/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(group *gin.RouterGroup, auth gin.HandlerFunc) {
	g := group.Group("/archive", auth, requireExecutive)
	g.GET("", h.list)
	g.POST("", h.create)
}

// requireExecutive restricts archive management to top clearance callers.
func requireExecutive(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil || policy.ClearanceLevel(claims.AccessLevel) != policy.LevelExecutive {
		response.Forbidden(c)
		return
	}
	c.Next()
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.service.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"archives": items})
}

func (h *Handler) create(c *gin.Context) {
	artifact, err := h.service.Run(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, artifact)
}
