package opening

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zelosify/server/internal/shared/response"
	"github.com/zelosify/server/internal/utils/middleware"
	"github.com/zelosify/server/internal/utils/pagination"
)

// Handler handles HTTP requests for openings.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new opening handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers vendor-facing opening routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	openings := r.Group("/openings")
	{
		openings.GET("", h.List)
		openings.GET("/:id", h.Get)
	}
}

// List handles the paginated opening listing.
//
//	@Summary		List openings
//	@Description	Fetch all openings available to the vendor's tenant
//	@Tags			Openings
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int	false	"Page"	default(1)
//	@Param			limit	query		int	false	"Items per page"	default(10)
//	@Success		200		{object}	ListResponse
//	@Failure		403		{object}	response.Envelope
//	@Router			/vendor/openings [get]
func (h *Handler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	p := pagination.New()
	if err := c.ShouldBindQuery(p); err != nil {
		response.BadRequest(c, "invalid pagination parameters")
		return
	}
	p.Normalize()

	result, err := h.service.List(c.Request.Context(), tenantID, p)
	if err != nil {
		h.logger.Error("failed to list openings", zap.Error(err), zap.String("tenant_id", tenantID))
		response.InternalError(c, "Failed to fetch openings")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles the opening details view.
//
//	@Summary		Get opening details
//	@Description	Fetch one opening with its submitted profiles
//	@Tags			Openings
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Opening ID"
//	@Success		200	{object}	DetailsResponse
//	@Failure		404	{object}	response.Envelope
//	@Router			/vendor/openings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	openingID := c.Param("id")
	if openingID == "" {
		response.BadRequest(c, "Opening ID is required")
		return
	}

	result, err := h.service.Get(c.Request.Context(), openingID, tenantID)
	if err != nil {
		if response.HandleError(c, err, errorMappings) {
			return
		}
		h.logger.Error("failed to fetch opening details",
			zap.Error(err),
			zap.String("opening_id", openingID),
			zap.String("tenant_id", tenantID),
		)
		response.InternalError(c, "Failed to fetch opening details")
		return
	}

	c.JSON(http.StatusOK, result)
}

var errorMappings = []response.ErrorMapping{
	{Err: ErrOpeningNotFound, Status: http.StatusNotFound},
	{Err: ErrOpeningClosed, Status: http.StatusBadRequest},
}
