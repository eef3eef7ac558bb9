package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zelosify/server/internal/module/opening"
	"github.com/zelosify/server/internal/shared/response"
	"github.com/zelosify/server/internal/utils/middleware"
)

// Handler handles HTTP requests for profile uploads and lifecycle.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers vendor-facing profile routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/openings/:id/profiles")
	{
		profiles.POST("/presign", h.Presign)
		profiles.POST("/upload", h.Upload)
		profiles.DELETE("/:profileId", h.Delete)
		profiles.GET("/:profileId/download", h.Download)
	}
}

// Presign mints upload authorizations for a filename batch.
//
//	@Summary		Generate upload tokens
//	@Description	Mint one token-bound destination key per filename
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Opening ID"
//	@Param			request	body		PresignRequest	true	"Filenames"
//	@Success		200		{object}	PresignResponse
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Router			/vendor/openings/{id}/profiles/presign [post]
func (h *Handler) Presign(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)
	openingID := c.Param("id")

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "filenames array is required")
		return
	}

	result, err := h.service.GenerateUploadTokens(c.Request.Context(), tenantID, openingID, userID, req.Filenames)
	if err != nil {
		h.handleError(c, err, "failed to generate upload tokens", openingID, tenantID)
		return
	}

	response.OK(c, "Upload tokens generated", result)
}

// Upload submits a profile batch. The request is either multipart
// form-data carrying raw files paired positionally with upload tokens, or
// a JSON body referencing keys already written through presigned URLs.
//
//	@Summary		Upload profiles
//	@Description	Submit candidate documents against an opening
//	@Tags			Profiles
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Opening ID"
//	@Success		200	{object}	UploadResponse
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Router			/vendor/openings/{id}/profiles/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)
	openingID := c.Param("id")

	items, err := h.parseUploadItems(c)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, verr.Message, verr.InvalidFiles)
		case errors.Is(err, ErrNoUploadItems):
			response.BadRequest(c, ErrNoUploadItems.Error())
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	result, err := h.service.SubmitProfiles(c.Request.Context(), tenantID, openingID, userID, items)
	if err != nil {
		h.handleError(c, err, "failed to submit profiles", openingID, tenantID)
		return
	}

	succeeded := result.Succeeded()
	failed := result.TotalFiles - succeeded
	message := fmt.Sprintf("%d uploaded, %d failed", succeeded, failed)
	if failed > 0 {
		response.Partial(c, message, result)
		return
	}
	response.OK(c, message, result)
}

// Delete soft-deletes a profile.
//
//	@Summary		Delete profile
//	@Description	Soft-delete a submitted profile
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"Opening ID"
//	@Param			profileId	path		int		true	"Profile ID"
//	@Success		200			{object}	DeleteResponse
//	@Failure		404			{object}	response.Envelope
//	@Router			/vendor/openings/{id}/profiles/{profileId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	openingID := c.Param("id")

	profileID, err := strconv.ParseInt(c.Param("profileId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid profile ID")
		return
	}

	result, err := h.service.SoftDelete(c.Request.Context(), tenantID, openingID, profileID)
	if err != nil {
		h.handleError(c, err, "failed to delete profile", openingID, tenantID)
		return
	}

	response.OK(c, "Profile deleted", result)
}

// Download issues a presigned download URL for a profile.
//
//	@Summary		Download profile
//	@Description	Issue a short-lived download URL for a stored profile
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"Opening ID"
//	@Param			profileId	path		int		true	"Profile ID"
//	@Success		200			{object}	DownloadGrant
//	@Failure		404			{object}	response.Envelope
//	@Router			/vendor/openings/{id}/profiles/{profileId}/download [get]
func (h *Handler) Download(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	openingID := c.Param("id")

	profileID, err := strconv.ParseInt(c.Param("profileId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid profile ID")
		return
	}

	result, err := h.service.IssueDownloadGrant(c.Request.Context(), tenantID, openingID, profileID)
	if err != nil {
		h.handleError(c, err, "failed to issue download URL", openingID, tenantID)
		return
	}

	response.OK(c, "Download URL generated", result)
}

// parseUploadItems reads the submission batch from either transport form.
func (h *Handler) parseUploadItems(c *gin.Context) ([]UploadItem, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.parseMultipart(c)
	}

	var req directUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, ErrNoUploadItems
	}
	if len(req.Uploads) == 0 {
		return nil, ErrNoUploadItems
	}

	items := make([]UploadItem, 0, len(req.Uploads))
	for _, u := range req.Uploads {
		items = append(items, UploadItem{S3Key: u.S3Key})
	}
	return items, nil
}

// parseMultipart pairs each uploaded file with its upload token by
// position. A count mismatch rejects the whole batch before any storage
// write.
func (h *Handler) parseMultipart(c *gin.Context) ([]UploadItem, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, ErrNoUploadItems
	}

	files := form.File["files"]
	tokens := decodeTokenValues(form.Value["uploadTokens"])
	if len(files) == 0 {
		return nil, ErrNoUploadItems
	}
	if len(files) != len(tokens) {
		return nil, NewCountMismatchError(len(files), len(tokens))
	}

	items := make([]UploadItem, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open uploaded file %q: %w", fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read uploaded file %q: %w", fh.Filename, err)
		}

		items = append(items, UploadItem{
			Filename: fh.Filename,
			Content:  content,
			MimeType: fh.Header.Get("Content-Type"),
			Token:    tokens[i],
		})
	}
	return items, nil
}

// decodeTokenValues expands a single uploadTokens field carrying a
// JSON-encoded array into its elements. Some clients send the token list
// as one serialized value instead of repeated form fields.
func decodeTokenValues(values []string) []string {
	if len(values) != 1 {
		return values
	}
	raw := strings.TrimSpace(values[0])
	if !strings.HasPrefix(raw, "[") {
		return values
	}
	var decoded []string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return values
	}
	return decoded
}

// handleError maps domain errors to responses, falling back to a logged
// 500.
func (h *Handler) handleError(c *gin.Context, err error, logMsg, openingID, tenantID string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, verr.Message, verr.InvalidFiles)
		return
	}
	if response.HandleError(c, err, profileErrorMappings) {
		return
	}
	h.logger.Error(logMsg,
		zap.Error(err),
		zap.String("opening_id", openingID),
		zap.String("tenant_id", tenantID),
	)
	response.InternalError(c, "Something went wrong")
}

var profileErrorMappings = []response.ErrorMapping{
	{Err: opening.ErrOpeningNotFound, Status: http.StatusNotFound},
	{Err: opening.ErrOpeningClosed, Status: http.StatusBadRequest},
	{Err: ErrProfileNotFound, Status: http.StatusNotFound},
	{Err: ErrNoUploadItems, Status: http.StatusBadRequest},
	{Err: ErrInvalidUploadToken, Status: http.StatusBadRequest},
	{Err: ErrTokenScopeMismatch, Status: http.StatusBadRequest},
}
