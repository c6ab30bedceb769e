package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-home-api/internal/dto"
	"github.com/noah-isme/course-home-api/internal/models"
	appErrors "github.com/noah-isme/course-home-api/pkg/errors"
	"github.com/noah-isme/course-home-api/pkg/response"
)

type outlineService interface {
	Outline(ctx context.Context, courseID string, viewer models.Viewer) (*dto.OutlineTabData, bool, error)
	Export(ctx context.Context, courseID string, viewer models.Viewer, format string) ([]byte, string, string, error)
}

// OutlineHandler serves the outline tab.
type OutlineHandler struct {
	service outlineService
}

// NewOutlineHandler constructs the handler.
func NewOutlineHandler(service outlineService) *OutlineHandler {
	return &OutlineHandler{service: service}
}

// Outline godoc
// @Summary Course outline tab
// @Description Sections, resume target, enrollment alert and date alerts for the caller.
// @Tags CourseHome
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /course_home/{courseId}/outline [get]
func (h *OutlineHandler) Outline(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	viewer, ok := viewerFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	start := time.Now()
	data, cacheHit, err := h.service.Outline(c.Request.Context(), strings.TrimSpace(c.Param("courseId")), viewer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data, responseMeta(c, cacheHit, start))
}

// Export godoc
// @Summary Download the course outline
// @Tags CourseHome
// @Produce text/csv
// @Produce application/pdf
// @Param courseId path string true "Course ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /course_home/{courseId}/outline/export [get]
func (h *OutlineHandler) Export(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	viewer, ok := viewerFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	body, filename, contentType, err := h.service.Export(c.Request.Context(), strings.TrimSpace(c.Param("courseId")), viewer, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, contentType, body)
}
