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

type courseHomeService interface {
	Metadata(ctx context.Context, courseID string, viewer models.Viewer) (*dto.CourseMetadata, bool, error)
}

type coursePurger interface {
	Invalidate(ctx context.Context, courseID string)
}

// CourseHomeHandler serves the course home header.
type CourseHomeHandler struct {
	service courseHomeService
	purger  coursePurger
}

// NewCourseHomeHandler constructs the handler.
func NewCourseHomeHandler(service courseHomeService, purger coursePurger) *CourseHomeHandler {
	return &CourseHomeHandler{service: service, purger: purger}
}

// Metadata godoc
// @Summary Course home metadata
// @Description Course header data, tabs and learning assistant visibility for the caller.
// @Tags CourseHome
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /course_home/{courseId}/metadata [get]
func (h *CourseHomeHandler) Metadata(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	viewer, ok := viewerFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courseID := strings.TrimSpace(c.Param("courseId"))
	start := time.Now()
	meta, cacheHit, err := h.service.Metadata(c.Request.Context(), courseID, viewer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meta, responseMeta(c, cacheHit, start))
}

// PurgeCache godoc
// @Summary Purge cached course data
// @Tags CourseHome
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /course_home/{courseId}/cache [delete]
func (h *CourseHomeHandler) PurgeCache(c *gin.Context) {
	if h.purger == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	courseID := strings.TrimSpace(c.Param("courseId"))
	if courseID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courseId is required"))
		return
	}
	h.purger.Invalidate(c.Request.Context(), courseID)
	response.JSON(c, http.StatusOK, gin.H{"course_id": courseID, "purged": true})
}
