package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-home-api/internal/dto"
	"github.com/noah-isme/course-home-api/internal/models"
	appErrors "github.com/noah-isme/course-home-api/pkg/errors"
	"github.com/noah-isme/course-home-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, viewer models.Viewer, req dto.EnrollRequest) (*dto.EnrollResponse, error)
}

// EnrollmentHandler exposes self-enrollment.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Create godoc
// @Summary Enroll in a course
// @Description Creates an audit enrollment, or reactivates a previous one (200).
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param payload body dto.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Security BearerAuth
// @Router /enrollment [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	viewer, ok := viewerFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.enrollments.Enroll(c.Request.Context(), viewer, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Reactivated {
		response.JSON(c, http.StatusOK, result)
		return
	}
	response.Created(c, result)
}
