package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-home-api/internal/dto"
	"github.com/noah-isme/course-home-api/internal/models"
	appErrors "github.com/noah-isme/course-home-api/pkg/errors"
	"github.com/noah-isme/course-home-api/pkg/jobs"
)

// Enrollment outcomes recorded in metrics.
const (
	EnrollResultCreated     = "created"
	EnrollResultReactivated = "reactivated"
	EnrollResultConflict    = "conflict"
	EnrollResultNotAllowed  = "not_allowed"
	EnrollResultInvalid     = "invalid"
	EnrollResultFailed      = "failed"
)

// Audit queue identifiers.
const (
	EnrollmentAuditJobType   = "enrollment.audit"
	EnrollmentAuditQueueName = "enrollment-audit"
)

type enrollmentStore interface {
	enrollmentReader
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Reactivate(ctx context.Context, id string) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// EnrollmentServiceParams groups constructor dependencies.
type EnrollmentServiceParams struct {
	Catalog     *CourseCatalog
	Enrollments enrollmentStore
	Queue       jobEnqueuer
	Validator   *validator.Validate
	Metrics     *MetricsService
	Logger      *zap.Logger
}

// EnrollmentService handles learner self-enrollment.
type EnrollmentService struct {
	catalog     *CourseCatalog
	enrollments enrollmentStore
	queue       jobEnqueuer
	validator   *validator.Validate
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(params EnrollmentServiceParams) *EnrollmentService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		catalog:     params.Catalog,
		enrollments: params.Enrollments,
		queue:       params.Queue,
		validator:   validate,
		metrics:     params.Metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// EnrollmentAudit is the payload of an enrollment audit job.
type EnrollmentAudit struct {
	Action       string    `json:"action"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id"`
	EnrollmentID string    `json:"enrollment_id"`
	Mode         string    `json:"mode"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Enroll enrolls the viewer in the requested course, reactivating a previous
// enrollment when one exists.
func (s *EnrollmentService) Enroll(ctx context.Context, viewer models.Viewer, req dto.EnrollRequest) (*dto.EnrollResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.ObserveEnrollment(EnrollResultInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if viewer.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing user context")
	}

	course, _, _, err := s.catalog.Course(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !CanSelfEnroll(course, now) {
		s.metrics.ObserveEnrollment(EnrollResultNotAllowed)
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment is not open for this course")
	}

	existing, err := s.enrollments.FindByUserAndCourse(ctx, viewer.UserID, course.ID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.metrics.ObserveEnrollment(EnrollResultFailed)
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
		}
		existing = nil
	}

	if existing != nil {
		if existing.IsActive {
			s.metrics.ObserveEnrollment(EnrollResultConflict)
			return nil, appErrors.Clone(appErrors.ErrConflict, "already enrolled")
		}
		if err := s.enrollments.Reactivate(ctx, existing.ID); err != nil {
			s.metrics.ObserveEnrollment(EnrollResultFailed)
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reactivate enrollment")
		}
		existing.IsActive = true
		s.metrics.ObserveEnrollment(EnrollResultReactivated)
		s.audit(models.AuditActionReactivate, existing, now)
		return &dto.EnrollResponse{Enrollment: *existing, Reactivated: true}, nil
	}

	enrollment := &models.Enrollment{
		UserID:   viewer.UserID,
		CourseID: course.ID,
		Mode:     string(models.ModeAudit),
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if errors.Is(err, appErrors.ErrConflict) {
			s.metrics.ObserveEnrollment(EnrollResultConflict)
			return nil, err
		}
		s.metrics.ObserveEnrollment(EnrollResultFailed)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	s.metrics.ObserveEnrollment(EnrollResultCreated)
	s.audit(models.AuditActionEnroll, enrollment, now)
	return &dto.EnrollResponse{Enrollment: *enrollment}, nil
}

// audit enqueues an audit record. Failures never fail the enrollment.
func (s *EnrollmentService) audit(action string, enrollment *models.Enrollment, now time.Time) {
	if s.queue == nil {
		return
	}
	payload := EnrollmentAudit{
		Action:       action,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		EnrollmentID: enrollment.ID,
		Mode:         enrollment.Mode,
		OccurredAt:   now.UTC(),
	}
	if err := s.queue.Enqueue(jobs.Job{Type: EnrollmentAuditJobType, Payload: payload}); err != nil {
		s.logger.Warn("failed to enqueue enrollment audit",
			zap.String("enrollment_id", enrollment.ID),
			zap.Error(err))
	}
}
