package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-home-api/internal/dto"
	"github.com/noah-isme/course-home-api/internal/models"
)

// CourseHomeServiceParams groups constructor dependencies.
type CourseHomeServiceParams struct {
	Catalog     *CourseCatalog
	Enrollments enrollmentReader
	Metrics     *MetricsService
	Logger      *zap.Logger
	ChatEnabled bool
}

// CourseHomeService composes the course home metadata payload.
type CourseHomeService struct {
	catalog     *CourseCatalog
	enrollments enrollmentReader
	metrics     *MetricsService
	logger      *zap.Logger
	chatEnabled bool
	now         func() time.Time
}

// NewCourseHomeService constructs a CourseHomeService.
func NewCourseHomeService(params CourseHomeServiceParams) *CourseHomeService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseHomeService{
		catalog:     params.Catalog,
		enrollments: params.Enrollments,
		metrics:     params.Metrics,
		logger:      logger,
		chatEnabled: params.ChatEnabled,
		now:         time.Now,
	}
}

// Metadata returns the course metadata for the viewer and whether the course
// record came from cache.
func (s *CourseHomeService) Metadata(ctx context.Context, courseID string, viewer models.Viewer) (*dto.CourseMetadata, bool, error) {
	course, tabs, cacheHit, err := s.catalog.Course(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	enrollment, err := activeEnrollment(ctx, s.enrollments, viewer.UserID, courseID)
	if err != nil {
		return nil, false, err
	}

	enabled := s.chatEnabled && course.ChatEnabled
	visible := IsChatVisible(ChatVisibilityInput{
		EnrollmentMode: enrollment.EnrollmentMode(),
		IsStaff:        viewer.IsStaff(),
		Enabled:        enabled,
		EndDate:        course.EndDate,
		Now:            s.now(),
	})
	s.metrics.ObserveChatVisibility(visible)

	meta := &dto.CourseMetadata{
		CourseID:          course.ID,
		Title:             course.Title,
		Org:               course.Org,
		Number:            course.Number,
		Start:             course.StartDate,
		End:               course.EndDate,
		IsEnrolled:        enrollment != nil,
		IsStaff:           viewer.IsStaff(),
		Tabs:              tabs,
		LearningAssistant: dto.LearningAssistant{Enabled: enabled, Visible: visible},
	}
	if meta.Tabs == nil {
		meta.Tabs = []models.CourseTab{}
	}
	if enrollment != nil {
		mode := enrollment.Mode
		meta.EnrollmentMode = &mode
	}
	s.logger.Debug("course metadata composed",
		zap.String("course_id", courseID),
		zap.Bool("enrolled", meta.IsEnrolled),
		zap.Bool("chat_visible", visible))
	return meta, cacheHit, nil
}
