package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-home-api/internal/dto"
	"github.com/noah-isme/course-home-api/internal/models"
	appErrors "github.com/noah-isme/course-home-api/pkg/errors"
	"github.com/noah-isme/course-home-api/pkg/export"
)

type outlineReader interface {
	ListBlocks(ctx context.Context, courseID string) ([]models.OutlineBlock, error)
	FindProgress(ctx context.Context, userID, courseID string) (*models.CourseProgress, error)
	FindActiveOffer(ctx context.Context, courseID string, now time.Time) (*models.CourseOffer, error)
}

// Exporter renders an outline dataset into a downloadable document.
type Exporter interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// OutlineServiceConfig tunes outline behaviour.
type OutlineServiceConfig struct {
	CacheTTL       time.Duration
	EndAlertWindow time.Duration
}

// OutlineServiceParams groups constructor dependencies.
type OutlineServiceParams struct {
	Catalog     *CourseCatalog
	Enrollments enrollmentReader
	Outline     outlineReader
	Cache       *CacheService
	Metrics     *MetricsService
	Exporters   map[string]Exporter
	Logger      *zap.Logger
	Config      OutlineServiceConfig
}

// OutlineService composes the outline tab.
type OutlineService struct {
	catalog     *CourseCatalog
	enrollments enrollmentReader
	outline     outlineReader
	cache       *CacheService
	metrics     *MetricsService
	exporters   map[string]Exporter
	logger      *zap.Logger
	now         func() time.Time
	cfg         OutlineServiceConfig
}

// NewOutlineService constructs an OutlineService with sane defaults.
func NewOutlineService(params OutlineServiceParams) *OutlineService {
	cfg := params.Config
	if cfg.EndAlertWindow <= 0 {
		cfg.EndAlertWindow = 14 * 24 * time.Hour
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	exporters := params.Exporters
	if exporters == nil {
		exporters = map[string]Exporter{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		}
	}
	return &OutlineService{
		catalog:     params.Catalog,
		enrollments: params.Enrollments,
		outline:     params.Outline,
		cache:       params.Cache,
		metrics:     params.Metrics,
		exporters:   exporters,
		logger:      logger,
		now:         time.Now,
		cfg:         cfg,
	}
}

// OutlineKey is the cache key of a course's outline blocks.
func OutlineKey(courseID string) string {
	return fmt.Sprintf("outline:%s:blocks", courseID)
}

// Outline returns the outline tab data for the viewer and whether the
// outline structure was served from cache.
func (s *OutlineService) Outline(ctx context.Context, courseID string, viewer models.Viewer) (*dto.OutlineTabData, bool, error) {
	course, _, _, err := s.catalog.Course(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	sections, cacheHit, err := s.sections(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	enrollment, err := activeEnrollment(ctx, s.enrollments, viewer.UserID, courseID)
	if err != nil {
		return nil, false, err
	}
	now := s.now()

	data := &dto.OutlineTabData{
		CourseID:     course.ID,
		CourseBlocks: sections,
		EndDate:      course.EndDate,
		Alerts:       []models.CourseAlert{},
	}

	alert := SelectEnrollmentAlert(OutlineAlertInput{
		IsEnrolled: enrollment != nil,
		IsStaff:    viewer.IsStaff(),
		CanEnroll:  CanSelfEnroll(course, now),
	})
	s.metrics.ObserveEnrollmentAlert(alert.Kind)
	if alert.Shown() {
		data.EnrollAlert = &alert
	}

	if enrollment != nil {
		resume, err := s.resume(ctx, viewer.UserID, courseID)
		if err != nil {
			return nil, false, err
		}
		data.ResumeCourse = resume

		var offer *models.CourseOffer
		if enrollment.EnrollmentMode() == models.ModeAudit {
			offer, err = s.outline.FindActiveOffer(ctx, courseID, now)
			if err != nil {
				s.logger.Warn("offer lookup failed", zap.String("course_id", courseID), zap.Error(err))
				offer = nil
			}
		}
		alerts := SelectCourseAlerts(CourseAlertInput{
			Course:     course,
			Enrollment: enrollment,
			Offer:      offer,
			Now:        now,
			EndWindow:  s.cfg.EndAlertWindow,
		})
		if len(alerts) > 0 {
			data.Alerts = alerts
		}
	}

	return data, cacheHit, nil
}

// Export renders the outline for enrolled learners and staff. It returns the
// document, a file name and the content type.
func (s *OutlineService) Export(ctx context.Context, courseID string, viewer models.Viewer, format string) ([]byte, string, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	course, _, _, err := s.catalog.Course(ctx, courseID)
	if err != nil {
		return nil, "", "", err
	}
	if !viewer.IsStaff() {
		enrollment, err := activeEnrollment(ctx, s.enrollments, viewer.UserID, courseID)
		if err != nil {
			return nil, "", "", err
		}
		if enrollment == nil {
			return nil, "", "", appErrors.Clone(appErrors.ErrForbidden, "enrollment required to export the outline")
		}
	}
	sections, _, err := s.sections(ctx, courseID)
	if err != nil {
		return nil, "", "", err
	}

	body, err := exporter.Render(outlineDataset(course, sections))
	if err != nil {
		return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render outline")
	}
	filename := fmt.Sprintf("%s-outline.%s", sanitizeFilename(course.ID), exporter.Extension())
	return body, filename, exporter.ContentType(), nil
}

func (s *OutlineService) sections(ctx context.Context, courseID string) ([]dto.OutlineSection, bool, error) {
	var sections []dto.OutlineSection
	if s.cache.Get(ctx, OutlineKey(courseID), &sections) {
		return sections, true, nil
	}
	blocks, err := s.outline.ListBlocks(ctx, courseID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load outline")
	}
	sections = buildSections(blocks)
	s.cache.Set(ctx, OutlineKey(courseID), sections, s.cfg.CacheTTL)
	return sections, false, nil
}

func (s *OutlineService) resume(ctx context.Context, userID, courseID string) (dto.ResumeCourse, error) {
	progress, err := s.outline.FindProgress(ctx, userID, courseID)
	if err != nil {
		return dto.ResumeCourse{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course progress")
	}
	if progress == nil || progress.LastBlockID == "" {
		return dto.ResumeCourse{}, nil
	}
	return dto.ResumeCourse{
		HasVisitedCourse: true,
		URL:              fmt.Sprintf("/course/%s/%s", courseID, progress.LastBlockID),
	}, nil
}

// buildSections nests sequentials under their chapters. Blocks arrive
// ordered by position; orphaned sequentials are dropped.
func buildSections(blocks []models.OutlineBlock) []dto.OutlineSection {
	sections := []dto.OutlineSection{}
	index := make(map[string]int)
	for _, block := range blocks {
		if block.BlockType != models.BlockTypeChapter {
			continue
		}
		index[block.ID] = len(sections)
		sections = append(sections, dto.OutlineSection{
			ID:          block.ID,
			DisplayName: block.DisplayName,
			Sequentials: []dto.OutlineSequential{},
		})
	}
	for _, block := range blocks {
		if block.BlockType != models.BlockTypeSequential || block.ParentID == nil {
			continue
		}
		i, ok := index[*block.ParentID]
		if !ok {
			continue
		}
		sections[i].Sequentials = append(sections[i].Sequentials, dto.OutlineSequential{
			ID:          block.ID,
			DisplayName: block.DisplayName,
			Due:         block.DueDate,
		})
	}
	return sections
}

func outlineDataset(course *models.Course, sections []dto.OutlineSection) export.Dataset {
	data := export.Dataset{
		Title:   course.Title,
		Headers: []string{"Section", "Subsection", "Due"},
	}
	for _, section := range sections {
		if len(section.Sequentials) == 0 {
			data.Rows = append(data.Rows, []string{section.DisplayName, "", ""})
			continue
		}
		for _, seq := range section.Sequentials {
			due := ""
			if seq.Due != nil {
				due = seq.Due.UTC().Format("2006-01-02")
			}
			data.Rows = append(data.Rows, []string{section.DisplayName, seq.DisplayName, due})
		}
	}
	return data
}

func sanitizeFilename(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
