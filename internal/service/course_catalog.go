package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/course-home-api/internal/models"
	appErrors "github.com/noah-isme/course-home-api/pkg/errors"
)

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ListTabs(ctx context.Context, courseID string) ([]models.CourseTab, error)
}

type enrollmentReader interface {
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
}

type cachedCourse struct {
	Course models.Course      `json:"course"`
	Tabs   []models.CourseTab `json:"tabs"`
}

// CourseKey is the cache key of a course record and its tabs.
func CourseKey(courseID string) string {
	return fmt.Sprintf("course:%s", courseID)
}

// CourseCatalog loads course runs through the cache.
type CourseCatalog struct {
	courses courseReader
	cache   *CacheService
	ttl     time.Duration
}

// NewCourseCatalog constructs a CourseCatalog. cache may be nil.
func NewCourseCatalog(courses courseReader, cache *CacheService, ttl time.Duration) *CourseCatalog {
	return &CourseCatalog{courses: courses, cache: cache, ttl: ttl}
}

// Course returns the course and its tabs, reporting whether the cache served them.
func (c *CourseCatalog) Course(ctx context.Context, courseID string) (*models.Course, []models.CourseTab, bool, error) {
	if courseID == "" {
		return nil, nil, false, appErrors.Clone(appErrors.ErrValidation, "course id is required")
	}
	var cached cachedCourse
	if c.cache.Get(ctx, CourseKey(courseID), &cached) {
		return &cached.Course, cached.Tabs, true, nil
	}

	course, err := c.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, false, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	tabs, err := c.courses.ListTabs(ctx, courseID)
	if err != nil {
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course tabs")
	}

	c.cache.Set(ctx, CourseKey(courseID), cachedCourse{Course: *course, Tabs: tabs}, c.ttl)
	return course, tabs, false, nil
}

// Invalidate drops the cached course record and its outline blocks.
func (c *CourseCatalog) Invalidate(ctx context.Context, courseID string) {
	c.cache.Invalidate(ctx, CourseKey(courseID), OutlineKey(courseID))
}

// activeEnrollment returns the viewer's active enrollment or nil.
func activeEnrollment(ctx context.Context, repo enrollmentReader, userID, courseID string) (*models.Enrollment, error) {
	if userID == "" {
		return nil, nil
	}
	enrollment, err := repo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if !enrollment.IsActive {
		return nil, nil
	}
	return enrollment, nil
}
