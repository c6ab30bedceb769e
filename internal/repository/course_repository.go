package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-home-api/internal/models"
)

const courseColumns = `id, org, number, title, start_date, end_date, enrollment_start, enrollment_end,
        invitation_only, chat_enabled, certificate_available_date, access_duration_days`

// CourseRepository reads course runs and their tabs.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID returns a course by its ID. sql.ErrNoRows is returned unwrapped.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListTabs returns the course tabs ordered for display.
func (r *CourseRepository) ListTabs(ctx context.Context, courseID string) ([]models.CourseTab, error) {
	const query = `SELECT course_id, tab_id, title, url, position FROM course_tabs WHERE course_id = $1 ORDER BY position ASC, tab_id ASC`
	tabs := []models.CourseTab{}
	if err := r.db.SelectContext(ctx, &tabs, query, courseID); err != nil {
		return nil, fmt.Errorf("list course tabs: %w", err)
	}
	return tabs, nil
}
