package dto

import (
	"time"

	"github.com/noah-isme/course-home-api/internal/models"
)

// LearningAssistant reports the chat state for the viewer.
type LearningAssistant struct {
	Enabled bool `json:"enabled"`
	Visible bool `json:"visible"`
}

// CourseMetadata is the course home header payload.
type CourseMetadata struct {
	CourseID          string             `json:"course_id"`
	Title             string             `json:"title"`
	Org               string             `json:"org"`
	Number            string             `json:"number"`
	Start             *time.Time         `json:"start"`
	End               *time.Time         `json:"end"`
	IsEnrolled        bool               `json:"is_enrolled"`
	IsStaff           bool               `json:"is_staff"`
	EnrollmentMode    *string            `json:"enrollment_mode"`
	Tabs              []models.CourseTab `json:"tabs"`
	LearningAssistant LearningAssistant  `json:"learning_assistant"`
}

// OutlineSequential is one subsection in the outline.
type OutlineSequential struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Due         *time.Time `json:"due,omitempty"`
}

// OutlineSection is a chapter with its subsections.
type OutlineSection struct {
	ID          string              `json:"id"`
	DisplayName string              `json:"display_name"`
	Sequentials []OutlineSequential `json:"sequentials"`
}

// ResumeCourse points the learner back to their last visited block.
type ResumeCourse struct {
	HasVisitedCourse bool   `json:"has_visited_course"`
	URL              string `json:"url"`
}

// OutlineTabData is the outline tab payload.
type OutlineTabData struct {
	CourseID     string                  `json:"course_id"`
	CourseBlocks []OutlineSection        `json:"course_blocks"`
	ResumeCourse ResumeCourse            `json:"resume_course"`
	EnrollAlert  *models.EnrollmentAlert `json:"enroll_alert"`
	EndDate      *time.Time              `json:"end_date"`
	Alerts       []models.CourseAlert    `json:"alerts"`
}

// EnrollRequest submits a self-enrollment.
type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,max=255"`
}

// EnrollResponse reports the resulting enrollment.
type EnrollResponse struct {
	Enrollment  models.Enrollment `json:"enrollment"`
	Reactivated bool              `json:"reactivated"`
}
