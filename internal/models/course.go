package models

import "time"

// Course is a single course run.
type Course struct {
	ID                       string     `db:"id" json:"id"`
	Org                      string     `db:"org" json:"org"`
	Number                   string     `db:"number" json:"number"`
	Title                    string     `db:"title" json:"title"`
	StartDate                *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate                  *time.Time `db:"end_date" json:"end_date,omitempty"`
	EnrollmentStart          *time.Time `db:"enrollment_start" json:"enrollment_start,omitempty"`
	EnrollmentEnd            *time.Time `db:"enrollment_end" json:"enrollment_end,omitempty"`
	InvitationOnly           bool       `db:"invitation_only" json:"invitation_only"`
	ChatEnabled              bool       `db:"chat_enabled" json:"chat_enabled"`
	CertificateAvailableDate *time.Time `db:"certificate_available_date" json:"certificate_available_date,omitempty"`
	AccessDurationDays       int        `db:"access_duration_days" json:"access_duration_days"`
}

// HasEnded reports whether the course end date lies before now.
func (c *Course) HasEnded(now time.Time) bool {
	return c.EndDate != nil && now.After(*c.EndDate)
}

// EnrollmentOpen reports whether now falls inside the enrollment window.
// Missing bounds are open.
func (c *Course) EnrollmentOpen(now time.Time) bool {
	if c.EnrollmentStart != nil && now.Before(*c.EnrollmentStart) {
		return false
	}
	if c.EnrollmentEnd != nil && now.After(*c.EnrollmentEnd) {
		return false
	}
	return true
}

// CourseTab is a navigation tab on the course home page.
type CourseTab struct {
	CourseID string `db:"course_id" json:"-"`
	TabID    string `db:"tab_id" json:"tab_id"`
	Title    string `db:"title" json:"title"`
	URL      string `db:"url" json:"url"`
	Position int    `db:"position" json:"-"`
}
