package service

import (
	"time"

	"github.com/noah-isme/course-home-api/internal/models"
)

// ChatVisibilityInput holds everything the chat visibility rule looks at.
type ChatVisibilityInput struct {
	EnrollmentMode models.EnrollmentMode
	IsStaff        bool
	Enabled        bool
	EndDate        *time.Time
	Now            time.Time
}

// IsChatVisible decides whether the learning assistant is offered.
//
// The feature flag and the course end date gate everyone, staff included.
// Past those, staff always see the chat and learners need a paid mode.
func IsChatVisible(in ChatVisibilityInput) bool {
	if !in.Enabled {
		return false
	}
	if in.EndDate != nil && in.Now.After(*in.EndDate) {
		return false
	}
	if in.IsStaff {
		return true
	}
	return in.EnrollmentMode.IsPaid()
}
