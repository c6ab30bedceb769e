package service

import (
	"time"

	"github.com/noah-isme/course-home-api/internal/models"
)

// OutlineAlertInput is the user state enrollment alert selection depends on.
type OutlineAlertInput struct {
	IsEnrolled bool
	IsStaff    bool
	CanEnroll  bool
}

// SelectEnrollmentAlert picks the enrollment alert for the outline tab.
// The error and staff notice never appear together.
func SelectEnrollmentAlert(in OutlineAlertInput) models.EnrollmentAlert {
	switch {
	case in.IsEnrolled:
		return models.EnrollmentAlert{Kind: models.AlertNone}
	case in.IsStaff:
		return models.EnrollmentAlert{Kind: models.AlertStaffUnenrolledInfo, Severity: models.SeverityInfo}
	default:
		return models.EnrollmentAlert{Kind: models.AlertEnrollmentError, Severity: models.SeverityError, CanEnroll: in.CanEnroll}
	}
}

// CanSelfEnroll reports whether a learner may enroll in the course on their own.
func CanSelfEnroll(course *models.Course, now time.Time) bool {
	if course == nil || course.InvitationOnly || course.HasEnded(now) {
		return false
	}
	return course.EnrollmentOpen(now)
}

// CourseAlertInput feeds the additive outline alerts.
type CourseAlertInput struct {
	Course     *models.Course
	Enrollment *models.Enrollment
	Offer      *models.CourseOffer
	Now        time.Time
	EndWindow  time.Duration
}

// SelectCourseAlerts returns the date, certificate, expiration and offer
// alerts for an enrolled learner, in display order. Unenrolled viewers get none.
func SelectCourseAlerts(in CourseAlertInput) []models.CourseAlert {
	if in.Course == nil || in.Enrollment == nil || !in.Enrollment.IsActive {
		return nil
	}
	course, now := in.Course, in.Now
	mode := in.Enrollment.EnrollmentMode()
	var alerts []models.CourseAlert

	if course.StartDate != nil && now.Before(*course.StartDate) {
		alerts = append(alerts, models.CourseAlert{Kind: models.CourseAlertStart, Date: *course.StartDate})
	}
	if course.EndDate != nil && now.Before(*course.EndDate) && course.EndDate.Sub(now) <= in.EndWindow {
		alerts = append(alerts, models.CourseAlert{Kind: models.CourseAlertEnd, Date: *course.EndDate})
	}
	if mode.IsPaid() && course.CertificateAvailableDate != nil && now.Before(*course.CertificateAvailableDate) {
		alerts = append(alerts, models.CourseAlert{Kind: models.CourseAlertCertificateAvailable, Date: *course.CertificateAvailableDate})
	}
	if mode == models.ModeAudit {
		if expires, ok := accessExpiration(course, in.Enrollment); ok && now.Before(expires) {
			alerts = append(alerts, models.CourseAlert{Kind: models.CourseAlertAccessExpiration, Date: expires})
		}
		if in.Offer != nil && now.Before(in.Offer.ExpiresAt) {
			alerts = append(alerts, models.CourseAlert{
				Kind:       models.CourseAlertOffer,
				Date:       in.Offer.ExpiresAt,
				Code:       in.Offer.Code,
				Percentage: in.Offer.Percentage,
			})
		}
	}
	return alerts
}

func accessExpiration(course *models.Course, enrollment *models.Enrollment) (time.Time, bool) {
	if course.AccessDurationDays <= 0 {
		return time.Time{}, false
	}
	return enrollment.CreatedAt.AddDate(0, 0, course.AccessDurationDays), true
}
