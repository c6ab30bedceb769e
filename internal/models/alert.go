package models

import "time"

// AlertKind tags the enrollment-related alert shown on the outline tab.
type AlertKind string

const (
	AlertNone                AlertKind = ""
	AlertEnrollmentError     AlertKind = "enrollment_error"
	AlertStaffUnenrolledInfo AlertKind = "staff_unenrolled_info"
)

// AlertSeverity drives presentation of an alert.
type AlertSeverity string

const (
	SeverityError AlertSeverity = "error"
	SeverityInfo  AlertSeverity = "info"
)

// EnrollmentAlert is the outcome of enrollment alert selection. Kind is
// AlertNone when nothing should be shown.
type EnrollmentAlert struct {
	Kind      AlertKind     `json:"kind"`
	Severity  AlertSeverity `json:"severity"`
	CanEnroll bool          `json:"can_enroll"`
}

// Shown reports whether an alert was selected.
func (a EnrollmentAlert) Shown() bool {
	return a.Kind != AlertNone
}

// CourseAlertKind tags the additive outline alerts.
type CourseAlertKind string

const (
	CourseAlertStart                CourseAlertKind = "course_start"
	CourseAlertEnd                  CourseAlertKind = "course_end"
	CourseAlertCertificateAvailable CourseAlertKind = "certificate_available"
	CourseAlertAccessExpiration     CourseAlertKind = "access_expiration"
	CourseAlertOffer                CourseAlertKind = "offer"
)

// CourseAlert is an informational alert independent of the enrollment alert.
type CourseAlert struct {
	Kind       CourseAlertKind `json:"kind"`
	Date       time.Time       `json:"date"`
	Code       string          `json:"code,omitempty"`
	Percentage int             `json:"percentage,omitempty"`
}
