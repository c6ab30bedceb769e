package models

import (
	"strings"
	"time"
)

// EnrollmentMode is the payment/certification track of an enrollment.
type EnrollmentMode string

// Known enrollment modes. ModeOther stands for absent or unrecognized values.
const (
	ModeAudit                  EnrollmentMode = "audit"
	ModeHonor                  EnrollmentMode = "honor"
	ModeProfessional           EnrollmentMode = "professional"
	ModeVerified               EnrollmentMode = "verified"
	ModeNoIDProfessional       EnrollmentMode = "no-id-professional"
	ModeCredit                 EnrollmentMode = "credit"
	ModeMasters                EnrollmentMode = "masters"
	ModeExecutiveEducation     EnrollmentMode = "executive-education"
	ModePaidExecutiveEducation EnrollmentMode = "paid-executive-education"
	ModePaidBootcamp           EnrollmentMode = "paid-bootcamp"
	ModeOther                  EnrollmentMode = ""
)

var paidModes = map[EnrollmentMode]struct{}{
	ModeProfessional:           {},
	ModeVerified:               {},
	ModeNoIDProfessional:       {},
	ModeCredit:                 {},
	ModeMasters:                {},
	ModeExecutiveEducation:     {},
	ModePaidExecutiveEducation: {},
	ModePaidBootcamp:           {},
}

// PaidModes lists the modes granting paid-track features, in display order.
func PaidModes() []EnrollmentMode {
	return []EnrollmentMode{
		ModeProfessional,
		ModeVerified,
		ModeNoIDProfessional,
		ModeCredit,
		ModeMasters,
		ModeExecutiveEducation,
		ModePaidExecutiveEducation,
		ModePaidBootcamp,
	}
}

// ParseEnrollmentMode maps a stored or submitted value onto the closed set.
// Matching is exact after trimming; anything unknown becomes ModeOther.
func ParseEnrollmentMode(raw string) EnrollmentMode {
	mode := EnrollmentMode(strings.TrimSpace(raw))
	if _, ok := paidModes[mode]; ok {
		return mode
	}
	switch mode {
	case ModeAudit, ModeHonor:
		return mode
	}
	return ModeOther
}

// IsPaid reports whether the mode belongs to the paid set.
func (m EnrollmentMode) IsPaid() bool {
	_, ok := paidModes[m]
	return ok
}

// Enrollment links a learner to a course run.
type Enrollment struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Mode      string    `db:"mode" json:"mode"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EnrollmentMode returns the parsed mode of the enrollment.
func (e *Enrollment) EnrollmentMode() EnrollmentMode {
	if e == nil {
		return ModeOther
	}
	return ParseEnrollmentMode(e.Mode)
}
