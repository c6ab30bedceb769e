package models

import "github.com/golang-jwt/jwt/v5"

// UserRole is the platform role carried in access tokens.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleStaff      UserRole = "STAFF"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleLearner    UserRole = "LEARNER"
)

// IsStaff reports whether the role has staff privileges on every course.
func (r UserRole) IsStaff() bool {
	switch r {
	case RoleSuperAdmin, RoleStaff, RoleInstructor:
		return true
	}
	return false
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Viewer is the authenticated user a request is served for.
type Viewer struct {
	UserID string
	Role   UserRole
}

// IsStaff reports whether the viewer is staff.
func (v Viewer) IsStaff() bool {
	return v.Role.IsStaff()
}

// Viewer extracts the viewer from token claims.
func (c *JWTClaims) Viewer() Viewer {
	if c == nil {
		return Viewer{}
	}
	return Viewer{UserID: c.UserID, Role: c.Role}
}
