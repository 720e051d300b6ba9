package model

const (
	StudentDashboardPath  = "/student/dashboard"
	EmployerDashboardPath = "/employer/dashboard"
	SignInPath            = "/login"
)

// Role is resolved once per sign-in from the roles_admin collection.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// RoleFromAdminMarker maps the presence of a roles_admin document to a Role.
func RoleFromAdminMarker(exists bool) Role {
	if exists {
		return RoleAdmin
	}
	return RoleStudent
}

// RedirectPath is where a freshly signed-in principal lands.
func (r Role) RedirectPath() string {
	if r == RoleAdmin {
		return EmployerDashboardPath
	}
	return StudentDashboardPath
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
