package models

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Role identifies which dashboard a session belongs to.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
)

// ParseRole accepts the role names used by the login form.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Title returns the capitalised role name used in user-facing messages.
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Session is the identity a client carries after login. Exactly one of
// AdminSession, FacultySession or StudentSession.
type Session interface {
	Role() Role
	SubjectID() string
	isSession()
}

// AdminSession is held by administrators.
type AdminSession struct {
	AdminID string
}

// FacultySession is held by teaching staff.
type FacultySession struct {
	FacultyID string
}

// StudentSession is held by students; SectionID is captured at login.
type StudentSession struct {
	StudentID string
	SectionID string
}

func (AdminSession) Role() Role   { return RoleAdmin }
func (FacultySession) Role() Role { return RoleFaculty }
func (StudentSession) Role() Role { return RoleStudent }

func (s AdminSession) SubjectID() string   { return s.AdminID }
func (s FacultySession) SubjectID() string { return s.FacultyID }
func (s StudentSession) SubjectID() string { return s.StudentID }

func (AdminSession) isSession()   {}
func (FacultySession) isSession() {}
func (StudentSession) isSession() {}

// DashboardRoute resolves the client route a session lands on.
func DashboardRoute(s Session) string {
	switch s.(type) {
	case AdminSession:
		return "/admin-dashboard"
	case FacultySession:
		return "/faculty-dashboard"
	case StudentSession:
		return "/student-dashboard"
	default:
		return "/"
	}
}

// SessionClaims is the signed form of a Session.
type SessionClaims struct {
	Role      Role   `json:"role"`
	SectionID string `json:"sectionId,omitempty"`
	jwt.RegisteredClaims
}

// ClaimsFor builds unsigned claims for s; registered claims are filled by the issuer.
func ClaimsFor(s Session) *SessionClaims {
	claims := &SessionClaims{Role: s.Role()}
	claims.Subject = s.SubjectID()
	if st, ok := s.(StudentSession); ok {
		claims.SectionID = st.SectionID
	}
	return claims
}

// Session converts verified claims back into the tagged session.
func (c *SessionClaims) Session() (Session, error) {
	if c == nil || c.Subject == "" {
		return nil, fmt.Errorf("session claims missing subject")
	}
	switch c.Role {
	case RoleAdmin:
		return AdminSession{AdminID: c.Subject}, nil
	case RoleFaculty:
		return FacultySession{FacultyID: c.Subject}, nil
	case RoleStudent:
		return StudentSession{StudentID: c.Subject, SectionID: c.SectionID}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", c.Role)
	}
}
