package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	internalmiddleware "github.com/noah-isme/ams-api/internal/middleware"
	"github.com/noah-isme/ams-api/internal/models"
)

// Routes bundles the handlers mounted under the API prefix.
type Routes struct {
	Auth       *AuthHandler
	Dashboard  *DashboardHandler
	Attendance *AttendanceHandler
	Reports    *ReportHandler
	Admin      *AdminHandler

	// LoginLimiter throttles POST /login per client IP; nil disables throttling.
	LoginLimiter *internalmiddleware.TokenBucket
	// EnforceSessions turns on role checks for the dashboard and admin routes.
	EnforceSessions bool
	// AuditLogger receives one line per successful write; nil discards them.
	AuditLogger *zap.Logger
}

// Register mounts every API route on rg.
func (r Routes) Register(rg *gin.RouterGroup) {
	login := []gin.HandlerFunc{}
	if r.LoginLimiter != nil {
		login = append(login, internalmiddleware.RateLimit(r.LoginLimiter))
	}
	rg.POST("/login", append(login, r.Auth.Login)...)

	faculty := internalmiddleware.RequireRole(r.EnforceSessions, models.RoleFaculty, models.RoleAdmin)
	student := internalmiddleware.RequireRole(r.EnforceSessions, models.RoleStudent, models.RoleFaculty, models.RoleAdmin)
	admin := internalmiddleware.RequireRole(r.EnforceSessions, models.RoleAdmin)

	rg.GET("/faculty-dashboard/students/:sectionId", faculty, r.Dashboard.SectionStudents)
	rg.GET("/faculty-dashboard/:facultyId", faculty, r.Dashboard.FacultyToday)
	rg.GET("/student-dashboard/:studentId", student, r.Dashboard.StudentToday)

	audit := func(action string) gin.HandlerFunc { return internalmiddleware.Audit(r.AuditLogger, action) }

	rg.POST("/attendance", faculty, audit("mark_attendance"), r.Attendance.Mark)
	rg.GET("/attendance/:studentId", student, r.Dashboard.StudentAttendance)
	rg.GET("/attendance/:studentId/export", student, r.Reports.ExportAttendance)

	rg.POST("/yearly-update", admin, audit("yearly_update"), r.Admin.YearlyUpdate)
	rg.POST("/upload-students", admin, audit("upload_students"), r.Admin.UploadStudents)
	rg.GET("/archived-students", admin, r.Admin.ArchivedStudents)
}
