package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ams-api/internal/dto"
	"github.com/noah-isme/ams-api/internal/models"
	"github.com/noah-isme/ams-api/pkg/response"
)

type dashboardReader interface {
	FacultyTodaySchedule(ctx context.Context, facultyID string) (*dto.FacultySchedule, error)
	StudentsOfSection(ctx context.Context, sectionID string) ([]models.StudentSummary, error)
	StudentTodayView(ctx context.Context, studentID string) (*dto.StudentTodayResponse, error)
	StudentAggregateAttendance(ctx context.Context, studentID string) (*dto.SubjectAttendanceResponse, error)
}

// DashboardHandler serves the faculty and student dashboard reads.
type DashboardHandler struct {
	service dashboardReader
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(svc dashboardReader) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// FacultyToday godoc
// @Summary Today's classes for a faculty member
// @Tags Dashboard
// @Produce json
// @Param facultyId path string true "Faculty ID"
// @Success 200 {array} dto.FacultyScheduleItem
// @Router /faculty-dashboard/{facultyId} [get]
func (h *DashboardHandler) FacultyToday(c *gin.Context) {
	schedule, err := h.service.FacultyTodaySchedule(c.Request.Context(), c.Param("facultyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if schedule.Empty() {
		response.Message(c, http.StatusOK, schedule.Message)
		return
	}
	response.OK(c, schedule.Items)
}

// SectionStudents godoc
// @Summary Students of a section ordered by roll number
// @Tags Dashboard
// @Produce json
// @Param sectionId path string true "Section ID"
// @Success 200 {array} models.StudentSummary
// @Failure 404 {object} response.ErrorBody
// @Router /faculty-dashboard/students/{sectionId} [get]
func (h *DashboardHandler) SectionStudents(c *gin.Context) {
	students, err := h.service.StudentsOfSection(c.Request.Context(), c.Param("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// StudentToday godoc
// @Summary Today's timetable with attendance status
// @Tags Dashboard
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.StudentTodayResponse
// @Failure 404 {object} response.ErrorBody
// @Router /student-dashboard/{studentId} [get]
func (h *DashboardHandler) StudentToday(c *gin.Context) {
	view, err := h.service.StudentTodayView(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// StudentAttendance godoc
// @Summary Attendance percentage per class
// @Tags Attendance
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.SubjectAttendanceResponse
// @Router /attendance/{studentId} [get]
func (h *DashboardHandler) StudentAttendance(c *gin.Context) {
	agg, err := h.service.StudentAggregateAttendance(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, agg)
}
