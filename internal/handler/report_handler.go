package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ams-api/internal/service"
	"github.com/noah-isme/ams-api/pkg/response"
)

type attendanceExporter interface {
	ExportStudentAttendance(ctx context.Context, studentID, format string) (*service.ReportDownload, error)
}

// ReportHandler streams attendance reports as attachments.
type ReportHandler struct {
	service attendanceExporter
}

// NewReportHandler constructs handler.
func NewReportHandler(svc attendanceExporter) *ReportHandler {
	return &ReportHandler{service: svc}
}

// ExportAttendance godoc
// @Summary Download a student's attendance report
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Param studentId path string true "Student ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /attendance/{studentId}/export [get]
func (h *ReportHandler) ExportAttendance(c *gin.Context) {
	download, err := h.service.ExportStudentAttendance(c.Request.Context(), c.Param("studentId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, download.ContentType, download.Body)
}
