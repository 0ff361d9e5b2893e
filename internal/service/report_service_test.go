package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

func newReportFixture() (*ReportService, *dashboardFixture) {
	f := newDashboardFixture(false)
	f.attendance.rows = []models.Attendance{
		{StudentID: "stu-1", ClassID: "math", Status: "Present", Date: monday},
		{StudentID: "stu-1", ClassID: "math", Status: "Absent", Date: monday},
	}
	svc := NewReportService(f.svc, f.students, nil)
	svc.now = func() time.Time { return monday }
	return svc, f
}

func TestExportStudentAttendanceCSV(t *testing.T) {
	svc, _ := newReportFixture()

	download, err := svc.ExportStudentAttendance(context.Background(), "stu-1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", download.ContentType)
	assert.Equal(t, "attendance_102_20261012.csv", download.Filename)

	body := string(download.Body)
	assert.True(t, strings.Contains(body, "MA101,Mathematics,1,2,50.00%"), body)
	assert.True(t, strings.Contains(body, "NA,Physics,0,0,0.00%"), body)
}

func TestExportStudentAttendancePDF(t *testing.T) {
	svc, _ := newReportFixture()

	download, err := svc.ExportStudentAttendance(context.Background(), "stu-1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", download.ContentType)
	assert.True(t, bytes.HasPrefix(download.Body, []byte("%PDF")))
}

func TestExportStudentAttendanceErrors(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.ExportStudentAttendance(context.Background(), "stu-1", "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.ExportStudentAttendance(context.Background(), "nobody", "csv")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
