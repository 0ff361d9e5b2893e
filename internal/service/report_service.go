package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ams-api/internal/dto"
	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
	"github.com/noah-isme/ams-api/pkg/export"
)

type aggregateAttendanceSource interface {
	StudentAggregateAttendance(ctx context.Context, studentID string) (*dto.SubjectAttendanceResponse, error)
}

type reportStudentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// ReportDownload is a rendered report ready to be streamed as an attachment.
type ReportDownload struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService renders a student's per-class attendance as CSV or PDF.
type ReportService struct {
	attendance aggregateAttendanceSource
	students   reportStudentFinder
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(attendance aggregateAttendanceSource, students reportStudentFinder, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{attendance: attendance, students: students, logger: logger, now: time.Now}
}

// ExportStudentAttendance renders the aggregate attendance rows for one student.
func (s *ReportService) ExportStudentAttendance(ctx context.Context, studentID, rawFormat string) (*ReportDownload, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgStudentNotFound)
		}
		return nil, appErrors.Store(err, "")
	}

	agg, err := s.attendance.StudentAggregateAttendance(ctx, studentID)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now().UTC()
	table := export.Table{
		Title:    fmt.Sprintf("Attendance report: %s (%s)", student.StudentName, student.StudentIDNo),
		Subtitle: "Generated " + generatedAt.Format(time.RFC1123),
		Headers:  []string{"Class Code", "Class Name", "Present", "Total", "Percentage"},
	}
	for _, row := range agg.SubjectAttendance {
		table.Rows = append(table.Rows, []string{
			row.ClassCode,
			row.ClassName,
			strconv.Itoa(row.PresentCount),
			strconv.Itoa(row.TotalCount),
			row.Percentage + "%",
		})
	}

	body, err := export.RendererFor(format).Render(table)
	if err != nil {
		s.logger.Error("render attendance report", zap.String("student_id", studentID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, appErrors.ErrStore.Message)
	}

	return &ReportDownload{
		Filename:    fmt.Sprintf("attendance_%s_%s.%s", student.StudentIDNo, generatedAt.Format("20060102"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}
