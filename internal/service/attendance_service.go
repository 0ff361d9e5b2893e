package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ams-api/internal/dto"
	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

// MsgAttendanceMarked confirms a successful mark-attendance call.
const MsgAttendanceMarked = "Attendance marked successfully"

type attendanceWriter interface {
	InsertMany(ctx context.Context, records []models.Attendance) error
}

// AttendanceService records attendance submitted by faculty. It never updates earlier rows:
// marking the same class twice yields two rows per student.
type AttendanceService struct {
	repo      attendanceWriter
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceWriter, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// MarkAttendance inserts one row per map entry, all with the same class id and timestamp.
// Class and student ids are not checked against the store.
func (s *AttendanceService) MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "classId and a non-empty attendanceData map are required")
	}

	studentIDs := make([]string, 0, len(req.AttendanceData))
	for id := range req.AttendanceData {
		studentIDs = append(studentIDs, id)
	}
	sort.Strings(studentIDs)

	markedAt := s.now().UTC()
	records := make([]models.Attendance, 0, len(studentIDs))
	for _, id := range studentIDs {
		records = append(records, models.Attendance{
			StudentID: id,
			ClassID:   req.ClassID,
			Status:    req.AttendanceData[id],
			Date:      markedAt,
		})
	}

	if err := s.repo.InsertMany(ctx, records); err != nil {
		return 0, appErrors.Store(err, "")
	}

	s.metrics.AddAttendanceMarked(len(records))
	s.cache.InvalidateDashboards(ctx)
	s.logger.Info("attendance marked", zap.String("class_id", req.ClassID), zap.Int("records", len(records)))
	return len(records), nil
}
