package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ams-api/internal/dto"
	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

// Roster upload messages.
const (
	MsgStudentsAdded   = "Students added successfully"
	MsgNoFileUploaded  = "No file uploaded"
	MsgInvalidRosterID = "Invalid id in section_id or year_id"
	MsgRosterInsert    = "Error inserting data"
)

type rosterStore interface {
	CreateMany(ctx context.Context, students []models.Student) error
}

type uploadKeeper interface {
	Save(original string, data []byte) (string, error)
}

// RosterService bulk-loads students from an uploaded JSON array. The whole batch is validated
// before anything is written, and the insert is a single transaction.
type RosterService struct {
	students  rosterStore
	uploads   uploadKeeper
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs a RosterService. uploads may be nil to skip keeping raw files.
func NewRosterService(students rosterStore, uploads uploadKeeper, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(jsonFieldName)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{students: students, uploads: uploads, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Upload parses, validates and inserts a roster file. It returns the number of students inserted.
func (s *RosterService) Upload(ctx context.Context, filename string, data []byte) (int, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, MsgNoFileUploaded)
	}

	if s.uploads != nil {
		if stored, err := s.uploads.Save(filename, data); err != nil {
			s.logger.Warn("keep roster upload failed", zap.String("filename", filename), zap.Error(err))
		} else {
			s.logger.Info("roster upload stored", zap.String("path", stored))
		}
	}

	var rows []dto.RosterStudent
	if err := json.Unmarshal(data, &rows); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file must contain a JSON array of students")
	}
	if len(rows) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "file contains no students")
	}

	students := make([]models.Student, 0, len(rows))
	for i, row := range rows {
		if err := s.validator.Struct(row); err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, rosterRowMessage(i, err))
		}
		students = append(students, models.Student{
			StudentIDNo:  strings.TrimSpace(row.StudentIDNo),
			StudentName:  strings.TrimSpace(row.StudentName),
			Password:     row.Password,
			SectionID:    strings.ToLower(row.SectionID),
			YearID:       strings.ToLower(row.YearID),
			GuardianMail: row.GuardianMail,
		})
	}

	if err := s.students.CreateMany(ctx, students); err != nil {
		return 0, appErrors.Store(err, MsgRosterInsert)
	}

	s.metrics.AddRosterUploaded(len(students))
	s.cache.InvalidateDashboards(ctx)
	s.logger.Info("roster uploaded", zap.Int("students", len(students)))
	return len(students), nil
}

func rosterRowMessage(index int, err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Sprintf("student %d is invalid", index)
	}
	fe := fieldErrs[0]
	if fe.Tag() == "uuid" {
		return fmt.Sprintf("%s (student %d, %s)", MsgInvalidRosterID, index, fe.Field())
	}
	return fmt.Sprintf("student %d: %s is %s", index, fe.Field(), fe.Tag())
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
