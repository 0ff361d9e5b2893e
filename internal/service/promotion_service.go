package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

// Yearly update messages.
const (
	MsgYearlyUpdateDone   = "Yearly update completed successfully."
	MsgYearlyUpdateFailed = "An error occurred during the yearly update."
)

type promotionStudentStore interface {
	ListAll(ctx context.Context) ([]models.Student, error)
	UpdatePlacement(ctx context.Context, id, sectionID, yearID string) error
	Archive(ctx context.Context, student models.Student, archivedAt time.Time) (*models.ArchivedStudent, error)
}

type yearFinder interface {
	FindByID(ctx context.Context, id string) (*models.Year, error)
}

type sectionFinder interface {
	FindByID(ctx context.Context, id string) (*models.Section, error)
}

// PromotionService runs the yearly update: final-year students are archived, everyone else
// moves to the next year and section according to the promotion table.
type PromotionService struct {
	students promotionStudentStore
	years    yearFinder
	sections sectionFinder
	table    models.PromotionTable
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewPromotionService constructs a PromotionService.
func NewPromotionService(students promotionStudentStore, years yearFinder, sections sectionFinder, table models.PromotionTable, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *PromotionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromotionService{
		students: students,
		years:    years,
		sections: sections,
		table:    table,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Run processes every student once. There is no run-wide transaction: a store error stops the
// run and students handled before it stay promoted or archived. Running twice promotes twice.
func (s *PromotionService) Run(ctx context.Context) (models.PromotionSummary, error) {
	var summary models.PromotionSummary

	students, err := s.students.ListAll(ctx)
	if err != nil {
		return summary, appErrors.Store(err, MsgYearlyUpdateFailed)
	}

	runAt := s.now().UTC()
	defer func() {
		s.metrics.RecordPromotion(summary.Promoted, summary.Archived, summary.Skipped)
		if summary.Promoted+summary.Archived > 0 {
			s.cache.InvalidateAll(ctx)
		}
	}()

	for _, student := range students {
		summary.Processed++
		outcome, err := s.promote(ctx, student, runAt)
		if err != nil {
			s.logger.Error("yearly update aborted", zap.String("student_id", student.ID), zap.Error(err))
			return summary, appErrors.Store(err, MsgYearlyUpdateFailed)
		}
		switch outcome {
		case outcomeArchived:
			summary.Archived++
		case outcomePromoted:
			summary.Promoted++
		default:
			summary.Skipped++
		}
	}

	s.logger.Info("yearly update finished",
		zap.Int("processed", summary.Processed),
		zap.Int("promoted", summary.Promoted),
		zap.Int("archived", summary.Archived),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

type promotionOutcome int

const (
	outcomeSkipped promotionOutcome = iota
	outcomePromoted
	outcomeArchived
)

func (s *PromotionService) promote(ctx context.Context, student models.Student, runAt time.Time) (promotionOutcome, error) {
	log := s.logger.With(zap.String("student_id", student.ID), zap.String("student_name", student.StudentName))

	year, err := s.years.FindByID(ctx, student.YearID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("no year data found for student", zap.String("year_id", student.YearID))
			return outcomeSkipped, nil
		}
		return outcomeSkipped, err
	}

	if s.table.Graduating(year.YearCode) {
		if _, err := s.students.Archive(ctx, student, runAt); err != nil {
			return outcomeSkipped, err
		}
		return outcomeArchived, nil
	}

	section, err := s.sections.FindByID(ctx, student.SectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("no section data found for student", zap.String("section_id", student.SectionID))
			return outcomeSkipped, nil
		}
		return outcomeSkipped, err
	}

	nextYearID, ok := s.table.NextYearID(year.YearCode)
	if !ok {
		log.Warn("promotion table has no next year", zap.Int("year_code", year.YearCode))
		return outcomeSkipped, nil
	}
	nextSectionID, ok := s.table.NextSectionID(section.SectionIDNo)
	if !ok {
		log.Warn("promotion table has no next section", zap.Int("section_code", section.SectionIDNo))
		return outcomeSkipped, nil
	}

	if err := s.students.UpdatePlacement(ctx, student.ID, nextSectionID, nextYearID); err != nil {
		return outcomeSkipped, err
	}
	return outcomePromoted, nil
}
