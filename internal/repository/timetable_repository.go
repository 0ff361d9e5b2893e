package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ams-api/internal/models"
)

const timetableColumns = "id, section_id, class_id, faculty_id, day, start_time, duration"

// TimetableRepository reads weekly timetable entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// ListByFacultyAndDay returns a faculty member's entries for a weekday name.
func (r *TimetableRepository) ListByFacultyAndDay(ctx context.Context, facultyID, day string) ([]models.TimetableEntry, error) {
	query := "SELECT " + timetableColumns + " FROM timetable WHERE faculty_id = $1 AND day = $2 ORDER BY start_time, id"
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, facultyID, day); err != nil {
		return nil, fmt.Errorf("list faculty timetable: %w", err)
	}
	return entries, nil
}

// ListBySectionAndDay returns a section's entries for a weekday name.
func (r *TimetableRepository) ListBySectionAndDay(ctx context.Context, sectionID, day string) ([]models.TimetableEntry, error) {
	query := "SELECT " + timetableColumns + " FROM timetable WHERE section_id = $1 AND day = $2 ORDER BY start_time, id"
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, sectionID, day); err != nil {
		return nil, fmt.Errorf("list section timetable: %w", err)
	}
	return entries, nil
}
