package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ams-api/internal/models"
	"github.com/noah-isme/ams-api/pkg/database"
)

// AttendanceRepository stores marking events. Rows are never updated.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// InsertMany writes all records in one transaction; either every row lands or none does.
func (r *AttendanceRepository) InsertMany(ctx context.Context, records []models.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
	}

	query := `INSERT INTO attendance (id, student_id, class_id, status, date)
        VALUES (:id, :student_id, :class_id, :status, :date)`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, rec := range records {
			if _, err := tx.NamedExecContext(ctx, query, rec); err != nil {
				return fmt.Errorf("insert attendance: %w", err)
			}
		}
		return nil
	})
}

// ListByStudent returns every marking event for a student, oldest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	query := "SELECT id, student_id, class_id, status, date FROM attendance WHERE student_id = $1 ORDER BY date, id"
	var rows []models.Attendance
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}

// ListByStudentAndClasses narrows ListByStudent to the given classes, oldest first.
func (r *AttendanceRepository) ListByStudentAndClasses(ctx context.Context, studentID string, classIDs []string) ([]models.Attendance, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}
	query := "SELECT id, student_id, class_id, status, date FROM attendance WHERE student_id = $1 AND class_id = ANY($2) ORDER BY date, id"
	var rows []models.Attendance
	if err := r.db.SelectContext(ctx, &rows, query, studentID, pq.Array(classIDs)); err != nil {
		return nil, fmt.Errorf("list attendance by classes: %w", err)
	}
	return rows, nil
}
