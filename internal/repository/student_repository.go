package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ams-api/internal/models"
	"github.com/noah-isme/ams-api/pkg/database"
)

const studentColumns = "id, student_id_no, student_name, password, section_id, year_id, guardian_mail"

// StudentRepository manages persistence for active student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID fetches a student by primary key. sql.ErrNoRows is returned untouched.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE id = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByIDNo fetches the first student carrying the given roll number.
func (r *StudentRepository) FindByIDNo(ctx context.Context, idNo string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE student_id_no = $1 ORDER BY id LIMIT 1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, idNo); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListBySection returns the marking projection of every student in a section, unordered.
func (r *StudentRepository) ListBySection(ctx context.Context, sectionID string) ([]models.StudentSummary, error) {
	var students []models.StudentSummary
	if err := r.db.SelectContext(ctx, &students, "SELECT id, student_name, student_id_no FROM students WHERE section_id = $1", sectionID); err != nil {
		return nil, fmt.Errorf("list students by section: %w", err)
	}
	return students, nil
}

// ListAll returns the full active roster.
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, "SELECT "+studentColumns+" FROM students ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// CreateMany inserts all students in one transaction. Missing ids are generated in place.
func (r *StudentRepository) CreateMany(ctx context.Context, students []models.Student) error {
	if len(students) == 0 {
		return nil
	}
	for i := range students {
		if students[i].ID == "" {
			students[i].ID = uuid.NewString()
		}
	}

	query := `INSERT INTO students (` + studentColumns + `)
        VALUES (:id, :student_id_no, :student_name, :password, :section_id, :year_id, :guardian_mail)`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, s := range students {
			if _, err := tx.NamedExecContext(ctx, query, s); err != nil {
				return fmt.Errorf("insert student %s: %w", s.StudentIDNo, err)
			}
		}
		return nil
	})
}

// UpdatePlacement moves a student to another section and year.
func (r *StudentRepository) UpdatePlacement(ctx context.Context, id, sectionID, yearID string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE students SET section_id = $2, year_id = $3 WHERE id = $1", id, sectionID, yearID); err != nil {
		return fmt.Errorf("update student placement: %w", err)
	}
	return nil
}

// Archive snapshots the student into archived_students and removes the active row atomically.
func (r *StudentRepository) Archive(ctx context.Context, student models.Student, archivedAt time.Time) (*models.ArchivedStudent, error) {
	archived := models.NewArchivedStudent(student, archivedAt)
	archived.ID = uuid.NewString()

	insert := `INSERT INTO archived_students (id, student_id_no, student_name, password, guardian_mail, section_id, year_id, archived_date)
        VALUES (:id, :student_id_no, :student_name, :password, :guardian_mail, :section_id, :year_id, :archived_date)`
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insert, archived); err != nil {
			return fmt.Errorf("insert archived student: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = $1", student.ID); err != nil {
			return fmt.Errorf("delete student: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &archived, nil
}
