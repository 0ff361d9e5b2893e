package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ams-api/internal/models"
)

// ArchivedStudentRepository reads snapshots written by StudentRepository.Archive.
type ArchivedStudentRepository struct {
	db *sqlx.DB
}

// NewArchivedStudentRepository constructs the repository.
func NewArchivedStudentRepository(db *sqlx.DB) *ArchivedStudentRepository {
	return &ArchivedStudentRepository{db: db}
}

// List returns archived students, most recent first.
func (r *ArchivedStudentRepository) List(ctx context.Context) ([]models.ArchivedStudent, error) {
	query := `SELECT id, student_id_no, student_name, password, guardian_mail, section_id, year_id, archived_date
        FROM archived_students ORDER BY archived_date DESC, student_id_no`
	var rows []models.ArchivedStudent
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list archived students: %w", err)
	}
	return rows, nil
}
