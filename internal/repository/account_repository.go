package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ams-api/internal/models"
)

// AdminRepository looks up administrator accounts.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByUsername returns sql.ErrNoRows when no admin matches.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, "SELECT id, username, password FROM admins WHERE username = $1 LIMIT 1", username); err != nil {
		return nil, err
	}
	return &admin, nil
}

// FacultyRepository looks up teaching staff.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs a FacultyRepository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// FindByName matches the login identifier of a faculty member.
func (r *FacultyRepository) FindByName(ctx context.Context, name string) (*models.Faculty, error) {
	var faculty models.Faculty
	query := "SELECT id, faculty_name, password, email FROM faculty WHERE faculty_name = $1 ORDER BY id LIMIT 1"
	if err := r.db.GetContext(ctx, &faculty, query, name); err != nil {
		return nil, err
	}
	return &faculty, nil
}

// ListByIDs loads every faculty row whose id is in ids. Unknown ids are ignored.
func (r *FacultyRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Faculty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Faculty
	if err := r.db.SelectContext(ctx, &rows, "SELECT id, faculty_name, password, email FROM faculty WHERE id = ANY($1)", pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return rows, nil
}
