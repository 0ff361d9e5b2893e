package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ams-api/internal/models"
)

const classColumns = "id, class_name, class_code, section_id, faculty_id, year_id"

// ClassRepository reads class definitions.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListAll returns every class ordered by code.
func (r *ClassRepository) ListAll(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, "SELECT "+classColumns+" FROM classes ORDER BY class_code, id"); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListByIDs loads the classes whose id is in ids.
func (r *ClassRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Class, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, "SELECT "+classColumns+" FROM classes WHERE id = ANY($1)", pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list classes by ids: %w", err)
	}
	return classes, nil
}
