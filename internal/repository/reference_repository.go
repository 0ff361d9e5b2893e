package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ams-api/internal/models"
)

// SectionRepository reads section reference data.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository constructs a SectionRepository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// FindByID returns sql.ErrNoRows when the section does not exist.
func (r *SectionRepository) FindByID(ctx context.Context, id string) (*models.Section, error) {
	var section models.Section
	if err := r.db.GetContext(ctx, &section, "SELECT id, section_id_no, section_name FROM sections WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &section, nil
}

// ListByIDs loads the sections whose id is in ids.
func (r *SectionRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Section, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Section
	if err := r.db.SelectContext(ctx, &rows, "SELECT id, section_id_no, section_name FROM sections WHERE id = ANY($1)", pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return rows, nil
}

// YearRepository reads year reference data.
type YearRepository struct {
	db *sqlx.DB
}

// NewYearRepository constructs a YearRepository.
func NewYearRepository(db *sqlx.DB) *YearRepository {
	return &YearRepository{db: db}
}

// FindByID returns sql.ErrNoRows when the year does not exist.
func (r *YearRepository) FindByID(ctx context.Context, id string) (*models.Year, error) {
	var year models.Year
	if err := r.db.GetContext(ctx, &year, "SELECT id, year_code FROM years WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &year, nil
}
