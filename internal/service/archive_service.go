package service

import (
	"context"

	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

type archivedStudentLister interface {
	List(ctx context.Context) ([]models.ArchivedStudent, error)
}

// ArchiveService exposes the students archived by the yearly update.
type ArchiveService struct {
	repo archivedStudentLister
}

// NewArchiveService constructs an ArchiveService.
func NewArchiveService(repo archivedStudentLister) *ArchiveService {
	return &ArchiveService{repo: repo}
}

// List returns every archived student, most recent first.
func (s *ArchiveService) List(ctx context.Context) ([]models.ArchivedStudent, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Store(err, "")
	}
	if rows == nil {
		rows = []models.ArchivedStudent{}
	}
	return rows, nil
}
