package service

import (
	"context"

	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

// Display values substituted when a referenced row is missing.
const (
	UnknownClass   = "Unknown Class"
	UnknownSection = "Unknown Section"
	NotAvailable   = "NA"
)

type classByIDsLister interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Class, error)
}

type sectionByIDsLister interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Section, error)
}

type facultyByIDsLister interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Faculty, error)
}

// LookupRequest names the foreign keys a query result needs decorated.
type LookupRequest struct {
	ClassIDs   []string
	SectionIDs []string
	FacultyIDs []string
}

// Lookup is an immutable id to display-field index.
type Lookup struct {
	classes  map[string]models.Class
	sections map[string]models.Section
	faculty  map[string]models.Faculty
}

// ClassName falls back to UnknownClass.
func (l *Lookup) ClassName(id string) string {
	if c, ok := l.classes[id]; ok {
		return c.ClassName
	}
	return UnknownClass
}

// ClassCode falls back to NotAvailable.
func (l *Lookup) ClassCode(id string) string {
	if c, ok := l.classes[id]; ok && c.ClassCode != "" {
		return c.ClassCode
	}
	return NotAvailable
}

// SectionName falls back to UnknownSection.
func (l *Lookup) SectionName(id string) string {
	if s, ok := l.sections[id]; ok {
		return s.SectionName
	}
	return UnknownSection
}

// FacultyName falls back to NotAvailable.
func (l *Lookup) FacultyName(id string) string {
	if f, ok := l.faculty[id]; ok && f.FacultyName != "" {
		return f.FacultyName
	}
	return NotAvailable
}

// LookupService batches reference reads so each target table is queried at most once per request.
type LookupService struct {
	classes  classByIDsLister
	sections sectionByIDsLister
	faculty  facultyByIDsLister
}

// NewLookupService constructs a LookupService.
func NewLookupService(classes classByIDsLister, sections sectionByIDsLister, faculty facultyByIDsLister) *LookupService {
	return &LookupService{classes: classes, sections: sections, faculty: faculty}
}

// Resolve loads every referenced row. Missing targets are tolerated; store failures are not.
func (s *LookupService) Resolve(ctx context.Context, req LookupRequest) (*Lookup, error) {
	lookup := &Lookup{
		classes:  map[string]models.Class{},
		sections: map[string]models.Section{},
		faculty:  map[string]models.Faculty{},
	}

	if ids := uniqueIDs(req.ClassIDs); len(ids) > 0 {
		rows, err := s.classes.ListByIDs(ctx, ids)
		if err != nil {
			return nil, appErrors.Store(err, "")
		}
		for _, c := range rows {
			lookup.classes[c.ID] = c
		}
	}
	if ids := uniqueIDs(req.SectionIDs); len(ids) > 0 {
		rows, err := s.sections.ListByIDs(ctx, ids)
		if err != nil {
			return nil, appErrors.Store(err, "")
		}
		for _, sec := range rows {
			lookup.sections[sec.ID] = sec
		}
	}
	if ids := uniqueIDs(req.FacultyIDs); len(ids) > 0 {
		rows, err := s.faculty.ListByIDs(ctx, ids)
		if err != nil {
			return nil, appErrors.Store(err, "")
		}
		for _, f := range rows {
			lookup.faculty[f.ID] = f
		}
	}
	return lookup, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
