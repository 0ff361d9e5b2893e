package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

var monday = time.Date(2026, 10, 12, 9, 30, 0, 0, time.UTC)

type fakeStudents struct {
	byID      map[string]models.Student
	archived  []models.ArchivedStudent
	created   []models.Student
	updates   int
	err       error
	updateErr error
	createErr error
}

func newFakeStudents(students ...models.Student) *fakeStudents {
	f := &fakeStudents{byID: map[string]models.Student{}}
	for _, s := range students {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeStudents) FindByID(_ context.Context, id string) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeStudents) FindByIDNo(_ context.Context, idNo string) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.byID {
		if s.StudentIDNo == idNo {
			s := s
			return &s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudents) ListBySection(_ context.Context, sectionID string) ([]models.StudentSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.StudentSummary
	for _, s := range f.byID {
		if s.SectionID == sectionID {
			out = append(out, models.StudentSummary{ID: s.ID, StudentName: s.StudentName, StudentIDNo: s.StudentIDNo})
		}
	}
	return out, nil
}

func (f *fakeStudents) ListAll(context.Context) ([]models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Student, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStudents) CreateMany(_ context.Context, students []models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, students...)
	return nil
}

func (f *fakeStudents) UpdatePlacement(_ context.Context, id, sectionID, yearID string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	s := f.byID[id]
	s.SectionID, s.YearID = sectionID, yearID
	f.byID[id] = s
	f.updates++
	return nil
}

func (f *fakeStudents) Archive(_ context.Context, student models.Student, archivedAt time.Time) (*models.ArchivedStudent, error) {
	archived := models.NewArchivedStudent(student, archivedAt)
	archived.ID = "arch-" + student.ID
	f.archived = append(f.archived, archived)
	delete(f.byID, student.ID)
	return &archived, nil
}

type fakeYears map[string]models.Year

func (f fakeYears) FindByID(_ context.Context, id string) (*models.Year, error) {
	y, ok := f[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &y, nil
}

type fakeSections map[string]models.Section

func (f fakeSections) FindByID(_ context.Context, id string) (*models.Section, error) {
	s, ok := f[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f fakeSections) ListByIDs(_ context.Context, ids []string) ([]models.Section, error) {
	var out []models.Section
	for _, id := range ids {
		if s, ok := f[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeClasses struct {
	all []models.Class
	err error
}

func (f *fakeClasses) ListAll(context.Context) ([]models.Class, error) {
	return f.all, f.err
}

func (f *fakeClasses) ListByIDs(_ context.Context, ids []string) ([]models.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Class
	for _, id := range ids {
		for _, c := range f.all {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type fakeFaculty map[string]models.Faculty

func (f fakeFaculty) ListByIDs(_ context.Context, ids []string) ([]models.Faculty, error) {
	var out []models.Faculty
	for _, id := range ids {
		if fac, ok := f[id]; ok {
			out = append(out, fac)
		}
	}
	return out, nil
}

func (f fakeFaculty) FindByName(_ context.Context, name string) (*models.Faculty, error) {
	for _, fac := range f {
		if fac.FacultyName == name {
			fac := fac
			return &fac, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakeAdmins map[string]models.Admin

func (f fakeAdmins) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	a, ok := f[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

type fakeTimetable struct {
	entries []models.TimetableEntry
	err     error
}

func (f *fakeTimetable) ListByFacultyAndDay(_ context.Context, facultyID, day string) ([]models.TimetableEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.TimetableEntry
	for _, e := range f.entries {
		if e.FacultyID == facultyID && e.Day == day {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTimetable) ListBySectionAndDay(_ context.Context, sectionID, day string) ([]models.TimetableEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.TimetableEntry
	for _, e := range f.entries {
		if e.SectionID == sectionID && e.Day == day {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendance struct {
	rows      []models.Attendance
	insertErr error
	inserts   int
}

func (f *fakeAttendance) InsertMany(_ context.Context, records []models.Attendance) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts++
	f.rows = append(f.rows, records...)
	return nil
}

func (f *fakeAttendance) ListByStudent(_ context.Context, studentID string) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, r := range f.rows {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeAttendance) ListByStudentAndClasses(ctx context.Context, studentID string, classIDs []string) ([]models.Attendance, error) {
	all, _ := f.ListByStudent(ctx, studentID)
	wanted := map[string]bool{}
	for _, id := range classIDs {
		wanted[id] = true
	}
	var out []models.Attendance
	for _, r := range all {
		if wanted[r.ClassID] {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, pattern)
	for key := range f.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(f.data, key)
		}
	}
	return nil
}
