package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassRepositoryListByIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("FROM classes WHERE id = ANY\\(\\$1\\)").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "class_name", "class_code", "section_id", "faculty_id", "year_id"}).
			AddRow("c1", "Maths", "MA101", "s1", "f1", "y1"))

	classes, err := repo.ListByIDs(context.Background(), []string{"c1", "gone"})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "MA101", classes[0].ClassCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByIDsSkipsQueryForEmptySet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	classes, err := NewClassRepository(db).ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, classes)

	sections, err := NewSectionRepository(db).ListByIDs(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, sections)

	faculty, err := NewFacultyRepository(db).ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, faculty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionAndYearFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, section_id_no, section_name FROM sections WHERE id = \\$1").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "section_id_no", "section_name"}).AddRow("s1", 203, "CSE-B"))
	mock.ExpectQuery("SELECT id, year_code FROM years WHERE id = \\$1").
		WithArgs("y1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "year_code"}).AddRow("y1", 150))

	section, err := NewSectionRepository(db).FindByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 203, section.SectionIDNo)

	year, err := NewYearRepository(db).FindByID(context.Background(), "y1")
	require.NoError(t, err)
	assert.Equal(t, 150, year.YearCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListByFacultyAndDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("FROM timetable WHERE faculty_id = \\$1 AND day = \\$2").
		WithArgs("f1", "Monday").
		WillReturnRows(sqlmock.NewRows([]string{"id", "section_id", "class_id", "faculty_id", "day", "start_time", "duration"}).
			AddRow("t1", "s1", "c1", "f1", "Monday", "09:00", 60))

	entries, err := NewTimetableRepository(db).ListByFacultyAndDay(context.Background(), "f1", "Monday")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 60, entries[0].Duration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoriesLookup(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("FROM admins WHERE username = \\$1").
		WithArgs("root").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).AddRow("a1", "root", "secret"))
	mock.ExpectQuery("FROM faculty WHERE faculty_name = \\$1").
		WithArgs("Dr. Rao").
		WillReturnRows(sqlmock.NewRows([]string{"id", "faculty_name", "password", "email"}).AddRow("f1", "Dr. Rao", "pw", "rao@example.com"))

	admin, err := NewAdminRepository(db).FindByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, "a1", admin.ID)

	faculty, err := NewFacultyRepository(db).FindByName(context.Background(), "Dr. Rao")
	require.NoError(t, err)
	assert.Equal(t, "f1", faculty.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
