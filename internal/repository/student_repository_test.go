package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ams-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var studentRowColumns = []string{"id", "student_id_no", "student_name", "password", "section_id", "year_id", "guardian_mail"}

func TestStudentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT id, student_id_no, student_name, password, section_id, year_id, guardian_mail FROM students WHERE id = \\$1").
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).AddRow("stu-1", "101", "Asha", "pw", "sec-1", "year-1", "g@example.com"))

	student, err := repo.FindByID(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", student.StudentName)
	assert.Equal(t, "sec-1", student.SectionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("FROM students WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(studentRowColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestStudentRepositoryListBySection(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT id, student_name, student_id_no FROM students WHERE section_id = \\$1").
		WithArgs("sec-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_name", "student_id_no"}).
			AddRow("a", "Asha", "11").
			AddRow("b", "Bilal", "101"))

	students, err := repo.ListBySection(context.Background(), "sec-1")
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "11", students[0].StudentIDNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateManyUsesOneTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	students := []models.Student{
		{StudentIDNo: "101", StudentName: "Asha", SectionID: "sec", YearID: "year"},
		{StudentIDNo: "102", StudentName: "Bilal", SectionID: "sec", YearID: "year"},
	}
	require.NoError(t, repo.CreateMany(context.Background(), students))
	assert.NotEmpty(t, students[0].ID)
	assert.NotEqual(t, students[0].ID, students[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateManyRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO students").WillReturnError(errors.New("duplicate"))
	mock.ExpectRollback()

	err := repo.CreateMany(context.Background(), []models.Student{{StudentIDNo: "1"}, {StudentIDNo: "2"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert student 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdatePlacement(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET section_id = \\$2, year_id = \\$3 WHERE id = \\$1").
		WithArgs("stu-1", "sec-303", "year-151").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePlacement(context.Background(), "stu-1", "sec-303", "year-151"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryArchive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)
	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO archived_students").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM students WHERE id = \\$1").WithArgs("stu-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	archived, err := repo.Archive(context.Background(), models.Student{ID: "stu-1", StudentIDNo: "401", StudentName: "Asha"}, at)
	require.NoError(t, err)
	assert.Equal(t, "401", archived.StudentIDNo)
	assert.Equal(t, at, archived.ArchivedDate)
	assert.NotEmpty(t, archived.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryArchiveKeepsStudentOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO archived_students").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM students").WillReturnError(errors.New("conn reset"))
	mock.ExpectRollback()

	_, err := repo.Archive(context.Background(), models.Student{ID: "stu-1"}, time.Now())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
