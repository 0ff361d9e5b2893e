package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ams-api/internal/dto"
	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pw"), bcrypt.MinCost)
	require.NoError(t, err)

	admins := fakeAdmins{"root": {ID: "adm-1", Username: "root", Password: "toor"}}
	faculty := fakeFaculty{"fac-1": {ID: "fac-1", FacultyName: "Dr. Rao", Password: string(hash)}}
	students := newFakeStudents(models.Student{ID: "stu-1", StudentIDNo: "101", Password: "pw", SectionID: "sec-a"})

	svc := NewAuthService(admins, faculty, students, nil, NewMetricsService(), nil, SessionConfig{Secret: "test-secret", TTL: time.Hour, Issuer: "ams-api"})
	svc.now = func() time.Time { return monday }
	return svc
}

func TestLoginPerRole(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	admin, err := svc.Login(ctx, dto.LoginRequest{Role: "admin", Identifier: "root", Password: "toor"})
	require.NoError(t, err)
	assert.Equal(t, "Admin login successful", admin.Message)
	assert.Equal(t, "adm-1", admin.AdminID)
	assert.Equal(t, "/admin-dashboard", admin.Redirect)
	assert.NotEmpty(t, admin.Token)

	faculty, err := svc.Login(ctx, dto.LoginRequest{Role: "faculty", Identifier: "Dr. Rao", Password: "hashed-pw"})
	require.NoError(t, err)
	assert.Equal(t, "Faculty login successful", faculty.Message)
	assert.Equal(t, "fac-1", faculty.FacultyID)
	assert.Empty(t, faculty.StudentID)

	student, err := svc.Login(ctx, dto.LoginRequest{Role: "student", Identifier: "101", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "stu-1", student.StudentID)
	assert.Equal(t, "sec-a", student.SectionID)
	assert.Equal(t, "/student-dashboard", student.Redirect)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	cases := []dto.LoginRequest{
		{Role: "admin", Identifier: "root", Password: "wrong"},
		{Role: "admin", Identifier: "ghost", Password: "toor"},
		{Role: "faculty", Identifier: "Dr. Rao", Password: "plain-guess"},
		{Role: "student", Identifier: "101", Password: "PW"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrAuthFailure.Code, appErr.Code)
		assert.Equal(t, "Invalid "+req.Role+" credentials", appErr.Message)
	}
}

func TestLoginUnknownRoleIsValidationFailure(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Role: "parent", Identifier: "x", Password: "y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.IssueToken(models.StudentSession{StudentID: "stu-1", SectionID: "sec-a"})
	require.NoError(t, err)

	session, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.StudentSession{StudentID: "stu-1", SectionID: "sec-a"}, session)

	svc.now = func() time.Time { return monday.Add(2 * time.Hour) }
	_, err = svc.ParseToken(token)
	assert.True(t, errors.Is(err, appErrors.ErrAuthFailure))
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestAuthService(t)
	other := NewAuthService(nil, nil, nil, nil, nil, nil, SessionConfig{Secret: "other", Issuer: "ams-api"})
	other.now = svc.now

	token, err := other.IssueToken(models.AdminSession{AdminID: "adm-1"})
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.True(t, errors.Is(err, appErrors.ErrAuthFailure))
}

func TestPasswordMatches(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, passwordMatches("secret", "secret"))
	assert.False(t, passwordMatches("secret", "Secret"))
	assert.False(t, passwordMatches("", ""))
	assert.True(t, passwordMatches(string(hash), "secret"))
	assert.False(t, passwordMatches(string(hash), string(hash)))
}
