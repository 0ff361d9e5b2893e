package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ams-api/internal/dto"
	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

type adminFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}

type facultyFinder interface {
	FindByName(ctx context.Context, name string) (*models.Faculty, error)
}

type studentIDNoFinder interface {
	FindByIDNo(ctx context.Context, idNo string) (*models.Student, error)
}

// SessionConfig defines how session tokens are signed.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthService resolves login credentials into a models.Session and signs it.
type AuthService struct {
	admins    adminFinder
	faculty   facultyFinder
	students  studentIDNoFinder
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	config    SessionConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(admins adminFinder, faculty facultyFinder, students studentIDNoFinder, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, config SessionConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TTL <= 0 {
		config.TTL = 12 * time.Hour
	}
	return &AuthService{
		admins:    admins,
		faculty:   faculty,
		students:  students,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// Login matches the identifier against the table for the requested role. Admins log in with
// their username, faculty with their name, students with their roll number.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "role, identifier and password are required")
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown role")
	}

	session, err := s.authenticate(ctx, role, req.Identifier, req.Password)
	if err != nil {
		s.metrics.RecordLogin(string(role), false)
		return nil, err
	}
	s.metrics.RecordLogin(string(role), true)

	resp := &dto.LoginResponse{
		Message:  fmt.Sprintf("%s login successful", role.Title()),
		Role:     string(role),
		Redirect: models.DashboardRoute(session),
	}
	switch sess := session.(type) {
	case models.AdminSession:
		resp.AdminID = sess.AdminID
	case models.FacultySession:
		resp.FacultyID = sess.FacultyID
	case models.StudentSession:
		resp.StudentID = sess.StudentID
		resp.SectionID = sess.SectionID
	}

	token, err := s.IssueToken(session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, appErrors.ErrStore.Message)
	}
	resp.Token = token
	return resp, nil
}

func (s *AuthService) authenticate(ctx context.Context, role models.Role, identifier, password string) (models.Session, error) {
	invalid := appErrors.Clone(appErrors.ErrAuthFailure, fmt.Sprintf("Invalid %s credentials", role))

	var (
		stored  string
		session models.Session
		err     error
	)
	switch role {
	case models.RoleAdmin:
		var admin *models.Admin
		if admin, err = s.admins.FindByUsername(ctx, identifier); err == nil {
			stored, session = admin.Password, models.AdminSession{AdminID: admin.ID}
		}
	case models.RoleFaculty:
		var faculty *models.Faculty
		if faculty, err = s.faculty.FindByName(ctx, identifier); err == nil {
			stored, session = faculty.Password, models.FacultySession{FacultyID: faculty.ID}
		}
	case models.RoleStudent:
		var student *models.Student
		if student, err = s.students.FindByIDNo(ctx, identifier); err == nil {
			stored, session = student.Password, models.StudentSession{StudentID: student.ID, SectionID: student.SectionID}
		}
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invalid
		}
		return nil, appErrors.Store(err, "")
	}
	if !passwordMatches(stored, password) {
		return nil, invalid
	}
	return session, nil
}

// passwordMatches accepts legacy plaintext passwords as well as bcrypt hashes.
func passwordMatches(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func isBcryptHash(v string) bool {
	return len(v) == 60 && (strings.HasPrefix(v, "$2a$") || strings.HasPrefix(v, "$2b$") || strings.HasPrefix(v, "$2y$"))
}

// IssueToken signs session with HS256.
func (s *AuthService) IssueToken(session models.Session) (string, error) {
	issuedAt := s.now().UTC()
	claims := models.ClaimsFor(session)
	claims.Issuer = s.config.Issuer
	claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	claims.NotBefore = jwt.NewNumericDate(issuedAt)
	claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(s.config.TTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// ParseToken verifies a token issued by IssueToken and returns its session.
func (s *AuthService) ParseToken(tokenStr string) (models.Session, error) {
	claims := &models.SessionClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAuthFailure.Code, appErrors.ErrAuthFailure.Status, "invalid session token")
	}
	session, err := claims.Session()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAuthFailure.Code, appErrors.ErrAuthFailure.Status, "invalid session token")
	}
	return session, nil
}
