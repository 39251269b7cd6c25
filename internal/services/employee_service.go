package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"salesdesk/internal/authz"
	"salesdesk/internal/middleware"
	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
)

// EmployeeService owns accounts, login and per-request session
// construction.
type EmployeeService struct {
	Repo      *repositories.EmployeeRepository
	Perms     *repositories.PermissionRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewEmployeeService(repo *repositories.EmployeeRepository, perms *repositories.PermissionRepository, jwtSecret []byte, accessTTL time.Duration) *EmployeeService {
	return &EmployeeService{Repo: repo, Perms: perms, jwtSecret: jwtSecret, accessTTL: accessTTL}
}

// Login verifies credentials and issues an access token carrying the
// employee id and role tag.
func (s *EmployeeService) Login(email, password string) (string, *models.Employee, error) {
	emp, err := s.Repo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if emp == nil || strings.TrimSpace(emp.PasswordHash) == "" {
		return "", nil, ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return "", nil, ErrForbidden
	}

	claims := &middleware.Claims{
		EmployeeID: emp.ID,
		Role:       string(emp.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, emp, nil
}

// SessionFor builds the session threaded through every permission
// check: team membership from the employee row, capabilities from the
// stored role record. An employee row missing from the database
// yields a fail-closed session with no capabilities.
func (s *EmployeeService) SessionFor(employeeID int64, role authz.Role) (authz.Session, error) {
	sess := authz.Session{EmployeeID: employeeID, Role: role}

	emp, err := s.Repo.GetByID(employeeID)
	if err != nil {
		return sess, err
	}
	if emp == nil {
		return sess, nil
	}
	if emp.TeamID != nil {
		sess.TeamID = *emp.TeamID
	}

	caps, err := s.Perms.GetByRole(role)
	if err != nil {
		return sess, err
	}
	sess.Caps = caps
	return sess, nil
}

// Register creates a staff account with a bcrypt password hash.
func (s *EmployeeService) Register(emp *models.Employee, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	emp.PasswordHash = string(hash)
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now()
	}
	return s.Repo.Create(emp)
}
