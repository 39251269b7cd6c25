package repositories

import (
	"database/sql"
	"log"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, name, email, phone, password_hash, role, team_id, created_at`

func scanEmployee(row interface{ Scan(...any) error }) (*models.Employee, error) {
	e := &models.Employee{}
	var role string
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.PasswordHash, &role, &e.TeamID, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Role = authz.Role(role)
	return e, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`
	e, err := scanEmployee(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *EmployeeRepository) GetByID(id int64) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	e, err := scanEmployee(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *EmployeeRepository) Create(e *models.Employee) error {
	const query = `
		INSERT INTO employees (name, email, phone, password_hash, role, team_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`
	return r.db.QueryRow(query, e.Name, e.Email, e.Phone, e.PasswordHash, string(e.Role), e.TeamID, e.CreatedAt).Scan(&e.ID)
}
