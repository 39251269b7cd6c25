package repositories

import (
	"database/sql"
	"log"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(team *models.Team) error {
	const query = `
		INSERT INTO teams (name, color_code, team_lead_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRow(query, team.Name, team.ColorCode, team.TeamLeadID).Scan(&team.ID)
}

func (r *TeamRepository) GetByID(id int64) (*models.Team, error) {
	const query = `SELECT id, name, color_code, team_lead_id FROM teams WHERE id=$1`
	t := &models.Team{}
	err := r.db.QueryRow(query, id).Scan(&t.ID, &t.Name, &t.ColorCode, &t.TeamLeadID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	members, err := r.Members(id)
	if err != nil {
		return nil, err
	}
	t.Members = members
	return t, nil
}

func (r *TeamRepository) List() ([]models.Team, error) {
	const query = `SELECT id, name, color_code, team_lead_id FROM teams ORDER BY name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.ColorCode, &t.TeamLeadID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TeamRepository) Update(team *models.Team) error {
	const query = `UPDATE teams SET name=$1, color_code=$2, team_lead_id=$3 WHERE id=$4`
	_, err := r.db.Exec(query, team.Name, team.ColorCode, team.TeamLeadID, team.ID)
	return err
}

func (r *TeamRepository) Delete(id int64) error {
	const query = `DELETE FROM teams WHERE id=$1`
	_, err := r.db.Exec(query, id)
	return err
}

// Members returns the team roster in join order.
func (r *TeamRepository) Members(teamID int64) ([]models.Employee, error) {
	const query = `
		SELECT id, name, email, phone, role, team_id, created_at
		FROM employees WHERE team_id=$1 ORDER BY id
	`
	rows, err := r.db.Query(query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		var role string
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &role, &e.TeamID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Role = authz.Role(role)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *TeamRepository) AddMember(teamID, employeeID int64) error {
	const query = `UPDATE employees SET team_id=$1 WHERE id=$2`
	_, err := r.db.Exec(query, teamID, employeeID)
	return err
}

func (r *TeamRepository) RemoveMember(teamID, employeeID int64) error {
	const query = `UPDATE employees SET team_id=NULL WHERE id=$1 AND team_id=$2`
	_, err := r.db.Exec(query, employeeID, teamID)
	return err
}
