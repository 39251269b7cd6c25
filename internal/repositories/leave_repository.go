package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"salesdesk/internal/models"
)

type LeaveRepository struct {
	db *sql.DB
}

func NewLeaveRepository(db *sql.DB) *LeaveRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(l *models.LeaveApplication) error {
	const query = `
		INSERT INTO leave_applications (employee_id, from_date, to_date, reason, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
	return r.db.QueryRow(query, l.EmployeeID, l.FromDate, l.ToDate, l.Reason, string(l.Status), l.CreatedAt).Scan(&l.ID)
}

func (r *LeaveRepository) GetByID(id int64) (*models.LeaveApplication, error) {
	const query = `
		SELECT id, employee_id, from_date, to_date, reason, status, reviewed_by, created_at
		FROM leave_applications WHERE id=$1
	`
	l := &models.LeaveApplication{}
	var status string
	err := r.db.QueryRow(query, id).Scan(&l.ID, &l.EmployeeID, &l.FromDate, &l.ToDate, &l.Reason, &status, &l.ReviewedBy, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l.Status = models.LeaveStatus(status)
	return l, nil
}

func (r *LeaveRepository) List(f models.LeaveFilter) ([]models.LeaveApplication, error) {
	query := `
		SELECT id, employee_id, from_date, to_date, reason, status, reviewed_by, created_at
		FROM leave_applications WHERE 1=1
	`
	args := []interface{}{}
	i := 1
	if f.EmployeeID != nil {
		query += fmt.Sprintf(" AND employee_id = $%d", i)
		args = append(args, *f.EmployeeID)
		i++
	}
	if f.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, string(*f.Status))
		i++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LeaveApplication
	for rows.Next() {
		var l models.LeaveApplication
		var status string
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.FromDate, &l.ToDate, &l.Reason, &status, &l.ReviewedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Status = models.LeaveStatus(status)
		out = append(out, l)
	}
	return out, rows.Err()
}

// Review closes a pending application. Only PENDING rows transition.
func (r *LeaveRepository) Review(id, reviewerID int64, to models.LeaveStatus) (int64, error) {
	const query = `
		UPDATE leave_applications SET status=$1, reviewed_by=$2
		WHERE id=$3 AND status='PENDING'
	`
	res, err := r.db.Exec(query, string(to), reviewerID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
