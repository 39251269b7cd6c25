package repositories

import (
	"database/sql"
	"log"
	"time"

	"salesdesk/internal/models"
)

type AttendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) GetForDay(employeeID int64, day string) (*models.Attendance, error) {
	const query = `
		SELECT id, employee_id, day, check_in, check_out
		FROM attendance WHERE employee_id=$1 AND day=$2
	`
	a := &models.Attendance{}
	err := r.db.QueryRow(query, employeeID, day).Scan(&a.ID, &a.EmployeeID, &a.Day, &a.CheckIn, &a.CheckOut)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AttendanceRepository) CheckIn(employeeID int64, day string, at time.Time) (*models.Attendance, error) {
	const query = `
		INSERT INTO attendance (employee_id, day, check_in)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	a := &models.Attendance{EmployeeID: employeeID, Day: day, CheckIn: at}
	if err := r.db.QueryRow(query, employeeID, day, at).Scan(&a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AttendanceRepository) CheckOut(id int64, at time.Time) error {
	const query = `UPDATE attendance SET check_out=$1 WHERE id=$2 AND check_out IS NULL`
	_, err := r.db.Exec(query, at, id)
	return err
}

// ListDay returns every attendance row for the day, for the HR view.
func (r *AttendanceRepository) ListDay(day string) ([]models.Attendance, error) {
	const query = `
		SELECT id, employee_id, day, check_in, check_out
		FROM attendance WHERE day=$1 ORDER BY check_in
	`
	rows, err := r.db.Query(query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Day, &a.CheckIn, &a.CheckOut); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
