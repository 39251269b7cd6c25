package services

import (
	"errors"
	"time"

	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNotCheckedIn     = errors.New("not checked in today")
)

type AttendanceService struct {
	Repo *repositories.AttendanceRepository
}

func NewAttendanceService(repo *repositories.AttendanceRepository) *AttendanceService {
	return &AttendanceService{Repo: repo}
}

func today(at time.Time) string {
	return at.Format("2006-01-02")
}

// CheckIn opens the employee's attendance row for the day. One row
// per employee-day.
func (s *AttendanceService) CheckIn(employeeID int64) (*models.Attendance, error) {
	now := time.Now()
	existing, err := s.Repo.GetForDay(employeeID, today(now))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}
	return s.Repo.CheckIn(employeeID, today(now), now)
}

// CheckOut closes the day's row. Checking out twice keeps the first
// timestamp.
func (s *AttendanceService) CheckOut(employeeID int64) (*models.Attendance, error) {
	now := time.Now()
	existing, err := s.Repo.GetForDay(employeeID, today(now))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotCheckedIn
	}
	if existing.CheckOut == nil {
		if err := s.Repo.CheckOut(existing.ID, now); err != nil {
			return nil, err
		}
		existing.CheckOut = &now
	}
	return existing, nil
}

func (s *AttendanceService) ListDay(day string) ([]models.Attendance, error) {
	if day == "" {
		day = today(time.Now())
	}
	return s.Repo.ListDay(day)
}
