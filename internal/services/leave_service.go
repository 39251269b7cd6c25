package services

import (
	"log"
	"time"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
)

// LeaveService owns leave applications: staff apply, HR reviews.
// Email delivery is best-effort and never blocks the decision.
type LeaveService struct {
	Repo      *repositories.LeaveRepository
	Employees *repositories.EmployeeRepository
	Email     EmailService
	HREmail   string
}

func NewLeaveService(repo *repositories.LeaveRepository, employees *repositories.EmployeeRepository, email EmailService, hrEmail string) *LeaveService {
	return &LeaveService{Repo: repo, Employees: employees, Email: email, HREmail: hrEmail}
}

// Apply files a new application for the session's employee.
func (s *LeaveService) Apply(sess authz.Session, leave *models.LeaveApplication) error {
	if _, err := ParseRange(leave.FromDate, leave.ToDate); err != nil {
		return err
	}
	leave.EmployeeID = sess.EmployeeID
	leave.Status = models.LeavePending
	leave.ReviewedBy = nil
	leave.CreatedAt = time.Now()
	if err := s.Repo.Create(leave); err != nil {
		return err
	}

	if s.Email != nil && s.HREmail != "" {
		emp, err := s.Employees.GetByID(sess.EmployeeID)
		if err == nil && emp != nil {
			if err := s.Email.SendLeaveApplied(s.HREmail, emp.Name, leave); err != nil {
				log.Printf("[leave][email][err] %v", err)
			}
		}
	}
	return nil
}

// List returns applications: HR and Admin see all, everyone else only
// their own.
func (s *LeaveService) List(sess authz.Session, f models.LeaveFilter) ([]models.LeaveApplication, error) {
	switch sess.Role {
	case authz.RoleHR, authz.RoleAdmin:
	default:
		id := sess.EmployeeID
		f.EmployeeID = &id
	}
	return s.Repo.List(f)
}

// Review approves or rejects a pending application. HR only; a
// decided application never changes again.
func (s *LeaveService) Review(sess authz.Session, id int64, to models.LeaveStatus) (*models.LeaveApplication, error) {
	if sess.Role != authz.RoleHR && sess.Role != authz.RoleAdmin {
		return nil, ErrForbidden
	}
	if to != models.LeaveApproved && to != models.LeaveRejected {
		return nil, ErrInvalidTransition
	}
	count, err := s.Repo.Review(id, sess.EmployeeID, to)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		leave, err := s.Repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if leave == nil {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidTransition
	}

	leave, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s.Email != nil && leave != nil {
		emp, err := s.Employees.GetByID(leave.EmployeeID)
		if err == nil && emp != nil {
			if err := s.Email.SendLeaveDecision(emp.Email, emp.Name, leave); err != nil {
				log.Printf("[leave][email][err] %v", err)
			}
		}
	}
	return leave, nil
}
