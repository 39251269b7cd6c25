package services

import (
	"errors"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
)

var ErrTeamLeadRemoval = errors.New("team lead cannot be removed from the team")

type TeamService struct {
	Repo      *repositories.TeamRepository
	Employees *repositories.EmployeeRepository
}

func NewTeamService(repo *repositories.TeamRepository, employees *repositories.EmployeeRepository) *TeamService {
	return &TeamService{Repo: repo, Employees: employees}
}

// Create registers a team. The team lead must exist, hold the
// Executive role and becomes a member immediately.
func (s *TeamService) Create(team *models.Team) error {
	lead, err := s.Employees.GetByID(team.TeamLeadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return ErrNotFound
	}
	if lead.Role != authz.RoleExecutive {
		return ErrForbidden
	}
	if err := s.Repo.Create(team); err != nil {
		return err
	}
	return s.Repo.AddMember(team.ID, team.TeamLeadID)
}

func (s *TeamService) GetByID(id int64) (*models.Team, error) {
	return s.Repo.GetByID(id)
}

func (s *TeamService) List() ([]models.Team, error) {
	return s.Repo.List()
}

func (s *TeamService) Update(team *models.Team) error {
	return s.Repo.Update(team)
}

func (s *TeamService) Delete(id int64) error {
	return s.Repo.Delete(id)
}

func (s *TeamService) AddMember(teamID, employeeID int64) error {
	emp, err := s.Employees.GetByID(employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return ErrNotFound
	}
	return s.Repo.AddMember(teamID, employeeID)
}

// RemoveMember drops a member from the roster. The current team lead
// stays until the team is re-led.
func (s *TeamService) RemoveMember(teamID, employeeID int64) error {
	team, err := s.Repo.GetByID(teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrNotFound
	}
	if team.TeamLeadID == employeeID {
		return ErrTeamLeadRemoval
	}
	return s.Repo.RemoveMember(teamID, employeeID)
}
