package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"salesdesk/internal/models"
)

type EmailService interface {
	SendLeaveApplied(hrEmail, employeeName string, leave *models.LeaveApplication) error
	SendLeaveDecision(employeeEmail, employeeName string, leave *models.LeaveApplication) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendLeaveApplied(hrEmail, employeeName string, leave *models.LeaveApplication) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", hrEmail)
	m.SetHeader("Subject", "New leave application")

	body := fmt.Sprintf(`
		<h3>Leave application from %s</h3>
		<p>Period: <strong>%s</strong> to <strong>%s</strong></p>
		<p>Reason: %s</p>
		<p>Review it in the HR dashboard.</p>
	`, employeeName, leave.FromDate, leave.ToDate, leave.Reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send leave application email: %w", err)
	}
	return nil
}

func (s *emailService) SendLeaveDecision(employeeEmail, employeeName string, leave *models.LeaveApplication) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", employeeEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your leave application was %s", leave.Status))

	body := fmt.Sprintf(`
		<h3>Hi %s,</h3>
		<p>Your leave application for <strong>%s</strong> to <strong>%s</strong> was <strong>%s</strong>.</p>
	`, employeeName, leave.FromDate, leave.ToDate, leave.Status)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send leave decision email: %w", err)
	}
	return nil
}
