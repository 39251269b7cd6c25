package models

import "time"

// LeaveStatus defines the possible states of a leave application.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// LeaveApplication is a staff leave request reviewed by HR.
type LeaveApplication struct {
	ID         int64       `json:"id"`
	EmployeeID int64       `json:"employeeId"`
	FromDate   string      `json:"fromDate"` // yyyy-MM-dd
	ToDate     string      `json:"toDate"`   // yyyy-MM-dd
	Reason     string      `json:"reason"`
	Status     LeaveStatus `json:"status"`
	ReviewedBy *int64      `json:"reviewedBy,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// LeaveFilter defines the available parameters for listing leave
// applications.
type LeaveFilter struct {
	EmployeeID *int64
	Status     *LeaveStatus
}
