package models

import "time"

// Attendance is one employee-day of presence. CheckOut stays nil
// until the employee checks out.
type Attendance struct {
	ID         int64      `json:"id"`
	EmployeeID int64      `json:"employeeId"`
	Day        string     `json:"day"` // yyyy-MM-dd
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
}
