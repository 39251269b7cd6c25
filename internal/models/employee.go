package models

import (
	"time"

	"salesdesk/internal/authz"
)

// Employee is a staff account. The role tag is assigned by the
// backend at account creation and is immutable for a session.
type Employee struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         authz.Role `json:"role"`
	TeamID       *int64     `json:"teamId"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
