package models

import (
	"time"

	"github.com/lib/pq"
)

// Actor roles. One row per (chat_id, role) pair.
const (
	RoleApplicant = "applicant"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

type Actor struct {
	ID        int64          `db:"id" json:"id"`
	ChatID    int64          `db:"chat_id" json:"chat_id"`
	Role      string         `db:"role" json:"role"`
	FirstName string         `db:"first_name" json:"first_name"`
	LastName  string         `db:"last_name" json:"last_name"`
	Email     *string        `db:"email" json:"email"`
	Phone     *string        `db:"phone" json:"phone"`
	Gender    *string        `db:"gender" json:"gender"`
	Age       *int           `db:"age" json:"age"`
	Country   *string        `db:"country" json:"country"`
	City      *string        `db:"city" json:"city"`
	Skills    pq.StringArray `db:"skills" json:"skills"`
	Portfolio pq.StringArray `db:"portfolio" json:"portfolio"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

func (a *Actor) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

func IsValidRole(role string) bool {
	switch role {
	case RoleApplicant, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}
