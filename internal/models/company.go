package models

import "time"

// Company moderation statuses
const (
	CompanyStatusPending  = "pending"
	CompanyStatusApproved = "approved"
	CompanyStatusRejected = "rejected"
)

const (
	CompanyKindCompany = "company"
	CompanyKindStartup = "startup"
)

type Company struct {
	ID                     int64     `db:"id"`
	OwnerChatID            int64     `db:"owner_chat_id"`
	Kind                   string    `db:"kind"` // company | startup
	Subtype                *string   `db:"subtype"`
	Name                   string    `db:"name"`
	TradeLicenseRef        string    `db:"trade_license_ref"`
	AuthorizedPersonRef    string    `db:"authorized_person_ref"`
	AuthorizationLetterRef *string   `db:"authorization_letter_ref"`
	Status                 string    `db:"status"`
	Verified               bool      `db:"verified"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}
